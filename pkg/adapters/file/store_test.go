package file_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/autoquote/pkg/adapters/file"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		ports.RunSettingsStoreContract(t, file.NewStore(t.TempDir()))
	})
	t.Run("JSON", func(t *testing.T) {
		ports.RunSettingsStoreContract(t, file.NewStore(t.TempDir(), file.WithFormat(file.FormatJSON)))
	})
}

func TestFileStore_ReadsHandWrittenYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte("enabled: false\nasteriskEnabled: yes\nhighlightNamesColor: '#abcdef'\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AutoQuote.yaml"), content, 0644))

	store := file.NewStore(dir)
	blob, err := store.Load(context.Background(), "AutoQuote")
	require.NoError(t, err)

	s, err := domain.Decode(blob)
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.True(t, s.AsteriskEnabled)
	assert.Equal(t, "#abcdef", s.HighlightNamesColor)
}

func TestFileStore_InvalidName(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", map[string]any{}))
	assert.Error(t, store.Save(ctx, "../escape", map[string]any{}))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := file.NewStore(dir, file.WithFormat(file.FormatJSON)).Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestFileStore_ConcurrentSaves(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(enabled bool) {
			defer wg.Done()
			// Separate stores stand in for separate processes sharing the directory.
			store := file.NewStore(dir)
			s := domain.DefaultSettings()
			s.Enabled = enabled
			assert.NoError(t, store.Save(ctx, "shared", s.Encode()))
		}(i%2 == 0)
	}
	wg.Wait()

	blob, err := file.NewStore(dir).Load(ctx, "shared")
	require.NoError(t, err)
	_, err = domain.Decode(blob)
	require.NoError(t, err)

	names, err := file.NewStore(dir).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, names, "lock and temp files are not listed")
}

func TestFileStore_DeleteWithoutDirectory(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, store.Delete(context.Background(), "AutoQuote"))
}
