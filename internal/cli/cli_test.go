package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/autoquote/internal/logging"
	"github.com/aretw0/autoquote/pkg/annotate"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileOpts(t *testing.T) Options {
	t.Helper()
	return Options{Store: StoreFile, StorePath: t.TempDir()}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("Unknown", func(t *testing.T) {
		_, _, err := openStore(ctx, Options{Store: "sqlite"}, logger)
		assert.ErrorIs(t, err, domain.ErrUnknownStore)
	})

	t.Run("Bad Format", func(t *testing.T) {
		_, _, err := openStore(ctx, Options{Store: StoreFile, StoreFormat: "toml"}, logger)
		assert.Error(t, err)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, closeStore, err := openStore(ctx, Options{Store: StoreRedis, RedisAddr: mr.Addr()}, logger)
		require.NoError(t, err)
		defer closeStore()

		require.NoError(t, store.Save(ctx, "x", map[string]any{"enabled": true}))
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "x")
	})

	t.Run("Bunt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.db")
		store, closeStore, err := openStore(ctx, Options{Store: StoreBunt, StorePath: path}, logger)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, "x", map[string]any{"enabled": false}))
		require.NoError(t, closeStore())

		store, closeStore, err = openStore(ctx, Options{Store: StoreBunt, StorePath: path}, logger)
		require.NoError(t, err)
		defer closeStore()
		blob, err := store.Load(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, false, blob["enabled"])
	})

	t.Run("Loam", func(t *testing.T) {
		dir := t.TempDir()
		store, closeStore, err := openStore(ctx, Options{Store: StoreLoam, StorePath: dir}, logger)
		require.NoError(t, err)
		defer closeStore()

		require.NoError(t, store.Save(ctx, "x", map[string]any{"enabled": false}))
		blob, err := store.Load(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, false, blob["enabled"])
	})

	t.Run("Redis Unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, _, err := openStore(ctx, Options{Store: StoreRedis, RedisAddr: addr}, logger)
		assert.Error(t, err)
	})
}

func TestRunRewrite(t *testing.T) {
	ctx := context.Background()
	opts := fileOpts(t)

	var out bytes.Buffer
	require.NoError(t, RunRewrite(ctx, opts, []string{"hello", "*waves*", "there"}, nil, &out))
	assert.Equal(t, "\"hello\" waves \"there\"\n", out.String())

	out.Reset()
	require.NoError(t, RunRewrite(ctx, opts, nil, strings.NewReader("hi\n*sits*\n"), &out))
	assert.Equal(t, "\"hi\"\nsits\n", out.String())

	// The toggle is stored, so the next run passes input through.
	out.Reset()
	require.NoError(t, RunRewrite(ctx, opts, []string{"//aq"}, nil, &out))
	assert.Equal(t, ">>> AutoQuote disabled\n", out.String())

	out.Reset()
	require.NoError(t, RunRewrite(ctx, opts, []string{"hello"}, nil, &out))
	assert.Equal(t, "hello\n", out.String())
}

func TestRunSettings(t *testing.T) {
	ctx := context.Background()
	opts := fileOpts(t)
	var out bytes.Buffer

	require.NoError(t, RunSettingsSet(ctx, opts, domain.KeyAsteriskEnabled, "true", &out))
	assert.Contains(t, out.String(), "asteriskEnabled set to true")

	out.Reset()
	require.NoError(t, RunSettingsSet(ctx, opts, domain.KeyAsteriskEnabled, "1", &out))
	assert.Contains(t, out.String(), "unchanged")

	assert.ErrorIs(t, RunSettingsSet(ctx, opts, "bogus", "1", &out), domain.ErrInvalidSettings)

	out.Reset()
	require.NoError(t, RunSettingsGet(ctx, opts, "yaml", &out))
	assert.Contains(t, out.String(), "asteriskEnabled: true")

	out.Reset()
	require.NoError(t, RunSettingsGet(ctx, opts, "json", &out))
	assert.Contains(t, out.String(), `"asteriskEnabled": true`)

	assert.Error(t, RunSettingsGet(ctx, opts, "xml", &out))

	out.Reset()
	require.NoError(t, RunSettingsToggle(ctx, opts, &out))
	assert.Equal(t, ">>> AutoQuote disabled\n", out.String())

	out.Reset()
	require.NoError(t, RunSettingsList(ctx, opts, &out))
	assert.Equal(t, domain.ExtensionName+"\n", out.String())

	out.Reset()
	require.NoError(t, RunSettingsReset(ctx, opts, &out))
	out.Reset()
	require.NoError(t, RunSettingsList(ctx, opts, &out))
	assert.Empty(t, out.String())
}

func TestRunSettingsImport(t *testing.T) {
	ctx := context.Background()
	opts := fileOpts(t)
	dir := t.TempDir()
	var out bytes.Buffer

	jsonPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"highlightNamesEnabled": true, "highlightNamesColor": "#123456"}`), 0644))
	require.NoError(t, RunSettingsImport(ctx, opts, jsonPath, &out))

	out.Reset()
	require.NoError(t, RunSettingsGet(ctx, opts, "yaml", &out))
	assert.Contains(t, out.String(), "highlightNamesEnabled: true")
	assert.Contains(t, out.String(), "#123456")

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("highlightNamesColor: 'red;\"'\n"), 0644))
	assert.ErrorIs(t, RunSettingsImport(ctx, opts, badPath, &out), domain.ErrInvalidSettings)

	assert.Error(t, RunSettingsImport(ctx, opts, filepath.Join(dir, "missing.yaml"), &out))
}

func TestRunAnnotate(t *testing.T) {
	ctx := context.Background()
	opts := fileOpts(t)
	var out bytes.Buffer

	names := AnnotateOptions{Variant: "names", NameColor: "#f00"}
	require.NoError(t, RunAnnotate(ctx, opts, names, nil, strings.NewReader("Bob: hi"), &out))
	annotated := out.String()
	assert.Equal(t, `<span data-autoquote-highlight="true" style="color: #f00;">Bob</span>: hi`, annotated)

	out.Reset()
	require.NoError(t, RunAnnotate(ctx, opts, AnnotateOptions{Undo: true}, nil, strings.NewReader(annotated), &out))
	assert.Equal(t, "Bob: hi", out.String())

	assert.Error(t, RunAnnotate(ctx, opts, AnnotateOptions{Variant: "rainbow"}, nil, strings.NewReader(""), &out))

	// Settings decide when no variant is given; annotation is off by default.
	out.Reset()
	require.NoError(t, RunAnnotate(ctx, opts, AnnotateOptions{}, nil, strings.NewReader("Bob: hi"), &out))
	assert.Equal(t, "Bob: hi", out.String())

	require.NoError(t, RunSettingsSet(ctx, opts, domain.KeyMessageColorsEnabled, "true", &bytes.Buffer{}))
	out.Reset()
	require.NoError(t, RunAnnotate(ctx, opts, AnnotateOptions{}, nil, strings.NewReader("<p>Bob: hi</p>"), &out))
	assert.Contains(t, out.String(), annotate.AttrText)
	assert.Contains(t, out.String(), annotate.AttrName)
}

func TestRunAnnotate_InPlace(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "001.html")
	require.NoError(t, os.WriteFile(path, []byte("Ann: yo"), 0644))

	var out bytes.Buffer
	aopts := AnnotateOptions{Variant: "names", InPlace: true}
	require.NoError(t, RunAnnotate(ctx, fileOpts(t), aopts, []string{path}, nil, &out))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), annotate.AttrHighlight)
}

func TestRunPreview(t *testing.T) {
	ctx := context.Background()
	opts := fileOpts(t)
	var out bytes.Buffer

	in := strings.NewReader("hello *waves*\n//aq\nplain\n")
	require.NoError(t, RunPreview(ctx, opts, PreviewOptions{}, in, &out))
	assert.Equal(t, "\"hello\" waves\n>>> AutoQuote disabled\nplain\n", out.String())
}

func TestRunWatch(t *testing.T) {
	opts := fileOpts(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001.html"), []byte("Bob: hi"), 0644))
	require.NoError(t, RunSettingsSet(context.Background(), opts, domain.KeyHighlightNamesEnabled, "true", &bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, opts, WatchOptions{Settle: 10 * time.Millisecond, Quiet: true}, dir, &bytes.Buffer{})
	}()

	assert.Eventually(t, func() bool {
		data, _ := os.ReadFile(filepath.Join(dir, "001.html"))
		return strings.Contains(string(data), annotate.AttrHighlight)
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "002.html"), []byte("Ann: yo"), 0644))
	assert.Eventually(t, func() bool {
		data, _ := os.ReadFile(filepath.Join(dir, "002.html"))
		return strings.Contains(string(data), annotate.AttrHighlight)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestRunWatch_MissingDir(t *testing.T) {
	err := RunWatch(context.Background(), fileOpts(t), WatchOptions{}, filepath.Join(t.TempDir(), "nope"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestMetricsFile(t *testing.T) {
	opts := fileOpts(t)
	opts.MetricsFile = filepath.Join(t.TempDir(), "autoquote.prom")

	require.NoError(t, RunRewrite(context.Background(), opts, []string{"hi"}, nil, &bytes.Buffer{}))

	data, err := os.ReadFile(opts.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "autoquote_rewrites_total 1")
}
