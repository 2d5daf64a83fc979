package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSettingsStoreContract runs a suite of tests to verify that a SettingsStore
// implementation adheres to the defined interface contract.
func RunSettingsStoreContract(t *testing.T, store SettingsStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		blob := domain.DefaultSettings().Encode()
		blob["foreign"] = "kept"

		err := store.Save(ctx, name, blob)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "kept", loaded["foreign"], "unknown keys must survive")

		// Persistence may change scalar types (e.g. JSON numbers), so compare decoded settings.
		s, err := domain.Decode(loaded)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSettings(), s)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded[domain.KeyEnabled] = false

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		s, err := domain.Decode(again)
		require.NoError(t, err)
		assert.True(t, s.Enabled, "mutating a loaded blob must not change the store")
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.AsteriskEnabled = true
		require.NoError(t, store.Save(ctx, name, s.Encode()))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		got, err := domain.Decode(loaded)
		require.NoError(t, err)
		assert.True(t, got.AsteriskEnabled)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, domain.DefaultSettings().Encode()))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSettingsNotFound, "Load after Delete should return ErrSettingsNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing blob is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, domain.DefaultSettings().Encode())
		_ = store.Save(ctx, id2, domain.DefaultSettings().Encode())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
