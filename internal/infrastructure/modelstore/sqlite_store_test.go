package modelstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/infrastructure/modelstore"
)

func openStore(t *testing.T) *modelstore.SQLiteStore {
	t.Helper()
	store, err := modelstore.Open(context.Background(), filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load before any save reports not found", func(t *testing.T) {
		store := openStore(t)

		_, err := store.Load(ctx, "risk")
		require.ErrorIs(t, err, model.ErrArtifactNotFound)
	})

	t.Run("save then load round-trips the payload", func(t *testing.T) {
		store := openStore(t)
		payload := []byte{0x01, 0x02, 0x03, 0xff}

		require.NoError(t, store.Save(ctx, "risk", payload))

		got, err := store.Load(ctx, "risk")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("second save overwrites the first", func(t *testing.T) {
		store := openStore(t)

		require.NoError(t, store.Save(ctx, "cluster", []byte("v1")))
		require.NoError(t, store.Save(ctx, "cluster", []byte("v2")))

		got, err := store.Load(ctx, "cluster")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("purposes do not collide", func(t *testing.T) {
		store := openStore(t)

		require.NoError(t, store.Save(ctx, "risk", []byte("classifier")))
		require.NoError(t, store.Save(ctx, "cluster", []byte("centroids")))

		risk, err := store.Load(ctx, "risk")
		require.NoError(t, err)
		cluster, err := store.Load(ctx, "cluster")
		require.NoError(t, err)

		assert.Equal(t, []byte("classifier"), risk)
		assert.Equal(t, []byte("centroids"), cluster)
	})

	t.Run("store survives reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "models.db")

		first, err := modelstore.Open(ctx, path)
		require.NoError(t, err)
		require.NoError(t, first.Save(ctx, "risk", []byte("persisted")))
		require.NoError(t, first.Close())

		second, err := modelstore.Open(ctx, path)
		require.NoError(t, err)
		defer second.Close()

		got, err := second.Load(ctx, "risk")
		require.NoError(t, err)
		assert.Equal(t, []byte("persisted"), got)
	})
}
