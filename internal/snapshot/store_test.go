package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sandgrid/internal/sims/sand"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sandgrid.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testWorld(t *testing.T, seed int64, ticks int) *sand.World {
	t.Helper()
	cfg := sand.DefaultConfig()
	cfg.Width = 24
	cfg.Height = 18
	cfg.Seed = seed
	world := sand.NewWithConfig(cfg)
	world.Reset(0)
	for i := 0; i < ticks; i++ {
		world.Step()
	}
	return world
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	world := testWorld(t, 21, 30)

	meta, err := store.Save(world)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.ID)
	assert.Equal(t, world.Tick(), meta.Tick)
	assert.Equal(t, len(world.Particles()), meta.Grains)
	assert.Equal(t, world.Checksum(), meta.Checksum)

	restored, loaded, err := store.Load(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, meta.ID, loaded.ID)
	assert.Equal(t, world.Cells(), restored.Cells())
	assert.Equal(t, world.Checksum(), restored.Checksum())
}

func TestLoadUnknownID(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Load("no-such-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListOrdersByCreation(t *testing.T) {
	store := openTestStore(t)

	first, err := store.Save(testWorld(t, 1, 5))
	require.NoError(t, err)
	second, err := store.Save(testWorld(t, 2, 10))
	require.NoError(t, err)

	metas, err := store.List()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	got := []string{metas[0].ID, metas[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, got)
	assert.False(t, metas[1].CreatedAt.Before(metas[0].CreatedAt))
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)

	meta, err := store.Save(testWorld(t, 3, 5))
	require.NoError(t, err)
	require.NoError(t, store.Delete(meta.ID))

	_, _, err = store.Load(meta.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = store.Delete(meta.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandgrid.db")
	store, err := Open(path, nil)
	require.NoError(t, err)
	meta, err := store.Save(testWorld(t, 4, 12))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	restored, loaded, err := reopened.Load(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, meta.Checksum, loaded.Checksum)
	assert.Equal(t, meta.Tick, restored.Tick())
}
