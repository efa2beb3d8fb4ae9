package storage

import (
	"context"
	"testing"

	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSnapshot собирает небольшой снимок с дырой
func testSnapshot() *mapgrid.Snapshot {
	g := mapgrid.NewMapGrid(vec.Vec3{X: 3, Y: 2, Z: 2}, -7)
	g.SetTile(vec.Vec3{X: 0, Y: 0, Z: 0}, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone, Visible: true})
	g.SetTile(vec.Vec3{X: 2, Y: 1, Z: 1}, tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialSoil, Visible: true})
	return g.ToSnapshot()
}

// roundTripStore прогоняет общий контракт SnapshotStore
func roundTripStore(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	snap := testSnapshot()

	require.NoError(t, store.SaveWorld(ctx, "fortress", snap), "Снимок должен сохраняться")

	loaded, found, err := store.LoadWorld(ctx, "fortress")
	require.NoError(t, err)
	require.True(t, found, "Сохранённый мир должен находиться")
	assert.Equal(t, snap.Dims, loaded.Dims, "Размеры должны пережить round-trip")
	assert.Equal(t, snap.Origin, loaded.Origin, "Смещение высот должно пережить round-trip")

	g, err := mapgrid.FromSnapshot(loaded)
	require.NoError(t, err)
	got := g.TileAt(vec.Vec3{X: 0, Y: 0, Z: 0})
	require.NotNil(t, got)
	assert.Equal(t, tile.MaterialStone, got.Material, "Тайлы должны пережить round-trip")
	assert.Nil(t, g.TileAt(vec.Vec3{X: 1, Y: 0, Z: 0}), "Дыры должны пережить round-trip")

	// Неизвестный мир
	_, found, err = store.LoadWorld(ctx, "nowhere")
	require.NoError(t, err)
	assert.False(t, found, "Несуществующий мир не должен находиться")

	// Список миров
	worlds, err := store.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Contains(t, worlds, "fortress", "Список миров должен содержать сохранённый")

	// Удаление
	require.NoError(t, store.DeleteWorld(ctx, "fortress"))
	_, found, err = store.LoadWorld(ctx, "fortress")
	require.NoError(t, err)
	assert.False(t, found, "Удалённый мир не должен находиться")
}

func TestMemorySnapshotStore_RoundTrip(t *testing.T) {
	roundTripStore(t, NewMemorySnapshotStore())
}

func TestBadgerSnapshotStore_RoundTrip(t *testing.T) {
	store, err := NewBadgerSnapshotStore(t.TempDir())
	require.NoError(t, err, "BadgerDB должна открываться во временной директории")
	defer store.Close()

	roundTripStore(t, store)
}

func TestMemorySnapshotStore_EmptyWorldName(t *testing.T) {
	store := NewMemorySnapshotStore()
	err := store.SaveWorld(context.Background(), "", testSnapshot())
	assert.Error(t, err, "Пустое имя мира должно отвергаться")
}
