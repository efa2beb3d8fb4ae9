package mapgrid

import (
	"fmt"

	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
)

// TileSource — неизменяемый источник тайлов трехмерной сетки мира.
// Движок экспорта только читает из него; никаких мутаций.
type TileSource interface {
	// TileAt возвращает тайл по координате или nil,
	// если тайла по этой координате нет (край разведанной области).
	TileAt(pos vec.Vec3) *tile.Tile

	// Dimensions возвращает размеры сетки (x_max, y_max, z_max)
	Dimensions() vec.Vec3

	// OriginOffset возвращает смещение начала высот мира:
	// elevation = z + OriginOffset()
	OriginOffset() int
}

// Elevation переводит индекс слоя в отметку высоты мира
func Elevation(src TileSource, z int) int {
	return z + src.OriginOffset()
}

// MapGrid — плотная сетка тайлов в памяти, основная реализация TileSource.
// Допускает "дыры": координаты, по которым тайл не задан.
type MapGrid struct {
	dims    vec.Vec3
	origin  int
	tiles   []tile.Tile
	present []bool
}

// NewMapGrid создаёт пустую сетку указанных размеров.
// origin — смещение высот мира для слоя z=0.
func NewMapGrid(dims vec.Vec3, origin int) *MapGrid {
	n := dims.X * dims.Y * dims.Z
	return &MapGrid{
		dims:    dims,
		origin:  origin,
		tiles:   make([]tile.Tile, n),
		present: make([]bool, n),
	}
}

// SetTile задаёт тайл по координате.
// Координаты вне сетки игнорируются.
func (g *MapGrid) SetTile(pos vec.Vec3, t tile.Tile) {
	idx, ok := g.index(pos)
	if !ok {
		return
	}
	g.tiles[idx] = t
	g.present[idx] = true
}

// ClearTile убирает тайл по координате (делает дыру)
func (g *MapGrid) ClearTile(pos vec.Vec3) {
	idx, ok := g.index(pos)
	if !ok {
		return
	}
	g.tiles[idx] = tile.Tile{}
	g.present[idx] = false
}

// TileAt возвращает тайл по координате или nil, если тайла нет
func (g *MapGrid) TileAt(pos vec.Vec3) *tile.Tile {
	idx, ok := g.index(pos)
	if !ok || !g.present[idx] {
		return nil
	}
	return &g.tiles[idx]
}

// Dimensions возвращает размеры сетки
func (g *MapGrid) Dimensions() vec.Vec3 {
	return g.dims
}

// OriginOffset возвращает смещение высот мира
func (g *MapGrid) OriginOffset() int {
	return g.origin
}

// index вычисляет линейный индекс тайла; ok=false вне границ
func (g *MapGrid) index(pos vec.Vec3) (int, bool) {
	if pos.X < 0 || pos.X >= g.dims.X ||
		pos.Y < 0 || pos.Y >= g.dims.Y ||
		pos.Z < 0 || pos.Z >= g.dims.Z {
		return 0, false
	}
	return pos.X + pos.Y*g.dims.X + pos.Z*g.dims.X*g.dims.Y, true
}

// Snapshot — сериализуемое представление сетки для хранилища.
// Дыры кодируются отдельной маской присутствия.
type Snapshot struct {
	Dims    vec.Vec3    `json:"dims"`
	Origin  int         `json:"origin"`
	Tiles   []tile.Tile `json:"tiles"`
	Present []bool      `json:"present"`
}

// ToSnapshot снимает копию сетки для сериализации
func (g *MapGrid) ToSnapshot() *Snapshot {
	tiles := make([]tile.Tile, len(g.tiles))
	copy(tiles, g.tiles)
	present := make([]bool, len(g.present))
	copy(present, g.present)

	return &Snapshot{
		Dims:    g.dims,
		Origin:  g.origin,
		Tiles:   tiles,
		Present: present,
	}
}

// FromSnapshot восстанавливает сетку из снимка
func FromSnapshot(s *Snapshot) (*MapGrid, error) {
	n := s.Dims.X * s.Dims.Y * s.Dims.Z
	if n < 0 || len(s.Tiles) != n || len(s.Present) != n {
		return nil, fmt.Errorf("повреждённый снимок: размеры %v не соответствуют данным (%d тайлов)",
			s.Dims, len(s.Tiles))
	}

	g := NewMapGrid(s.Dims, s.Origin)
	copy(g.tiles, s.Tiles)
	copy(g.present, s.Present)
	return g, nil
}
