package worldgen

import (
	"math/rand"

	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/util"
	"github.com/annel0/dig-planner/internal/vec"
)

// Пороги высотного шума для поверхности
const (
	WaterMax     = 0.30 // Ниже - водоёмы
	PlainsMax    = 0.62 // Ниже - равнины
	FootHillsMax = 0.80 // Ниже - предгорья, выше - скальные выходы
)

// Пороги жильного шума для недр
const (
	veinThreshold   = 0.74 // Выше - минеральная жила вместо камня
	cavernThreshold = 0.80 // Выше (у дна) - магматический карман
)

// Params задаёт параметры генерации мира.
// Нулевые поля заменяются значениями по умолчанию в NewGenerator.
type Params struct {
	Seed           int64    // Сид генерации; одинаковый сид даёт одинаковый мир
	Dims           vec.Vec3 // Размеры сетки
	Origin         int      // Высота слоя z=0
	TerrainScale   float64  // Масштаб шума рельефа
	VeinScale      float64  // Масштаб шума жил и каверн
	TreeDensity    float64  // Шанс дерева на травяном тайле
	PlantDensity   float64  // Шанс куста на травяном тайле
	BoulderDensity float64  // Шанс валуна на поверхности
	ShaftDepth     int      // Глубина разведочной шахты от поверхности
}

// Generator генерирует ландшафт мира: поверхность с травой, лесом и
// водоёмами, почвенное одеяло, каменные недра с минеральными жилами
// и магматические карманы у дна. Видимость раздаётся как у свежей
// крепости: поверхность разведана, недра скрыты, в центре карты
// пробита разведочная шахта.
type Generator struct {
	params  Params
	terrain *util.NoiseField
	veins   *util.NoiseField
}

// NewGenerator создаёт генератор с заполненными значениями по умолчанию
func NewGenerator(p Params) *Generator {
	if p.TerrainScale == 0 {
		p.TerrainScale = 0.05 // Настройка сглаженности ландшафта
	}
	if p.VeinScale == 0 {
		p.VeinScale = 0.15 // Жилы мельче рельефа
	}
	if p.TreeDensity == 0 {
		p.TreeDensity = 0.08
	}
	if p.PlantDensity == 0 {
		p.PlantDensity = 0.05
	}
	if p.BoulderDensity == 0 {
		p.BoulderDensity = 0.02
	}
	if p.ShaftDepth == 0 {
		p.ShaftDepth = p.Dims.Z / 2
	}

	return &Generator{
		params:  p,
		terrain: util.NewNoiseField(p.Seed, p.TerrainScale),
		veins:   util.NewNoiseField(p.Seed+42, p.VeinScale),
	}
}

// Generate строит полную сетку мира
func (g *Generator) Generate() *mapgrid.MapGrid {
	grid := mapgrid.NewMapGrid(g.params.Dims, g.params.Origin)

	for y := 0; y < g.params.Dims.Y; y++ {
		for x := 0; x < g.params.Dims.X; x++ {
			g.generateColumn(grid, vec.Vec2{X: x, Y: y})
		}
	}

	g.carveShaft(grid)
	return grid
}

// generateColumn заполняет одну вертикальную колонку
func (g *Generator) generateColumn(grid *mapgrid.MapGrid, col vec.Vec2) {
	// Локальный ГСЧ на колонку: детерминированность не зависит
	// от порядка обхода
	colSeed := g.params.Seed + int64(col.X)*31 + int64(col.Y)*17
	rng := rand.New(rand.NewSource(colSeed))

	height := g.terrain.At(col.X, col.Y)
	surfaceZ := g.surfaceZ(height)
	soilDepth := 1 + rng.Intn(3) // Почвенное одеяло 1-3 слоя

	for z := 0; z < g.params.Dims.Z; z++ {
		pos := vec.FromVec2(col, z)

		switch {
		case z > surfaceZ:
			// Воздух над поверхностью: разведан с первого дня
			grid.SetTile(pos, tile.Tile{Shape: tile.ShapeEmpty, Visible: true})

		case z == surfaceZ:
			grid.SetTile(pos, g.surfaceTile(height, rng))

		case z > surfaceZ-1-soilDepth:
			// Почва под поверхностью
			grid.SetTile(pos, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialSoil})

		default:
			grid.SetTile(pos, g.undergroundTile(pos, rng))
		}
	}
}

// surfaceZ отображает значение шума рельефа в высоту поверхности.
// Водоёмы лежат на общем уровне, равнины чуть выше, предгорья
// занимают верхнюю треть колонки.
func (g *Generator) surfaceZ(height float64) int {
	top := g.params.Dims.Z - 1
	base := top * 2 / 3

	switch {
	case height < WaterMax:
		return base
	case height < PlainsMax:
		return base
	case height < FootHillsMax:
		return min(base+1, top)
	default:
		return min(base+2, top)
	}
}

// surfaceTile выбирает тайл поверхности по высоте рельефа
func (g *Generator) surfaceTile(height float64, rng *rand.Rand) tile.Tile {
	if height < WaterMax {
		// Водоём: пруд в низине
		return tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialPool, Visible: true}
	}

	if height >= FootHillsMax {
		// Скальный выход без растительности
		if rng.Float64() < g.params.BoulderDensity*4 {
			return tile.Tile{Shape: tile.ShapeBoulder, Material: tile.MaterialStone, Visible: true}
		}
		return tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialStone, Visible: true}
	}

	// Травянистая поверхность с деревьями и кустами
	roll := rng.Float64()
	switch {
	case roll < g.params.TreeDensity:
		return tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialTree, Visible: true}
	case roll < g.params.TreeDensity+g.params.PlantDensity:
		return tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialPlant, Visible: true}
	case roll < g.params.TreeDensity+g.params.PlantDensity+g.params.BoulderDensity:
		return tile.Tile{Shape: tile.ShapeBoulder, Material: tile.MaterialStone, Visible: true}
	}

	return tile.Tile{Shape: tile.ShapeFloor, Material: g.grassMaterial(height), Visible: true}
}

// grassMaterial выбирает оттенок травы по увлажнённости рельефа
func (g *Generator) grassMaterial(height float64) tile.Material {
	switch {
	case height < 0.40:
		return tile.MaterialGrassLight
	case height < 0.52:
		return tile.MaterialGrassDark
	case height < 0.58:
		return tile.MaterialGrassDry
	default:
		return tile.MaterialGrassDead
	}
}

// undergroundTile выбирает тайл недр: камень, минеральная жила
// или магматический карман у дна
func (g *Generator) undergroundTile(pos vec.Vec3, rng *rand.Rand) tile.Tile {
	vein := g.veins.At3D(pos.X, pos.Y, pos.Z)

	// Магматические карманы только в двух нижних слоях
	if pos.Z <= 1 && vein > cavernThreshold {
		return tile.Tile{
			Shape:  tile.ShapeEmpty,
			Liquid: true,
			Flow:   byte(4 + rng.Intn(4)),
		}
	}

	if vein > veinThreshold {
		return tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialMineral}
	}

	return tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone}
}

// carveShaft пробивает разведочную шахту в центре карты:
// тайлы ствола становятся пустыми полами, а сами они и их
// ортогональные соседи — видимыми. Именно шахта делает глубокие
// слои интересными для экспорта без спойлер-режима.
func (g *Generator) carveShaft(grid *mapgrid.MapGrid) {
	center := vec.Vec2{X: g.params.Dims.X / 2, Y: g.params.Dims.Y / 2}
	top := g.surfaceZ(g.terrain.At(center.X, center.Y))
	bottom := top - g.params.ShaftDepth
	if bottom < 0 {
		bottom = 0
	}

	walls := []vec.Vec2{
		{X: center.X + 1, Y: center.Y},
		{X: center.X - 1, Y: center.Y},
		{X: center.X, Y: center.Y + 1},
		{X: center.X, Y: center.Y - 1},
	}

	for z := top; z >= bottom; z-- {
		grid.SetTile(vec.FromVec2(center, z),
			tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialStone, Visible: true})

		// Стенки шахты открываются взгляду
		for _, w := range walls {
			npos := vec.FromVec2(w, z)
			if t := grid.TileAt(npos); t != nil {
				revealed := *t
				revealed.Visible = true
				grid.SetTile(npos, revealed)
			}
		}
	}
}
