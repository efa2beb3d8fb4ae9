package mapgrid

import (
	"testing"

	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
	"github.com/stretchr/testify/assert"
)

// fillLayer заполняет слой z одинаковыми тайлами
func fillLayer(g *MapGrid, z int, t tile.Tile) {
	dims := g.Dimensions()
	for y := 0; y < dims.Y; y++ {
		for x := 0; x < dims.X; x++ {
			g.SetTile(vec.Vec3{X: x, Y: y, Z: z}, t)
		}
	}
}

func TestSurveyLayer_GroundAndVisible(t *testing.T) {
	g := NewMapGrid(vec.Vec3{X: 3, Y: 3, Z: 1}, 0)
	fillLayer(g, 0, tile.Tile{Shape: tile.ShapeEmpty, Visible: false})

	// Одна невидимая копаемая стена
	g.SetTile(vec.Vec3{X: 1, Y: 1, Z: 0}, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone, Visible: false})

	s := SurveyLayer(g, 0)
	assert.True(t, s.HasGround, "Невидимая стена всё равно даёт грунт: признаки считаются по немаскированным данным")
	assert.False(t, s.HasVisible, "Видимых тайлов в слое нет")
}

func TestSurveyLayer_VisibleWithoutGround(t *testing.T) {
	// Слой с видимыми тайлами, но без копаемых стен:
	// has_ground=false, has_visible=true
	g := NewMapGrid(vec.Vec3{X: 2, Y: 2, Z: 1}, 0)
	fillLayer(g, 0, tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialGrassLight, Visible: true})

	s := SurveyLayer(g, 0)
	assert.False(t, s.HasGround, "Травяные полы не дают грунта")
	assert.True(t, s.HasVisible, "Слой видим")
}

func TestSurveyLayer_EmptyAndHoles(t *testing.T) {
	g := NewMapGrid(vec.Vec3{X: 2, Y: 2, Z: 2}, 0)
	// Слой 0 полностью из дыр — обход не должен падать

	s := SurveyLayer(g, 0)
	assert.False(t, s.HasGround, "Слой из дыр не имеет грунта")
	assert.False(t, s.HasVisible, "Слой из дыр не имеет видимых тайлов")
}

func TestSurveyLayer_Idempotent(t *testing.T) {
	g := NewMapGrid(vec.Vec3{X: 4, Y: 4, Z: 1}, 0)
	fillLayer(g, 0, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialSoil, Visible: true})

	first := SurveyLayer(g, 0)
	second := SurveyLayer(g, 0)
	assert.Equal(t, first, second, "Повторный обход того же снимка должен давать тот же результат")
}

func TestSurveyAll_IndexedByZ(t *testing.T) {
	g := NewMapGrid(vec.Vec3{X: 1, Y: 1, Z: 3}, 0)
	g.SetTile(vec.Vec3{Z: 2}, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone, Visible: true})

	surveys := SurveyAll(g)
	assert.Len(t, surveys, 3, "По одному обзору на слой")
	for z, s := range surveys {
		assert.Equal(t, z, s.Z, "Обзор должен быть индексирован по z")
	}
	assert.True(t, surveys[2].HasGround, "Верхний слой содержит стену")
	assert.False(t, surveys[0].HasGround, "Нижний слой пуст")
}
