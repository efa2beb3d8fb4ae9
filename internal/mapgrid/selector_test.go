package mapgrid

import (
	"testing"

	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
	"github.com/stretchr/testify/assert"
)

// surveysOf — компактный конструктор обзоров: g=грунт, v=видимость,
// индекс в срезе равен z.
func surveysOf(rows ...[2]bool) []LayerSurvey {
	out := make([]LayerSurvey, len(rows))
	for z, r := range rows {
		out[z] = LayerSurvey{Z: z, HasGround: r[0], HasVisible: r[1]}
	}
	return out
}

func TestSelectLayers_SpoilerCutoff(t *testing.T) {
	// Сетка 1x1x3: z=2 видимая каменная стена, z=1 невидимая стена,
	// z=0 видимая пустота.
	g := NewMapGrid(vec.Vec3{X: 1, Y: 1, Z: 3}, 0)
	g.SetTile(vec.Vec3{Z: 2}, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone, Visible: true})
	g.SetTile(vec.Vec3{Z: 1}, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone, Visible: false})
	g.SetTile(vec.Vec3{Z: 0}, tile.Tile{Shape: tile.ShapeEmpty, Visible: true})

	surveys := SurveyAll(g)

	// Без спойлеров: только z=2; на z=1 обход обрывается целиком
	noSpoiler := SelectLayers(surveys, SelectPolicy{Spoiler: false})
	assert.Equal(t, []int{2}, noSpoiler, "Без спойлеров отбор должен остановиться перед невидимым слоем")

	// Со спойлерами: оба слоя с грунтом
	spoiler := SelectLayers(surveys, SelectPolicy{Spoiler: true})
	assert.Equal(t, []int{2, 1}, spoiler, "Спойлер-режим должен отдать все слои с грунтом")
}

func TestSelectLayers_SkipDoesNotInterrupt(t *testing.T) {
	// Слой без грунта, но видимый: пропускается, обход продолжается
	surveys := surveysOf(
		[2]bool{true, true},  // z=0: грунт, видим
		[2]bool{false, true}, // z=1: без грунта, видим
		[2]bool{true, true},  // z=2: грунт, видим
	)

	got := SelectLayers(surveys, SelectPolicy{Spoiler: false})
	assert.Equal(t, []int{2, 0}, got, "Слой без грунта пропускается, но не прерывает обход")
}

func TestSelectLayers_DescendingOrder(t *testing.T) {
	surveys := surveysOf(
		[2]bool{true, true},
		[2]bool{true, true},
		[2]bool{true, true},
		[2]bool{true, true},
	)

	got := SelectLayers(surveys, SelectPolicy{Spoiler: true})
	assert.Equal(t, []int{3, 2, 1, 0}, got, "Слои должны идти строго по убыванию высоты")
}

func TestSelectLayers_SpoilerMonotonicity(t *testing.T) {
	// Набор без спойлеров всегда подмножество (и префикс по убыванию)
	// набора со спойлерами
	surveys := surveysOf(
		[2]bool{true, false},  // z=0: грунт, невидим
		[2]bool{true, false},  // z=1: грунт, невидим
		[2]bool{false, true},  // z=2: без грунта, видим
		[2]bool{true, true},   // z=3: грунт, видим
		[2]bool{true, true},   // z=4: грунт, видим
	)

	spoiler := SelectLayers(surveys, SelectPolicy{Spoiler: true})
	noSpoiler := SelectLayers(surveys, SelectPolicy{Spoiler: false})

	assert.Equal(t, []int{4, 3, 1, 0}, spoiler, "Спойлер-набор содержит все слои с грунтом")
	assert.Equal(t, []int{4, 3}, noSpoiler, "Не-спойлерный набор обрывается на первом невидимом слое")
	assert.Subset(t, spoiler, noSpoiler, "Не-спойлерный набор — подмножество спойлерного")
}

func TestSelectLayers_IncludeAdjacentPolicy(t *testing.T) {
	surveys := surveysOf(
		[2]bool{false, true}, // z=0: без грунта, но грунт в z=1
		[2]bool{true, true},  // z=1: грунт
		[2]bool{false, true}, // z=2: без грунта, соседей с грунтом выше нет
	)

	strict := SelectLayers(surveys, SelectPolicy{Spoiler: true})
	assert.Equal(t, []int{1}, strict, "Без политики соседства проходит только слой с грунтом")

	adjacent := SelectLayers(surveys, SelectPolicy{Spoiler: true, IncludeAdjacent: true})
	assert.Equal(t, []int{1, 0}, adjacent, "С политикой соседства проходит и слой под грунтовым")
}

func TestSelectLayers_Empty(t *testing.T) {
	assert.Empty(t, SelectLayers(nil, SelectPolicy{}), "Пустой список обзоров — пустой отбор")

	// Все слои невидимы: без спойлеров ничего не отдаём
	surveys := surveysOf([2]bool{true, false}, [2]bool{true, false})
	assert.Empty(t, SelectLayers(surveys, SelectPolicy{Spoiler: false}),
		"Полностью невидимый мир без спойлеров не экспортируется")
}
