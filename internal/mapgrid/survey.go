package mapgrid

import (
	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
)

// LayerSurvey — результат обхода одного горизонтального слоя.
type LayerSurvey struct {
	Z          int  // Индекс слоя в сетке
	HasGround  bool // Есть ли в слое хотя бы одна копаемая стена
	HasVisible bool // Есть ли в слое хотя бы один видимый тайл
}

// SurveyLayer обходит все тайлы слоя z и вычисляет его свойства.
// Оба признака считаются по немаскированным атрибутам: спойлер-режим
// влияет только на содержимое экспорта, не на пригодность слоя.
// Обход детерминированный, построчный (y внешний, x внутренний);
// обрывается досрочно, когда оба признака уже найдены.
func SurveyLayer(src TileSource, z int) LayerSurvey {
	dims := src.Dimensions()
	s := LayerSurvey{Z: z}

	for y := 0; y < dims.Y; y++ {
		for x := 0; x < dims.X; x++ {
			t := src.TileAt(vec.Vec3{X: x, Y: y, Z: z})
			if t == nil {
				continue
			}
			if !s.HasGround && tile.IsGround(t) {
				s.HasGround = true
			}
			if !s.HasVisible && t.Visible {
				s.HasVisible = true
			}
			if s.HasGround && s.HasVisible {
				return s
			}
		}
	}

	return s
}

// SurveyAll обходит все слои сетки снизу вверх.
// Результат индексирован по z: result[z].Z == z.
func SurveyAll(src TileSource) []LayerSurvey {
	dims := src.Dimensions()
	surveys := make([]LayerSurvey, dims.Z)
	for z := 0; z < dims.Z; z++ {
		surveys[z] = SurveyLayer(src, z)
	}
	return surveys
}
