package mapgrid

// SelectPolicy управляет отбором слоёв для экспорта.
type SelectPolicy struct {
	// Spoiler: true — экспортировать все слои с грунтом до самого дна;
	// false — остановить весь обход на первом полностью невидимом слое,
	// чтобы не раскрывать неразведанные глубины.
	Spoiler bool

	// IncludeAdjacent: слой проходит отбор и тогда, когда грунт есть
	// в слое непосредственно над ним. Полезно, чтобы видеть пол под
	// выкопанным уровнем; по умолчанию выключено.
	IncludeAdjacent bool
}

// SelectLayers выбирает слои для экспорта, обходя их сверху вниз.
// Возвращает индексы z строго по убыванию высоты.
//
// Слой без грунта пропускается, но обход не прерывает; прерывает
// обход только слой без видимых тайлов в не-спойлерном режиме.
func SelectLayers(surveys []LayerSurvey, p SelectPolicy) []int {
	selected := make([]int, 0, len(surveys))

	for z := len(surveys) - 1; z >= 0; z-- {
		if !p.Spoiler && !surveys[z].HasVisible {
			// Спойлер-отсечка: ни этот слой, ни слои ниже
			break
		}

		eligible := surveys[z].HasGround
		if !eligible && p.IncludeAdjacent && z+1 < len(surveys) {
			eligible = surveys[z+1].HasGround
		}

		if eligible {
			selected = append(selected, z)
		}
	}

	return selected
}
