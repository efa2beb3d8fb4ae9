package tile

// Classify сопоставляет тайлу ровно один символ терреина.
// Функция тотальна и детерминированна: никаких ошибок, никакого I/O.
//
// Цепочка правил упорядочена, первое совпадение выигрывает.
// Порядок существенен: несколько предикатов могут быть истинны
// одновременно, и поздние правила достижимы только при провале ранних.
//
// spoiler=false маскирует невидимые тайлы как SymbolUnexplored;
// spoiler=true раскрывает их настоящую классификацию.
// Отсутствующий тайл (t == nil, край разведанной области)
// всегда даёт SymbolUnexplored независимо от режима.
func Classify(t *Tile, spoiler bool) Symbol {
	// 1. Нет данных по координате
	if t == nil {
		return SymbolUnexplored
	}

	// 2. Спойлер-гейт: невидимый тайл скрывается
	if !spoiler && !t.Visible {
		return SymbolUnexplored
	}

	// 3. Магма: жидкость с ненулевым потоком.
	// Поток 0 — строгий гейт, тайл проваливается дальше по цепочке.
	if t.Liquid && t.Flow > 0 {
		return SymbolMagma
	}

	// 4. Вода (река/ручей/пруд/лёд)
	if t.Material.IsWater() {
		return SymbolWater
	}

	// 5. Трава
	if t.Material.IsGrass() {
		return SymbolGrass
	}

	// 6. Растение
	if t.Material == MaterialPlant {
		return SymbolPlant
	}

	// 7. Мягкий копаемый: мягкая стена либо почвенный пол/пандус
	if (t.IsDiggableWall() && !t.Material.IsHard()) || isSoilSurface(t) {
		return SymbolDiggableSoft
	}

	// 8. Дерево
	if t.Material == MaterialTree {
		return SymbolTree
	}

	// 9. Валун
	if t.Shape == ShapeBoulder {
		return SymbolBoulder
	}

	// 10. Твёрдый копаемый: твёрдая стена, каменный пол/пандус или галька
	if (t.IsDiggableWall() && t.Material.IsHard()) || isStoneSurface(t) || t.Shape == ShapePebbles {
		return SymbolDiggableHard
	}

	// 11. Всё остальное — открытое некопаемое пространство
	return SymbolEmpty
}

// IsGround сообщает, даёт ли тайл слою признак "есть грунт":
// копаемая стена, которая по немаскированной классификации
// действительно попадает в копаемый символ (а не, скажем, в магму).
func IsGround(t *Tile) bool {
	if t == nil || !t.IsDiggableWall() {
		return false
	}
	switch Classify(t, true) {
	case SymbolDiggableSoft, SymbolDiggableHard:
		return true
	}
	return false
}

// isSoilSurface: почвенный пол или пандус
func isSoilSurface(t *Tile) bool {
	return t.Material == MaterialSoil && (t.Shape == ShapeFloor || t.Shape == ShapeRamp)
}

// isStoneSurface: пол или пандус из твёрдого материала
func isStoneSurface(t *Tile) bool {
	return t.Material.IsHard() && (t.Shape == ShapeFloor || t.Shape == ShapeRamp)
}
