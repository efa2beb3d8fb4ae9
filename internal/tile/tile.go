package tile

// Shape определяет геометрическую форму тайла в мире.
// Закрытое перечисление: числовые коды принадлежат этому пакету
// и не привязаны к внутренним таблицам какого-либо симулятора.
type Shape uint8

const (
	ShapeEmpty   Shape = iota // Открытое пространство
	ShapeFloor                // Пол
	ShapeWall                 // Стена
	ShapeRamp                 // Пандус
	ShapeBoulder              // Валун
	ShapePebbles              // Галька / каменная поверхность
)

// String возвращает строковое представление формы
func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "EMPTY"
	case ShapeFloor:
		return "FLOOR"
	case ShapeWall:
		return "WALL"
	case ShapeRamp:
		return "RAMP"
	case ShapeBoulder:
		return "BOULDER"
	case ShapePebbles:
		return "PEBBLES"
	default:
		return "UNKNOWN"
	}
}

// Material определяет материал тайла.
type Material uint8

const (
	MaterialNone Material = iota
	MaterialStone
	MaterialSoil
	MaterialMineral
	MaterialFeature
	MaterialLavaStone
	MaterialFrozenLiquid
	MaterialTree
	MaterialGrassLight
	MaterialGrassDark
	MaterialGrassDry
	MaterialGrassDead
	MaterialPlant
	MaterialRiver
	MaterialBrook
	MaterialPool
)

// String возвращает строковое представление материала
func (m Material) String() string {
	switch m {
	case MaterialNone:
		return "NONE"
	case MaterialStone:
		return "STONE"
	case MaterialSoil:
		return "SOIL"
	case MaterialMineral:
		return "MINERAL"
	case MaterialFeature:
		return "FEATURE"
	case MaterialLavaStone:
		return "LAVA_STONE"
	case MaterialFrozenLiquid:
		return "FROZEN_LIQUID"
	case MaterialTree:
		return "TREE"
	case MaterialGrassLight:
		return "GRASS_LIGHT"
	case MaterialGrassDark:
		return "GRASS_DARK"
	case MaterialGrassDry:
		return "GRASS_DRY"
	case MaterialGrassDead:
		return "GRASS_DEAD"
	case MaterialPlant:
		return "PLANT"
	case MaterialRiver:
		return "RIVER"
	case MaterialBrook:
		return "BROOK"
	case MaterialPool:
		return "POOL"
	default:
		return "UNKNOWN"
	}
}

// Tile описывает один тайл сетки мира: форма, материал,
// жидкость с величиной потока и флаг видимости.
// Структура неизменяемая с точки зрения движка экспорта —
// все вычисления читают её, ничего не мутируя.
type Tile struct {
	Shape    Shape    `json:"shape"`
	Material Material `json:"material"`
	Liquid   bool     `json:"liquid,omitempty"` // Есть ли жидкость в тайле
	Flow     uint8    `json:"flow,omitempty"`   // Величина потока жидкости (0-7)
	Visible  bool     `json:"visible"`          // Открыт ли тайл игроку
}

// IsGrass сообщает, относится ли материал к травяным вариантам
func (m Material) IsGrass() bool {
	switch m {
	case MaterialGrassLight, MaterialGrassDark, MaterialGrassDry, MaterialGrassDead:
		return true
	}
	return false
}

// IsWater сообщает, относится ли материал к водным
func (m Material) IsWater() bool {
	switch m {
	case MaterialRiver, MaterialBrook, MaterialPool, MaterialFrozenLiquid:
		return true
	}
	return false
}

// IsHard сообщает, относится ли материал к "твёрдым" для копания.
// Все прочие материалы стен считаются мягкими.
func (m Material) IsHard() bool {
	switch m {
	case MaterialStone, MaterialFeature, MaterialLavaStone, MaterialMineral, MaterialFrozenLiquid:
		return true
	}
	return false
}

// IsDiggableWall сообщает, является ли тайл копаемой стеной:
// форма WALL и материал не дерево.
func (t *Tile) IsDiggableWall() bool {
	return t.Shape == ShapeWall && t.Material != MaterialTree
}
