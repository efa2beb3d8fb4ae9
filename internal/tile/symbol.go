package tile

// Symbol — односимвольный код терреина в экспортируемой карте.
// Алфавит закрыт и совпадает с палитрой, которую понимает
// рендерер таблиц (заливка ячеек по символу).
type Symbol byte

const (
	SymbolUnexplored   Symbol = '?' // Скрытый или отсутствующий тайл
	SymbolDiggableHard Symbol = 'r' // Копаемый твёрдый (камень, руда)
	SymbolDiggableSoft Symbol = 's' // Копаемый мягкий (почва)
	SymbolTree         Symbol = 'T' // Дерево
	SymbolWater        Symbol = '~' // Вода
	SymbolMagma        Symbol = '!' // Магма
	SymbolGrass        Symbol = ',' // Трава
	SymbolPlant        Symbol = 'p' // Растение
	SymbolBoulder      Symbol = 'B' // Валун
	SymbolPebbles      Symbol = '.' // Каменная поверхность (зарезервирован для палитры)
	SymbolEmpty        Symbol = '0' // Открытое пространство
)

// Alphabet возвращает полный закрытый алфавит символов.
// Порядок стабилен; используется рендерером для палитры.
func Alphabet() []Symbol {
	return []Symbol{
		SymbolUnexplored,
		SymbolDiggableHard,
		SymbolDiggableSoft,
		SymbolTree,
		SymbolWater,
		SymbolMagma,
		SymbolGrass,
		SymbolPlant,
		SymbolBoulder,
		SymbolPebbles,
		SymbolEmpty,
	}
}

// String возвращает символ как строку из одного знака
func (s Symbol) String() string {
	return string(rune(s))
}
