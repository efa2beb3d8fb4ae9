package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_MissingTile(t *testing.T) {
	// Отсутствующий тайл — всегда неразведанный, в обоих режимах
	assert.Equal(t, SymbolUnexplored, Classify(nil, false), "Отсутствующий тайл должен быть '?'")
	assert.Equal(t, SymbolUnexplored, Classify(nil, true), "Спойлер-режим не раскрывает отсутствующие тайлы")
}

func TestClassify_SpoilerGate(t *testing.T) {
	hidden := &Tile{Shape: ShapeWall, Material: MaterialStone, Visible: false}

	assert.Equal(t, SymbolUnexplored, Classify(hidden, false), "Невидимый тайл должен маскироваться")
	assert.Equal(t, SymbolDiggableHard, Classify(hidden, true), "Спойлер-режим должен раскрывать настоящий символ")
}

func TestClassify_MagmaRequiresFlow(t *testing.T) {
	// Жидкость с потоком — магма
	magma := &Tile{Shape: ShapeEmpty, Liquid: true, Flow: 5, Visible: true}
	assert.Equal(t, SymbolMagma, Classify(magma, false), "Жидкость с потоком > 0 — магма")

	// Жидкость с нулевым потоком проваливается дальше по цепочке
	still := &Tile{Shape: ShapeEmpty, Liquid: true, Flow: 0, Visible: true}
	assert.Equal(t, SymbolEmpty, Classify(still, false), "Поток 0 — строгий гейт, магмы быть не должно")

	stillWater := &Tile{Shape: ShapeEmpty, Material: MaterialPool, Liquid: true, Flow: 0, Visible: true}
	assert.Equal(t, SymbolWater, Classify(stillWater, false), "Стоячая жидкость с водным материалом — вода")
}

func TestClassify_WaterBeatsHardWall(t *testing.T) {
	// Лёд числится и в водных, и в твёрдых материалах;
	// правило воды стоит раньше и всегда выигрывает
	ice := &Tile{Shape: ShapeWall, Material: MaterialFrozenLiquid, Visible: true}
	assert.Equal(t, SymbolWater, Classify(ice, true), "Ледяная стена классифицируется как вода")
}

func TestClassify_TreeWallNeverDiggable(t *testing.T) {
	// Стена из дерева — дерево, не копаемый, независимо от твёрдости
	treeWall := &Tile{Shape: ShapeWall, Material: MaterialTree, Visible: true}
	assert.Equal(t, SymbolTree, Classify(treeWall, false), "Стена из дерева должна быть 'T'")
	assert.Equal(t, SymbolTree, Classify(treeWall, true), "Режим не влияет на классификацию дерева")
}

func TestClassify_DiggableWalls(t *testing.T) {
	cases := []struct {
		name     string
		material Material
		want     Symbol
	}{
		{"камень", MaterialStone, SymbolDiggableHard},
		{"руда", MaterialMineral, SymbolDiggableHard},
		{"лавовый камень", MaterialLavaStone, SymbolDiggableHard},
		{"особый материал", MaterialFeature, SymbolDiggableHard},
		{"почва", MaterialSoil, SymbolDiggableSoft},
		{"без материала", MaterialNone, SymbolDiggableSoft},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := &Tile{Shape: ShapeWall, Material: tc.material, Visible: true}
			assert.Equal(t, tc.want, Classify(w, false), "Неверный символ для стены: %s", tc.name)
		})
	}
}

func TestClassify_Surfaces(t *testing.T) {
	soilFloor := &Tile{Shape: ShapeFloor, Material: MaterialSoil, Visible: true}
	assert.Equal(t, SymbolDiggableSoft, Classify(soilFloor, false), "Почвенный пол — мягкий копаемый")

	soilRamp := &Tile{Shape: ShapeRamp, Material: MaterialSoil, Visible: true}
	assert.Equal(t, SymbolDiggableSoft, Classify(soilRamp, false), "Почвенный пандус — мягкий копаемый")

	stoneFloor := &Tile{Shape: ShapeFloor, Material: MaterialStone, Visible: true}
	assert.Equal(t, SymbolDiggableHard, Classify(stoneFloor, false), "Каменный пол — твёрдый копаемый")

	pebbles := &Tile{Shape: ShapePebbles, Material: MaterialStone, Visible: true}
	assert.Equal(t, SymbolDiggableHard, Classify(pebbles, false), "Галька сворачивается в твёрдый копаемый")

	boulder := &Tile{Shape: ShapeBoulder, Material: MaterialStone, Visible: true}
	assert.Equal(t, SymbolBoulder, Classify(boulder, false), "Валун должен быть 'B'")
}

func TestClassify_GrassAndPlants(t *testing.T) {
	for _, m := range []Material{MaterialGrassLight, MaterialGrassDark, MaterialGrassDry, MaterialGrassDead} {
		g := &Tile{Shape: ShapeFloor, Material: m, Visible: true}
		assert.Equal(t, SymbolGrass, Classify(g, false), "Травяной вариант %s должен быть ','", m)
	}

	p := &Tile{Shape: ShapeFloor, Material: MaterialPlant, Visible: true}
	assert.Equal(t, SymbolPlant, Classify(p, false), "Растение должно быть 'p'")
}

func TestClassify_EmptyFallback(t *testing.T) {
	open := &Tile{Shape: ShapeEmpty, Visible: true}
	assert.Equal(t, SymbolEmpty, Classify(open, false), "Открытое пространство должно быть '0'")
}

func TestClassify_TotalOverAlphabet(t *testing.T) {
	// Классификация тотальна: любой тайл даёт символ из закрытого алфавита
	alphabet := map[Symbol]bool{}
	for _, s := range Alphabet() {
		alphabet[s] = true
	}

	for shape := ShapeEmpty; shape <= ShapePebbles; shape++ {
		for mat := MaterialNone; mat <= MaterialPool; mat++ {
			for _, liquid := range []bool{false, true} {
				for _, visible := range []bool{false, true} {
					for _, spoiler := range []bool{false, true} {
						tl := &Tile{Shape: shape, Material: mat, Liquid: liquid, Flow: 3, Visible: visible}
						sym := Classify(tl, spoiler)
						assert.True(t, alphabet[sym],
							"Символ %q вне алфавита (shape=%s, mat=%s)", sym, shape, mat)
					}
				}
			}
		}
	}
}

func TestIsGround(t *testing.T) {
	// Копаемые стены дают грунт
	assert.True(t, IsGround(&Tile{Shape: ShapeWall, Material: MaterialStone}), "Каменная стена — грунт")
	assert.True(t, IsGround(&Tile{Shape: ShapeWall, Material: MaterialSoil}), "Почвенная стена — грунт")

	// Видимость не участвует в определении грунта
	assert.True(t, IsGround(&Tile{Shape: ShapeWall, Material: MaterialStone, Visible: false}),
		"Невидимая стена всё равно грунт")

	// Не стены и деревья грунта не дают
	assert.False(t, IsGround(nil), "Отсутствующий тайл — не грунт")
	assert.False(t, IsGround(&Tile{Shape: ShapeFloor, Material: MaterialStone}), "Пол — не грунт")
	assert.False(t, IsGround(&Tile{Shape: ShapeWall, Material: MaterialTree}), "Дерево — не грунт")

	// Стена, перекрытая магмой, по цепочке уходит в магму и грунтом не считается
	flooded := &Tile{Shape: ShapeWall, Material: MaterialStone, Liquid: true, Flow: 7}
	assert.False(t, IsGround(flooded), "Затопленная магмой стена — не грунт")
}
