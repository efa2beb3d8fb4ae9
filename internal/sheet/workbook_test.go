package sheet

import (
	"path/filepath"
	"testing"

	"github.com/annel0/dig-planner/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*export.Record {
	return []*export.Record{
		{Elevation: 46, Rows: []string{",,T", ",p0"}},
		{Elevation: 45, Rows: []string{"sss", "s~s"}},
		{Elevation: 44, Rows: []string{"rrr", "r?r"}},
	}
}

func TestRender_SheetPerElevation(t *testing.T) {
	f, err := Render(sampleRecords(), Options{})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Elev 46", "Elev 45", "Elev 44"}, f.GetSheetList(),
		"По листу на высоту, в порядке блоков, без листа по умолчанию")
}

func TestRender_CellValues(t *testing.T) {
	f, err := Render(sampleRecords(), Options{})
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Elev 46", "C1")
	require.NoError(t, err)
	assert.Equal(t, "T", v, "Символ пишется в ячейку (x+1, y+1)")

	v, err = f.GetCellValue("Elev 46", "C2")
	require.NoError(t, err)
	assert.Empty(t, v, "Открытое пространство '0' остаётся пустой ячейкой")

	v, err = f.GetCellValue("Elev 44", "B2")
	require.NoError(t, err)
	assert.Equal(t, "?", v, "Неразведанный тайл сохраняет символ")
}

func TestRender_EmbarkSetsActiveSheet(t *testing.T) {
	embark := 45
	f, err := Render(sampleRecords(), Options{EmbarkElevation: &embark})
	require.NoError(t, err)
	defer f.Close()

	active := f.GetSheetName(f.GetActiveSheetIndex())
	assert.Equal(t, "Elev 45", active, "Лист точки высадки должен быть активным")
}

func TestRender_EmbarkNotExported(t *testing.T) {
	embark := 7
	_, err := Render(sampleRecords(), Options{EmbarkElevation: &embark})
	assert.Error(t, err, "Высота высадки вне экспорта должна отклоняться")
}

func TestRender_NoRecords(t *testing.T) {
	_, err := Render(nil, Options{})
	assert.Error(t, err, "Пустой набор блоков должен отклоняться")
}

func TestWrite_SavesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fortress.xlsx")
	err := Write(path, sampleRecords(), Options{Zoom: 50})
	require.NoError(t, err)
	assert.FileExists(t, path, "Книга должна сохраняться на диск")
}

func TestRender_RaggedRows(t *testing.T) {
	// Строки разной длины не должны ломать диапазон форматирования
	recs := []*export.Record{{Elevation: 0, Rows: []string{"rr", "rrrr"}}}
	f, err := Render(recs, Options{})
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Elev 0", "D2")
	require.NoError(t, err)
	assert.Equal(t, "r", v)
}
