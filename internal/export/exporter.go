package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
)

// ExportLayer классифицирует все тайлы слоя z и собирает Record.
// Обход построчный: y внешний, x внутренний. Классификация
// выполняется с текущим спойлер-флагом — он может отличаться от
// режима, использованного при отборе слоёв.
func ExportLayer(src mapgrid.TileSource, z int, spoiler bool) *Record {
	dims := src.Dimensions()
	rows := make([]string, 0, dims.Y)

	row := make([]byte, dims.X)
	for y := 0; y < dims.Y; y++ {
		for x := 0; x < dims.X; x++ {
			t := src.TileAt(vec.Vec3{X: x, Y: y, Z: z})
			row[x] = byte(tile.Classify(t, spoiler))
		}
		rows = append(rows, string(row))
	}

	return &Record{
		Elevation: mapgrid.Elevation(src, z),
		Rows:      rows,
	}
}

// WriteRecord записывает блок высоты в файл elevation-<знак><высота>.txt
// внутри dir, создавая директорию при необходимости.
// Ошибка записи возвращается вызывающему и обрывает весь батч;
// уже записанные файлы остаются как есть.
func WriteRecord(dir string, rec *Record) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(rec.Elevation))
	if err := os.WriteFile(path, []byte(rec.Text()), 0644); err != nil {
		return fmt.Errorf("ошибка записи высоты %d: %w", rec.Elevation, err)
	}

	return nil
}
