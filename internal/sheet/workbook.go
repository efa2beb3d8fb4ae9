package sheet

import (
	"fmt"

	"github.com/annel0/dig-planner/internal/export"
	"github.com/annel0/dig-planner/internal/logging"
	"github.com/xuri/excelize/v2"
)

// Options задаёт параметры рендеринга книги.
type Options struct {
	Zoom            float64 // Масштаб листов в процентах (0 — значение по умолчанию)
	EmbarkElevation *int    // Высота точки высадки; задаёт активный лист
}

// DefaultZoom — масштаб по умолчанию: карта целиком умещается на экране
const DefaultZoom = 25.0

// ColumnWidth подобрана так, чтобы ячейки были почти квадратными
const ColumnWidth = 2.875

// fillRule связывает символ терреина с цветом заливки.
// Значение — формула условного форматирования: строки в кавычках,
// пустые ячейки сравниваются с числом 0.
type fillRule struct {
	value string
	color string
}

// Палитра повторяет цвета миникарты: чёрный туман войны, коричневая
// почва, серый камень, синяя вода, оранжевая магма, зелёная трава.
var fillRules = []fillRule{
	{`0`, "FEFEFE"},     // Открытое пространство (ячейка пуста)
	{`"?"`, "010101"},   // Неразведано
	{`"s"`, "5C4033"},   // Почва
	{`"r"`, "5A5A5A"},   // Камень
	{`"T"`, "C4A484"},   // Дерево
	{`"B"`, "D3D3D3"},   // Валун
	{`"~"`, "0000FF"},   // Вода
	{`"!"`, "FF4500"},   // Магма
	{`","`, "228B22"},   // Трава
	{`"p"`, "90EE90"},   // Куст
}

// Render собирает книгу из блоков высот: по листу "Elev N" на блок,
// в порядке следования блоков (сверху вниз). Символ '0' не пишется —
// открытое пространство остаётся пустой ячейкой, чтобы книгу можно
// было размечать под план раскопок.
func Render(records []*export.Record, opts Options) (*excelize.File, error) {
	log := logging.GetExportLogger()

	if len(records) == 0 {
		return nil, fmt.Errorf("нет блоков высот для рендеринга")
	}
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}

	f := excelize.NewFile()

	// Стили условного форматирования создаются один раз на книгу
	formats := make([]excelize.ConditionalFormatOptions, 0, len(fillRules))
	for _, rule := range fillRules {
		styleID, err := f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{rule.color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания стиля %s: %w", rule.color, err)
		}
		formats = append(formats, excelize.ConditionalFormatOptions{
			Type:     "cell",
			Criteria: "equal to",
			Value:    rule.value,
			Format:   styleID,
		})
	}

	for _, rec := range records {
		if err := renderSheet(f, rec, formats, opts.Zoom); err != nil {
			return nil, err
		}
		log.Trace("Лист Elev %d готов", rec.Elevation)
	}

	// Лист точки высадки открывается первым
	if opts.EmbarkElevation != nil {
		name := sheetName(*opts.EmbarkElevation)
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("высота высадки %d не экспортирована", *opts.EmbarkElevation)
		}
		f.SetActiveSheet(idx)
	}

	// Пустой лист по умолчанию больше не нужен
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("ошибка удаления листа по умолчанию: %w", err)
	}

	return f, nil
}

// Write рендерит книгу и сохраняет её в path
func Write(path string, records []*export.Record, opts Options) error {
	log := logging.GetExportLogger()

	f, err := Render(records, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения книги %s: %w", path, err)
	}

	log.Info("📊 Книга сохранена: %s (%d листов)", path, len(records))
	return nil
}

// renderSheet создаёт и заполняет один лист высоты
func renderSheet(f *excelize.File, rec *export.Record, formats []excelize.ConditionalFormatOptions, zoom float64) error {
	name := sheetName(rec.Elevation)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", name, err)
	}

	cols := 0
	for y, row := range rec.Rows {
		if len(row) > cols {
			cols = len(row)
		}
		for x := 0; x < len(row); x++ {
			if row[x] == '0' {
				continue // Открытое пространство: ячейка остаётся пустой
			}
			cell, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(name, cell, string(row[x])); err != nil {
				return err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	rangeRef := fmt.Sprintf("A1:%s%d", lastCol, len(rec.Rows))
	if err := f.SetConditionalFormat(name, rangeRef, formats); err != nil {
		return fmt.Errorf("ошибка условного форматирования листа %s: %w", name, err)
	}

	if err := f.SetColWidth(name, "A", lastCol, ColumnWidth); err != nil {
		return err
	}

	if err := f.SetSheetView(name, -1, &excelize.ViewOptions{ZoomScale: &zoom}); err != nil {
		return err
	}

	return nil
}

// sheetName возвращает имя листа для высоты
func sheetName(elevation int) string {
	return fmt.Sprintf("Elev %d", elevation)
}
