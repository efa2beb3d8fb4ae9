package export

import (
	"fmt"
	"strings"
)

// Record — экспортированный блок одного слоя: прямоугольник символов
// терреина, строка на каждую y-координату. Неизменяем после создания;
// единственный вход внешнего рендерера таблиц.
type Record struct {
	Elevation int      // Высота слоя относительно начала мира
	Rows      []string // Строки символов, по одной на y
}

// Text возвращает блок в строчно-ориентированном виде:
// строки разделены переводами строки, в конце завершающий перевод.
func (r *Record) Text() string {
	var sb strings.Builder
	for _, row := range r.Rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FileName возвращает имя файла для высоты.
// Высота кодируется знаковым четырёхзначным полем, чтобы файлы
// сортировались лексикографически в порядке высот:
// elevation-+0046.txt, elevation--0012.txt.
func FileName(elevation int) string {
	return fmt.Sprintf("elevation-%+05d.txt", elevation)
}
