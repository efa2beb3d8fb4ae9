package util

import (
	"github.com/aquilax/go-perlin"
)

// NoiseField — детерминированное поле шума Перлина.
// Каждое поле несёт свой сид и масштаб, поэтому рельеф и рудные
// жилы могут использовать независимые поля без пересечений.
type NoiseField struct {
	p     *perlin.Perlin
	scale float64
}

// NewNoiseField создаёт поле шума с указанным сидом и масштабом.
// Масштаб определяет "зернистость": меньше — более плавный рельеф.
func NewNoiseField(seed int64, scale float64) *NoiseField {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &NoiseField{
		p:     perlin.NewPerlin(alpha, beta, n, seed),
		scale: scale,
	}
}

// At возвращает значение шума в точке (x, y), нормированное в [0, 1]
func (nf *NoiseField) At(x, y int) float64 {
	noise := nf.p.Noise2D(float64(x)*nf.scale, float64(y)*nf.scale)
	return (noise + 1.0) / 2.0
}

// At3D возвращает значение трёхмерного шума в точке (x, y, z), в [0, 1]
func (nf *NoiseField) At3D(x, y, z int) float64 {
	noise := nf.p.Noise3D(float64(x)*nf.scale, float64(y)*nf.scale, float64(z)*nf.scale)
	return (noise + 1.0) / 2.0
}
