package noise

import (
	"github.com/aquilax/go-perlin"
)

// PerlinParams задаёт параметры генератора шума Перлина
type PerlinParams struct {
	Alpha     float64 // Сглаживание шума
	Beta      float64 // Частота шума
	Octaves   int32   // Количество октав
	Amplitude float64 // Масштаб итоговой высоты
	Scale     float64 // Масштаб входных координат
}

// DefaultPerlinParams возвращает параметры по умолчанию
func DefaultPerlinParams() PerlinParams {
	return PerlinParams{
		Alpha:     2.0,
		Beta:      2.0,
		Octaves:   3,
		Amplitude: 8.0,
		Scale:     0.05, // Настройка сглаженности ландшафта
	}
}

// Perlin реализует Sampler на основе шума Перлина.
// Каждый экземпляр держит собственный генератор, поэтому независимые
// сборки чанков могут использовать его параллельно без координации.
type Perlin struct {
	gen    *perlin.Perlin
	params PerlinParams
}

// NewPerlin создаёт генератор шума Перлина с указанным сидом
func NewPerlin(seed int64) *Perlin {
	return NewPerlinWithParams(seed, DefaultPerlinParams())
}

// NewPerlinWithParams создаёт генератор с явными параметрами
func NewPerlinWithParams(seed int64, params PerlinParams) *Perlin {
	return &Perlin{
		gen:    perlin.NewPerlin(params.Alpha, params.Beta, params.Octaves, seed),
		params: params,
	}
}

// Sample возвращает высоту для глобальных координат (x, z).
// Сырое значение шума лежит в диапазоне [-1, 1] и умножается на Amplitude,
// поэтому смещение симметрично относительно нулевой плоскости.
func (p *Perlin) Sample(x, z float64) float64 {
	return p.gen.Noise2D(x*p.params.Scale, z*p.params.Scale) * p.params.Amplitude
}
