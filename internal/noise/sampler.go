// Package noise предоставляет детерминированные источники высот для
// генерации ландшафта. Генератор меша работает с любым Sampler,
// включая тестовые заглушки.
package noise

// Sampler отображает глобальные 2D координаты в скалярную высоту.
// Реализации обязаны быть детерминированными и без побочных эффектов:
// один и тот же (x, z) всегда даёт одно и то же значение.
type Sampler interface {
	Sample(x, z float64) float64
}

// SampleFunc адаптирует обычную функцию к интерфейсу Sampler
type SampleFunc func(x, z float64) float64

// Sample реализует Sampler
func (f SampleFunc) Sample(x, z float64) float64 {
	return f(x, z)
}

// Constant возвращает Sampler с постоянной высотой (для тестов)
func Constant(height float64) Sampler {
	return SampleFunc(func(x, z float64) float64 {
		return height
	})
}
