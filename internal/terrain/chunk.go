// Package terrain генерирует геометрию ландшафта из непрерывного поля шума.
// Мир разбит на чанки — прямоугольные тайлы бесконечной сетки; каждый чанк
// независимо превращается в треугольный меш с метаданными размещения.
package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/terrain-mesh/internal/noise"
	"github.com/annel0/terrain-mesh/internal/vec"
)

// BandPolicy определяет политику высот чанка по его позиции Origin.Y
// в бесконечной сетке
type BandPolicy int

const (
	// BandFlat — чанк впереди опорного ряда: плоскость, шум игнорируется
	BandFlat BandPolicy = iota
	// BandBlend — опорный ряд: высота интерполируется от плоскости к
	// полному смещению, чтобы скрыть шов с соседним плоским чанком
	BandBlend
	// BandDisplaced — чанк позади опорного ряда: полное смещение шумом
	BandDisplaced
)

// String возвращает строковое представление политики
func (b BandPolicy) String() string {
	switch b {
	case BandFlat:
		return "flat"
	case BandBlend:
		return "blend"
	case BandDisplaced:
		return "displaced"
	default:
		return "unknown"
	}
}

// BandFor возвращает политику высот для чанка с указанной Y-координатой
func BandFor(originY int) BandPolicy {
	switch {
	case originY > 0:
		return BandFlat
	case originY == 0:
		return BandBlend
	default:
		return BandDisplaced
	}
}

// ChunkSpec описывает один чанк ландшафта. Значение неизменяемо:
// конструируется вызывающей стороной, один раз потребляется BuildMesh
// и дальше может храниться как метаданные.
type ChunkSpec struct {
	// QuadSize — размер одной ячейки сетки в мировых единицах по (x, z)
	QuadSize mgl32.Vec2
	// GridCols и GridRows — число квадов по осям; сетка вершин
	// на единицу больше по каждой оси
	GridCols uint16
	GridRows uint16
	// Origin — позиция чанка в бесконечной сетке (координаты чанков,
	// не мировые)
	Origin vec.Vec2
	// NoiseSeed передаётся источнику шума как есть
	NoiseSeed int64
}

// NewChunkSpec создаёт спецификацию чанка, проверяя предусловия:
// обе оси сетки не меньше 1, размер квада строго положителен.
// BuildMesh сам предусловия не перепроверяет.
func NewChunkSpec(origin vec.Vec2, cols, rows uint16, quadSize mgl32.Vec2, seed int64) (ChunkSpec, error) {
	if cols < 1 || rows < 1 {
		return ChunkSpec{}, fmt.Errorf("размер сетки чанка %dx%d: обе оси должны быть >= 1", cols, rows)
	}
	if quadSize.X() <= 0 || quadSize.Y() <= 0 {
		return ChunkSpec{}, fmt.Errorf("размер квада (%v,%v): обе компоненты должны быть положительными", quadSize.X(), quadSize.Y())
	}
	return ChunkSpec{
		QuadSize:  quadSize,
		GridCols:  cols,
		GridRows:  rows,
		Origin:    origin,
		NoiseSeed: seed,
	}, nil
}

// DefaultChunkSpec возвращает чанк 50x50 с квадом 2x2 в начале координат
func DefaultChunkSpec() ChunkSpec {
	return ChunkSpec{
		QuadSize:  mgl32.Vec2{2, 2},
		GridCols:  50,
		GridRows:  50,
		Origin:    vec.Vec2{X: 0, Y: 0},
		NoiseSeed: 0,
	}
}

// Band возвращает политику высот этого чанка
func (s ChunkSpec) Band() BandPolicy {
	return BandFor(s.Origin.Y)
}

// VertexCount возвращает число вершин будущего меша
func (s ChunkSpec) VertexCount() int {
	return (int(s.GridCols) + 1) * (int(s.GridRows) + 1)
}

// IndexCount возвращает число индексов будущего меша (6 на квад)
func (s ChunkSpec) IndexCount() int {
	return int(s.GridCols) * int(s.GridRows) * 6
}

// BuildMesh строит меш чанка по источнику шума. Чистая функция: один и
// тот же spec с одним и тем же сэмплером даёт побитово идентичный меш,
// поэтому независимые чанки можно собирать параллельно.
//
// Вершины обходятся по рядам z от 0 до rows включительно. Координата
// сэмплирования по z зеркалится (rows - z): нулевой ряд локальной сетки
// соответствует дальнему краю области шума. Высота поворачивается на 45°
// вокруг x и добавляется к наклонной базе, после чего применяется
// политика высот чанка: плоскость, полное смещение либо линейное
// смешивание на опорном ряду, устраняющее видимый шов между соседями.
//
// Нормали фиксированы вверх независимо от смещения; нормали по уклону —
// известное упрощение, менять его значит менять освещение. UV тайлятся
// по чанку без непрерывности между чанками.
func BuildMesh(spec ChunkSpec, sampler noise.Sampler) Mesh {
	cols := int(spec.GridCols)
	rows := int(spec.GridRows)

	mesh := Mesh{
		Positions: make([]mgl32.Vec3, 0, spec.VertexCount()),
		Normals:   make([]mgl32.Vec3, 0, spec.VertexCount()),
		UVs:       make([]mgl32.Vec2, 0, spec.VertexCount()),
		Indices:   make([]uint32, 0, spec.IndexCount()),
	}

	band := spec.Band()
	slope := mgl32.QuatRotate(float32(math.Pi/4), mgl32.Vec3{1, 0, 0})
	up := mgl32.Vec3{0, 1, 0}

	for z := 0; z <= rows; z++ {
		for x := 0; x <= cols; x++ {
			// Нормированный параметр колонки центрирует чанк по x
			tx := float32(x)/float32(cols) - 0.5
			xPosition := tx * float32(cols) * spec.QuadSize.X()
			zPosition := float32(z) * spec.QuadSize.Y()

			sampleX := float64(x + spec.Origin.X*cols)
			sampleZ := float64(rows - z + spec.Origin.Y*rows)
			height := float32(sampler.Sample(sampleX, sampleZ))

			// Высота шума в локальной "вверх"-оси наклонной плоскости
			slopedNoise := slope.Rotate(mgl32.Vec3{0, height, 0})

			unsloped := mgl32.Vec3{xPosition, 0, zPosition}
			slopedBase := mgl32.Vec3{xPosition, -zPosition, zPosition}
			target := slopedBase.Add(slopedNoise)

			var position mgl32.Vec3
			switch band {
			case BandFlat:
				position = unsloped
			case BandBlend:
				// ratio = 1 у ближнего края (z = 0) даёт плоскость,
				// ratio = 0 у дальнего (z = rows) — полное смещение
				ratio := float32(rows-z) / float32(rows)
				position = lerp(target, unsloped, ratio)
			default:
				position = target
			}

			mesh.Positions = append(mesh.Positions, position)
			mesh.Normals = append(mesh.Normals, up)
			mesh.UVs = append(mesh.UVs, mgl32.Vec2{
				tx,
				float32(z%(rows+1)) / float32(rows),
			})
		}

		// Индексы квадов ряда, два треугольника на квад.
		// Порядок обхода даёт CCW-обмотку для поверхности, смотрящей вверх.
		if z < rows {
			rowStride := uint32(cols) + 1
			for x := 0; x < cols; x++ {
				quadIndex := rowStride*uint32(z) + uint32(x)
				mesh.Indices = append(mesh.Indices,
					quadIndex+rowStride+1,
					quadIndex+1,
					quadIndex+rowStride,

					quadIndex,
					quadIndex+rowStride,
					quadIndex+1,
				)
			}
		}
	}

	return mesh
}

// WorldOffset возвращает мировое смещение чанка для размещения меша.
// Вниз по y смещаются только чанки на опорном ряду и позади него;
// мировая z растёт в сторону убывания Origin.Y.
func WorldOffset(spec ChunkSpec) mgl32.Vec3 {
	cols := float32(spec.GridCols)
	rows := float32(spec.GridRows)
	originY := float32(spec.Origin.Y)

	x := float32(spec.Origin.X) * cols * spec.QuadSize.X()
	y := min(originY, 0) * rows * spec.QuadSize.Y()
	z := -(originY * rows * spec.QuadSize.Y())
	return mgl32.Vec3{x, y, z}
}

// lerp линейно интерполирует между a и b
func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
