package terrain

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/terrain-mesh/internal/noise"
	"github.com/annel0/terrain-mesh/internal/vec"
)

const epsilon = 1e-5

func almostEqual(a, b mgl32.Vec3) bool {
	return math.Abs(float64(a.X()-b.X())) < epsilon &&
		math.Abs(float64(a.Y()-b.Y())) < epsilon &&
		math.Abs(float64(a.Z()-b.Z())) < epsilon
}

func mustSpec(t *testing.T, origin vec.Vec2, cols, rows uint16) ChunkSpec {
	t.Helper()
	spec, err := NewChunkSpec(origin, cols, rows, mgl32.Vec2{2, 2}, 0)
	if err != nil {
		t.Fatalf("Не удалось создать ChunkSpec: %v", err)
	}
	return spec
}

func TestMeshCardinality(t *testing.T) {
	// Число вершин (c+1)*(r+1) и индексов 6*c*r для разных размеров сетки
	sizes := [][2]uint16{{1, 1}, {2, 3}, {10, 10}, {50, 50}, {7, 1}}
	for _, size := range sizes {
		spec := mustSpec(t, vec.Vec2{X: 0, Y: -1}, size[0], size[1])
		mesh := BuildMesh(spec, noise.Constant(1))

		wantVerts := (int(size[0]) + 1) * (int(size[1]) + 1)
		wantIndices := int(size[0]) * int(size[1]) * 6

		if len(mesh.Positions) != wantVerts {
			t.Errorf("Сетка %dx%d: ожидалось %d позиций, получено %d", size[0], size[1], wantVerts, len(mesh.Positions))
		}
		if len(mesh.Normals) != wantVerts {
			t.Errorf("Сетка %dx%d: ожидалось %d нормалей, получено %d", size[0], size[1], wantVerts, len(mesh.Normals))
		}
		if len(mesh.UVs) != wantVerts {
			t.Errorf("Сетка %dx%d: ожидалось %d UV, получено %d", size[0], size[1], wantVerts, len(mesh.UVs))
		}
		if len(mesh.Indices) != wantIndices {
			t.Errorf("Сетка %dx%d: ожидалось %d индексов, получено %d", size[0], size[1], wantIndices, len(mesh.Indices))
		}
	}
}

func TestMeshIndexBounds(t *testing.T) {
	spec := mustSpec(t, vec.Vec2{X: -2, Y: 1}, 13, 9)
	mesh := BuildMesh(spec, noise.Constant(0))

	limit := uint32(spec.VertexCount())
	for i, idx := range mesh.Indices {
		if idx >= limit {
			t.Fatalf("Индекс %d (позиция %d) выходит за предел %d", idx, i, limit)
		}
	}
}

func TestMeshWinding(t *testing.T) {
	// Для сетки 1x1 порядок индексов зафиксирован: правый треугольник
	// (3,1,2), затем левый (0,2,1)
	spec := mustSpec(t, vec.Vec2{X: 0, Y: 1}, 1, 1)
	mesh := BuildMesh(spec, noise.Constant(0))

	want := []uint32{3, 1, 2, 0, 2, 1}
	if !reflect.DeepEqual(mesh.Indices, want) {
		t.Errorf("Ожидались индексы %v, получено %v", want, mesh.Indices)
	}
}

func TestMeshDeterminism(t *testing.T) {
	spec := mustSpec(t, vec.Vec2{X: 3, Y: -2}, 16, 16)
	sampler := noise.NewPerlin(12345)

	a := BuildMesh(spec, sampler)
	b := BuildMesh(spec, sampler)

	if !reflect.DeepEqual(a, b) {
		t.Error("Повторная сборка с тем же spec и сэмплером дала другой меш")
	}
}

func TestFlatChunkIgnoresNoise(t *testing.T) {
	// Чанк впереди опорного ряда обязан быть плоским при любом шуме
	spec := mustSpec(t, vec.Vec2{X: 0, Y: 5}, 8, 8)
	mesh := BuildMesh(spec, noise.Constant(1e6))

	for i, p := range mesh.Positions {
		if p.Y() != 0 {
			t.Fatalf("Вершина %d имеет y=%v, ожидался строгий 0", i, p.Y())
		}
	}
}

func TestBlendBoundaryContinuity(t *testing.T) {
	const height = 4.0
	cols, rows := uint16(10), uint16(10)
	spec := mustSpec(t, vec.Vec2{X: 0, Y: 0}, cols, rows)
	mesh := BuildMesh(spec, noise.Constant(height))

	quad := spec.QuadSize
	sin45 := float32(math.Sqrt2 / 2)

	// Ряд z = 0: полностью плоский, совпадает с unsloped-формулой
	for x := 0; x <= int(cols); x++ {
		tx := float32(x)/float32(cols) - 0.5
		want := mgl32.Vec3{tx * float32(cols) * quad.X(), 0, 0}
		got := mesh.Positions[x]
		if !almostEqual(got, want) {
			t.Errorf("Ряд z=0, вершина %d: ожидалось %v, получено %v", x, want, got)
		}
	}

	// Ряд z = rows: полное смещение, наклонная база плюс повёрнутая высота
	rowStart := int(rows) * (int(cols) + 1)
	for x := 0; x <= int(cols); x++ {
		tx := float32(x)/float32(cols) - 0.5
		xPos := tx * float32(cols) * quad.X()
		zPos := float32(rows) * quad.Y()
		want := mgl32.Vec3{
			xPos,
			-zPos + float32(height)*sin45,
			zPos + float32(height)*sin45,
		}
		got := mesh.Positions[rowStart+x]
		if !almostEqual(got, want) {
			t.Errorf("Ряд z=rows, вершина %d: ожидалось %v, получено %v", x, want, got)
		}
	}
}

func TestDisplacedChunkUsesFullNoise(t *testing.T) {
	const height = 2.0
	spec := mustSpec(t, vec.Vec2{X: 0, Y: -1}, 4, 4)
	mesh := BuildMesh(spec, noise.Constant(height))

	sin45 := float32(math.Sqrt2 / 2)

	// Каждая вершина чанка позади опорного ряда смещена без смешивания
	for z := 0; z <= 4; z++ {
		for x := 0; x <= 4; x++ {
			tx := float32(x)/4 - 0.5
			xPos := tx * 4 * spec.QuadSize.X()
			zPos := float32(z) * spec.QuadSize.Y()
			want := mgl32.Vec3{
				xPos,
				-zPos + float32(height)*sin45,
				zPos + float32(height)*sin45,
			}
			got := mesh.Positions[z*5+x]
			if !almostEqual(got, want) {
				t.Fatalf("Вершина (%d,%d): ожидалось %v, получено %v", x, z, want, got)
			}
		}
	}
}

func TestNormalsFixedUp(t *testing.T) {
	spec := mustSpec(t, vec.Vec2{X: 1, Y: -1}, 6, 6)
	mesh := BuildMesh(spec, noise.NewPerlin(9))

	up := mgl32.Vec3{0, 1, 0}
	for i, n := range mesh.Normals {
		if n != up {
			t.Fatalf("Нормаль %d равна %v, ожидался фиксированный вверх %v", i, n, up)
		}
	}
}

func TestSampleCoordinatesMirrored(t *testing.T) {
	// Нулевой локальный ряд должен сэмплировать дальний край области:
	// sample_z = rows - z + origin.Y*rows
	cols, rows := 4, 4
	var seen [][2]float64
	recorder := noise.SampleFunc(func(x, z float64) float64 {
		seen = append(seen, [2]float64{x, z})
		return 0
	})

	spec := mustSpec(t, vec.Vec2{X: 2, Y: -3}, uint16(cols), uint16(rows))
	BuildMesh(spec, recorder)

	// Первый вызов: вершина (0, 0)
	first := seen[0]
	if first[0] != float64(2*cols) || first[1] != float64(rows+(-3)*rows) {
		t.Errorf("Первый сэмпл (%v,%v), ожидался (%v,%v)", first[0], first[1], 2*cols, rows+(-3)*rows)
	}

	// Последний вызов: вершина (cols, rows)
	last := seen[len(seen)-1]
	if last[0] != float64(cols+2*cols) || last[1] != float64((-3)*rows) {
		t.Errorf("Последний сэмпл (%v,%v), ожидался (%v,%v)", last[0], last[1], cols+2*cols, (-3)*rows)
	}
}

func TestWorldOffset(t *testing.T) {
	spec := mustSpec(t, vec.Vec2{X: 2, Y: -3}, 10, 10)
	offset := WorldOffset(spec)

	want := mgl32.Vec3{40, -60, 60}
	if offset != want {
		t.Errorf("Ожидалось смещение %v, получено %v", want, offset)
	}
}

func TestWorldOffsetForwardChunkNotLowered(t *testing.T) {
	spec := mustSpec(t, vec.Vec2{X: 1, Y: 2}, 10, 10)
	offset := WorldOffset(spec)

	// Чанки впереди опорного ряда не опускаются по y
	want := mgl32.Vec3{20, 0, -40}
	if offset != want {
		t.Errorf("Ожидалось смещение %v, получено %v", want, offset)
	}
}

func TestBandPolicy(t *testing.T) {
	cases := []struct {
		originY int
		want    BandPolicy
	}{
		{5, BandFlat},
		{1, BandFlat},
		{0, BandBlend},
		{-1, BandDisplaced},
		{-100, BandDisplaced},
	}
	for _, c := range cases {
		if got := BandFor(c.originY); got != c.want {
			t.Errorf("BandFor(%d) = %v, ожидалось %v", c.originY, got, c.want)
		}
	}
}

func TestNewChunkSpecValidation(t *testing.T) {
	if _, err := NewChunkSpec(vec.Vec2{}, 0, 10, mgl32.Vec2{2, 2}, 0); err == nil {
		t.Error("Ожидалась ошибка для нулевой оси сетки")
	}
	if _, err := NewChunkSpec(vec.Vec2{}, 10, 0, mgl32.Vec2{2, 2}, 0); err == nil {
		t.Error("Ожидалась ошибка для нулевой оси сетки")
	}
	if _, err := NewChunkSpec(vec.Vec2{}, 10, 10, mgl32.Vec2{0, 2}, 0); err == nil {
		t.Error("Ожидалась ошибка для неположительного размера квада")
	}
	if _, err := NewChunkSpec(vec.Vec2{}, 10, 10, mgl32.Vec2{2, -1}, 0); err == nil {
		t.Error("Ожидалась ошибка для неположительного размера квада")
	}
}

func TestDefaultChunkSpec(t *testing.T) {
	spec := DefaultChunkSpec()
	if spec.GridCols != 50 || spec.GridRows != 50 {
		t.Errorf("Ожидалась сетка 50x50, получено %dx%d", spec.GridCols, spec.GridRows)
	}
	if spec.QuadSize != (mgl32.Vec2{2, 2}) {
		t.Errorf("Ожидался квад 2x2, получено %v", spec.QuadSize)
	}
	if spec.Band() != BandBlend {
		t.Errorf("Чанк в начале координат должен быть на опорном ряду, получено %v", spec.Band())
	}
}
