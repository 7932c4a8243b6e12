package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh содержит треугольную сетку одного чанка ландшафта.
// Позиции, нормали и UV выровнены по индексу: i-я позиция соответствует
// i-й нормали и i-й UV-координате. Indices группируются по три, каждая
// тройка задаёт треугольник ссылками на вершины.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// VertexCount возвращает количество вершин меша
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount возвращает количество треугольников меша
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
