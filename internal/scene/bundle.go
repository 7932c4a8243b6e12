// Package scene собирает из меша чанка плоский агрегат данных для
// внешнего рендер/физического движка. Пакет не зависит от типов движка:
// вызывающая сторона сама превращает агрегат в свои сущности.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/annel0/terrain-mesh/internal/noise"
	"github.com/annel0/terrain-mesh/internal/terrain"
)

// ColliderDensity — плотность статического коллайдера ландшафта
const ColliderDensity = 1e7

// CollisionLayerBodies — слой столкновений для твёрдых тел
const CollisionLayerBodies = "bodies"

// Material описывает материал чанка в виде простых данных
type Material struct {
	// BaseColorTexture — текстура базового цвета (отладочный UV-паттерн)
	BaseColorTexture terrain.DebugTexture
}

// Collider — метаданные для физического движка. Сам движок
// триангулирует меш в статический коллайдер; ядро геометрию
// столкновений не считает.
type Collider struct {
	Static  bool
	Density float64
	Layer   string
}

// ChunkBundle — всё, что нужно движку для показа одного чанка:
// меш, мировое смещение, материал и метаданные коллайдера
type ChunkBundle struct {
	ID        uuid.UUID
	Name      string
	Spec      terrain.ChunkSpec
	Mesh      terrain.Mesh
	Placement mgl32.Vec3
	Material  Material
	Collider  Collider
}

// AssembleChunk строит меш чанка и упаковывает его в бандл.
// ID уникален для каждого вызова; остальное детерминировано по spec
// и сэмплеру.
func AssembleChunk(spec terrain.ChunkSpec, sampler noise.Sampler) ChunkBundle {
	return ChunkBundle{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("Terrain Chunk %dx%d", spec.Origin.X, spec.Origin.Y),
		Spec:      spec,
		Mesh:      terrain.BuildMesh(spec, sampler),
		Placement: terrain.WorldOffset(spec),
		Material: Material{
			BaseColorTexture: terrain.UVDebugTexture(),
		},
		Collider: Collider{
			Static:  true,
			Density: ColliderDensity,
			Layer:   CollisionLayerBodies,
		},
	}
}
