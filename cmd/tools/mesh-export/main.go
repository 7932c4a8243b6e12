// mesh-export собирает один чанк ландшафта и сохраняет его геометрию
// в Wavefront OBJ вместе с отладочной UV-текстурой в PNG. Инструмент
// для визуальной проверки генератора во внешнем просмотрщике.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/terrain-mesh/internal/noise"
	"github.com/annel0/terrain-mesh/internal/scene"
	"github.com/annel0/terrain-mesh/internal/terrain"
	"github.com/annel0/terrain-mesh/internal/vec"
)

func main() {
	var (
		originX = flag.Int("x", 0, "X координата чанка в сетке")
		originY = flag.Int("y", 0, "Y координата чанка в сетке")
		cols    = flag.Int("cols", 50, "число квадов по x")
		rows    = flag.Int("rows", 50, "число квадов по z")
		quad    = flag.Float64("quad", 2.0, "размер квада в мировых единицах")
		seed    = flag.Int64("seed", 0, "сид источника шума")
		backend = flag.String("backend", "perlin", "источник шума: perlin, simplex")
		outDir  = flag.String("out", ".", "каталог для выходных файлов")
	)
	flag.Parse()

	spec, err := terrain.NewChunkSpec(
		vec.Vec2{X: *originX, Y: *originY},
		uint16(*cols), uint16(*rows),
		mgl32.Vec2{float32(*quad), float32(*quad)},
		*seed,
	)
	if err != nil {
		log.Fatalf("Некорректные параметры чанка: %v", err)
	}

	var sampler noise.Sampler
	switch *backend {
	case "perlin":
		sampler = noise.NewPerlin(*seed)
	case "simplex":
		sampler = noise.NewSimplex(*seed)
	default:
		log.Fatalf("Неизвестный источник шума: %s", *backend)
	}

	bundle := scene.AssembleChunk(spec, sampler)

	objPath := filepath.Join(*outDir, fmt.Sprintf("chunk_%d_%d.obj", *originX, *originY))
	if err := writeOBJ(objPath, &bundle); err != nil {
		log.Fatalf("Запись OBJ: %v", err)
	}

	pngPath := filepath.Join(*outDir, "uv_debug.png")
	if err := writePNG(pngPath, bundle.Material.BaseColorTexture); err != nil {
		log.Fatalf("Запись PNG: %v", err)
	}

	fmt.Printf("%s: %d вершин, %d треугольников, политика %s\n",
		bundle.Name, bundle.Mesh.VertexCount(), bundle.Mesh.TriangleCount(), spec.Band())
	fmt.Printf("Смещение в мире: (%.1f, %.1f, %.1f)\n",
		bundle.Placement.X(), bundle.Placement.Y(), bundle.Placement.Z())
	fmt.Printf("Файлы: %s, %s\n", objPath, pngPath)
}

// writeOBJ пишет меш бандла в Wavefront OBJ. Позиции выводятся уже
// смещёнными в мировые координаты, чтобы соседние чанки сходились
// при загрузке в одну сцену.
func writeOBJ(path string, bundle *scene.ChunkBundle) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	fmt.Fprintf(w, "o %s\n", bundle.Name)

	for _, p := range bundle.Mesh.Positions {
		world := p.Add(bundle.Placement)
		fmt.Fprintf(w, "v %g %g %g\n", world.X(), world.Y(), world.Z())
	}
	for _, uv := range bundle.Mesh.UVs {
		fmt.Fprintf(w, "vt %g %g\n", uv.X(), uv.Y())
	}
	for _, n := range bundle.Mesh.Normals {
		fmt.Fprintf(w, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
	}

	// Индексы OBJ начинаются с 1; позиция, UV и нормаль выровнены
	indices := bundle.Mesh.Indices
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i]+1, indices[i+1]+1, indices[i+2]+1
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return nil
}

// writePNG сохраняет отладочную текстуру в PNG
func writePNG(path string, tex terrain.DebugTexture) error {
	img := image.NewRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	copy(img.Pix, tex.Pixels)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
