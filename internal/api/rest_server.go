// Package api поднимает REST сервер генерации ландшафта: выдаёт меши
// чанков в JSON и бинарном виде, отладочную UV-текстуру и сведения о
// сервере. Сборка чанка — чистая функция, поэтому обработчики не
// требуют блокировок.
package api

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/terrain-mesh/internal/config"
	"github.com/annel0/terrain-mesh/internal/middleware"
	"github.com/annel0/terrain-mesh/internal/noise"
	"github.com/annel0/terrain-mesh/internal/scene"
	"github.com/annel0/terrain-mesh/internal/terrain"
	"github.com/annel0/terrain-mesh/internal/vec"
)

// RestServer представляет REST API сервер генератора ландшафта
type RestServer struct {
	router  *gin.Engine
	port    string
	chunk   config.Chunk
	noise   config.Noise
	metrics *ServerMetrics
	zstdEnc *zstd.Encoder
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port  string       // порт для запуска сервера
	Chunk config.Chunk // геометрия чанка по умолчанию
	Noise config.Noise // параметры источника шума
}

// NewRestServer создает новый REST API сервер
func NewRestServer(cfg Config) (*RestServer, error) {
	if cfg.Port == "" {
		cfg.Port = ":8090"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("terrain_api"))

	promMw := middleware.NewPrometheusMiddleware("terrain_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	zstdEnc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("инициализация zstd: %w", err)
	}

	server := &RestServer{
		router:  router,
		port:    cfg.Port,
		chunk:   cfg.Chunk,
		noise:   cfg.Noise,
		metrics: NewServerMetrics(),
		zstdEnc: zstdEnc,
	}

	server.setupRoutes()

	return server, nil
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		api.GET("/chunk/:x/:y", rs.handleChunk)
		api.GET("/chunk/:x/:y/mesh.bin", rs.handleChunkBinary)
		api.GET("/debug-texture", rs.handleDebugTexture)
		api.GET("/server", rs.handleServerInfo)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Run запускает сервер (блокирующий вызов)
func (rs *RestServer) Run() error {
	return rs.router.Run(rs.port)
}

// Router возвращает gin-роутер (для тестов)
func (rs *RestServer) Router() *gin.Engine {
	return rs.router
}

// ChunkResponse представляет ответ с мешем чанка
type ChunkResponse struct {
	Origin        OriginResponse `json:"origin"`
	Band          string         `json:"band"`
	Placement     mgl32.Vec3     `json:"placement"`
	VertexCount   int            `json:"vertex_count"`
	TriangleCount int            `json:"triangle_count"`
	Mesh          MeshResponse   `json:"mesh"`
}

// OriginResponse представляет позицию чанка в сетке
type OriginResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MeshResponse представляет буферы меша
type MeshResponse struct {
	Positions []mgl32.Vec3 `json:"positions"`
	Normals   []mgl32.Vec3 `json:"normals"`
	UVs       []mgl32.Vec2 `json:"uvs"`
	Indices   []uint32     `json:"indices"`
}

// buildChunk разбирает параметры запроса и собирает бандл чанка
func (rs *RestServer) buildChunk(c *gin.Context) (*scene.ChunkBundle, error) {
	x, err := strconv.Atoi(c.Param("x"))
	if err != nil {
		return nil, fmt.Errorf("координата x: %w", err)
	}
	y, err := strconv.Atoi(c.Param("y"))
	if err != nil {
		return nil, fmt.Errorf("координата y: %w", err)
	}

	cols := rs.chunk.GetCols()
	rows := rs.chunk.GetRows()
	if v := c.Query("cols"); v != "" {
		if cols, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("параметр cols: %w", err)
		}
	}
	if v := c.Query("rows"); v != "" {
		if rows, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("параметр rows: %w", err)
		}
	}
	if cols < 1 || cols > 1<<12 || rows < 1 || rows > 1<<12 {
		return nil, fmt.Errorf("размер сетки %dx%d вне допустимого диапазона", cols, rows)
	}

	seed := rs.noise.Seed
	if v := c.Query("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("параметр seed: %w", err)
		}
	}

	quad := mgl32.Vec2{float32(rs.chunk.GetQuadX()), float32(rs.chunk.GetQuadY())}
	spec, err := terrain.NewChunkSpec(vec.Vec2{X: x, Y: y}, uint16(cols), uint16(rows), quad, seed)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	bundle := scene.AssembleChunk(spec, rs.newSampler(seed))
	rs.metrics.ObserveBuild(spec.Band().String(), time.Since(start), bundle.Mesh.VertexCount())

	return &bundle, nil
}

// newSampler создаёт источник шума по конфигурации
func (rs *RestServer) newSampler(seed int64) noise.Sampler {
	params := noise.DefaultPerlinParams()
	if rs.noise.Alpha > 0 {
		params.Alpha = rs.noise.Alpha
	}
	if rs.noise.Beta > 0 {
		params.Beta = rs.noise.Beta
	}
	if rs.noise.Octaves > 0 {
		params.Octaves = rs.noise.Octaves
	}
	if rs.noise.Amplitude > 0 {
		params.Amplitude = rs.noise.Amplitude
	}
	if rs.noise.Scale > 0 {
		params.Scale = rs.noise.Scale
	}

	if rs.noise.GetBackend() == "simplex" {
		return noise.NewSimplexWithParams(seed, params.Amplitude, params.Scale)
	}
	return noise.NewPerlinWithParams(seed, params)
}

// handleChunk возвращает меш чанка в JSON
func (rs *RestServer) handleChunk(c *gin.Context) {
	bundle, err := rs.buildChunk(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ChunkResponse{
		Origin:        OriginResponse{X: bundle.Spec.Origin.X, Y: bundle.Spec.Origin.Y},
		Band:          bundle.Spec.Band().String(),
		Placement:     bundle.Placement,
		VertexCount:   bundle.Mesh.VertexCount(),
		TriangleCount: bundle.Mesh.TriangleCount(),
		Mesh: MeshResponse{
			Positions: bundle.Mesh.Positions,
			Normals:   bundle.Mesh.Normals,
			UVs:       bundle.Mesh.UVs,
			Indices:   bundle.Mesh.Indices,
		},
	})
}

// handleChunkBinary возвращает zstd-сжатый бинарный меш для инструментов
func (rs *RestServer) handleChunkBinary(c *gin.Context) {
	bundle, err := rs.buildChunk(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := EncodeMesh(&bundle.Mesh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	compressed := rs.zstdEnc.EncodeAll(raw, nil)

	c.Header("X-Uncompressed-Size", strconv.Itoa(len(raw)))
	c.Header("Content-Encoding", "zstd")
	c.Data(http.StatusOK, "application/octet-stream", compressed)
}

// handleDebugTexture возвращает PNG отладочной UV-текстуры
func (rs *RestServer) handleDebugTexture(c *gin.Context) {
	tex := terrain.UVDebugTexture()

	img := image.NewRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	copy(img.Pix, tex.Pixels)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleServerInfo возвращает сведения о процессе сервера
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	cpuPercent, err := rs.metrics.GetCPUUsage()
	if err != nil {
		cpuPercent = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"uptime":        rs.metrics.GetUptime(),
		"memory_mb":     rs.metrics.GetMemoryUsage(),
		"cpu_percent":   cpuPercent,
		"goroutines":    runtime.NumGoroutine(),
		"noise_backend": rs.noise.GetBackend(),
	})
}

// handleHealth возвращает статус сервиса
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
}
