package api

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerMetrics содержит метрики сервера и генератора мешей
type ServerMetrics struct {
	StartTime time.Time

	buildDuration *prometheus.HistogramVec
	buildVertices prometheus.Histogram
	buildsTotal   *prometheus.CounterVec
}

var (
	metricsOnce     sync.Once
	metricsInstance *ServerMetrics
)

// NewServerMetrics создает экземпляр метрик и регистрирует коллекторы
// генератора в дефолтном регистре (однократно на процесс)
func NewServerMetrics() *ServerMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &ServerMetrics{
			StartTime: time.Now(),
			buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "terrain",
				Name:      "chunk_build_duration_seconds",
				Help:      "Длительность сборки меша чанка.",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			}, []string{"band"}),
			buildVertices: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "terrain",
				Name:      "chunk_build_vertices",
				Help:      "Число вершин в собранных мешах.",
				Buckets:   prometheus.ExponentialBuckets(4, 4, 8),
			}),
			buildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "terrain",
				Name:      "chunk_builds_total",
				Help:      "Общее число собранных чанков.",
			}, []string{"band"}),
		}
		prometheus.MustRegister(
			metricsInstance.buildDuration,
			metricsInstance.buildVertices,
			metricsInstance.buildsTotal,
		)
	})
	return metricsInstance
}

// ObserveBuild учитывает одну сборку меша
func (sm *ServerMetrics) ObserveBuild(band string, duration time.Duration, vertexCount int) {
	sm.buildDuration.WithLabelValues(band).Observe(duration.Seconds())
	sm.buildVertices.Observe(float64(vertexCount))
	sm.buildsTotal.WithLabelValues(band).Inc()
}

// GetUptime возвращает время работы сервера
func (sm *ServerMetrics) GetUptime() string {
	uptime := time.Since(sm.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}

// GetMemoryUsage возвращает использование памяти в MB
func (sm *ServerMetrics) GetMemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (sm *ServerMetrics) GetCPUUsage() (float64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	return proc.CPUPercent()
}
