package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервиса
type Config struct {
	Server Server `yaml:"server"`
	Chunk  Chunk  `yaml:"chunk"`
	Noise  Noise  `yaml:"noise"`
}

// Server содержит сетевые настройки REST сервера
type Server struct {
	RESTPort         int  `yaml:"rest_port"`
	TelemetryEnabled bool `yaml:"telemetry_enabled"`
}

// Chunk задаёт геометрию чанка по умолчанию
type Chunk struct {
	Cols  int     `yaml:"cols"`
	Rows  int     `yaml:"rows"`
	QuadX float64 `yaml:"quad_x"`
	QuadY float64 `yaml:"quad_y"`
}

// Noise задаёт источник шума и его параметры
type Noise struct {
	Backend   string  `yaml:"backend"` // perlin | simplex
	Seed      int64   `yaml:"seed"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	Amplitude float64 `yaml:"amplitude"`
	Scale     float64 `yaml:"scale"`
}

// GetRESTPort возвращает REST порт с приоритетом: config -> env -> default
func (s *Server) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "TERRAIN_REST_PORT", 8090)
}

// GetCols возвращает число колонок сетки чанка
func (c *Chunk) GetCols() int {
	if c.Cols > 0 {
		return c.Cols
	}
	return 50
}

// GetRows возвращает число рядов сетки чанка
func (c *Chunk) GetRows() int {
	if c.Rows > 0 {
		return c.Rows
	}
	return 50
}

// GetQuadX возвращает размер квада по x
func (c *Chunk) GetQuadX() float64 {
	if c.QuadX > 0 {
		return c.QuadX
	}
	return 2.0
}

// GetQuadY возвращает размер квада по z
func (c *Chunk) GetQuadY() float64 {
	if c.QuadY > 0 {
		return c.QuadY
	}
	return 2.0
}

// GetBackend возвращает имя источника шума
func (n *Noise) GetBackend() string {
	if n.Backend != "" {
		return n.Backend
	}
	return "perlin"
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV TERRAIN_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TERRAIN_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
