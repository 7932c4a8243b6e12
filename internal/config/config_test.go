package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := []byte(`
server:
  rest_port: 9999
chunk:
  cols: 32
  rows: 16
  quad_x: 1.5
noise:
  backend: simplex
  seed: 77
`)
	require.NoError(t, os.WriteFile(path, yml, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9999, cfg.Server.GetRESTPort())
	assert.Equal(t, 32, cfg.Chunk.GetCols())
	assert.Equal(t, 16, cfg.Chunk.GetRows())
	assert.Equal(t, 1.5, cfg.Chunk.GetQuadX())
	assert.Equal(t, 2.0, cfg.Chunk.GetQuadY()) // не задан — дефолт
	assert.Equal(t, "simplex", cfg.Noise.GetBackend())
	assert.Equal(t, int64(77), cfg.Noise.Seed)
}

func TestLoadMissingPathUsesDefaults(t *testing.T) {
	t.Setenv("TERRAIN_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestPortEnvFallback(t *testing.T) {
	t.Setenv("TERRAIN_REST_PORT", "7070")

	var s Server
	assert.Equal(t, 7070, s.GetRESTPort())

	// Значение из конфига имеет приоритет над env
	s.RESTPort = 8085
	assert.Equal(t, 8085, s.GetRESTPort())
}

func TestDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, 50, cfg.Chunk.GetCols())
	assert.Equal(t, 50, cfg.Chunk.GetRows())
	assert.Equal(t, 2.0, cfg.Chunk.GetQuadX())
	assert.Equal(t, "perlin", cfg.Noise.GetBackend())
}
