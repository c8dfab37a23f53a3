package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultCatalogPath, cfg.Catalog.Path)
	assert.Equal(t, DefaultCachePath, cfg.Cache.Path)
	assert.Equal(t, DefaultEmbeddingHost, cfg.Embedding.Host)
	assert.Equal(t, DefaultEmbeddingModel, cfg.Embedding.Model)
	assert.Equal(t, DefaultDimensions, cfg.Embedding.Dimensions)
	assert.Equal(t, DefaultLLMModel, cfg.LLM.Model)
	assert.Equal(t, DefaultVisionModel, cfg.LLM.VisionModel)
	assert.Equal(t, DefaultLimit, cfg.Search.DefaultLimit)
	assert.Equal(t, DefaultAlpha, cfg.Search.Alpha)
	assert.Equal(t, DefaultRRFK, cfg.Search.RRFK)
	assert.Equal(t, DefaultChunkSize, cfg.Search.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.Search.ChunkOverlap)
	assert.Equal(t, DefaultCandidateFactor, cfg.Search.CandidateFactor)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
debug: true
catalog:
  path: data/movies.json
cache:
  path: /var/cache/eiga/cache.db
search:
  default_limit: 20
  alpha: 0.7
  rrf_k: 30
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 0.7, cfg.Search.Alpha)
	assert.Equal(t, 30, cfg.Search.RRFK)

	// Unset fields still receive defaults.
	assert.Equal(t, DefaultEmbeddingModel, cfg.Embedding.Model)
	assert.Equal(t, DefaultChunkSize, cfg.Search.ChunkSize)

	// Relative catalog path resolves against the config directory; absolute
	// cache path stays untouched.
	assert.Equal(t, filepath.Join(dir, "data/movies.json"), cfg.Catalog.Path)
	assert.Equal(t, "/var/cache/eiga/cache.db", cfg.Cache.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [not a bool"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
