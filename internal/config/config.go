// Package config provides configuration loading for the eiga CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
}

// CatalogConfig locates the document corpus and stopword list.
type CatalogConfig struct {
	Path          string `yaml:"path"`
	StopwordsPath string `yaml:"stopwords_path"` // empty: embedded default list
}

// CacheConfig locates the index artifact cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Host       string `yaml:"host"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// LLMConfig holds language-model provider settings. VisionModel is the
// multimodal model used for image query rewriting.
type LLMConfig struct {
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	VisionModel string `yaml:"vision_model"`
}

// SearchConfig holds retrieval and fusion settings.
type SearchConfig struct {
	DefaultLimit    int     `yaml:"default_limit"`
	Alpha           float64 `yaml:"alpha"`
	RRFK            int     `yaml:"rrf_k"`
	ChunkSize       int     `yaml:"chunk_size"`    // sentences per chunk
	ChunkOverlap    int     `yaml:"chunk_overlap"` // sentences shared between chunks
	CandidateFactor int     `yaml:"candidate_factor"`
}

// Load reads and parses the config file at path and applies defaults.
// Relative paths are resolved against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path, configDir)
	if cfg.Catalog.StopwordsPath != "" {
		cfg.Catalog.StopwordsPath = expandPath(cfg.Catalog.StopwordsPath, configDir)
	}
	cfg.Cache.Path = expandPath(cfg.Cache.Path, configDir)
	return &cfg, nil
}

// Default returns a config with all defaults applied, for running without
// a config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

func expandPath(path, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(configDir, path)
}
