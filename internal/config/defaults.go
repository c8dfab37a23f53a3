package config

// Default values applied to any field left unset in the config file.
const (
	DefaultCatalogPath = "data/movies.json"
	DefaultCachePath   = ".eiga/cache.db"

	DefaultEmbeddingHost  = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultDimensions     = 768
	DefaultEmbedCacheSize = 1024

	DefaultLLMHost     = "http://localhost:11434"
	DefaultLLMModel    = "llama3.2"
	DefaultVisionModel = "llava"

	DefaultLimit           = 5
	DefaultAlpha           = 0.5
	DefaultRRFK            = 60
	DefaultChunkSize       = 4
	DefaultChunkOverlap    = 1
	DefaultCandidateFactor = 10
)

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultCatalogPath
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}
	if cfg.Embedding.Host == "" {
		cfg.Embedding.Host = DefaultEmbeddingHost
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = DefaultDimensions
	}
	if cfg.Embedding.CacheSize <= 0 {
		cfg.Embedding.CacheSize = DefaultEmbedCacheSize
	}
	if cfg.LLM.Host == "" {
		cfg.LLM.Host = DefaultLLMHost
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultLLMModel
	}
	if cfg.LLM.VisionModel == "" {
		cfg.LLM.VisionModel = DefaultVisionModel
	}
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = DefaultLimit
	}
	if cfg.Search.Alpha <= 0 {
		cfg.Search.Alpha = DefaultAlpha
	}
	if cfg.Search.RRFK <= 0 {
		cfg.Search.RRFK = DefaultRRFK
	}
	if cfg.Search.ChunkSize <= 0 {
		cfg.Search.ChunkSize = DefaultChunkSize
	}
	if cfg.Search.ChunkOverlap <= 0 {
		cfg.Search.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.Search.CandidateFactor <= 0 {
		cfg.Search.CandidateFactor = DefaultCandidateFactor
	}
}
