// Package cmd implements the eiga CLI commands.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/analysis"
	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/chunk"
	"github.com/hyperjump/eiga/internal/config"
	"github.com/hyperjump/eiga/internal/embedding"
	"github.com/hyperjump/eiga/internal/lexical"
	"github.com/hyperjump/eiga/internal/llm"
	"github.com/hyperjump/eiga/internal/models"
	"github.com/hyperjump/eiga/internal/search"
	"github.com/hyperjump/eiga/internal/semantic"
	"github.com/hyperjump/eiga/pkg/utils"
)

// Persistent flags shared by every subcommand.
var (
	configPath string
	debugMode  bool
	mockEmbed  bool
)

// NewRootCmd creates the root command for the eiga CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eiga",
		Short: "Hybrid search over a local movie catalog",
		Long: `Eiga is a hybrid retrieval engine over a local movie catalog.

It combines BM25 keyword search with chunked semantic embedding search,
fuses the two channels (weighted or RRF), and can optionally enhance
queries and rerank results with a local language model via Ollama.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ./config.yaml if present, else built-in defaults)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&mockEmbed, "mock-embedder", false, "use the deterministic hash embedder instead of Ollama")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newEvaluateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves the active config: the --config flag if given, a
// config.yaml in the current directory for development, else defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return config.Load("config.yaml")
	}
	return config.Default(), nil
}

// components holds the initialized services shared by the subcommands.
type components struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *cache.Store
	docs     []models.Document
	lexical  *lexical.Index
	semantic *semantic.Index
	client   llm.Client
	vision   llm.VisionClient
	embedder embedding.Embedder
	engine   *search.Engine
}

func (c *components) Close() {
	if c.store != nil {
		_ = c.store.Close()
	}
	if c.embedder != nil {
		_ = c.embedder.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// initComponents loads config and catalog, restores or builds both indices,
// and wires the engine with its LLM collaborators.
func initComponents(ctx context.Context) (*components, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(cfg.Debug || debugMode)
	if err != nil {
		return nil, err
	}

	docs, err := models.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	stopwords := analysis.DefaultStopwords()
	if cfg.Catalog.StopwordsPath != "" {
		stopwords, err = analysis.LoadStopwords(cfg.Catalog.StopwordsPath)
		if err != nil {
			return nil, err
		}
	}
	analyzer := analysis.New(stopwords, analysis.Porter())

	var embedder embedding.Embedder
	if mockEmbed {
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = embedding.NewOllamaEmbedder(embedding.OllamaConfig{
			Host:       cfg.Embedding.Host,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	}
	cached, err := embedding.NewCached(embedder, cfg.Embedding.CacheSize)
	if err != nil {
		return nil, err
	}
	chunker := chunk.NewChunker(cfg.Search.ChunkSize, cfg.Search.ChunkOverlap)

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, err
	}
	lex, sem, err := search.LoadOrBuildIndices(ctx, store, docs, analyzer, cached, chunker, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	client := llm.NewOllamaClient(llm.OllamaConfig{Host: cfg.LLM.Host, Model: cfg.LLM.Model})
	vision := llm.NewOllamaClient(llm.OllamaConfig{Host: cfg.LLM.Host, Model: cfg.LLM.VisionModel})
	enhancer := llm.NewEnhancer(client, logger)
	reranker := llm.NewReranker(client, llm.NewPromptCrossEncoder(client), logger)
	engine := search.NewEngine(lex, sem, enhancer, reranker, cfg.Search.CandidateFactor, logger)

	return &components{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		docs:     docs,
		lexical:  lex,
		semantic: sem,
		client:   client,
		vision:   vision,
		embedder: cached,
		engine:   engine,
	}, nil
}
