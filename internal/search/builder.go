package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/analysis"
	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/chunk"
	"github.com/hyperjump/eiga/internal/embedding"
	"github.com/hyperjump/eiga/internal/lexical"
	"github.com/hyperjump/eiga/internal/models"
	"github.com/hyperjump/eiga/internal/semantic"
)

// LoadOrBuildIndices restores both index bundles from the cache when they
// are consistent with the current corpus, and otherwise rebuilds them from
// scratch. The two bundles are always accepted or rebuilt together, and a
// rebuild persists them in a single transaction, so they never drift apart.
func LoadOrBuildIndices(
	ctx context.Context,
	store *cache.Store,
	docs []models.Document,
	analyzer *analysis.Analyzer,
	embedder embedding.Embedder,
	chunker *chunk.Chunker,
	logger *zap.Logger,
) (*lexical.Index, *semantic.Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	lex := lexical.NewIndex(analyzer)
	sem := semantic.NewIndex(embedder, chunker, logger)

	fp := cache.Fingerprint(docs)
	if store.Has(cache.BucketLexical) && store.Has(cache.BucketSemantic) {
		lexErr := lex.Load(store)
		semErr := sem.Load(store, docs)
		if lexErr == nil && semErr == nil && lex.Fingerprint() == fp {
			logger.Info("indices loaded from cache",
				zap.Int("documents", lex.N()),
				zap.Int("chunks", sem.Len()))
			return lex, sem, nil
		}
		logger.Warn("cached indices rejected, rebuilding",
			zap.NamedError("lexical", lexErr),
			zap.NamedError("semantic", semErr),
			zap.Bool("fingerprint_match", lex.Fingerprint() == fp))
		lex = lexical.NewIndex(analyzer)
		sem = semantic.NewIndex(embedder, chunker, logger)
	}

	lex.Build(docs)
	if err := sem.Build(ctx, docs); err != nil {
		return nil, nil, err
	}
	if err := store.PutPair(cache.BucketLexical, lex.Snapshot(), cache.BucketSemantic, sem.Snapshot()); err != nil {
		return nil, nil, err
	}
	logger.Info("indices built",
		zap.Int("documents", lex.N()),
		zap.Int("chunks", sem.Len()))
	return lex, sem, nil
}
