// Package search provides the hybrid search engine: query enhancement,
// parallel lexical and semantic retrieval, fusion, and optional reranking.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/fusion"
	"github.com/hyperjump/eiga/internal/lexical"
	"github.com/hyperjump/eiga/internal/llm"
	"github.com/hyperjump/eiga/internal/semantic"
	"github.com/hyperjump/eiga/pkg/utils"
)

// Strategy selects the fusion strategy. The two are independent; a query
// uses exactly one.
type Strategy int

const (
	// StrategyWeighted is the min-max-normalized weighted sum.
	StrategyWeighted Strategy = iota
	// StrategyRRF is Reciprocal Rank Fusion.
	StrategyRRF
)

// ParseStrategy maps a CLI string to a strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weighted":
		return StrategyWeighted, nil
	case "rrf":
		return StrategyRRF, nil
	default:
		return StrategyWeighted, errs.InvalidArgument("unknown fusion strategy %q", s)
	}
}

// Options control a single search call.
type Options struct {
	Limit    int
	Strategy Strategy
	Alpha    float64 // weighted: lexical weight in [0,1]
	RRFK     int     // rrf: smoothing constant, 0 means default
	Enhance  llm.EnhanceMode
	Rerank   llm.RerankMode
}

// Result is a final ranked hit.
type Result struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	Rank     int     `json:"rank"`
	Score    float64 `json:"score"`
	BM25     float64 `json:"bm25_score,omitempty"`
	Semantic float64 `json:"semantic_score,omitempty"`
}

// Engine composes the two retrieval channels with fusion and the optional
// LLM collaborators. Both indices are read-only once built, so the channels
// run concurrently within a query.
type Engine struct {
	lexical         *lexical.Index
	semantic        *semantic.Index
	enhancer        *llm.Enhancer
	reranker        *llm.Reranker
	candidateFactor int
	logger          *zap.Logger
}

// NewEngine creates an engine. enhancer and reranker may be nil, disabling
// those steps. candidateFactor widens the per-channel candidate limit for
// weighted fusion so normalization has enough spread.
func NewEngine(lex *lexical.Index, sem *semantic.Index, enhancer *llm.Enhancer, reranker *llm.Reranker, candidateFactor int, logger *zap.Logger) *Engine {
	if candidateFactor <= 0 {
		candidateFactor = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		lexical:         lex,
		semantic:        sem,
		enhancer:        enhancer,
		reranker:        reranker,
		candidateFactor: candidateFactor,
		logger:          logger,
	}
}

// Search runs the full pipeline for query. Enhancement happens once, before
// both channels, so they see the identical query text; its failure falls
// back to the raw query. Channel failures (including embedding the query)
// are fatal to the call. Rerank failures fall back to the fused order.
func (e *Engine) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.InvalidArgument("query is empty")
	}
	if opts.Limit <= 0 {
		return nil, errs.InvalidArgument("limit must be >= 1, got %d", opts.Limit)
	}
	if opts.Alpha < 0 || opts.Alpha > 1 {
		return nil, errs.InvalidArgument("alpha must be in [0,1], got %g", opts.Alpha)
	}

	query = e.enhance(ctx, query, opts.Enhance)

	channelLimit := opts.Limit
	if opts.Strategy == StrategyWeighted {
		channelLimit = opts.Limit * e.candidateFactor
	}

	var (
		bm25Ranked []fusion.Ranked
		semRanked  []fusion.Ranked
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := e.lexical.Search(query, channelLimit)
		if err != nil {
			return err
		}
		bm25Ranked = make([]fusion.Ranked, len(hits))
		for i, h := range hits {
			bm25Ranked[i] = fusion.Ranked{ID: h.DocID, Score: h.Score}
		}
		return nil
	})
	g.Go(func() error {
		hits, err := e.semantic.Search(gctx, query, channelLimit)
		if err != nil {
			return err
		}
		semRanked = make([]fusion.Ranked, len(hits))
		for i, h := range hits {
			semRanked[i] = fusion.Ranked{ID: h.DocumentID, Score: h.Score}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var fused []fusion.Result
	switch opts.Strategy {
	case StrategyRRF:
		fused = fusion.RRF(bm25Ranked, semRanked, opts.RRFK, opts.Limit)
	default:
		fused = fusion.Weighted(bm25Ranked, semRanked, opts.Alpha, opts.Limit)
	}

	results := e.decorate(fused)
	results = e.rerank(ctx, query, results, opts.Rerank)
	return results, nil
}

// enhance rewrites the query when configured; provider failure degrades to
// the raw query.
func (e *Engine) enhance(ctx context.Context, query string, mode llm.EnhanceMode) string {
	if e.enhancer == nil || mode == llm.EnhanceNone {
		return query
	}
	enhanced, err := e.enhancer.Enhance(ctx, query, mode)
	if err != nil {
		e.logger.Warn("query enhancement failed, using raw query",
			zap.String("mode", mode.String()), zap.Error(err))
		return query
	}
	return enhanced
}

// decorate resolves fused ids back to documents.
func (e *Engine) decorate(fused []fusion.Result) []Result {
	results := make([]Result, 0, len(fused))
	for i, f := range fused {
		doc, ok := e.lexical.Document(f.ID)
		if !ok {
			continue
		}
		results = append(results, Result{
			ID:       f.ID,
			Title:    doc.Title,
			Snippet:  utils.Snippet(doc.Description, semantic.SnippetLength),
			Rank:     i + 1,
			Score:    f.Score,
			BM25:     f.BM25,
			Semantic: f.Semantic,
		})
	}
	return results
}

// rerank reorders results when configured; any provider failure keeps the
// fused order, never a partial reordering.
func (e *Engine) rerank(ctx context.Context, query string, results []Result, mode llm.RerankMode) []Result {
	if e.reranker == nil || mode == llm.RerankNone || len(results) == 0 {
		return results
	}
	candidates := make([]llm.Candidate, len(results))
	byID := make(map[int]Result, len(results))
	for i, r := range results {
		candidates[i] = llm.Candidate{ID: r.ID, Title: r.Title, Text: r.Snippet}
		byID[r.ID] = r
	}
	ordered, err := e.reranker.Rerank(ctx, query, candidates, mode)
	if err != nil {
		e.logger.Warn("rerank failed, keeping fused order",
			zap.String("mode", mode.String()), zap.Error(err))
		return results
	}
	reranked := make([]Result, 0, len(results))
	for i, id := range ordered {
		r := byID[id]
		r.Rank = i + 1
		reranked = append(reranked, r)
	}
	return reranked
}
