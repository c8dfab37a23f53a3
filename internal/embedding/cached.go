package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached wraps an Embedder with an LRU cache keyed by text. Query
// embeddings repeat often during evaluation runs; corpus chunks mostly
// don't, so EmbedBatch only fills misses.
type Cached struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*Cached)(nil)

// NewCached wraps inner with an LRU cache of the given capacity.
func NewCached(inner Embedder, capacity int) (*Cached, error) {
	if capacity <= 0 {
		capacity = 1024
	}
	c, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: c}, nil
}

// Embed returns the cached vector when present.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		return vec, nil
	}
	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vec)
	return vec, nil
}

// EmbedBatch embeds only the texts missing from the cache, preserving the
// input order in the result.
func (c *Cached) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var (
		missing    []string
		missingIdx []int
	)
	for i, t := range texts {
		if vec, ok := c.cache.Get(t); ok {
			out[i] = vec
			continue
		}
		missing = append(missing, t)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) > 0 {
		vecs, err := c.inner.EmbedBatch(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, vec := range vecs {
			out[missingIdx[j]] = vec
			c.cache.Add(missing[j], vec)
		}
	}
	return out, nil
}

// Dimensions returns the inner embedder's dimension.
func (c *Cached) Dimensions() int { return c.inner.Dimensions() }

// Close closes the inner embedder.
func (c *Cached) Close() error { return c.inner.Close() }
