// Package embedding provides the embedding provider boundary: an interface,
// an Ollama-backed HTTP implementation, a deterministic mock for tests, and
// an LRU-cached wrapper.
package embedding

import "context"

// Embedder produces fixed-dimensionality vector embeddings for text.
// EmbedBatch is order-preserving: vector i corresponds to input i.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
