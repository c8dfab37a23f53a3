// Package semantic implements the chunked embedding index: one vector per
// chunk, searched by cosine similarity and aggregated to a per-document
// best-chunk score.
package semantic

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/chunk"
	"github.com/hyperjump/eiga/internal/embedding"
	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/models"
	"github.com/hyperjump/eiga/internal/vector"
	"github.com/hyperjump/eiga/pkg/utils"
)

// SnippetLength is the number of description characters carried in a hit.
const SnippetLength = 100

// Hit is a single semantic search result at document granularity.
type Hit struct {
	DocumentID int
	Title      string
	Snippet    string
	Score      float64
}

// Index owns the embedding matrix and the chunk metadata list. The two
// stay index-aligned: embeddings[i] embeds chunks[i].
type Index struct {
	embedder    embedding.Embedder
	chunker     *chunk.Chunker
	logger      *zap.Logger
	embeddings  [][]float32
	chunks      []models.Chunk
	docs        map[int]models.Document
	fingerprint uint64
}

// NewIndex creates an empty semantic index.
func NewIndex(embedder embedding.Embedder, chunker *chunk.Chunker, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{embedder: embedder, chunker: chunker, logger: logger}
}

// Build chunks every document in catalog order, embeds the full chunk text
// list in one batched provider call, and records the corpus fingerprint.
// A provider failure here is fatal: without corpus embeddings there is no
// semantic channel.
func (s *Index) Build(ctx context.Context, docs []models.Document) error {
	var chunks []models.Chunk
	for _, doc := range docs {
		chunks = append(chunks, s.chunker.Chunk(doc)...)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}

	s.chunks = chunks
	s.embeddings = embeddings
	s.docs = models.DocMap(docs)
	s.fingerprint = cache.Fingerprint(docs)
	s.logger.Info("semantic index built",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)))
	return nil
}

// Search embeds the query, scores every chunk by cosine similarity, keeps
// the maximum per owning document, and returns the top limit documents
// ordered by score descending, document id ascending on ties.
func (s *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, errs.InvalidArgument("limit must be >= 1, got %d", limit)
	}
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	best := make(map[int]float64)
	for i, emb := range s.embeddings {
		score := vector.Cosine(queryVec, emb)
		docID := s.chunks[i].DocumentID
		if cur, ok := best[docID]; !ok || score > cur {
			best[docID] = score
		}
	}

	hits := make([]Hit, 0, len(best))
	for docID, score := range best {
		doc := s.docs[docID]
		hits = append(hits, Hit{
			DocumentID: docID,
			Title:      doc.Title,
			Snippet:    utils.Snippet(doc.Description, SnippetLength),
			Score:      score,
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Len returns the number of indexed chunks.
func (s *Index) Len() int { return len(s.chunks) }

// Chunks returns the chunk metadata list. Callers must not mutate it.
func (s *Index) Chunks() []models.Chunk { return s.chunks }

// Embeddings returns the embedding matrix. Callers must not mutate it.
func (s *Index) Embeddings() [][]float32 { return s.embeddings }

// Fingerprint returns the corpus fingerprint recorded at build time.
func (s *Index) Fingerprint() uint64 { return s.fingerprint }
