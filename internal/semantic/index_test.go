package semantic

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/eiga/internal/chunk"
	"github.com/hyperjump/eiga/internal/embedding"
	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/models"
)

var testDocs = []models.Document{
	{ID: 1, Title: "The Bear", Description: "A bear survives the wild. It forages for food. Winter comes early."},
	{ID: 2, Title: "Paddington", Description: "A bear moves to London. He loves marmalade."},
	{ID: 3, Title: "Chef", Description: "A cooking competition heats up."},
}

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex(embedding.NewMockEmbedder(32), chunk.NewChunker(2, 1), nil)
	if err := idx.Build(context.Background(), testDocs); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestBuildAlignment(t *testing.T) {
	idx := buildTestIndex(t)

	if len(idx.Embeddings()) != len(idx.Chunks()) {
		t.Fatalf("misaligned: %d embeddings, %d chunks", len(idx.Embeddings()), len(idx.Chunks()))
	}
	if idx.Len() == 0 {
		t.Fatal("no chunks built")
	}
	docIDs := map[int]bool{1: true, 2: true, 3: true}
	for _, c := range idx.Chunks() {
		if !docIDs[c.DocumentID] {
			t.Errorf("chunk %s references unknown document %d", c.ID, c.DocumentID)
		}
	}
}

func TestBuildEmptyDescriptionProducesNoChunks(t *testing.T) {
	idx := NewIndex(embedding.NewMockEmbedder(16), chunk.NewChunker(4, 1), nil)
	docs := []models.Document{
		{ID: 1, Title: "Silent", Description: ""},
		{ID: 2, Title: "Loud", Description: "One sentence."},
	}
	if err := idx.Build(context.Background(), docs); err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, c := range idx.Chunks() {
		if c.DocumentID == 1 {
			t.Error("document with empty description should contribute no chunks")
		}
	}
}

func TestSearchMaxPoolsPerDocument(t *testing.T) {
	idx := buildTestIndex(t)

	hits, err := idx.Search(context.Background(), "a bear in the wild", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// One hit per document, never per chunk.
	seen := make(map[int]bool, len(hits))
	for _, h := range hits {
		if seen[h.DocumentID] {
			t.Errorf("document %d appears twice", h.DocumentID)
		}
		seen[h.DocumentID] = true
	}
	for i := 1; i < len(hits); i++ {
		if hits[i-1].Score < hits[i].Score {
			t.Error("hits not sorted by score descending")
		}
	}
}

func TestSearchSnippet(t *testing.T) {
	idx := buildTestIndex(t)

	hits, err := idx.Search(context.Background(), "marmalade", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, h := range hits {
		if len(h.Snippet) > SnippetLength {
			t.Errorf("snippet longer than %d: %q", SnippetLength, h.Snippet)
		}
		if h.Title == "" {
			t.Errorf("hit for document %d has no title", h.DocumentID)
		}
	}
}

func TestSearchInvalidLimit(t *testing.T) {
	idx := buildTestIndex(t)
	if _, err := idx.Search(context.Background(), "bear", 0); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("limit 0: got %v, want ErrInvalidArgument", err)
	}
}

func TestSearchDeterministic(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := context.Background()

	first, err := idx.Search(ctx, "bear", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := idx.Search(ctx, "bear", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs between identical searches", i)
		}
	}
}

// failingEmbedder simulates a provider outage.
type failingEmbedder struct{ embedding.Embedder }

func (f failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errs.ProviderFailure("embedding provider down")
}

func TestBuildProviderFailureIsFatal(t *testing.T) {
	idx := NewIndex(failingEmbedder{embedding.NewMockEmbedder(8)}, chunk.NewChunker(2, 1), nil)
	err := idx.Build(context.Background(), testDocs)
	if !errors.Is(err, errs.ErrProviderFailure) {
		t.Errorf("got %v, want ErrProviderFailure", err)
	}
}
