package semantic

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/chunk"
	"github.com/hyperjump/eiga/internal/embedding"
	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/models"
)

func openTestStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSemanticSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	embedder := embedding.NewMockEmbedder(16)
	chunker := chunk.NewChunker(2, 1)

	idx := NewIndex(embedder, chunker, nil)
	if err := idx.Build(ctx, testDocs); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := idx.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := NewIndex(embedder, chunker, nil)
	if err := restored.Load(store, testDocs); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.Len() != idx.Len() {
		t.Errorf("restored %d chunks, want %d", restored.Len(), idx.Len())
	}

	want, err := idx.Search(ctx, "bear in london", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got, err := restored.Search(ctx, "bear in london", 3)
	if err != nil {
		t.Fatalf("Search after load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("result counts differ: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadRejectsDifferentCorpus(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	embedder := embedding.NewMockEmbedder(16)
	chunker := chunk.NewChunker(2, 1)

	idx := NewIndex(embedder, chunker, nil)
	if err := idx.Build(ctx, testDocs); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := idx.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	changed := append([]models.Document{}, testDocs...)
	changed = append(changed, models.Document{ID: 99, Title: "New", Description: "A new arrival."})

	restored := NewIndex(embedder, chunker, nil)
	if err := restored.Load(store, changed); !errors.Is(err, errs.ErrCorruptState) {
		t.Errorf("Load with changed corpus: got %v, want ErrCorruptState", err)
	}
}

func TestLoadRejectsMisalignedBundle(t *testing.T) {
	store := openTestStore(t)

	snap := &Snapshot{
		Embeddings:  [][]float32{{1, 0}, {0, 1}},
		Chunks:      []models.Chunk{{ID: "1_abc", DocumentID: 1}},
		Fingerprint: cache.Fingerprint(testDocs),
	}
	if err := store.Put(cache.BucketSemantic, snap); err != nil {
		t.Fatalf("Put: %v", err)
	}

	idx := NewIndex(embedding.NewMockEmbedder(2), chunk.NewChunker(2, 1), nil)
	if err := idx.Load(store, testDocs); !errors.Is(err, errs.ErrCorruptState) {
		t.Errorf("misaligned bundle: got %v, want ErrCorruptState", err)
	}
}

func TestLoadOrBuildRebuildsWhenStale(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	embedder := embedding.NewMockEmbedder(16)
	chunker := chunk.NewChunker(2, 1)

	idx := NewIndex(embedder, chunker, nil)
	if err := idx.Build(ctx, testDocs[:2]); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := idx.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The full corpus no longer matches the saved bundle; LoadOrBuild must
	// rebuild and persist the fresh bundle.
	fresh := NewIndex(embedder, chunker, nil)
	if err := fresh.LoadOrBuild(ctx, store, testDocs); err != nil {
		t.Fatalf("LoadOrBuild: %v", err)
	}
	if fresh.Fingerprint() != cache.Fingerprint(testDocs) {
		t.Error("rebuilt index does not carry the current corpus fingerprint")
	}

	reloaded := NewIndex(embedder, chunker, nil)
	if err := reloaded.Load(store, testDocs); err != nil {
		t.Errorf("rebuilt bundle not persisted: %v", err)
	}
}
