package semantic

import (
	"context"

	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/models"
)

// Snapshot is the gob-encoded artifact bundle: the embedding matrix and
// the chunk metadata list, which must stay index-aligned.
type Snapshot struct {
	Embeddings  [][]float32
	Chunks      []models.Chunk
	Fingerprint uint64
}

// Snapshot captures the index state for persistence.
func (s *Index) Snapshot() *Snapshot {
	return &Snapshot{
		Embeddings:  s.embeddings,
		Chunks:      s.chunks,
		Fingerprint: s.fingerprint,
	}
}

// Save persists the bundle into the cache store.
func (s *Index) Save(store *cache.Store) error {
	return store.Put(cache.BucketSemantic, s.Snapshot())
}

// Load restores the bundle from the cache store and re-links chunks to the
// given corpus. A missing bundle, a broken embedding/metadata alignment, or
// a fingerprint from a different corpus is CorruptState.
func (s *Index) Load(store *cache.Store, docs []models.Document) error {
	var snap Snapshot
	if err := store.Get(cache.BucketSemantic, &snap); err != nil {
		return err
	}
	if len(snap.Embeddings) != len(snap.Chunks) {
		return errs.CorruptState("semantic bundle misaligned: %d embeddings, %d chunks",
			len(snap.Embeddings), len(snap.Chunks))
	}
	if snap.Fingerprint != cache.Fingerprint(docs) {
		return errs.CorruptState("semantic bundle was built for a different corpus")
	}
	s.embeddings = snap.Embeddings
	s.chunks = snap.Chunks
	s.fingerprint = snap.Fingerprint
	s.docs = models.DocMap(docs)
	return nil
}

// LoadOrBuild restores the persisted bundle when it is consistent with the
// current corpus; otherwise it rebuilds from scratch and saves. Stale or
// misaligned bundles are not an error here, just a logged rebuild.
func (s *Index) LoadOrBuild(ctx context.Context, store *cache.Store, docs []models.Document) error {
	if err := s.Load(store, docs); err == nil {
		s.logger.Info("semantic index loaded from cache", zap.Int("chunks", len(s.chunks)))
		return nil
	} else if store.Has(cache.BucketSemantic) {
		s.logger.Warn("semantic cache rejected, rebuilding", zap.Error(err))
	}
	if err := s.Build(ctx, docs); err != nil {
		return err
	}
	return s.Save(store)
}
