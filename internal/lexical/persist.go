package lexical

import (
	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/models"
)

// Snapshot is the gob-encoded artifact bundle for the lexical index.
type Snapshot struct {
	Postings    map[string][]int
	TermFreqs   map[int]map[string]int
	DocLengths  map[int]int
	Docs        map[int]models.Document
	Fingerprint uint64
}

// Snapshot captures the index state for persistence.
func (idx *Index) Snapshot() *Snapshot {
	postings := make(map[string][]int, len(idx.postings))
	for term, set := range idx.postings {
		ids := make([]int, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		postings[term] = ids
	}
	return &Snapshot{
		Postings:    postings,
		TermFreqs:   idx.termFreqs,
		DocLengths:  idx.docLengths,
		Docs:        idx.docs,
		Fingerprint: idx.fingerprint,
	}
}

// Restore replaces the index state from a snapshot. N is recomputed as the
// cardinality of the restored document map.
func (idx *Index) Restore(snap *Snapshot) {
	postings := make(map[string]map[int]struct{}, len(snap.Postings))
	for term, ids := range snap.Postings {
		set := make(map[int]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		postings[term] = set
	}
	idx.postings = postings
	idx.termFreqs = snap.TermFreqs
	idx.docLengths = snap.DocLengths
	idx.docs = snap.Docs
	idx.n = len(snap.Docs)
	idx.fingerprint = snap.Fingerprint
}

// Fingerprint returns the corpus fingerprint recorded at build time.
func (idx *Index) Fingerprint() uint64 { return idx.fingerprint }

// Save persists the index bundle into the cache store.
func (idx *Index) Save(store *cache.Store) error {
	return store.Put(cache.BucketLexical, idx.Snapshot())
}

// Load restores the index bundle from the cache store. A missing or
// unreadable bundle surfaces as CorruptState.
func (idx *Index) Load(store *cache.Store) error {
	var snap Snapshot
	if err := store.Get(cache.BucketLexical, &snap); err != nil {
		return err
	}
	idx.Restore(&snap)
	return nil
}
