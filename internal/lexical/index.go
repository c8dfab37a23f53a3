// Package lexical implements the inverted index and BM25 scoring over the
// normalized term stream.
package lexical

import (
	"sort"

	"github.com/hyperjump/eiga/internal/analysis"
	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/models"
)

// BM25 constants used by Score and Search.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// ScoredDoc is a single lexical search hit.
type ScoredDoc struct {
	DocID int
	Score float64
}

// Index holds inverted postings, per-document term frequencies and document
// lengths. Build populates it once from the full corpus; afterwards it is
// read-only. Calling Build twice on a live instance accumulates and is not
// supported.
type Index struct {
	analyzer    *analysis.Analyzer
	postings    map[string]map[int]struct{}
	termFreqs   map[int]map[string]int
	docLengths  map[int]int
	docs        map[int]models.Document
	n           int
	fingerprint uint64
}

// NewIndex creates an empty index over the given analyzer.
func NewIndex(a *analysis.Analyzer) *Index {
	return &Index{
		analyzer:   a,
		postings:   make(map[string]map[int]struct{}),
		termFreqs:  make(map[int]map[string]int),
		docLengths: make(map[int]int),
		docs:       make(map[int]models.Document),
	}
}

// Build indexes every document's "title description" text and records the
// corpus fingerprint for staleness checks on load.
func (idx *Index) Build(docs []models.Document) {
	for _, doc := range docs {
		idx.addDocument(doc.ID, doc.Title+" "+doc.Description)
		idx.docs[doc.ID] = doc
		idx.n++
	}
	idx.fingerprint = cache.Fingerprint(docs)
}

func (idx *Index) addDocument(docID int, text string) {
	for _, term := range idx.analyzer.Tokenize(text) {
		set, ok := idx.postings[term]
		if !ok {
			set = make(map[int]struct{})
			idx.postings[term] = set
		}
		set[docID] = struct{}{}

		freqs, ok := idx.termFreqs[docID]
		if !ok {
			freqs = make(map[string]int)
			idx.termFreqs[docID] = freqs
		}
		freqs[term]++
		idx.docLengths[docID]++
	}
}

// N returns the number of indexed documents.
func (idx *Index) N() int { return idx.n }

// Document returns the stored document for id.
func (idx *Index) Document(id int) (models.Document, bool) {
	doc, ok := idx.docs[id]
	return doc, ok
}

// Documents returns the id -> document map. Callers must not mutate it.
func (idx *Index) Documents() map[int]models.Document { return idx.docs }

// TermFrequency returns the raw count of term in docID; 0 when absent.
// The term must normalize to exactly one token.
func (idx *Index) TermFrequency(docID int, term string) (int, error) {
	token, err := idx.analyzer.NormalizeTerm(term)
	if err != nil {
		return 0, err
	}
	return idx.termFreqs[docID][token], nil
}

// DocumentFrequency returns the number of documents containing term.
func (idx *Index) DocumentFrequency(term string) (int, error) {
	token, err := idx.analyzer.NormalizeTerm(term)
	if err != nil {
		return 0, err
	}
	return len(idx.postings[token]), nil
}

// Search normalizes query, accumulates BM25 contributions over every
// posting list the query terms hit, and returns the top limit documents.
// Ordering is score descending, document id ascending on ties.
func (idx *Index) Search(query string, limit int) ([]ScoredDoc, error) {
	tokens := idx.analyzer.Tokenize(query)
	if len(tokens) == 0 {
		return nil, errs.InvalidArgument("query %q normalizes to no terms", query)
	}
	if limit <= 0 {
		return nil, errs.InvalidArgument("limit must be >= 1, got %d", limit)
	}

	scores := make(map[int]float64)
	for _, token := range tokens {
		for docID := range idx.postings[token] {
			scores[docID] += idx.scoreTerm(docID, token, DefaultK1, DefaultB)
		}
	}

	results := make([]ScoredDoc, 0, len(scores))
	for docID, score := range scores {
		results = append(results, ScoredDoc{DocID: docID, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Terms returns all indexed terms sorted lexicographically.
func (idx *Index) Terms() []string {
	terms := make([]string, 0, len(idx.postings))
	for t := range idx.postings {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
