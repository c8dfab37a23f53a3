// Package fusion combines the lexical and semantic retrieval channels into
// a single ranking, via min-max-normalized weighted sum or Reciprocal Rank
// Fusion. The two strategies are independent and never combined.
package fusion

import "sort"

// Default constants. k=60 is the standard RRF smoothing parameter; larger
// values flatten the influence of top ranks.
const (
	DefaultRRFK  = 60
	DefaultAlpha = 0.5
)

// Ranked is a channel output: a document id with its raw channel score,
// ordered best-first.
type Ranked struct {
	ID    int
	Score float64
}

// Result is a fused ranking entry. BM25 and Semantic carry the normalized
// per-channel scores for the weighted strategy; BM25Rank and SemanticRank
// carry the 1-based channel positions for RRF (0 = absent from channel).
type Result struct {
	ID           int
	Score        float64
	BM25         float64
	Semantic     float64
	BM25Rank     int
	SemanticRank int
}

// Normalize maps scores into [0,1] via (x-min)/(max-min). When min equals
// max — including the all-equal single-element case — every value maps to
// 1.0. The empty list normalizes to the empty list.
func Normalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return []float64{}
	}
	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	out := make([]float64, len(scores))
	if min == max {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	for i, s := range scores {
		out[i] = (s - min) / (max - min)
	}
	return out
}

// Weighted fuses the two channels by min-max normalizing each score list
// and combining as alpha*bm25 + (1-alpha)*semantic. A document present in
// only one channel contributes a raw 0.0 to the other channel's score list
// before normalization. Ordering: combined score descending, document id
// ascending on ties.
func Weighted(bm25, semantic []Ranked, alpha float64, limit int) []Result {
	type raw struct{ bm25, semantic float64 }
	combined := make(map[int]*raw)
	for _, r := range bm25 {
		combined[r.ID] = &raw{bm25: r.Score}
	}
	for _, r := range semantic {
		if c, ok := combined[r.ID]; ok {
			c.semantic = r.Score
		} else {
			combined[r.ID] = &raw{semantic: r.Score}
		}
	}

	ids := make([]int, 0, len(combined))
	for id := range combined {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	bm25Scores := make([]float64, len(ids))
	semScores := make([]float64, len(ids))
	for i, id := range ids {
		bm25Scores[i] = combined[id].bm25
		semScores[i] = combined[id].semantic
	}
	bm25Norm := Normalize(bm25Scores)
	semNorm := Normalize(semScores)

	results := make([]Result, len(ids))
	for i, id := range ids {
		results[i] = Result{
			ID:       id,
			BM25:     bm25Norm[i],
			Semantic: semNorm[i],
			Score:    alpha*bm25Norm[i] + (1-alpha)*semNorm[i],
		}
	}
	sortResults(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// RRF fuses the two rank lists: each document sums 1/(k+rank) over the
// channels it appears in, rank being its 1-based position in that channel.
// A document absent from a channel contributes nothing for it.
func RRF(bm25, semantic []Ranked, k, limit int) []Result {
	if k <= 0 {
		k = DefaultRRFK
	}
	scores := make(map[int]*Result, len(bm25)+len(semantic))
	for i, r := range bm25 {
		res := getOrCreate(scores, r.ID)
		res.BM25Rank = i + 1
		res.Score += 1.0 / float64(k+i+1)
	}
	for i, r := range semantic {
		res := getOrCreate(scores, r.ID)
		res.SemanticRank = i + 1
		res.Score += 1.0 / float64(k+i+1)
	}

	results := make([]Result, 0, len(scores))
	for _, r := range scores {
		results = append(results, *r)
	}
	sortResults(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func getOrCreate(m map[int]*Result, id int) *Result {
	if r, ok := m[id]; ok {
		return r
	}
	r := &Result{ID: id}
	m[id] = r
	return r
}

// sortResults orders by score descending, document id ascending on ties.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
}
