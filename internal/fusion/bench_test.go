package fusion

import "testing"

func benchChannels(n int) ([]Ranked, []Ranked) {
	bm25 := make([]Ranked, n)
	sem := make([]Ranked, n)
	for i := 0; i < n; i++ {
		bm25[i] = Ranked{ID: i, Score: float64(n-i) / float64(n)}
		sem[i] = Ranked{ID: (i + n/2) % n, Score: float64(n-i) / float64(n)}
	}
	return bm25, sem
}

func BenchmarkWeighted(b *testing.B) {
	bm25, sem := benchChannels(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Weighted(bm25, sem, 0.5, 10)
	}
}

func BenchmarkRRF(b *testing.B) {
	bm25, sem := benchChannels(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RRF(bm25, sem, 60, 10)
	}
}
