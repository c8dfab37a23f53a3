package lexical

import "math"

// InverseDocumentFrequency returns the classic smoothed IDF
// ln((N+1)/(df+1)).
func (idx *Index) InverseDocumentFrequency(term string) (float64, error) {
	df, err := idx.DocumentFrequency(term)
	if err != nil {
		return 0, err
	}
	return math.Log(float64(idx.n+1) / float64(df+1)), nil
}

// BM25InverseDocumentFrequency returns ln(1 + (N-df+0.5)/(df+0.5)).
func (idx *Index) BM25InverseDocumentFrequency(term string) (float64, error) {
	df, err := idx.DocumentFrequency(term)
	if err != nil {
		return 0, err
	}
	return idx.bm25IDF(df), nil
}

// BM25TermFrequency returns the saturating, length-normalized term
// frequency component (tf*(k1+1)) / (tf + k1*(1-b+b*docLen/avgDocLen)).
func (idx *Index) BM25TermFrequency(docID int, term string, k1, b float64) (float64, error) {
	token, err := idx.analyzer.NormalizeTerm(term)
	if err != nil {
		return 0, err
	}
	return idx.bm25TF(docID, token, k1, b), nil
}

// BM25 scores term against docID with the default constants k1=1.5, b=0.75.
func (idx *Index) BM25(docID int, term string) (float64, error) {
	token, err := idx.analyzer.NormalizeTerm(term)
	if err != nil {
		return 0, err
	}
	return idx.scoreTerm(docID, token, DefaultK1, DefaultB), nil
}

// scoreTerm computes bm25TF * bm25IDF for an already-normalized token.
// Search uses this directly so query tokens are not normalized twice.
func (idx *Index) scoreTerm(docID int, token string, k1, b float64) float64 {
	return idx.bm25TF(docID, token, k1, b) * idx.bm25IDF(len(idx.postings[token]))
}

func (idx *Index) bm25IDF(df int) float64 {
	return math.Log(1 + (float64(idx.n)-float64(df)+0.5)/(float64(df)+0.5))
}

func (idx *Index) bm25TF(docID int, token string, k1, b float64) float64 {
	if idx.avgDocLength() == 0 {
		return 0
	}
	tf := float64(idx.termFreqs[docID][token])
	lengthNorm := 1 - b + b*(float64(idx.docLengths[docID])/idx.avgDocLength())
	return (tf * (k1 + 1)) / (tf + k1*lengthNorm)
}

// avgDocLength is the mean token count over all documents, computed on
// demand rather than cached.
func (idx *Index) avgDocLength() float64 {
	if len(idx.docLengths) == 0 {
		return 0
	}
	var sum float64
	for _, l := range idx.docLengths {
		sum += float64(l)
	}
	return sum / float64(len(idx.docLengths))
}
