// Package evaluation measures retrieval quality against a golden dataset
// of queries with known-relevant documents.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperjump/eiga/internal/search"
)

// TestCase pairs a query with the titles of its relevant documents.
type TestCase struct {
	Query        string   `json:"query"`
	RelevantDocs []string `json:"relevant_docs"`
}

// Dataset is the on-disk golden dataset shape.
type Dataset struct {
	TestCases []TestCase `json:"test_cases"`
}

// LoadDataset reads a JSON golden dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read golden dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse golden dataset: %w", err)
	}
	return &ds, nil
}

// Metrics are the per-query retrieval quality numbers at a fixed limit.
type Metrics struct {
	Query     string
	Precision float64
	Recall    float64
	F1        float64
	Retrieved []string
	Relevant  []string
}

// SearchFunc runs a query and returns ranked results.
type SearchFunc func(ctx context.Context, query string, limit int) ([]search.Result, error)

// Evaluate runs every test case through searchFn and computes precision@k,
// recall@k and F1, matching retrieved and relevant documents by title.
func Evaluate(ctx context.Context, searchFn SearchFunc, ds *Dataset, limit int) ([]Metrics, error) {
	out := make([]Metrics, 0, len(ds.TestCases))
	for _, tc := range ds.TestCases {
		results, err := searchFn(ctx, tc.Query, limit)
		if err != nil {
			return nil, fmt.Errorf("evaluate query %q: %w", tc.Query, err)
		}

		relevant := make(map[string]bool, len(tc.RelevantDocs))
		for _, title := range tc.RelevantDocs {
			relevant[title] = true
		}
		retrieved := make([]string, len(results))
		hits := 0
		for i, r := range results {
			retrieved[i] = r.Title
			if relevant[r.Title] {
				hits++
			}
		}

		m := Metrics{
			Query:     tc.Query,
			Retrieved: retrieved,
			Relevant:  tc.RelevantDocs,
		}
		if len(results) > 0 && len(tc.RelevantDocs) > 0 {
			m.Precision = float64(hits) / float64(len(results))
			m.Recall = float64(hits) / float64(len(tc.RelevantDocs))
			if m.Precision+m.Recall > 0 {
				m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
			}
		}
		out = append(out, m)
	}
	return out, nil
}
