package evaluation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/eiga/internal/search"
)

func fixedResults(titles ...string) []search.Result {
	out := make([]search.Result, len(titles))
	for i, title := range titles {
		out[i] = search.Result{ID: i + 1, Title: title, Rank: i + 1}
	}
	return out
}

func TestEvaluateMetrics(t *testing.T) {
	ds := &Dataset{TestCases: []TestCase{
		{Query: "bear", RelevantDocs: []string{"The Bear", "Paddington"}},
	}}
	searchFn := func(context.Context, string, int) ([]search.Result, error) {
		// 2 of 4 retrieved are relevant; both relevant docs retrieved.
		return fixedResults("The Bear", "Chef", "Paddington", "Gravity"), nil
	}

	metrics, err := Evaluate(context.Background(), searchFn, ds, 4)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("got %d metrics, want 1", len(metrics))
	}

	m := metrics[0]
	if m.Precision != 0.5 {
		t.Errorf("precision = %v, want 0.5", m.Precision)
	}
	if m.Recall != 1.0 {
		t.Errorf("recall = %v, want 1.0", m.Recall)
	}
	wantF1 := 2 * 0.5 * 1.0 / (0.5 + 1.0)
	if math.Abs(m.F1-wantF1) > 1e-12 {
		t.Errorf("f1 = %v, want %v", m.F1, wantF1)
	}
}

func TestEvaluateNoRelevantRetrieved(t *testing.T) {
	ds := &Dataset{TestCases: []TestCase{
		{Query: "bear", RelevantDocs: []string{"The Bear"}},
	}}
	searchFn := func(context.Context, string, int) ([]search.Result, error) {
		return fixedResults("Chef"), nil
	}

	metrics, err := Evaluate(context.Background(), searchFn, ds, 1)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	m := metrics[0]
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("all-miss metrics = %+v, want zeros", m)
	}
}

func TestEvaluateEmptyResults(t *testing.T) {
	ds := &Dataset{TestCases: []TestCase{
		{Query: "bear", RelevantDocs: []string{"The Bear"}},
	}}
	searchFn := func(context.Context, string, int) ([]search.Result, error) {
		return nil, nil
	}

	metrics, err := Evaluate(context.Background(), searchFn, ds, 5)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if m := metrics[0]; m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("empty-result metrics = %+v, want zeros", m)
	}
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	data := `{"test_cases": [{"query": "bear", "relevant_docs": ["The Bear", "Paddington"]}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(ds.TestCases) != 1 {
		t.Fatalf("got %d cases, want 1", len(ds.TestCases))
	}
	if ds.TestCases[0].Query != "bear" || len(ds.TestCases[0].RelevantDocs) != 2 {
		t.Errorf("unexpected test case: %+v", ds.TestCases[0])
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing dataset file")
	}
}
