package lexical

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/eiga/internal/analysis"
	"github.com/hyperjump/eiga/internal/cache"
	"github.com/hyperjump/eiga/internal/errs"
	"github.com/hyperjump/eiga/internal/models"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer store.Close()

	analyzer := analysis.New(analysis.DefaultStopwords(), analysis.Porter())
	idx := NewIndex(analyzer)
	docs := []models.Document{
		{ID: 1, Title: "The Bear", Description: "A bear survives the wild."},
		{ID: 2, Title: "Paddington", Description: "A bear moves to London."},
		{ID: 3, Title: "Chef", Description: "A cooking competition heats up."},
	}
	idx.Build(docs)
	if err := idx.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := NewIndex(analyzer)
	if err := restored.Load(store); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if restored.N() != idx.N() {
		t.Errorf("restored N = %d, want %d", restored.N(), idx.N())
	}
	if restored.Fingerprint() != idx.Fingerprint() {
		t.Errorf("restored fingerprint = %d, want %d", restored.Fingerprint(), idx.Fingerprint())
	}

	// Identical search results for a fixed query and limit.
	want, err := idx.Search("bear", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got, err := restored.Search("bear", 5)
	if err != nil {
		t.Fatalf("Search after load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("search after load = %v, want %v", got, want)
	}
}

func TestLoadMissingBundle(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer store.Close()

	idx := NewIndex(analysis.New(nil, analysis.Identity()))
	if err := idx.Load(store); !errors.Is(err, errs.ErrCorruptState) {
		t.Errorf("Load on empty store: got %v, want ErrCorruptState", err)
	}
}
