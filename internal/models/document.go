// Package models defines the core data structures shared across the engine.
package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a single catalog entry. Documents are immutable once loaded;
// the full catalog is the unit of indexing.
type Document struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Catalog is the on-disk shape of the movie catalog file.
type Catalog struct {
	Movies []Document `json:"movies"`
}

// LoadCatalog reads a JSON catalog file of the form {"movies": [...]}.
func LoadCatalog(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return c.Movies, nil
}

// DocMap builds an id -> document lookup for result decoration.
func DocMap(docs []Document) map[int]Document {
	m := make(map[int]Document, len(docs))
	for _, d := range docs {
		m[d.ID] = d
	}
	return m
}
