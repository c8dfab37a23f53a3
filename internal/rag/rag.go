// Package rag produces answers grounded in retrieved documents.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/eiga/internal/llm"
	"github.com/hyperjump/eiga/internal/models"
	"github.com/hyperjump/eiga/internal/search"
	"github.com/hyperjump/eiga/pkg/utils"
)

// ContextSnippetLength is how much of each description goes into the answer
// prompt. Wider than the display snippet so the model has enough to quote.
const ContextSnippetLength = 200

// FormatDocs renders results as a numbered context block for the answer
// prompt, pulling each description from the catalog. A result whose id is
// not in the catalog falls back to its display snippet.
func FormatDocs(results []search.Result, docs map[int]models.Document) string {
	var b strings.Builder
	for i, r := range results {
		snippet := r.Snippet
		if doc, ok := docs[r.ID]; ok {
			snippet = utils.Snippet(doc.Description, ContextSnippetLength)
		}
		fmt.Fprintf(&b, "%d. %s: %s...\n", i+1, r.Title, snippet)
	}
	return b.String()
}

// Answer generates a grounded answer from the given results. An empty
// result list yields no answer, not a provider call.
func Answer(ctx context.Context, client llm.Client, query string, results []search.Result, docs map[int]models.Document) (string, error) {
	if len(results) == 0 {
		return "", nil
	}
	return llm.Answer(ctx, client, query, FormatDocs(results, docs))
}
