// Package analysis normalizes raw text into the term stream shared by the
// lexical index and query processing.
package analysis

import (
	"strings"
	"unicode"

	"github.com/blevesearch/go-porterstemmer"
	"github.com/hyperjump/eiga/internal/errs"
)

// Stemmer reduces a token to its stem. The analyzer calls it once per
// surviving token.
type Stemmer func(string) string

// Porter returns the Porter stemmer, the default used for the catalog.
func Porter() Stemmer {
	return func(word string) string {
		return porterstemmer.StemString(word)
	}
}

// Identity returns tokens unchanged. Useful in tests that need exact terms.
func Identity() Stemmer {
	return func(word string) string { return word }
}

// Analyzer tokenizes text: lowercase, strip punctuation, split on
// whitespace, drop stopwords, stem. Token order follows source order.
type Analyzer struct {
	stopwords map[string]struct{}
	stem      Stemmer
}

// New builds an analyzer over the given stopword set and stemmer. Stopword
// entries pass through the same lowercase/punctuation cleanup as document
// text so that entries like "aren't" match the token "arent".
func New(stopwords []string, stem Stemmer) *Analyzer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		if w = clean(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return &Analyzer{stopwords: set, stem: stem}
}

// Tokenize produces the ordered normalized term sequence for text.
// Punctuation is deleted, not replaced with whitespace, so "don't" becomes
// "dont". The stopword check runs before stemming.
func (a *Analyzer) Tokenize(text string) []string {
	fields := strings.Fields(clean(text))
	terms := make([]string, 0, len(fields))
	for _, word := range fields {
		if _, stop := a.stopwords[word]; stop {
			continue
		}
		terms = append(terms, a.stem(word))
	}
	return terms
}

// NormalizeTerm normalizes text that must resolve to exactly one term, as
// required by single-term lookups. Zero or multiple tokens is an
// InvalidArgument error.
func (a *Analyzer) NormalizeTerm(text string) (string, error) {
	tokens := a.Tokenize(text)
	switch len(tokens) {
	case 1:
		return tokens[0], nil
	case 0:
		return "", errs.InvalidArgument("term %q normalizes to no tokens", text)
	default:
		return "", errs.InvalidArgument("term %q normalizes to %d tokens", text, len(tokens))
	}
}

// clean lowercases text and deletes punctuation in place.
func clean(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || isSymbolPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
}

// isSymbolPunct covers the ASCII characters ($ + < = > ^ ` | ~) that Unicode
// classifies as symbols but the tokenizer treats as punctuation.
func isSymbolPunct(r rune) bool {
	return strings.ContainsRune("$+<=>^`|~", r)
}
