package analysis

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed stopwords.txt
var defaultStopwords string

// DefaultStopwords returns the embedded English stopword list.
func DefaultStopwords() []string {
	return splitLines(defaultStopwords)
}

// LoadStopwords reads a newline-separated stopword file.
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	return splitLines(string(data)), nil
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
