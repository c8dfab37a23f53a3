package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperjump/eiga/internal/errs"
)

// PromptCrossEncoder implements CrossEncoder on top of the generate client:
// one batched prompt returning a JSON score list, one score per text.
type PromptCrossEncoder struct {
	client Client
}

var _ CrossEncoder = (*PromptCrossEncoder)(nil)

// NewPromptCrossEncoder creates a cross-encoder over the given client.
func NewPromptCrossEncoder(client Client) *PromptCrossEncoder {
	return &PromptCrossEncoder{client: client}
}

// Score returns one relevance score per text, in input order.
func (p *PromptCrossEncoder) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	resp, err := p.client.Generate(ctx, fmt.Sprintf(crossScorePrompt, query, b.String()))
	if err != nil {
		return nil, err
	}
	start := strings.Index(resp, "[")
	end := strings.LastIndex(resp, "]")
	if start < 0 || end <= start {
		return nil, errs.ProviderFailure("no score list in response %q", strings.TrimSpace(resp))
	}
	var scores []float64
	if err := json.Unmarshal([]byte(resp[start:end+1]), &scores); err != nil {
		return nil, errs.ProviderFailure("parse score list: %v", err)
	}
	if len(scores) != len(texts) {
		return nil, errs.ProviderFailure("got %d scores for %d texts", len(scores), len(texts))
	}
	return scores, nil
}
