package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/errs"
)

// EnhanceMode selects the query enhancement strategy.
type EnhanceMode int

const (
	// EnhanceNone leaves the query untouched.
	EnhanceNone EnhanceMode = iota
	// EnhanceSpell corrects obvious typos only.
	EnhanceSpell
	// EnhanceRewrite rewrites the query into a specific, searchable form.
	EnhanceRewrite
	// EnhanceExpand appends synonyms and related terms to the query.
	EnhanceExpand
)

// ParseEnhanceMode maps a CLI string to a mode. Empty means none.
func ParseEnhanceMode(s string) (EnhanceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return EnhanceNone, nil
	case "spell":
		return EnhanceSpell, nil
	case "rewrite":
		return EnhanceRewrite, nil
	case "expand":
		return EnhanceExpand, nil
	default:
		return EnhanceNone, errs.InvalidArgument("unknown enhance mode %q", s)
	}
}

func (m EnhanceMode) String() string {
	switch m {
	case EnhanceSpell:
		return "spell"
	case EnhanceRewrite:
		return "rewrite"
	case EnhanceExpand:
		return "expand"
	default:
		return "none"
	}
}

// Enhancer rewrites queries via the language model before retrieval.
type Enhancer struct {
	client Client
	logger *zap.Logger
}

// NewEnhancer creates an enhancer over the given client.
func NewEnhancer(client Client, logger *zap.Logger) *Enhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enhancer{client: client, logger: logger}
}

// Enhance returns the enhanced query for the given mode. Spell and rewrite
// replace the query; expand appends to it. The caller decides how to handle
// a ProviderFailure (the engine falls back to the raw query).
func (e *Enhancer) Enhance(ctx context.Context, query string, mode EnhanceMode) (string, error) {
	if mode == EnhanceNone {
		return query, nil
	}
	var prompt string
	switch mode {
	case EnhanceSpell:
		prompt = fmt.Sprintf(spellPrompt, query)
	case EnhanceRewrite:
		prompt = fmt.Sprintf(rewritePrompt, query)
	case EnhanceExpand:
		prompt = fmt.Sprintf(expandPrompt, query)
	default:
		return "", errs.InvalidArgument("unknown enhance mode %d", mode)
	}

	resp, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	enhanced := strings.Trim(strings.TrimSpace(resp), `"`)
	if enhanced == "" {
		return "", errs.ProviderFailure("enhancement returned empty text")
	}
	if mode == EnhanceExpand {
		enhanced = query + " " + enhanced
	}
	e.logger.Debug("query enhanced",
		zap.String("mode", mode.String()),
		zap.String("query", query),
		zap.String("enhanced", enhanced))
	return enhanced, nil
}
