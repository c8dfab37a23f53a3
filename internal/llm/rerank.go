package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/errs"
)

// RerankMode selects the reranking strategy.
type RerankMode int

const (
	// RerankNone keeps the fused order.
	RerankNone RerankMode = iota
	// RerankIndividual scores each candidate separately (rate-limited).
	RerankIndividual
	// RerankBatch asks for a full ordering in one call.
	RerankBatch
	// RerankCross scores query/candidate pairs with a cross-encoder.
	RerankCross
)

// ParseRerankMode maps a CLI string to a mode. Empty means none.
func ParseRerankMode(s string) (RerankMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RerankNone, nil
	case "individual":
		return RerankIndividual, nil
	case "batch":
		return RerankBatch, nil
	case "cross":
		return RerankCross, nil
	default:
		return RerankNone, errs.InvalidArgument("unknown rerank mode %q", s)
	}
}

func (m RerankMode) String() string {
	switch m {
	case RerankIndividual:
		return "individual"
	case RerankBatch:
		return "batch"
	case RerankCross:
		return "cross"
	default:
		return "none"
	}
}

// Candidate is a fused result handed to the reranker.
type Candidate struct {
	ID    int
	Title string
	Text  string
}

// CrossEncoder scores query/text pairs in one batched call, returning one
// score per text in input order.
type CrossEncoder interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// minCallInterval is the minimum spacing between successive individual
// scoring calls, respecting the provider's rate limit.
const minCallInterval = time.Second

// Reranker reorders fused results via the language model. All failures are
// ProviderFailure; the engine falls back to the fused order.
type Reranker struct {
	client      Client
	cross       CrossEncoder
	logger      *zap.Logger
	minInterval time.Duration
	now         func() time.Time
	sleep       func(time.Duration)
	lastCall    time.Time
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker)

// WithMinInterval overrides the individual-mode call spacing.
func WithMinInterval(d time.Duration) RerankerOption {
	return func(r *Reranker) { r.minInterval = d }
}

// WithClock overrides the time source and sleeper, for tests.
func WithClock(now func() time.Time, sleep func(time.Duration)) RerankerOption {
	return func(r *Reranker) {
		r.now = now
		r.sleep = sleep
	}
}

// NewReranker creates a reranker. cross may be nil when RerankCross is not
// used.
func NewReranker(client Client, cross CrossEncoder, logger *zap.Logger, opts ...RerankerOption) *Reranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reranker{
		client:      client,
		cross:       cross,
		logger:      logger,
		minInterval: minCallInterval,
		now:         time.Now,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank returns candidate ids in the reranked order. On error the caller
// keeps the incoming (fused) order.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []Candidate, mode RerankMode) ([]int, error) {
	switch mode {
	case RerankNone:
		return ids(candidates), nil
	case RerankIndividual:
		return r.rerankIndividual(ctx, query, candidates)
	case RerankBatch:
		return r.rerankBatch(ctx, query, candidates)
	case RerankCross:
		return r.rerankCross(ctx, query, candidates)
	default:
		return nil, errs.InvalidArgument("unknown rerank mode %d", mode)
	}
}

// rerankIndividual scores each candidate with its own call, keeping at
// least minInterval between successive calls. Ties keep the fused order.
func (r *Reranker) rerankIndividual(ctx context.Context, query string, candidates []Candidate) ([]int, error) {
	scores := make([]float64, len(candidates))
	for i, cand := range candidates {
		r.throttle()
		resp, err := r.client.Generate(ctx, fmt.Sprintf(individualRerankPrompt, query, cand.Title, cand.Text))
		if err != nil {
			return nil, err
		}
		score, err := parseScore(resp)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return orderByScore(candidates, scores), nil
}

// rerankBatch asks for a full ordering as a JSON id list. Unknown ids are
// dropped; candidates missing from the response keep their fused order at
// the tail.
func (r *Reranker) rerankBatch(ctx context.Context, query string, candidates []Candidate) ([]int, error) {
	var b strings.Builder
	for _, cand := range candidates {
		fmt.Fprintf(&b, "- ID %d: %s - %s\n", cand.ID, cand.Title, cand.Text)
	}
	resp, err := r.client.Generate(ctx, fmt.Sprintf(batchRerankPrompt, query, b.String()))
	if err != nil {
		return nil, err
	}
	ranked, err := parseIDList(resp)
	if err != nil {
		return nil, err
	}

	known := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}
	seen := make(map[int]bool, len(ranked))
	ordered := make([]int, 0, len(candidates))
	for _, id := range ranked {
		if known[id] && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}
	for _, c := range candidates {
		if !seen[c.ID] {
			ordered = append(ordered, c.ID)
		}
	}
	return ordered, nil
}

// rerankCross batch-scores all query/candidate pairs and sorts descending.
func (r *Reranker) rerankCross(ctx context.Context, query string, candidates []Candidate) ([]int, error) {
	if r.cross == nil {
		return nil, errs.ProviderFailure("no cross-encoder configured")
	}
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Title + " - " + c.Text
	}
	scores, err := r.cross.Score(ctx, query, texts)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(candidates) {
		return nil, errs.ProviderFailure("cross-encoder returned %d scores for %d candidates", len(scores), len(candidates))
	}
	return orderByScore(candidates, scores), nil
}

// throttle enforces the minimum spacing between provider calls. It is a
// sequential rate limit, not a concurrency primitive.
func (r *Reranker) throttle() {
	if !r.lastCall.IsZero() {
		if elapsed := r.now().Sub(r.lastCall); elapsed < r.minInterval {
			r.sleep(r.minInterval - elapsed)
		}
	}
	r.lastCall = r.now()
}

func ids(candidates []Candidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.ID
	}
	return out
}

// orderByScore sorts candidate ids by score descending; the stable sort
// keeps the fused order on ties.
func orderByScore(candidates []Candidate, scores []float64) []int {
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = candidates[j].ID
	}
	return out
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// parseScore extracts the numeric rating from a model response.
func parseScore(resp string) (float64, error) {
	match := numberPattern.FindString(resp)
	if match == "" {
		return 0, errs.ProviderFailure("no score in response %q", strings.TrimSpace(resp))
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, errs.ProviderFailure("parse score %q: %v", match, err)
	}
	return score, nil
}

// parseIDList extracts the first JSON integer list from a model response.
func parseIDList(resp string) ([]int, error) {
	start := strings.Index(resp, "[")
	end := strings.LastIndex(resp, "]")
	if start < 0 || end <= start {
		return nil, errs.ProviderFailure("no id list in response %q", strings.TrimSpace(resp))
	}
	var out []int
	if err := json.Unmarshal([]byte(resp[start:end+1]), &out); err != nil {
		return nil, errs.ProviderFailure("parse id list: %v", err)
	}
	return out, nil
}
