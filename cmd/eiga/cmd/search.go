package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperjump/eiga/internal/llm"
	"github.com/hyperjump/eiga/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit     int
	strategy  string
	alpha     float64
	rrfK      int
	enhance   string
	rerank    string
	imagePath string
	format    string // "text" or "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long: `Search the catalog with hybrid retrieval.

The query runs through both channels (BM25 keyword and semantic
embedding) in parallel, and the two ranked lists are fused with the
chosen strategy. Query is all positional arguments joined by spaces.

Examples:
  eiga search grizzly bear attack
  eiga search --strategy rrf "cooking competition"
  eiga search --alpha 0.8 "space station"        # lean lexical
  eiga search --enhance spell "gryzly bear"
  eiga search --rerank batch --limit 10 "heist thriller"
  eiga search --image poster.jpg "what movie is this from?"
  eiga search --format json "time travel"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "weighted", "fusion strategy: weighted or rrf")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", -1, "lexical weight in [0,1] for weighted fusion (default from config)")
	cmd.Flags().IntVar(&opts.rrfK, "rrf-k", 0, "RRF smoothing constant (default from config)")
	cmd.Flags().StringVar(&opts.enhance, "enhance", "", "query enhancement: spell, rewrite, or expand")
	cmd.Flags().StringVar(&opts.rerank, "rerank", "", "LLM reranking: individual, batch, or cross")
	cmd.Flags().StringVar(&opts.imagePath, "image", "", "image file whose content is folded into the query via the vision model")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text or json")

	return cmd
}

// searchEngineOptions converts CLI flags to engine options, filling unset
// values from config.
func searchEngineOptions(c *components, opts searchOptions) (search.Options, error) {
	strategy, err := search.ParseStrategy(opts.strategy)
	if err != nil {
		return search.Options{}, err
	}
	enhance, err := llm.ParseEnhanceMode(opts.enhance)
	if err != nil {
		return search.Options{}, err
	}
	rerank, err := llm.ParseRerankMode(opts.rerank)
	if err != nil {
		return search.Options{}, err
	}

	limit := opts.limit
	if limit <= 0 {
		limit = c.cfg.Search.DefaultLimit
	}
	alpha := opts.alpha
	if alpha < 0 {
		alpha = c.cfg.Search.Alpha
	}
	rrfK := opts.rrfK
	if rrfK <= 0 {
		rrfK = c.cfg.Search.RRFK
	}

	return search.Options{
		Limit:    limit,
		Strategy: strategy,
		Alpha:    alpha,
		RRFK:     rrfK,
		Enhance:  enhance,
		Rerank:   rerank,
	}, nil
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	c, err := initComponents(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	engineOpts, err := searchEngineOptions(c, opts)
	if err != nil {
		return err
	}
	if opts.imagePath != "" {
		query, err = rewriteQueryFromImage(cmd, c, query, opts.imagePath)
		if err != nil {
			return err
		}
	}
	results, err := c.engine.Search(cmd.Context(), query, engineOpts)
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "text":
		writeResultsText(cmd.OutOrStdout(), query, results)
		return nil
	default:
		return fmt.Errorf("unknown output format %q; use text or json", opts.format)
	}
}

// rewriteQueryFromImage reads the image and asks the vision model to fold
// its content into the query. Unlike enhancement, a failure here is fatal:
// the image is the point of the request, not an optional refinement.
func rewriteQueryFromImage(cmd *cobra.Command, c *components, query, imagePath string) (string, error) {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	rewritten, err := llm.RewriteQueryWithImage(cmd.Context(), c.vision, query, image)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rewritten query: %s\n\n", rewritten)
	return rewritten, nil
}

func writeResultsText(w io.Writer, query string, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No results for %q\n", query)
		return
	}
	fmt.Fprintf(w, "Found %d results for %q:\n\n", len(results), query)
	for _, r := range results {
		fmt.Fprintf(w, "%d. %s (score: %.4f", r.Rank, r.Title, r.Score)
		if r.BM25 != 0 || r.Semantic != 0 {
			fmt.Fprintf(w, ", bm25: %.4f, semantic: %.4f", r.BM25, r.Semantic)
		}
		fmt.Fprintf(w, ")\n")
		if r.Snippet != "" {
			fmt.Fprintf(w, "   %s...\n", r.Snippet)
		}
		fmt.Fprintln(w)
	}
}
