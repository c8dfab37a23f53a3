package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperjump/eiga/internal/evaluation"
	"github.com/hyperjump/eiga/internal/search"
)

func newEvaluateCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "evaluate <dataset>",
		Short: "Measure retrieval quality against a golden dataset",
		Long: `Run every query in a golden dataset (JSON file of queries with their
known-relevant titles) through the engine and report precision, recall,
and F1 at the chosen limit.

Example:
  eiga evaluate data/golden_dataset.json --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "results per query (default from config)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "rrf", "fusion strategy: weighted or rrf")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", -1, "lexical weight in [0,1] for weighted fusion (default from config)")
	cmd.Flags().IntVar(&opts.rrfK, "rrf-k", 0, "RRF smoothing constant (default from config)")

	return cmd
}

func runEvaluate(cmd *cobra.Command, datasetPath string, opts searchOptions) error {
	c, err := initComponents(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	ds, err := evaluation.LoadDataset(datasetPath)
	if err != nil {
		return err
	}
	engineOpts, err := searchEngineOptions(c, opts)
	if err != nil {
		return err
	}

	searchFn := func(ctx context.Context, query string, limit int) ([]search.Result, error) {
		o := engineOpts
		o.Limit = limit
		return c.engine.Search(ctx, query, o)
	}
	metrics, err := evaluation.Evaluate(cmd.Context(), searchFn, ds, engineOpts.Limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var sumP, sumR, sumF float64
	for _, m := range metrics {
		fmt.Fprintf(out, "%q\n", m.Query)
		fmt.Fprintf(out, "  precision: %.3f  recall: %.3f  f1: %.3f\n", m.Precision, m.Recall, m.F1)
		fmt.Fprintf(out, "  retrieved: %v\n", m.Retrieved)
		fmt.Fprintf(out, "  relevant:  %v\n\n", m.Relevant)
		sumP += m.Precision
		sumR += m.Recall
		sumF += m.F1
	}
	if n := float64(len(metrics)); n > 0 {
		fmt.Fprintf(out, "average over %d queries: precision %.3f, recall %.3f, f1 %.3f\n",
			len(metrics), sumP/n, sumR/n, sumF/n)
	}
	return nil
}
