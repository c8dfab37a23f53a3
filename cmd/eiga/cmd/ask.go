package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/eiga/internal/models"
	"github.com/hyperjump/eiga/internal/rag"
)

func newAskCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question grounded in retrieved catalog entries",
		Long: `Retrieve catalog entries for the question, then generate an answer
restricted to what they say. Requires a running Ollama instance.

Examples:
  eiga ask "which movies feature a bear?"
  eiga ask --limit 10 --strategy rrf "what should I watch about cooking?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "number of retrieved entries to ground on (default from config)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "rrf", "fusion strategy: weighted or rrf")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", -1, "lexical weight in [0,1] for weighted fusion (default from config)")
	cmd.Flags().IntVar(&opts.rrfK, "rrf-k", 0, "RRF smoothing constant (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, question string, opts searchOptions) error {
	c, err := initComponents(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	engineOpts, err := searchEngineOptions(c, opts)
	if err != nil {
		return err
	}
	results, err := c.engine.Search(cmd.Context(), question, engineOpts)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", question)
		return nil
	}

	answer, err := rag.Answer(cmd.Context(), c.client, question, results, models.DocMap(c.docs))
	if err != nil {
		// Retrieval worked; show what we found instead of failing outright.
		c.logger.Warn("answer generation failed, showing retrieved entries", zap.Error(err))
		writeResultsText(cmd.OutOrStdout(), question, results)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(answer))
	return nil
}
