package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/taskrank/taskrank/pkg/scoring"
	"github.com/taskrank/taskrank/pkg/surface"
)

func newSuggestCmd() *cobra.Command {
	var (
		opts  batchOpts
		limit int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show the next tasks to work on",
		Long:  `Scores a task batch and prints the top suggestions with overdue and workload alerts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd.Context(), opts, limit, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	addBatchFlags(cmd, &opts)
	cmd.Flags().IntVarP(&limit, "limit", "n", scoring.DefaultSuggestionLimit, "Number of suggestions")

	return cmd
}

func runSuggest(ctx context.Context, opts batchOpts, limit int, stdin io.Reader, stdout io.Writer) error {
	if limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", limit)
	}

	p, err := openProject(opts.projectDir)
	if err != nil {
		return err
	}

	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}

	result, err := p.scoreBatch(ctx, opts, stdin)
	if err != nil {
		return err
	}

	if err := renderer.RenderSuggestions(stdout, scoring.Suggest(result, limit)); err != nil {
		return fmt.Errorf("rendering suggestions: %w", err)
	}
	return nil
}
