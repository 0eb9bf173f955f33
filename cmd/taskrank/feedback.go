package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/taskrank/taskrank/internal/feedback"
	"github.com/taskrank/taskrank/pkg/config"
)

func newFeedbackCmd() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record or show per-task feedback counters",
	}
	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Project directory used to find .taskrank/config.yaml (default: working directory)")

	record := &cobra.Command{
		Use:   "record <task-id> <helpful|done>",
		Short: "Increment a feedback counter for a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedback(cmd.Context(), projectDir, cmd.OutOrStdout(), func(ctx context.Context, s feedback.Store) (feedback.Counts, error) {
				return s.Increment(ctx, args[0], args[1])
			}, args[0])
		},
	}

	show := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show the feedback counters of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedback(cmd.Context(), projectDir, cmd.OutOrStdout(), func(ctx context.Context, s feedback.Store) (feedback.Counts, error) {
				return s.Get(ctx, args[0])
			}, args[0])
		},
	}

	cmd.AddCommand(record, show)
	return cmd
}

func runFeedback(ctx context.Context, projectDir string, w io.Writer, op func(context.Context, feedback.Store) (feedback.Counts, error), taskID string) error {
	p, err := openProject(projectDir)
	if err != nil {
		return err
	}

	fc := p.cfg.Feedback
	if fc.Backend == config.BackendSQLite && fc.SQLitePath == "" {
		fc.SQLitePath = config.FeedbackDBPath(p.root)
	}

	store, err := feedback.Open(ctx, fc)
	if err != nil {
		return fmt.Errorf("opening feedback store: %w", err)
	}
	defer store.Close()

	counts, err := op(ctx, store)
	if err != nil {
		return err
	}
	p.logger.Debug("feedback", "task", taskID, "backend", p.cfg.Feedback.Backend)

	fmt.Fprintf(w, "%s: helpful=%d done=%d\n", taskID, counts.Helpful, counts.Done)
	return nil
}
