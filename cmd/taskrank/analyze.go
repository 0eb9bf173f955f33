package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taskrank/taskrank/internal/logging"
	"github.com/taskrank/taskrank/internal/storage"
	"github.com/taskrank/taskrank/pkg/config"
	"github.com/taskrank/taskrank/pkg/scoring"
	"github.com/taskrank/taskrank/pkg/surface"
	"github.com/taskrank/taskrank/pkg/task"
)

// batchOpts are the inputs shared by analyze and suggest.
type batchOpts struct {
	projectDir string
	input      string
	strategy   string
	weights    []string
	now        string
	outputFmt  string
}

func addBatchFlags(cmd *cobra.Command, o *batchOpts) {
	cmd.Flags().StringVar(&o.projectDir, "project", "", "Project directory used to find .taskrank/config.yaml (default: working directory)")
	cmd.Flags().StringVarP(&o.input, "input", "i", "-", "Task batch: file path, s3://bucket/key, gs://bucket/key or - for stdin")
	cmd.Flags().StringVarP(&o.strategy, "strategy", "s", "", "Strategy preset (default: scoring.strategy from config)")
	cmd.Flags().StringArrayVarP(&o.weights, "weight", "w", nil, "Custom weight override, e.g. w_u=0.5 (repeatable)")
	cmd.Flags().StringVar(&o.now, "now", "", "Reference time in RFC3339 (default: current time)")
	cmd.Flags().StringVarP(&o.outputFmt, "output", "o", "text", "Output format: text, json or markdown")
}

func newAnalyzeCmd() *cobra.Command {
	var (
		opts   batchOpts
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score and rank a batch of tasks",
		Long: `Reads a JSON task batch, scores every valid task under the chosen strategy
and prints the ranking with explanations, detected dependency cycles and
rejected records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), opts, noSave, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	addBatchFlags(cmd, &opts)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the run to the result cache or archive")

	return cmd
}

func runAnalyze(ctx context.Context, opts batchOpts, noSave bool, stdin io.Reader, stdout io.Writer) error {
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

	if err := renderer.Render(stdout, result); err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}

	if !noSave {
		p.saveResult(ctx, result)
	}
	return nil
}

// scoreBatch reads the batch named by opts and runs the engine over it.
func (p *project) scoreBatch(ctx context.Context, opts batchOpts, stdin io.Reader) (*scoring.BatchResult, error) {
	defer logging.Duration(p.logger, "score batch", time.Now())

	flagWeights, err := parseWeightFlags(opts.weights)
	if err != nil {
		return nil, err
	}
	now, err := parseNow(opts.now)
	if err != nil {
		return nil, err
	}

	data, err := readInput(ctx, opts.input, stdin)
	if err != nil {
		return nil, err
	}
	batch, err := task.DecodeBatch(data)
	if err != nil {
		return nil, err
	}

	engine, err := p.newEngine()
	if err != nil {
		return nil, err
	}

	requested := firstNonEmpty(opts.strategy, p.cfg.Scoring.Strategy)
	result := engine.Analyze(batch.Tasks, scoring.Request{
		Strategy: requested,
		Weights:  mergeWeights(p.cfg.Scoring.Weights, batch.Weights, flagWeights),
		Now:      now,
	})

	fmt.Fprintf(os.Stderr, "Scored %d of %d tasks with strategy %s\n",
		len(result.Results), len(batch.Tasks), result.Strategy.Name)
	if result.Strategy.FellBack {
		fmt.Fprintf(os.Stderr, "  Warning: fell back to strategy %s (requested %q)\n", result.Strategy.Name, requested)
	}
	return result, nil
}

func readInput(ctx context.Context, input string, stdin io.Reader) ([]byte, error) {
	if input == "" || input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := storage.ReadObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	return data, nil
}

// savedRun wraps a batch result with run metadata.
type savedRun struct {
	*scoring.BatchResult
	ID         string `json:"id"`
	AnalyzedAt string `json:"analyzed_at"`
}

// saveResult persists the run to the local result cache and, when configured,
// to the archive location. Failures are warnings.
func (p *project) saveResult(ctx context.Context, result *scoring.BatchResult) {
	run := savedRun{
		BatchResult: result,
		ID:          uuid.NewString(),
		AnalyzedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal result: %v\n", err)
		return
	}
	key := run.ID + ".json"

	resultDir := config.ResultDir(p.root)
	if err := storage.NewLocalStorage(resultDir).Put(ctx, key, data); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save result: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Result saved: %s\n", filepath.Join(resultDir, key))
	}

	if p.cfg.Storage.Archive == "" {
		return
	}
	archive, err := storage.Open(ctx, p.cfg.Storage.Archive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open archive: %v\n", err)
		return
	}
	if err := archive.Put(ctx, key, data); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to archive result: %v\n", err)
		return
	}
	p.logger.Info("result archived", "id", run.ID, "archive", p.cfg.Storage.Archive)
}
