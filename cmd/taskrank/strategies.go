package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/taskrank/taskrank/pkg/scoring"
)

func newStrategiesCmd() *cobra.Command {
	var (
		projectDir string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List the available weighting strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrategies(projectDir, outputFmt, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", "", "Project directory used to find .taskrank/config.yaml (default: working directory)")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text or json")

	return cmd
}

func runStrategies(projectDir, outputFmt string, w io.Writer) error {
	p, err := openProject(projectDir)
	if err != nil {
		return err
	}
	reg, err := p.cfg.Registry()
	if err != nil {
		return err
	}

	switch outputFmt {
	case "json":
		all := make(map[string]map[string]float64)
		for _, name := range reg.Names() {
			wts, _ := reg.Lookup(name)
			all[name] = wts.Map()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case "", "text":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
	}

	def := firstNonEmpty(p.cfg.Scoring.Strategy, scoring.DefaultStrategy)
	for _, name := range reg.Names() {
		wts, _ := reg.Lookup(name)
		marker := " "
		if name == def {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-12s w_u=%.2f w_i=%.2f w_e=%.2f w_d=%.2f\n",
			marker, name, wts.Urgency, wts.Importance, wts.Effort, wts.Dependency)
	}
	return nil
}
