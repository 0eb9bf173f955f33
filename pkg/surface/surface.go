// Package surface defines output rendering for taskrank results.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"fmt"
	"io"

	"github.com/taskrank/taskrank/pkg/scoring"
)

// Renderer produces formatted output from scoring results.
type Renderer interface {
	// Render writes a ranked batch to the writer.
	Render(w io.Writer, result *scoring.BatchResult) error
	// RenderSuggestions writes the top picks and alerts of a batch.
	RenderSuggestions(w io.Writer, s *scoring.Suggestions) error
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want text, json or markdown)", format)
}

func formatWeights(w scoring.Weights) string {
	return fmt.Sprintf("w_u=%.2f w_i=%.2f w_e=%.2f w_d=%.2f", w.Urgency, w.Importance, w.Effort, w.Dependency)
}
