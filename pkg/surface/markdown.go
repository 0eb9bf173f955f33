package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/taskrank/taskrank/pkg/graph"
	"github.com/taskrank/taskrank/pkg/scoring"
)

// MarkdownRenderer produces a Markdown summary suitable for issues and notes.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, result *scoring.BatchResult) error {
	_, err := io.WriteString(w, buildMarkdownSummary(result))
	return err
}

func (r *MarkdownRenderer) RenderSuggestions(w io.Writer, s *scoring.Suggestions) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Next up (%s)\n\n", s.Strategy.Name))
	for i, sg := range s.Suggestions {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%.1f, %s)", i+1, escapeCell(sg.Title), sg.Score, sg.Band))
		if sg.Why != "" {
			sb.WriteString(": " + sg.Why)
		}
		sb.WriteString("\n")
	}
	if len(s.Suggestions) == 0 {
		sb.WriteString("_Nothing to suggest._\n")
	}
	sb.WriteString("\n")

	if len(s.Alerts) > 0 {
		sb.WriteString("### Alerts\n\n")
		for _, a := range s.Alerts {
			sb.WriteString("- :warning: " + a + "\n")
		}
		sb.WriteString("\n")
	}

	writeMarkdownCycles(&sb, s.Cycles)

	_, err := io.WriteString(w, sb.String())
	return err
}

func buildMarkdownSummary(result *scoring.BatchResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Task ranking (%s)\n\n", result.Strategy.Name))
	sb.WriteString(fmt.Sprintf("`%s`\n\n", formatWeights(result.Strategy.Weights)))

	if len(result.Results) == 0 {
		sb.WriteString("_No tasks to rank._\n\n")
	} else {
		sb.WriteString("| # | Task | Score | Band | Why |\n")
		sb.WriteString("|---|------|-------|------|-----|\n")
		for i, sr := range result.Results {
			why := sr.Explanation
			if len(why) > 2 {
				why = why[:2]
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %.1f | %s | %s |\n",
				i+1, escapeCell(sr.Title), sr.Score, bandIcon(sr.Band), escapeCell(strings.Join(why, "; "))))
		}
		sb.WriteString("\n")
	}

	writeMarkdownCycles(&sb, result.Cycles)

	if len(result.Errors) > 0 {
		sb.WriteString("### Rejected records\n\n")
		for _, e := range result.Errors {
			sb.WriteString(fmt.Sprintf("- `#%d`: %s\n", e.Index, e.Message))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeMarkdownCycles(sb *strings.Builder, cycles []graph.Cycle) {
	if len(cycles) == 0 {
		return
	}
	sb.WriteString("### Circular dependencies\n\n")
	for _, c := range cycles {
		sb.WriteString(fmt.Sprintf("- `%s`\n", cyclePath(c)))
	}
	sb.WriteString("\n")
}

func bandIcon(band scoring.Band) string {
	switch band {
	case scoring.BandCritical:
		return ":red_circle: critical"
	case scoring.BandHigh:
		return ":orange_circle: high"
	case scoring.BandMedium:
		return ":yellow_circle: medium"
	default:
		return ":white_circle: low"
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
