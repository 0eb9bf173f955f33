package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taskrank/taskrank/pkg/graph"
	"github.com/taskrank/taskrank/pkg/scoring"
	"github.com/taskrank/taskrank/pkg/task"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func bandColor(band scoring.Band) string {
	if noColor() {
		return ""
	}
	switch band {
	case scoring.BandCritical:
		return colorRed
	case scoring.BandHigh:
		return colorYellow
	case scoring.BandLow:
		return colorGreen
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *scoring.BatchResult) error {
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("taskrank: %d %s ranked with strategy %s",
		len(result.Results), plural(len(result.Results), "task", "tasks"), result.Strategy.Name)))
	fmt.Fprintf(w, "%s\n\n", dim(formatWeights(result.Strategy.Weights)))

	if len(result.Results) == 0 {
		fmt.Fprintln(w, "No tasks to rank.")
		fmt.Fprintln(w)
	}

	for i, sr := range result.Results {
		band := fmt.Sprintf("%-8s", sr.Band)
		fmt.Fprintf(w, "%3d. %5.1f  %s  %s", i+1, sr.Score, colored(band, bandColor(sr.Band)), bold(sr.Title))
		if sr.ID != sr.Title {
			fmt.Fprintf(w, " %s", dim("("+sr.ID+")"))
		}
		fmt.Fprintln(w)
		for _, line := range sr.Explanation {
			fmt.Fprintf(w, "               %s\n", dim(line))
		}
	}
	if len(result.Results) > 0 {
		fmt.Fprintln(w)
	}

	renderCycles(w, result.Cycles)
	renderErrors(w, result.Errors)
	return nil
}

func (r *TerminalRenderer) RenderSuggestions(w io.Writer, s *scoring.Suggestions) error {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("taskrank: next up (strategy %s)", s.Strategy.Name)))

	if len(s.Suggestions) == 0 {
		fmt.Fprintln(w, "Nothing to suggest.")
		fmt.Fprintln(w)
	}
	for i, sg := range s.Suggestions {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, bold(sg.Title), colored(fmt.Sprintf("[%.1f]", sg.Score), bandColor(sg.Band)))
		if sg.Why != "" {
			for _, line := range wrapText(sg.Why, 70) {
				fmt.Fprintf(w, "   %s\n", dim(line))
			}
		}
	}
	fmt.Fprintln(w)

	if len(s.Alerts) > 0 {
		fmt.Fprintln(w, "Alerts:")
		for _, a := range s.Alerts {
			fmt.Fprintf(w, "  %s %s\n", colored("!", colorRed), a)
		}
		fmt.Fprintln(w)
	}

	renderCycles(w, s.Cycles)
	return nil
}

func renderCycles(w io.Writer, cycles []graph.Cycle) {
	if len(cycles) == 0 {
		return
	}
	fmt.Fprintln(w, "Circular dependencies:")
	for _, c := range cycles {
		fmt.Fprintf(w, "  %s %s\n", colored("●", colorRed), cyclePath(c))
	}
	fmt.Fprintln(w)
}

func renderErrors(w io.Writer, errs []task.ValidationError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, "Rejected records:")
	for _, e := range errs {
		fmt.Fprintf(w, "  #%d: %s\n", e.Index, e.Message)
	}
	fmt.Fprintln(w)
}

// cyclePath renders a cycle closed back on its first id: a -> b -> a.
func cyclePath(c graph.Cycle) string {
	if len(c) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c...), c[0]), " -> ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
