package scoring

import (
	"fmt"
	"strings"

	"github.com/taskrank/taskrank/pkg/graph"
)

// DefaultSuggestionLimit is how many tasks Suggest returns when limit <= 0.
const DefaultSuggestionLimit = 3

// highPriorityAlertCount is how many critical tasks trigger the reweighting alert.
const highPriorityAlertCount = 3

// Suggestion is a short recommendation for one top-ranked task.
type Suggestion struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Band  Band    `json:"band"`
	Why   string  `json:"why"` // the two most significant reasons
}

// Suggestions is what to work on next, with batch-level alerts.
type Suggestions struct {
	Suggestions []Suggestion  `json:"suggestions"`
	Alerts      []string      `json:"alerts"`
	Cycles      []graph.Cycle `json:"cycles"`
	Strategy    Strategy      `json:"strategy"`
}

// Suggest picks the top tasks of a scored batch and raises alerts for
// overdue work and for too many tasks in the critical band.
func Suggest(result *BatchResult, limit int) *Suggestions {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	out := &Suggestions{
		Suggestions: []Suggestion{},
		Alerts:      []string{},
		Cycles:      result.Cycles,
		Strategy:    result.Strategy,
	}
	if out.Cycles == nil {
		out.Cycles = []graph.Cycle{}
	}

	for i, r := range result.Results {
		if i >= limit {
			break
		}
		why := r.Explanation
		if len(why) > 2 {
			why = why[:2]
		}
		out.Suggestions = append(out.Suggestions, Suggestion{
			ID:    r.ID,
			Title: r.Title,
			Score: r.Score,
			Band:  r.Band,
			Why:   strings.Join(why, "; "),
		})
	}

	var overdue, critical int
	for _, r := range result.Results {
		if r.Overdue {
			overdue++
		}
		if r.Band == BandCritical {
			critical++
		}
	}
	if overdue > 0 {
		out.Alerts = append(out.Alerts,
			fmt.Sprintf("%d overdue %s found", overdue, plural(overdue, "task", "tasks")))
	}
	if critical >= highPriorityAlertCount {
		out.Alerts = append(out.Alerts, "Multiple high priority tasks! Consider reweighting.")
	}

	return out
}
