package task

import (
	"fmt"
	"math"
	"strings"
)

// Normalize validates raw records and converts the valid ones into Tasks.
// A rejected record is reported by index and never aborts the batch.
func Normalize(records []Record) ([]Task, []ValidationError) {
	tasks := make([]Task, 0, len(records))
	var errs []ValidationError

	for i, r := range records {
		t, problems := normalizeOne(i, r)
		if len(problems) > 0 {
			errs = append(errs, ValidationError{
				Index:   i,
				Message: strings.Join(problems, "; "),
			})
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, errs
}

func normalizeOne(index int, r Record) (Task, []string) {
	var problems []string

	title := strings.TrimSpace(r.Title)
	if title == "" {
		problems = append(problems, "title is required")
	}

	importance := DefaultImportance
	if r.Importance != nil {
		v := *r.Importance
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			problems = append(problems, "importance must be a finite number")
		case v < MinImportance || v > MaxImportance:
			problems = append(problems, fmt.Sprintf("importance must be between %g and %g, got %g", MinImportance, MaxImportance, v))
		default:
			importance = v
		}
	}

	var hours *float64
	if r.EstimatedHours != nil {
		v := *r.EstimatedHours
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			problems = append(problems, "estimated_hours must be a finite number")
		case v < 0:
			problems = append(problems, fmt.Sprintf("estimated_hours must not be negative, got %g", v))
		default:
			h := v
			hours = &h
		}
	}

	if len(problems) > 0 {
		return Task{}, problems
	}

	// Records without an id are keyed by title, so two untitled-id records
	// sharing a title collide on the same graph node.
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = title
	}

	t := Task{
		ID:             id,
		Title:          title,
		EstimatedHours: hours,
		Importance:     importance,
		Dependencies:   dedupe(r.Dependencies),
		Index:          index,
	}
	if due, ok := ParseDate(r.DueDate); ok {
		t.Due = &due
	}

	return t, nil
}

// dedupe trims dependency ids, drops blanks and repeats, and keeps input order.
func dedupe(deps []string) []string {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(deps))
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		d = strings.TrimSpace(d)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
