package scoring

import (
	"fmt"

	"github.com/taskrank/taskrank/pkg/task"
)

// ImportanceMetric rescales the stated 1-10 importance onto 0-100.
type ImportanceMetric struct {
	HighThreshold float64
	LowThreshold  float64
}

func (m *ImportanceMetric) Key() string  { return KeyImportance }
func (m *ImportanceMetric) Name() string { return "Importance" }

func (m *ImportanceMetric) Evaluate(t task.Task, env Env) DimensionResult {
	raw := t.Importance
	if raw == 0 {
		raw = task.DefaultImportance
	}
	if raw < task.MinImportance {
		raw = task.MinImportance
	}
	if raw > task.MaxImportance {
		raw = task.MaxImportance
	}

	score := (raw - task.MinImportance) / (task.MaxImportance - task.MinImportance) * 100

	level := "Medium"
	switch {
	case raw >= m.HighThreshold:
		level = "High"
	case raw <= m.LowThreshold:
		level = "Low"
	}

	return DimensionResult{
		Score:  clampScore(score),
		Reason: fmt.Sprintf("%s stated importance (%g/10)", level, raw),
	}
}
