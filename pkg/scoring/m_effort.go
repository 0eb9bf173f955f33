package scoring

import (
	"fmt"
	"math"

	"github.com/taskrank/taskrank/pkg/task"
)

// EffortMetric rewards quick tasks. Between the two thresholds the score
// falls on a log scale, so the first extra hours cost more than later ones.
type EffortMetric struct {
	QuickWinHours    float64 // at or below: 100
	LargeEffortHours float64 // at or above: Floor
	Floor            float64
}

func (m *EffortMetric) Key() string  { return KeyEffort }
func (m *EffortMetric) Name() string { return "Effort" }

func (m *EffortMetric) Evaluate(t task.Task, env Env) DimensionResult {
	if t.EstimatedHours == nil {
		return DimensionResult{Score: neutralScore, Reason: "Effort unknown"}
	}

	h := *t.EstimatedHours

	if h <= m.QuickWinHours {
		return DimensionResult{Score: 100, Reason: fmt.Sprintf("Quick win (%gh)", h)}
	}
	if h >= m.LargeEffortHours || m.QuickWinHours <= 0 {
		return DimensionResult{
			Score:  clampScore(m.Floor),
			Reason: fmt.Sprintf("Large effort required (%gh)", h),
		}
	}

	frac := math.Log(h/m.QuickWinHours) / math.Log(m.LargeEffortHours/m.QuickWinHours)
	score := clampScore(100 - (100-m.Floor)*frac)

	reason := fmt.Sprintf("Moderate effort (%gh)", h)
	if score >= 70 {
		reason = fmt.Sprintf("Low effort (%gh)", h)
	}

	return DimensionResult{Score: score, Reason: reason}
}
