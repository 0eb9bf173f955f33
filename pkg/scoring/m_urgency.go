package scoring

import (
	"fmt"
	"math"

	"github.com/taskrank/taskrank/pkg/task"
)

// UrgencyMetric scores time pressure from the due date.
//
// Future due dates fall linearly from OverdueFloor (due now) to Floor (due at
// or beyond FarHorizonDays). Overdue tasks start at OverdueFloor and saturate
// toward 100 as they grow older, so any overdue task outranks any future one.
type UrgencyMetric struct {
	FarHorizonDays        float64
	Floor                 float64
	OverdueFloor          float64
	OverdueSaturationDays float64
}

func (m *UrgencyMetric) Key() string  { return KeyUrgency }
func (m *UrgencyMetric) Name() string { return "Urgency" }

func (m *UrgencyMetric) Evaluate(t task.Task, env Env) DimensionResult {
	if t.Due == nil {
		return DimensionResult{Score: neutralScore, Reason: "No due date set"}
	}

	days := t.Due.Sub(env.Now).Hours() / 24

	if days < 0 {
		overdue := -days
		saturation := m.OverdueSaturationDays
		if saturation <= 0 {
			saturation = 1
		}
		score := 100 - (100-m.OverdueFloor)*math.Exp(-overdue/saturation)
		n := int(math.Ceil(overdue))
		return DimensionResult{
			Score:  clampScore(score),
			Reason: fmt.Sprintf("Past due by %d %s", n, plural(n, "day", "days")),
		}
	}

	if m.FarHorizonDays <= 0 || days >= m.FarHorizonDays {
		return DimensionResult{
			Score:  clampScore(m.Floor),
			Reason: fmt.Sprintf("Due in %d days, no time pressure yet", int(days)),
		}
	}

	score := m.Floor + (m.OverdueFloor-m.Floor)*(1-days/m.FarHorizonDays)

	reason := "Due within 24 hours"
	if days >= 1 {
		n := int(days)
		reason = fmt.Sprintf("Due in %d %s", n, plural(n, "day", "days"))
	}

	return DimensionResult{Score: clampScore(score), Reason: reason}
}
