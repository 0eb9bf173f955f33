package scoring

import (
	"fmt"
	"math"

	"github.com/taskrank/taskrank/pkg/task"
)

// DependencyMetric scores a task's position in the dependency graph. Tasks
// that unblock others gain, tasks still waiting on others in the batch lose.
// Dependencies outside the batch are untracked and do not count.
type DependencyMetric struct {
	Base         float64
	PerDependent float64
	MaxBonus     float64 // cap on the dependents bonus
	PerBlocker   float64
}

func (m *DependencyMetric) Key() string  { return KeyDependency }
func (m *DependencyMetric) Name() string { return "Dependency pressure" }

func (m *DependencyMetric) Evaluate(t task.Task, env Env) DimensionResult {
	if env.Graph == nil {
		return DimensionResult{Score: clampScore(m.Base), Reason: "No dependencies"}
	}

	dependents := env.Graph.Dependents(t.ID)
	blockers := env.Graph.Blockers(t.ID)

	bonus := math.Min(m.PerDependent*float64(dependents), m.MaxBonus)
	score := clampScore(m.Base + bonus - m.PerBlocker*float64(blockers))

	var reason string
	switch {
	case dependents == 0 && blockers == 0:
		reason = "No dependencies"
	case dependents >= blockers:
		reason = fmt.Sprintf("Unblocks %d %s", dependents, plural(dependents, "task", "tasks"))
	default:
		reason = fmt.Sprintf("Blocked by %d unresolved %s", blockers, plural(blockers, "dependency", "dependencies"))
	}

	return DimensionResult{Score: score, Reason: reason}
}
