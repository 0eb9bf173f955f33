package scoring

import (
	"math"
	"time"

	"github.com/taskrank/taskrank/pkg/graph"
	"github.com/taskrank/taskrank/pkg/task"
)

// Dimension keys, also the weight order used to break explanation ties.
const (
	KeyUrgency    = "urgency"
	KeyImportance = "importance"
	KeyEffort     = "effort"
	KeyDependency = "dependency"
)

// neutralScore is substituted when the input signal is absent.
const neutralScore = 50.0

// Dimension is the interface that all scoring dimensions implement.
type Dimension interface {
	// Key returns the machine-readable dimension identifier.
	Key() string
	// Name returns the human-readable dimension name.
	Name() string
	// Evaluate computes the raw [0,100] sub-score for one task.
	Evaluate(t task.Task, env Env) DimensionResult
}

// Env is the batch-wide context shared by every dimension evaluation.
type Env struct {
	Now   time.Time    // sampled once per batch
	Graph *graph.Graph // nil means no dependency information
}

// DimensionResult is the raw output of one dimension.
type DimensionResult struct {
	Score  float64
	Reason string
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
