// Package scoring implements the taskrank prioritization engine.
// It combines time pressure, effort, stated importance and dependency
// position into one comparable, explainable score per task.
package scoring

import (
	"time"

	"github.com/taskrank/taskrank/pkg/graph"
	"github.com/taskrank/taskrank/pkg/task"
)

// BatchResult is the complete output of scoring one batch.
// Immutable once computed.
type BatchResult struct {
	Results  []ScoreResult          `json:"tasks"` // sorted, highest priority first
	Cycles   []graph.Cycle          `json:"cycles"`
	Errors   []task.ValidationError `json:"errors"`
	Strategy Strategy               `json:"strategy"`
	ScoredAt time.Time              `json:"scored_at"` // the single reference instant used for urgency
}

// ScoreResult is the priority score of a single task.
type ScoreResult struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Score       float64        `json:"score"`       // 0-100, higher = do sooner
	Explanation []string       `json:"explanation"` // largest weighted contribution first
	Factors     Factors        `json:"factors"`
	Breakdown   []FactorResult `json:"breakdown"` // fixed dimension order
	Band        Band           `json:"band"`
	Overdue     bool           `json:"overdue"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Index       int            `json:"index"` // position in the submitted batch
}

// Factors holds the four raw sub-scores, each in [0,100].
type Factors struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// FactorResult is the output of a single dimension for one task.
type FactorResult struct {
	Key          string  `json:"key"`          // machine key: "urgency"
	Name         string  `json:"name"`         // human name: "Urgency"
	Score        float64 `json:"score"`        // raw sub-score, 0-100
	Weight       float64 `json:"weight"`       // strategy weight applied
	Contribution float64 `json:"contribution"` // Weight * Score
	Reason       string  `json:"reason"`
}

// Band buckets a score into an actionable level.
type Band string

const (
	BandCritical Band = "critical"
	BandHigh     Band = "high"
	BandMedium   Band = "medium"
	BandLow      Band = "low"
)

// BandFromScore maps a final score to a priority band.
func BandFromScore(score float64) Band {
	switch {
	case score >= 80:
		return BandCritical
	case score >= 60:
		return BandHigh
	case score >= 40:
		return BandMedium
	default:
		return BandLow
	}
}
