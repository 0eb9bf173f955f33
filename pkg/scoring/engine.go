package scoring

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/taskrank/taskrank/internal/logging"
	"github.com/taskrank/taskrank/pkg/graph"
	"github.com/taskrank/taskrank/pkg/task"
)

// Engine runs all configured dimensions against a batch of tasks and
// produces a ranked BatchResult. It is safe for concurrent use.
type Engine struct {
	dimensions []Dimension
	registry   *Registry
	logger     *slog.Logger
	clock      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the strategy registry. Defaults to DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithDimensions replaces the default dimensions. The slice order is the
// tie-break order of the explanation.
func WithDimensions(dims ...Dimension) Option {
	return func(e *Engine) { e.dimensions = dims }
}

// WithLogger sets the debug logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the source of "now" for batches that do not fix it.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine creates a scoring engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		dimensions: DefaultDimensions(),
		registry:   DefaultRegistry(),
		logger:     logging.Discard(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's strategy registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Request selects how a batch is scored.
type Request struct {
	Strategy string             // preset name; unknown or empty falls back to the default
	Weights  map[string]float64 // custom weight overrides keyed w_u, w_i, w_e, w_d
	Now      time.Time          // zero means sample the engine clock once
}

// Analyze validates the records, scores every valid task and ranks them.
// Invalid records are reported in Errors and do not stop the rest.
func (e *Engine) Analyze(records []task.Record, req Request) *BatchResult {
	tasks, errs := task.Normalize(records)

	now := req.Now
	if now.IsZero() {
		now = e.clock()
	}

	if unknown := UnknownWeightKeys(req.Weights); len(unknown) > 0 {
		e.logger.Debug("ignoring unknown weight keys", "keys", unknown)
	}
	strategy := e.registry.Resolve(req.Strategy, req.Weights)
	if strategy.FellBack {
		e.logger.Debug("strategy fell back to default",
			"requested", req.Strategy, "strategy", strategy.Name)
	}

	result := e.AnalyzeTasks(tasks, strategy, now)
	if len(errs) > 0 {
		result.Errors = errs
	}

	e.logger.Debug("batch scored",
		"records", len(records),
		"scored", len(result.Results),
		"rejected", len(errs),
		"cycles", len(result.Cycles),
		"strategy", strategy.Name)

	return result
}

// AnalyzeTasks scores already validated tasks under a resolved strategy at a
// fixed instant.
func (e *Engine) AnalyzeTasks(tasks []task.Task, strategy Strategy, now time.Time) *BatchResult {
	specs := make([]graph.Spec, len(tasks))
	for i, t := range tasks {
		specs[i] = graph.Spec{Key: t.ID, DependsOn: t.Dependencies}
	}
	g := graph.Build(specs)

	result := &BatchResult{
		Results:  make([]ScoreResult, 0, len(tasks)),
		Cycles:   g.DetectCycles(),
		Errors:   []task.ValidationError{},
		Strategy: strategy,
		ScoredAt: now,
	}
	if result.Cycles == nil {
		result.Cycles = []graph.Cycle{}
	}

	for _, t := range tasks {
		result.Results = append(result.Results, e.ScoreTask(t, strategy, now, g))
	}

	sortResults(result.Results)
	return result
}

// ScoreTask evaluates all dimensions for one task and combines them under the
// strategy weights.
func (e *Engine) ScoreTask(t task.Task, strategy Strategy, now time.Time, g *graph.Graph) ScoreResult {
	env := Env{Now: now, Graph: g}

	sr := ScoreResult{
		ID:          t.ID,
		Title:       t.Title,
		Explanation: make([]string, 0, len(e.dimensions)),
		Breakdown:   make([]FactorResult, 0, len(e.dimensions)),
		DueDate:     t.Due,
		Overdue:     t.Due != nil && t.Due.Before(now),
		Index:       t.Index,
	}

	var total float64
	for _, d := range e.dimensions {
		dr := d.Evaluate(t, env)
		score := clampScore(dr.Score)
		weight := strategy.Weights.For(d.Key())
		fr := FactorResult{
			Key:          d.Key(),
			Name:         d.Name(),
			Score:        score,
			Weight:       weight,
			Contribution: weight * score,
			Reason:       dr.Reason,
		}
		sr.Breakdown = append(sr.Breakdown, fr)
		total += fr.Contribution

		switch d.Key() {
		case KeyUrgency:
			sr.Factors.Urgency = score
		case KeyImportance:
			sr.Factors.Importance = score
		case KeyEffort:
			sr.Factors.Effort = score
		case KeyDependency:
			sr.Factors.Dependency = score
		}
	}

	sr.Score = clampScore(math.Round(total*100) / 100)
	sr.Band = BandFromScore(sr.Score)

	ordered := make([]FactorResult, len(sr.Breakdown))
	copy(ordered, sr.Breakdown)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Contribution > ordered[j].Contribution
	})
	for _, fr := range ordered {
		sr.Explanation = append(sr.Explanation, fr.Reason)
	}

	return sr
}

// sortResults orders by score descending, then earlier due date with absent
// due dates last, then id, then input position.
func sortResults(results []ScoreResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.Index < b.Index
	})
}
