package scoring_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/taskrank/taskrank/pkg/graph"
	"github.com/taskrank/taskrank/pkg/scoring"
	"github.com/taskrank/taskrank/pkg/task"
)

func imp(v float64) *float64 { return &v }

func TestAnalyzeOverdueScenario(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{{
		ID:             "late",
		Title:          "Late task",
		DueDate:        "2020-01-01T00:00:00Z",
		EstimatedHours: hours(2),
		Importance:     imp(5),
	}}, scoring.Request{Strategy: "smart", Now: refNow})

	if len(result.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(result.Results))
	}
	r := result.Results[0]
	if r.Score <= 50 {
		t.Errorf("overdue score = %.2f, want > 50", r.Score)
	}
	if !approx(r.Score, 72.45) {
		t.Errorf("overdue score = %.2f, want about 72.45", r.Score)
	}
	if !r.Overdue {
		t.Error("expected task to be flagged overdue")
	}
	if r.Band != scoring.BandHigh {
		t.Errorf("Band = %s, want %s", r.Band, scoring.BandHigh)
	}
	if !strings.HasPrefix(r.Explanation[0], "Past due by") {
		t.Errorf("Explanation[0] = %q, want the overdue reason first", r.Explanation[0])
	}
}

func TestAnalyzeFastestPrefersQuickWins(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{
		{ID: "big", Title: "Big", EstimatedHours: hours(8), Importance: imp(5)},
		{ID: "quick", Title: "Quick", EstimatedHours: hours(0.5), Importance: imp(5)},
	}, scoring.Request{Strategy: "fastest", Now: refNow})

	if len(result.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(result.Results))
	}
	if result.Results[0].ID != "quick" {
		t.Errorf("first result = %s, want quick", result.Results[0].ID)
	}
	if result.Strategy.Name != "fastest" {
		t.Errorf("Strategy = %s, want fastest", result.Strategy.Name)
	}
}

func TestAnalyzeMutualDependencyCycle(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{
		{ID: "a", Title: "A", Dependencies: []string{"b"}},
		{ID: "b", Title: "B", Dependencies: []string{"a"}},
	}, scoring.Request{Now: refNow})

	if len(result.Cycles) == 0 {
		t.Fatal("expected at least one cycle")
	}
	c := result.Cycles[0]
	if !c.Contains("a") || !c.Contains("b") {
		t.Errorf("cycle %v should contain a and b", c)
	}
	if len(result.Results) != 2 {
		t.Errorf("cycles must not stop scoring, got %d results", len(result.Results))
	}
}

func TestAnalyzeAcyclicHasEmptyCycles(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{
		{ID: "a", Title: "A", Dependencies: []string{"b", "ghost"}},
		{ID: "b", Title: "B"},
	}, scoring.Request{Now: refNow})

	if result.Cycles == nil || len(result.Cycles) != 0 {
		t.Errorf("Cycles = %#v, want empty non-nil", result.Cycles)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Errorf("Errors = %#v, want empty non-nil", result.Errors)
	}
}

func TestAnalyzePartialSuccess(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{
		{ID: "ok", Title: "Fine"},
		{ID: "bad"},
		{ID: "worse", Title: "Too important", Importance: imp(11)},
		{ID: "also-ok", Title: "Also fine"},
	}, scoring.Request{Now: refNow})

	if len(result.Results) != 2 {
		t.Errorf("got %d results, want 2", len(result.Results))
	}
	var indices []int
	for _, e := range result.Errors {
		indices = append(indices, e.Index)
	}
	if !reflect.DeepEqual(indices, []int{1, 2}) {
		t.Errorf("error indices = %v, want [1 2]", indices)
	}
}

func TestAnalyzeCustomWeights(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{
		{ID: "a", Title: "A", DueDate: "2020-01-01"},
	}, scoring.Request{
		Strategy: "smart",
		Weights:  map[string]float64{"w_u": 0, "bogus": 3},
		Now:      refNow,
	})

	s := result.Strategy
	if !s.Custom {
		t.Error("expected custom strategy")
	}
	if s.Weights.Urgency != 0 {
		t.Errorf("w_u = %f, want 0", s.Weights.Urgency)
	}
	r := result.Results[0]
	for _, fr := range r.Breakdown {
		if fr.Key == scoring.KeyUrgency && fr.Contribution != 0 {
			t.Errorf("urgency contribution = %f, want 0", fr.Contribution)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	engine := scoring.NewEngine()
	records := []task.Record{
		{ID: "a", Title: "A", DueDate: "2025-03-05", EstimatedHours: hours(3), Dependencies: []string{"b"}},
		{ID: "b", Title: "B", Importance: imp(9)},
		{ID: "c", Title: "C", DueDate: "2025-02-01", Dependencies: []string{"a", "c"}},
		{Title: "D"},
	}
	req := scoring.Request{Strategy: "high_impact", Now: refNow}

	first := engine.Analyze(records, req)
	second := engine.Analyze(records, req)
	if !reflect.DeepEqual(first, second) {
		t.Error("scoring the same batch twice produced different results")
	}
}

func TestAnalyzeSamplesClockOnce(t *testing.T) {
	calls := 0
	engine := scoring.NewEngine(scoring.WithClock(func() time.Time {
		calls++
		return refNow.Add(time.Duration(calls) * time.Hour)
	}))

	result := engine.Analyze([]task.Record{
		{ID: "a", Title: "A", DueDate: "2025-03-02"},
		{ID: "b", Title: "B", DueDate: "2025-03-02"},
	}, scoring.Request{})

	if calls != 1 {
		t.Errorf("clock sampled %d times, want 1", calls)
	}
	if !result.ScoredAt.Equal(refNow.Add(time.Hour)) {
		t.Errorf("ScoredAt = %v, want %v", result.ScoredAt, refNow.Add(time.Hour))
	}
	if result.Results[0].Factors.Urgency != result.Results[1].Factors.Urgency {
		t.Error("tasks with the same due date got different urgency")
	}
}

func TestScoreBounds(t *testing.T) {
	engine := scoring.NewEngine()
	records := []task.Record{
		{ID: "1", Title: "max", DueDate: "1999-01-01", EstimatedHours: hours(0), Importance: imp(10)},
		{ID: "2", Title: "min", DueDate: "2099-01-01", EstimatedHours: hours(500), Importance: imp(1), Dependencies: []string{"1", "3", "4", "5"}},
		{ID: "3", Title: "mid", Dependencies: []string{"1"}},
		{ID: "4", Title: "x", Dependencies: []string{"1"}},
		{ID: "5", Title: "y", Dependencies: []string{"1"}},
		{ID: "6", Title: "z", Dependencies: []string{"1"}},
	}

	for _, name := range engine.Registry().Names() {
		result := engine.Analyze(records, scoring.Request{Strategy: name, Now: refNow})
		for _, r := range result.Results {
			if r.Score < 0 || r.Score > 100 {
				t.Errorf("%s: %s scored %f", name, r.ID, r.Score)
			}
		}
	}
}

func TestExplanationOrder(t *testing.T) {
	engine := scoring.NewEngine()
	s := engine.Registry().Resolve("smart", nil)

	r := engine.ScoreTask(task.Task{
		ID:             "t",
		Title:          "T",
		EstimatedHours: hours(0.5),
		Importance:     10,
	}, s, refNow, nil)

	want := []string{
		"High stated importance (10/10)",
		"Quick win (0.5h)",
		"No due date set",
		"No dependencies",
	}
	if !reflect.DeepEqual(r.Explanation, want) {
		t.Errorf("Explanation = %v, want %v", r.Explanation, want)
	}

	wantKeys := []string{scoring.KeyUrgency, scoring.KeyImportance, scoring.KeyEffort, scoring.KeyDependency}
	for i, fr := range r.Breakdown {
		if fr.Key != wantKeys[i] {
			t.Errorf("Breakdown[%d] = %s, want %s", i, fr.Key, wantKeys[i])
		}
	}
}

func TestExplanationTiesKeepDimensionOrder(t *testing.T) {
	engine := scoring.NewEngine()
	s := scoring.Strategy{Name: "flat", Weights: scoring.Weights{Urgency: 0.25, Importance: 0.25, Effort: 0.25, Dependency: 0.25}}

	r := engine.ScoreTask(task.Task{ID: "t", Title: "T", Importance: 5.5}, s, refNow, nil)

	// Every factor scores 50.
	want := []string{
		"No due date set",
		"Medium stated importance (5.5/10)",
		"Effort unknown",
		"No dependencies",
	}
	if !reflect.DeepEqual(r.Explanation, want) {
		t.Errorf("Explanation = %v, want %v", r.Explanation, want)
	}
	if r.Score != 50 {
		t.Errorf("Score = %f, want 50", r.Score)
	}
}

func TestSortTieBreaks(t *testing.T) {
	engine := scoring.NewEngine()

	result := engine.Analyze([]task.Record{
		{ID: "zeta", Title: "no due"},
		{ID: "alpha", Title: "no due"},
		{ID: "late", Title: "far", DueDate: "2025-05-01"},
		{ID: "early", Title: "far", DueDate: "2025-04-15"},
		{Title: "dup"},
		{Title: "dup"},
	}, scoring.Request{Now: refNow})

	var got []string
	for _, r := range result.Results {
		got = append(got, r.ID)
	}
	// Far-off due dates sit at the urgency floor and all score below the
	// neutral no-due-date tasks.
	want := []string{"alpha", "dup", "dup", "zeta", "early", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if result.Results[1].Index != 4 || result.Results[2].Index != 5 {
		t.Errorf("duplicate ids not kept in input order: %d, %d", result.Results[1].Index, result.Results[2].Index)
	}
}

func TestAnalyzeTasksWithCustomDimensions(t *testing.T) {
	engine := scoring.NewEngine(scoring.WithDimensions(&scoring.EffortMetric{
		QuickWinHours: 2, LargeEffortHours: 10, Floor: 0,
	}))
	s := scoring.Strategy{Name: "effort-only", Weights: scoring.Weights{Effort: 1}}

	result := engine.AnalyzeTasks([]task.Task{
		{ID: "a", Title: "A", EstimatedHours: hours(10)},
		{ID: "b", Title: "B", EstimatedHours: hours(2)},
	}, s, refNow)

	if result.Results[0].ID != "b" || result.Results[0].Score != 100 {
		t.Errorf("top = %+v, want b at 100", result.Results[0])
	}
	if result.Results[1].Score != 0 {
		t.Errorf("a score = %f, want 0", result.Results[1].Score)
	}
	if len(result.Results[0].Breakdown) != 1 {
		t.Errorf("breakdown has %d entries, want 1", len(result.Results[0].Breakdown))
	}
}

func TestBandFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  scoring.Band
	}{
		{100, scoring.BandCritical},
		{80, scoring.BandCritical},
		{79.99, scoring.BandHigh},
		{60, scoring.BandHigh},
		{40, scoring.BandMedium},
		{39.99, scoring.BandLow},
		{0, scoring.BandLow},
	}
	for _, tt := range tests {
		if got := scoring.BandFromScore(tt.score); got != tt.want {
			t.Errorf("BandFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreTaskSelfDependency(t *testing.T) {
	engine := scoring.NewEngine()
	g := graph.Build([]graph.Spec{{Key: "a", DependsOn: []string{"a"}}})

	r := engine.ScoreTask(task.Task{ID: "a", Title: "A", Importance: 5}, engine.Registry().Resolve("smart", nil), refNow, g)
	if r.Factors.Dependency != 45 {
		t.Errorf("self-dependent pressure = %f, want 45", r.Factors.Dependency)
	}
}
