package scoring_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/taskrank/taskrank/pkg/scoring"
)

func TestPresetsSumToOne(t *testing.T) {
	reg := scoring.DefaultRegistry()
	for name := range scoring.Presets() {
		w, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("preset %s not registered", name)
		}
		if math.Abs(w.Sum()-1) > 1e-9 {
			t.Errorf("preset %s sums to %f, want 1", name, w.Sum())
		}

		s := reg.Resolve(name, nil)
		if s.Name != name || s.Custom || s.FellBack {
			t.Errorf("Resolve(%s, nil) = %+v", name, s)
		}
		if math.Abs(s.Weights.Sum()-1) > 1e-9 {
			t.Errorf("Resolve(%s, nil) weights sum to %f, want 1", name, s.Weights.Sum())
		}
	}
}

func TestHighImpactPresetNormalised(t *testing.T) {
	got := scoring.DefaultRegistry().Resolve("high_impact", nil).Weights
	want := scoring.Weights{
		Urgency:    0.15 / 0.9,
		Importance: 0.60 / 0.9,
		Effort:     0.10 / 0.9,
		Dependency: 0.05 / 0.9,
	}
	if !weightsClose(got, want) {
		t.Errorf("high_impact = %+v, want %+v", got, want)
	}

	// Published presets that already sum to 1 keep their exact values.
	deadline, _ := scoring.DefaultRegistry().Lookup("deadline")
	if deadline.Urgency != 0.70 {
		t.Errorf("deadline w_u = %v, want 0.70", deadline.Urgency)
	}
}

func TestResolve(t *testing.T) {
	reg := scoring.DefaultRegistry()
	smart, _ := reg.Lookup("smart")
	fastest, _ := reg.Lookup("fastest")

	tests := []struct {
		name         string
		strategy     string
		custom       map[string]float64
		wantName     string
		wantWeights  scoring.Weights
		wantCustom   bool
		wantFellBack bool
	}{
		{
			name:        "preset",
			strategy:    "fastest",
			wantName:    "fastest",
			wantWeights: fastest,
		},
		{
			name:         "unknown falls back",
			strategy:     "random",
			wantName:     "smart",
			wantWeights:  smart,
			wantFellBack: true,
		},
		{
			name:        "empty name is default",
			strategy:    "",
			wantName:    "smart",
			wantWeights: smart,
		},
		{
			name:     "zero urgency renormalised",
			strategy: "smart",
			custom:   map[string]float64{"w_u": 0},
			wantName: "smart",
			wantWeights: scoring.Weights{
				Urgency:    0,
				Importance: 0.30 / 0.65,
				Effort:     0.20 / 0.65,
				Dependency: 0.15 / 0.65,
			},
			wantCustom: true,
		},
		{
			name:     "full override",
			strategy: "deadline",
			custom:   map[string]float64{"w_u": 2, "w_i": 1, "w_e": 1, "w_d": 0},
			wantName: "deadline",
			wantWeights: scoring.Weights{
				Urgency:    0.5,
				Importance: 0.25,
				Effort:     0.25,
			},
			wantCustom: true,
		},
		{
			name:     "negative clamped to zero",
			strategy: "smart",
			custom:   map[string]float64{"w_d": -5},
			wantName: "smart",
			wantWeights: scoring.Weights{
				Urgency:    0.35 / 0.85,
				Importance: 0.30 / 0.85,
				Effort:     0.20 / 0.85,
			},
			wantCustom: true,
		},
		{
			name:         "all zero falls back unmodified",
			strategy:     "fastest",
			custom:       map[string]float64{"w_u": 0, "w_i": 0, "w_e": 0, "w_d": -1},
			wantName:     "smart",
			wantWeights:  smart,
			wantFellBack: true,
		},
		{
			name:        "unknown keys ignored",
			strategy:    "fastest",
			custom:      map[string]float64{"speed": 10},
			wantName:    "fastest",
			wantWeights: fastest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Resolve(tt.strategy, tt.custom)
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Custom != tt.wantCustom {
				t.Errorf("Custom = %v, want %v", got.Custom, tt.wantCustom)
			}
			if got.FellBack != tt.wantFellBack {
				t.Errorf("FellBack = %v, want %v", got.FellBack, tt.wantFellBack)
			}
			if !weightsClose(got.Weights, tt.wantWeights) {
				t.Errorf("Weights = %+v, want %+v", got.Weights, tt.wantWeights)
			}
			if math.Abs(got.Weights.Sum()-1) > 1e-9 {
				t.Errorf("weights sum to %f, want 1", got.Weights.Sum())
			}
		})
	}
}

func TestResolveWeightsAlwaysValid(t *testing.T) {
	reg := scoring.DefaultRegistry()
	values := []float64{-1, 0, 0.1, 1, 7, math.NaN(), math.Inf(1)}

	for _, name := range append(reg.Names(), "nope") {
		for _, v := range values {
			for _, key := range scoring.WeightKeys {
				s := reg.Resolve(name, map[string]float64{key: v})
				w := s.Weights
				if math.Abs(w.Sum()-1) > 1e-9 {
					t.Errorf("%s %s=%v: sum %f", name, key, v, w.Sum())
				}
				for _, c := range []float64{w.Urgency, w.Importance, w.Effort, w.Dependency} {
					if c < 0 || math.IsNaN(c) {
						t.Errorf("%s %s=%v: invalid component %f", name, key, v, c)
					}
				}
			}
		}
	}
}

func TestNewRegistryExtraPresets(t *testing.T) {
	reg, err := scoring.NewRegistry(map[string]scoring.Weights{
		"focus": {Urgency: 2, Importance: 2, Effort: 4, Dependency: 2},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	want := []string{"deadline", "fastest", "focus", "high_impact", "smart"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	w, ok := reg.Lookup("focus")
	if !ok {
		t.Fatal("focus preset not registered")
	}
	if !weightsClose(w, scoring.Weights{Urgency: 0.2, Importance: 0.2, Effort: 0.4, Dependency: 0.2}) {
		t.Errorf("focus weights = %+v, want normalised", w)
	}

	// Built-in registry is untouched.
	if _, ok := scoring.DefaultRegistry().Lookup("focus"); ok {
		t.Error("extra preset leaked into the default registry")
	}
}

func TestNewRegistryRejectsEmptyWeights(t *testing.T) {
	if _, err := scoring.NewRegistry(map[string]scoring.Weights{"broken": {}}); err == nil {
		t.Error("expected error for zero-sum preset")
	}
	if _, err := scoring.NewRegistry(map[string]scoring.Weights{"": {Urgency: 1}}); err == nil {
		t.Error("expected error for empty preset name")
	}
}

func TestUnknownWeightKeys(t *testing.T) {
	got := scoring.UnknownWeightKeys(map[string]float64{"w_u": 1, "zeta": 1, "alpha": 2})
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnknownWeightKeys() = %v, want %v", got, want)
	}
	if got := scoring.UnknownWeightKeys(nil); len(got) != 0 {
		t.Errorf("UnknownWeightKeys(nil) = %v, want empty", got)
	}
}

func weightsClose(a, b scoring.Weights) bool {
	const eps = 1e-9
	return math.Abs(a.Urgency-b.Urgency) < eps &&
		math.Abs(a.Importance-b.Importance) < eps &&
		math.Abs(a.Effort-b.Effort) < eps &&
		math.Abs(a.Dependency-b.Dependency) < eps
}

func TestWeightsMap(t *testing.T) {
	w := scoring.Weights{Urgency: 0.1, Importance: 0.2, Effort: 0.3, Dependency: 0.4}
	want := map[string]float64{"w_u": 0.1, "w_i": 0.2, "w_e": 0.3, "w_d": 0.4}
	if got := w.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}
