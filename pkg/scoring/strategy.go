package scoring

import (
	"fmt"
	"math"
	"sort"
)

// DefaultStrategy is used when no strategy is named or the name is unknown.
const DefaultStrategy = "smart"

// Wire keys for custom weights.
const (
	WeightUrgency    = "w_u"
	WeightImportance = "w_i"
	WeightEffort     = "w_e"
	WeightDependency = "w_d"
)

// WeightKeys lists the recognised custom weight keys in dimension order.
var WeightKeys = []string{WeightUrgency, WeightImportance, WeightEffort, WeightDependency}

// Weights is the per-dimension weight vector of a strategy.
type Weights struct {
	Urgency    float64 `json:"w_u" yaml:"w_u"`
	Importance float64 `json:"w_i" yaml:"w_i"`
	Effort     float64 `json:"w_e" yaml:"w_e"`
	Dependency float64 `json:"w_d" yaml:"w_d"`
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependency
}

// For returns the weight applied to the dimension with the given key.
func (w Weights) For(dimension string) float64 {
	switch dimension {
	case KeyUrgency:
		return w.Urgency
	case KeyImportance:
		return w.Importance
	case KeyEffort:
		return w.Effort
	case KeyDependency:
		return w.Dependency
	}
	return 0
}

// Normalized scales the weights to sum to 1. ok is false when the sum is not
// positive, in which case w is returned unchanged.
func (w Weights) Normalized() (Weights, bool) {
	sum := w.Sum()
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return w, false
	}
	return Weights{
		Urgency:    w.Urgency / sum,
		Importance: w.Importance / sum,
		Effort:     w.Effort / sum,
		Dependency: w.Dependency / sum,
	}, true
}

// Map returns the weights keyed by wire key.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		WeightUrgency:    w.Urgency,
		WeightImportance: w.Importance,
		WeightEffort:     w.Effort,
		WeightDependency: w.Dependency,
	}
}

func (w *Weights) set(key string, v float64) bool {
	switch key {
	case WeightUrgency:
		w.Urgency = v
	case WeightImportance:
		w.Importance = v
	case WeightEffort:
		w.Effort = v
	case WeightDependency:
		w.Dependency = v
	default:
		return false
	}
	return true
}

// Strategy is a resolved, normalised weight vector.
type Strategy struct {
	Name     string  `json:"name"`
	Weights  Weights `json:"weights"`
	Custom   bool    `json:"custom"`              // custom weights were merged in
	FellBack bool    `json:"fell_back,omitempty"` // the default strategy was substituted
}

// Presets returns the built-in strategy table as published. high_impact sums
// to 0.9; NewRegistry normalises every preset before use.
func Presets() map[string]Weights {
	return map[string]Weights{
		"smart":       {Urgency: 0.35, Importance: 0.30, Effort: 0.20, Dependency: 0.15},
		"fastest":     {Urgency: 0.15, Importance: 0.20, Effort: 0.60, Dependency: 0.05},
		"high_impact": {Urgency: 0.15, Importance: 0.60, Effort: 0.10, Dependency: 0.05},
		"deadline":    {Urgency: 0.70, Importance: 0.15, Effort: 0.10, Dependency: 0.05},
	}
}

// Registry holds the named strategies. It is never mutated after construction
// and is safe for concurrent use.
type Registry struct {
	presets map[string]Weights
}

// NewRegistry returns a registry of the built-in presets plus extra. Extra
// presets are normalised and may override built-ins; a preset whose weights
// do not sum to a positive value is rejected.
func NewRegistry(extra map[string]Weights) (*Registry, error) {
	r := &Registry{presets: make(map[string]Weights)}
	for name, w := range Presets() {
		r.presets[name] = normalizePreset(w)
	}
	for name, w := range extra {
		if name == "" {
			return nil, fmt.Errorf("strategy name must not be empty")
		}
		norm, ok := clampWeights(w).Normalized()
		if !ok {
			return nil, fmt.Errorf("strategy %q: weights must sum to a positive value", name)
		}
		r.presets[name] = norm
	}
	return r, nil
}

var defaultRegistry, _ = NewRegistry(nil)

// DefaultRegistry returns the registry of built-in presets.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the weights of a named strategy.
func (r *Registry) Lookup(name string) (Weights, bool) {
	w, ok := r.presets[name]
	return w, ok
}

// Resolve starts from the named preset, falling back to the default strategy
// for unknown names, overrides the recognised keys present in custom and
// renormalises. Negative and non-finite custom weights count as 0. When the
// merged weights do not sum to a positive value the default strategy is
// returned unmodified. Unrecognised keys are ignored.
func (r *Registry) Resolve(name string, custom map[string]float64) Strategy {
	base, ok := r.presets[name]
	if !ok {
		return r.resolveFrom(DefaultStrategy, r.presets[DefaultStrategy], custom, name != "")
	}
	return r.resolveFrom(name, base, custom, false)
}

func (r *Registry) resolveFrom(name string, base Weights, custom map[string]float64, fellBack bool) Strategy {
	s := Strategy{Name: name, Weights: base, FellBack: fellBack}

	merged := base
	for _, key := range WeightKeys {
		v, ok := custom[key]
		if !ok {
			continue
		}
		merged.set(key, clampWeight(v))
		s.Custom = true
	}
	if !s.Custom {
		return s
	}

	norm, ok := merged.Normalized()
	if !ok {
		return Strategy{Name: DefaultStrategy, Weights: r.presets[DefaultStrategy], FellBack: true}
	}
	s.Weights = norm
	return s
}

// normalizePreset scales a built-in preset to sum to 1. Presets already
// summing to 1 are kept as written.
func normalizePreset(w Weights) Weights {
	if math.Abs(w.Sum()-1) <= 1e-9 {
		return w
	}
	norm, _ := w.Normalized()
	return norm
}

// UnknownWeightKeys returns the keys of custom that Resolve ignores, sorted.
func UnknownWeightKeys(custom map[string]float64) []string {
	var unknown []string
	for key := range custom {
		var w Weights
		if !w.set(key, 0) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func clampWeight(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampWeights(w Weights) Weights {
	return Weights{
		Urgency:    clampWeight(w.Urgency),
		Importance: clampWeight(w.Importance),
		Effort:     clampWeight(w.Effort),
		Dependency: clampWeight(w.Dependency),
	}
}
