package scoring

// Params holds the tunable thresholds of every scoring dimension.
type Params struct {
	// Urgency
	UrgencyFarHorizonDays        float64 // due dates at least this far out get UrgencyFloor
	UrgencyFloor                 float64
	UrgencyOverdueFloor          float64 // minimum score of any overdue task
	UrgencyOverdueSaturationDays float64 // e-folding time toward 100 once overdue

	// Effort
	EffortQuickWinHours    float64 // at or below: 100
	EffortLargeEffortHours float64 // at or above: EffortFloor
	EffortFloor            float64

	// Importance
	ImportanceHighThreshold float64
	ImportanceLowThreshold  float64

	// Dependency pressure
	DependencyBase         float64
	DependencyPerDependent float64
	DependencyMaxBonus     float64 // cap on the dependents bonus
	DependencyPerBlocker   float64
}

// DefaultParams returns the default dimension thresholds.
func DefaultParams() Params {
	return Params{
		UrgencyFarHorizonDays:        30,
		UrgencyFloor:                 10,
		UrgencyOverdueFloor:          90,
		UrgencyOverdueSaturationDays: 7,

		EffortQuickWinHours:    1,
		EffortLargeEffortHours: 40,
		EffortFloor:            10,

		ImportanceHighThreshold: 8,
		ImportanceLowThreshold:  3,

		DependencyBase:         50,
		DependencyPerDependent: 10,
		DependencyMaxBonus:     40,
		DependencyPerBlocker:   15,
	}
}
