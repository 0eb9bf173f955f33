package scoring

// DefaultDimensions returns the standard dimensions with default thresholds.
func DefaultDimensions() []Dimension {
	return DimensionsFromParams(DefaultParams())
}

// DimensionsFromParams builds the four dimensions in their fixed tie-break
// order: urgency, importance, effort, dependency.
func DimensionsFromParams(p Params) []Dimension {
	return []Dimension{
		&UrgencyMetric{
			FarHorizonDays:        p.UrgencyFarHorizonDays,
			Floor:                 p.UrgencyFloor,
			OverdueFloor:          p.UrgencyOverdueFloor,
			OverdueSaturationDays: p.UrgencyOverdueSaturationDays,
		},
		&ImportanceMetric{
			HighThreshold: p.ImportanceHighThreshold,
			LowThreshold:  p.ImportanceLowThreshold,
		},
		&EffortMetric{
			QuickWinHours:    p.EffortQuickWinHours,
			LargeEffortHours: p.EffortLargeEffortHours,
			Floor:            p.EffortFloor,
		},
		&DependencyMetric{
			Base:         p.DependencyBase,
			PerDependent: p.DependencyPerDependent,
			MaxBonus:     p.DependencyMaxBonus,
			PerBlocker:   p.DependencyPerBlocker,
		},
	}
}
