package automationcmd

// FeatureGates exposes the toggles an automation run depends on. Both
// must be open.
type FeatureGates struct {
	AIEnabled         func() bool
	AutomationEnabled func() bool
}

func (g FeatureGates) enabled() bool {
	if g.AIEnabled == nil || !g.AIEnabled() {
		return false
	}
	if g.AutomationEnabled == nil {
		return true
	}
	return g.AutomationEnabled()
}
