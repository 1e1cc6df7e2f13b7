package aicmd

// FeatureGates exposes runtime toggles read by the AI handlers.
type FeatureGates struct {
	AIEnabled func() bool
}

func (g FeatureGates) aiEnabled() bool {
	if g.AIEnabled == nil {
		return false
	}
	return g.AIEnabled()
}
