package animation

import "breathflow/internal/core/model"

// Config contains breathing-circle animation values.
type Config struct {
	// MinScale and MaxScale bound the circle diameter as a fraction of
	// the available square.
	MinScale float64
	MaxScale float64
}

// Scale maps the current phase and within-phase progress to a circle
// scale. The circle grows through the inhale, rests full through the
// first hold, shrinks through the exhale and rests empty through the
// second hold.
func (config Config) Scale(phase model.Phase, progress float64) float64 {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	var fraction float64
	switch phase {
	case model.PhaseInhale:
		fraction = easeInOut(progress)
	case model.PhaseHoldIn:
		fraction = 1
	case model.PhaseExhale:
		fraction = 1 - easeInOut(progress)
	default:
		fraction = 0
	}

	return config.MinScale + (config.MaxScale-config.MinScale)*fraction
}

// easeInOut is the smoothstep curve; it keeps the circle from snapping
// at phase boundaries.
func easeInOut(value float64) float64 {
	return value * value * (3 - 2*value)
}
