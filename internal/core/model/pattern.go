package model

import "time"

// Phase identifies one stage of the breathing cycle.
type Phase string

const (
	PhaseInhale  Phase = "inhale"
	PhaseHoldIn  Phase = "hold_in"
	PhaseExhale  Phase = "exhale"
	PhaseHoldOut Phase = "hold_out"
)

// Next returns the phase that follows in the fixed cycle order,
// wrapping from the final hold back to inhale.
func (phase Phase) Next() Phase {
	switch phase {
	case PhaseInhale:
		return PhaseHoldIn
	case PhaseHoldIn:
		return PhaseExhale
	case PhaseExhale:
		return PhaseHoldOut
	default:
		return PhaseInhale
	}
}

// BreathPattern defines the per-phase durations for a session.
// Holds may be zero; inhale and exhale are expected to be positive.
type BreathPattern struct {
	Inhale  time.Duration
	HoldIn  time.Duration
	Exhale  time.Duration
	HoldOut time.Duration
}

// Duration returns the configured duration of the given phase.
func (pattern BreathPattern) Duration(phase Phase) time.Duration {
	switch phase {
	case PhaseInhale:
		return pattern.Inhale
	case PhaseHoldIn:
		return pattern.HoldIn
	case PhaseExhale:
		return pattern.Exhale
	case PhaseHoldOut:
		return pattern.HoldOut
	default:
		return 0
	}
}

// Total returns the length of one full cycle.
func (pattern BreathPattern) Total() time.Duration {
	return pattern.Inhale + pattern.HoldIn + pattern.Exhale + pattern.HoldOut
}

// SessionConfig contains runtime settings for the session Timer.
// Replacing it requires an explicit Apply, which resets the session.
type SessionConfig struct {
	Length  time.Duration
	Pattern BreathPattern
}
