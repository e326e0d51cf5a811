package session

import (
	"time"

	"breathflow/internal/core/model"
)

// minPhaseDuration guards the progress division when a pattern carries a
// non-positive duration for the current phase. It applies only to the
// division: the rollover comparison uses the raw duration, so a
// zero-length hold still passes in a single tick.
const minPhaseDuration = time.Second

// phaseStep advances phase-local time by delta and returns the resulting
// phase, elapsed-in-phase value and within-phase progress in [0,1].
// Pure function; the cycle wraps from the final hold back to inhale.
func phaseStep(pattern model.BreathPattern, phase model.Phase, elapsed, delta time.Duration) (model.Phase, time.Duration, float64) {
	elapsed += delta
	if elapsed >= pattern.Duration(phase) {
		phase = phase.Next()
		elapsed = 0
	}

	duration := pattern.Duration(phase)
	if duration <= 0 {
		duration = minPhaseDuration
	}
	progress := float64(elapsed) / float64(duration)
	if progress > 1 {
		progress = 1
	}
	return phase, elapsed, progress
}
