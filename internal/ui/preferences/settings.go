package preferences

import (
	"time"

	"breathflow/internal/core/model"
)

// Clamping bounds for user-editable values. The core only guards against
// division by zero; range validation lives here.
const (
	MinLength = 1 * time.Minute
	MaxLength = 60 * time.Minute

	MinBreath = 1 * time.Second
	MaxBreath = 20 * time.Second

	MinHold = 0 * time.Second
	MaxHold = 15 * time.Second
)

// Settings defines editable user preferences.
type Settings struct {
	Length  time.Duration
	Inhale  time.Duration
	HoldIn  time.Duration
	Exhale  time.Duration
	HoldOut time.Duration
	SoundOn bool
}

// DefaultSettings returns default settings for BreathFlow.
func DefaultSettings() Settings {
	return Settings{
		Length:  5 * time.Minute,
		Inhale:  4 * time.Second,
		HoldIn:  4 * time.Second,
		Exhale:  4 * time.Second,
		HoldOut: 2 * time.Second,
		SoundOn: false,
	}
}

// Clamped returns a copy with every field forced into its allowed range.
func (settings Settings) Clamped() Settings {
	settings.Length = clampDuration(settings.Length, MinLength, MaxLength)
	settings.Inhale = clampDuration(settings.Inhale, MinBreath, MaxBreath)
	settings.Exhale = clampDuration(settings.Exhale, MinBreath, MaxBreath)
	settings.HoldIn = clampDuration(settings.HoldIn, MinHold, MaxHold)
	settings.HoldOut = clampDuration(settings.HoldOut, MinHold, MaxHold)
	return settings
}

// SessionConfig converts settings to the timer's SessionConfig.
func (settings Settings) SessionConfig() model.SessionConfig {
	clamped := settings.Clamped()
	return model.SessionConfig{
		Length: clamped.Length,
		Pattern: model.BreathPattern{
			Inhale:  clamped.Inhale,
			HoldIn:  clamped.HoldIn,
			Exhale:  clamped.Exhale,
			HoldOut: clamped.HoldOut,
		},
	}
}

func clampDuration(value, min, max time.Duration) time.Duration {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
