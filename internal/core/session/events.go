package session

import (
	"time"

	"breathflow/internal/core/model"
)

// State represents the current Timer mode.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventFinished    EventType = "finished"
)

// Event carries a consistent snapshot of the timer for observers.
// All fields are assembled under one lock hold, so an observer never
// sees a partially updated tick.
type Event struct {
	Type      EventType
	State     State
	Phase     model.Phase
	Progress  float64
	Remaining int
	At        time.Time
}
