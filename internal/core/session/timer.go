package session

import (
	"math"
	"sync"
	"time"

	"breathflow/internal/core/model"
)

// Config contains runtime options for Timer.
type Config struct {
	// TickInterval is both the schedule period and the fixed increment
	// applied to phase-local time on every tick.
	TickInterval time.Duration
	// Scheduler drives the tick callback; defaults to a time.Ticker loop.
	Scheduler Scheduler
	// Now supplies the wall clock for deadline math; defaults to time.Now.
	Now func() time.Time
}

// Snapshot is a consistent read of the timer state for pull-style
// consumers.
type Snapshot struct {
	State          State
	Phase          model.Phase
	ElapsedInPhase time.Duration
	Progress       float64
	Remaining      int
	Total          int
}

// Timer is the breathing-session state machine. It counts a session down
// against a wall-clock deadline while cycling the breathing phases by a
// fixed per-tick increment. The two are deliberately decoupled: the
// countdown self-corrects from targetEnd on every tick, phase time simply
// accumulates, and the cycle keeps repeating until the countdown reaches
// zero regardless of where the cycle stands.
type Timer struct {
	mu        sync.Mutex
	config    model.SessionConfig
	options   Config
	state     State
	total     int
	remaining int
	phase     model.Phase
	elapsed   time.Duration
	progress  float64
	targetEnd time.Time
	events    []chan Event
	cancel    func()
	closed    bool
}

// New creates a Timer with the provided configuration.
func New(config model.SessionConfig, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second / 60
	}
	if options.Scheduler == nil {
		options.Scheduler = tickerScheduler{}
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	timer := &Timer{
		options: options,
		state:   StateIdle,
		phase:   model.PhaseInhale,
	}
	timer.applyConfigLocked(config)
	return timer
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// Snapshot returns a consistent copy of the published state.
func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return Snapshot{
		State:          timer.state,
		Phase:          timer.phase,
		ElapsedInPhase: timer.elapsed,
		Progress:       timer.progress,
		Remaining:      timer.remaining,
		Total:          timer.total,
	}
}

// Start begins or resumes the session. Legal from idle or paused;
// a no-op in any other state.
func (timer *Timer) Start() {
	timer.mu.Lock()
	if timer.closed || (timer.state != StateIdle && timer.state != StatePaused) {
		timer.mu.Unlock()
		return
	}
	timer.state = StateRunning
	timer.targetEnd = timer.options.Now().Add(time.Duration(timer.remaining) * time.Second)
	timer.cancel = timer.options.Scheduler.Schedule(timer.options.TickInterval, timer.tick)
	timer.emitLocked(timer.eventLocked(EventStateChange))
	timer.mu.Unlock()
}

// Pause freezes the session. Legal from running; a no-op otherwise.
// Remaining time, phase and phase-local progress are retained exactly.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	if timer.state != StateRunning {
		timer.mu.Unlock()
		return
	}
	timer.stopScheduleLocked()
	timer.state = StatePaused
	timer.targetEnd = time.Time{}
	timer.emitLocked(timer.eventLocked(EventStateChange))
	timer.mu.Unlock()
}

// Reset returns the session to idle from any state, restoring the full
// configured duration and the start of the cycle.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	timer.stopScheduleLocked()
	timer.resetLocked()
	timer.emitLocked(timer.eventLocked(EventStateChange))
	timer.mu.Unlock()
}

// Apply installs a new session configuration and forces a full reset to
// idle. Safe to call from any state.
func (timer *Timer) Apply(config model.SessionConfig) {
	timer.mu.Lock()
	timer.stopScheduleLocked()
	timer.applyConfigLocked(config)
	timer.emitLocked(timer.eventLocked(EventStateChange))
	timer.mu.Unlock()
}

// Close cancels any active schedule and closes observer channels.
func (timer *Timer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.closed = true
	timer.stopScheduleLocked()
	if timer.state == StateRunning {
		timer.state = StatePaused
	}
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) tick(now time.Time) {
	timer.mu.Lock()
	// Guards a scheduled callback racing a pause or reset.
	if timer.state != StateRunning {
		timer.mu.Unlock()
		return
	}

	remaining := int(math.Ceil(timer.targetEnd.Sub(now).Seconds()))
	if remaining < 0 {
		remaining = 0
	}
	// Re-derivation from the deadline absorbs missed ticks but may round
	// up by a second immediately after Start; keep it non-increasing.
	if remaining > timer.remaining {
		remaining = timer.remaining
	}
	timer.remaining = remaining

	// Phase time advances even on the finishing tick; completion does not
	// freeze or reset the cycle.
	timer.phase, timer.elapsed, timer.progress = phaseStep(
		timer.config.Pattern, timer.phase, timer.elapsed, timer.options.TickInterval)

	if remaining == 0 {
		timer.stopScheduleLocked()
		timer.state = StateFinished
		timer.emitLocked(timer.eventLocked(EventFinished))
		timer.mu.Unlock()
		return
	}

	timer.emitLocked(timer.eventLocked(EventProgress))
	timer.mu.Unlock()
}

func (timer *Timer) applyConfigLocked(config model.SessionConfig) {
	if config.Length < time.Second {
		config.Length = time.Minute
	}
	timer.config = config
	timer.total = int(config.Length / time.Second)
	timer.resetLocked()
}

func (timer *Timer) resetLocked() {
	timer.state = StateIdle
	timer.phase = model.PhaseInhale
	timer.elapsed = 0
	timer.progress = 0
	timer.remaining = timer.total
	timer.targetEnd = time.Time{}
}

// stopScheduleLocked cancels the tick schedule. Immediate and idempotent;
// calling it with no active schedule is a no-op.
func (timer *Timer) stopScheduleLocked() {
	if timer.cancel != nil {
		timer.cancel()
		timer.cancel = nil
	}
}

func (timer *Timer) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		State:     timer.state,
		Phase:     timer.phase,
		Progress:  timer.progress,
		Remaining: timer.remaining,
		At:        timer.options.Now(),
	}
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}
