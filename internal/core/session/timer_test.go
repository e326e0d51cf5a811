package session

import (
	"testing"
	"time"

	"breathflow/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler captures the tick callback so tests can drive it with
// synthetic timestamps.
type manualScheduler struct {
	fn        func(time.Time)
	schedules int
	cancels   int
}

func (scheduler *manualScheduler) Schedule(interval time.Duration, fn func(time.Time)) func() {
	scheduler.schedules++
	scheduler.fn = fn
	return func() {
		scheduler.cancels++
		scheduler.fn = nil
	}
}

type timerFixture struct {
	timer     *Timer
	scheduler *manualScheduler
	now       time.Time
}

func testPattern() model.BreathPattern {
	return model.BreathPattern{
		Inhale:  4 * time.Second,
		HoldIn:  4 * time.Second,
		Exhale:  4 * time.Second,
		HoldOut: 2 * time.Second,
	}
}

func newTimerFixture(t *testing.T, length time.Duration) *timerFixture {
	t.Helper()
	fixture := &timerFixture{
		scheduler: &manualScheduler{},
		now:       time.Unix(1700000000, 0),
	}
	fixture.timer = New(
		model.SessionConfig{Length: length, Pattern: testPattern()},
		Config{
			TickInterval: testDelta,
			Scheduler:    fixture.scheduler,
			Now:          func() time.Time { return fixture.now },
		},
	)
	return fixture
}

// advance moves the fake clock forward one tick interval at a time and
// delivers the scheduled callback, mimicking the ticker loop.
func (fixture *timerFixture) advance(ticks int) {
	for i := 0; i < ticks; i++ {
		fixture.now = fixture.now.Add(testDelta)
		if fixture.scheduler.fn != nil {
			fixture.scheduler.fn(fixture.now)
		}
	}
}

func TestTimerFullSessionScenario(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)
	events := fixture.timer.Subscribe(512)

	fixture.timer.Start()
	require.Equal(t, StateRunning, fixture.timer.Snapshot().State)

	// One full 14s cycle returns the phase to inhale with no leftover.
	fixture.advance(56)
	snapshot := fixture.timer.Snapshot()
	assert.Equal(t, model.PhaseInhale, snapshot.Phase)
	assert.Zero(t, snapshot.ElapsedInPhase)
	assert.Equal(t, 46, snapshot.Remaining)

	// Run out the remaining 46 seconds.
	fixture.advance(240 - 56)
	snapshot = fixture.timer.Snapshot()
	assert.Equal(t, StateFinished, snapshot.State)
	assert.Zero(t, snapshot.Remaining)
	assert.Equal(t, 1, fixture.scheduler.cancels)

	// Completion fires exactly once.
	fixture.timer.Close()
	finished := 0
	for event := range events {
		if event.Type == EventFinished {
			finished++
			assert.Equal(t, StateFinished, event.State)
			assert.Zero(t, event.Remaining)
		}
	}
	assert.Equal(t, 1, finished)
}

func TestTimerPauseResumePreservesState(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)

	fixture.timer.Start()
	fixture.advance(10)

	fixture.timer.Pause()
	paused := fixture.timer.Snapshot()
	require.Equal(t, StatePaused, paused.State)

	fixture.timer.Start()
	resumed := fixture.timer.Snapshot()
	assert.Equal(t, StateRunning, resumed.State)
	assert.Equal(t, paused.Phase, resumed.Phase)
	assert.Equal(t, paused.ElapsedInPhase, resumed.ElapsedInPhase)
	assert.Equal(t, paused.Progress, resumed.Progress)
	assert.Equal(t, paused.Remaining, resumed.Remaining)
}

func TestTimerStrayTickAfterPauseIsNoOp(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)

	fixture.timer.Start()
	fixture.advance(10)
	stray := fixture.scheduler.fn

	fixture.timer.Pause()
	before := fixture.timer.Snapshot()

	// A callback already in flight when the schedule was cancelled.
	stray(fixture.now.Add(testDelta))
	assert.Equal(t, before, fixture.timer.Snapshot())
}

func TestTimerResetFromEveryState(t *testing.T) {
	assertResetForm := func(t *testing.T, timer *Timer) {
		t.Helper()
		snapshot := timer.Snapshot()
		assert.Equal(t, StateIdle, snapshot.State)
		assert.Equal(t, model.PhaseInhale, snapshot.Phase)
		assert.Zero(t, snapshot.ElapsedInPhase)
		assert.Zero(t, snapshot.Progress)
		assert.Equal(t, snapshot.Total, snapshot.Remaining)
	}

	t.Run("idle", func(t *testing.T) {
		fixture := newTimerFixture(t, time.Minute)
		fixture.timer.Reset()
		assertResetForm(t, fixture.timer)
	})

	t.Run("running", func(t *testing.T) {
		fixture := newTimerFixture(t, time.Minute)
		events := fixture.timer.Subscribe(512)
		fixture.timer.Start()
		fixture.advance(30)
		fixture.timer.Reset()
		assertResetForm(t, fixture.timer)

		// A session ended by reset never reports completion.
		fixture.timer.Close()
		for event := range events {
			assert.NotEqual(t, EventFinished, event.Type)
		}
	})

	t.Run("paused", func(t *testing.T) {
		fixture := newTimerFixture(t, time.Minute)
		fixture.timer.Start()
		fixture.advance(30)
		fixture.timer.Pause()
		fixture.timer.Reset()
		assertResetForm(t, fixture.timer)
	})

	t.Run("finished", func(t *testing.T) {
		fixture := newTimerFixture(t, time.Minute)
		fixture.timer.Start()
		fixture.advance(240)
		require.Equal(t, StateFinished, fixture.timer.Snapshot().State)
		fixture.timer.Reset()
		assertResetForm(t, fixture.timer)
	})
}

func TestTimerStartIsIdempotentWhileRunning(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)

	fixture.timer.Start()
	fixture.advance(10)
	before := fixture.timer.Snapshot()

	fixture.timer.Start()
	assert.Equal(t, before, fixture.timer.Snapshot())
	assert.Equal(t, 1, fixture.scheduler.schedules)
}

func TestTimerApplyWhileRunning(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)

	fixture.timer.Start()
	fixture.advance(30)

	fixture.timer.Apply(model.SessionConfig{Length: 10 * time.Minute, Pattern: testPattern()})

	snapshot := fixture.timer.Snapshot()
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Equal(t, 600, snapshot.Remaining)
	assert.Equal(t, 600, snapshot.Total)
	assert.Equal(t, model.PhaseInhale, snapshot.Phase)
	assert.Zero(t, snapshot.Progress)
	assert.Equal(t, 1, fixture.scheduler.cancels)
}

func TestTimerRemainingNeverIncreasesOrGoesNegative(t *testing.T) {
	fixture := newTimerFixture(t, 15*time.Second)

	fixture.timer.Start()
	previous := fixture.timer.Snapshot().Remaining
	for i := 0; i < 80; i++ {
		fixture.advance(1)
		remaining := fixture.timer.Snapshot().Remaining
		require.LessOrEqual(t, remaining, previous)
		require.GreaterOrEqual(t, remaining, 0)
		previous = remaining
	}
	assert.Equal(t, StateFinished, fixture.timer.Snapshot().State)
}

func TestTimerDelayedTickSelfCorrects(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)
	fixture.timer.Start()

	// A long scheduler stall (system sleep) is absorbed by re-deriving
	// the countdown from the deadline on the next tick.
	fixture.now = fixture.now.Add(20 * time.Second)
	fixture.scheduler.fn(fixture.now)

	assert.Equal(t, 40, fixture.timer.Snapshot().Remaining)
}

func TestTimerFinishDoesNotResetPhase(t *testing.T) {
	// 15s session over a 14s cycle: completion lands one second into the
	// second cycle and the phase state keeps that mid-cycle value.
	fixture := newTimerFixture(t, 15*time.Second)

	fixture.timer.Start()
	fixture.advance(60)

	snapshot := fixture.timer.Snapshot()
	require.Equal(t, StateFinished, snapshot.State)
	assert.Equal(t, model.PhaseInhale, snapshot.Phase)
	assert.Equal(t, time.Second, snapshot.ElapsedInPhase)
	assert.Greater(t, snapshot.Progress, 0.0)
}

func TestTimerDefensiveLengthDefault(t *testing.T) {
	fixture := &timerFixture{scheduler: &manualScheduler{}, now: time.Unix(1700000000, 0)}
	fixture.timer = New(model.SessionConfig{Pattern: testPattern()}, Config{
		TickInterval: testDelta,
		Scheduler:    fixture.scheduler,
		Now:          func() time.Time { return fixture.now },
	})

	assert.Equal(t, 60, fixture.timer.Snapshot().Total)
}

func TestTimerCloseClosesObservers(t *testing.T) {
	fixture := newTimerFixture(t, time.Minute)
	events := fixture.timer.Subscribe(1)

	fixture.timer.Close()
	_, open := <-events
	assert.False(t, open)

	// Close is idempotent and later commands stay safe.
	fixture.timer.Close()
	fixture.timer.Start()
	assert.NotEqual(t, StateRunning, fixture.timer.Snapshot().State)
}
