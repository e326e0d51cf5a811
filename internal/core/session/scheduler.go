package session

import (
	"sync"
	"time"
)

// Scheduler registers a repeating callback. The returned cancel function
// must stop further invocations immediately and be safe to call more
// than once. A callback already in flight when cancel runs may still be
// delivered; the timer guards against that by checking its own state.
type Scheduler interface {
	Schedule(interval time.Duration, fn func(time.Time)) (cancel func())
}

// tickerScheduler drives callbacks from a goroutine-owned time.Ticker.
type tickerScheduler struct{}

func (tickerScheduler) Schedule(interval time.Duration, fn func(time.Time)) func() {
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case tickTime := <-ticker.C:
				fn(tickTime)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}
