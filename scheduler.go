package breaker

import "time"

// Scheduler runs a callback once after a delay. The callback may execute
// on any goroutine; DecayStrategy re-acquires its own lock inside it, so
// implementations need no synchronization of their own. Cancellation is
// not part of the contract.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
