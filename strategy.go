package breaker

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Strategy decides whether the circuit admits calls and absorbs their
// outcomes. Breaker accepts any implementation, enabling alternative
// policies such as sliding-window counters without touching the facade.
type Strategy interface {
	// Opened reports whether the circuit currently blocks calls.
	// call may be nil; it serves log correlation only.
	Opened(call Call) bool

	// HandleResponse classifies the completed exchange as success or
	// failure and feeds it to the policy.
	HandleResponse(call Call)

	// StatusReport summarizes the circuit for health dashboards.
	StatusReport() Status

	// Trip forces the circuit open, bypassing failure counting.
	Trip()
}

// DecayStrategy is the default Strategy: each failure counts a full unit
// toward the failure limit, each success decays the counter by a fraction,
// and an open circuit schedules a one-shot recovery probe.
//
// Safe for concurrent use. State reads take the read lock and mutations
// the write lock; the recovery callback re-acquires the write lock because
// it runs asynchronously relative to request handling.
type DecayStrategy struct {
	mu           sync.RWMutex
	state        *circuitState
	recoveryTime time.Duration
	scheduler    Scheduler
	log          LogFunc
}

// NewDecayStrategy creates a DecayStrategy with the given options.
// It fails fast on non-positive limits or delays.
func NewDecayStrategy(opts ...Option) (*DecayStrategy, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newDecayStrategy(cfg)
}

func newDecayStrategy(cfg options) (*DecayStrategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breaker: invalid configuration: %w", err)
	}
	d := &DecayStrategy{
		recoveryTime: cfg.RecoveryTime,
		scheduler:    cfg.scheduler,
		log:          cfg.log,
	}
	d.state = &circuitState{
		phase:         Closed,
		failureLimit:  cfg.FailureLimit,
		recoveryRatio: cfg.RecoveryRatio,
		onOpen:        d.scheduleRecovery,
		log:           cfg.log,
	}
	return d, nil
}

// Opened reports whether the circuit blocks calls. Concurrent readers are
// admitted; an in-progress writer briefly blocks them.
func (d *DecayStrategy) Opened(call Call) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.opened()
}

// HandleResponse applies the outcome of one completed exchange. A nil call
// or a call whose Failed reports false counts as a success.
func (d *DecayStrategy) HandleResponse(call Call) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.call = call
	defer func() { d.state.call = nil }()

	if call != nil && call.Failed() {
		d.state.recordFailure()
	} else {
		d.state.recordSuccess()
	}
}

// StatusReport reports "OPEN" exactly when Opened is true. A half-open
// circuit still admits traffic, so it reports "CLOSED".
func (d *DecayStrategy) StatusReport() Status {
	if d.Opened(nil) {
		return Status{Status: StatusOpen}
	}
	return Status{Status: StatusClosed}
}

// Trip forces the circuit open.
func (d *DecayStrategy) Trip() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.trip()
}

// FailureCount returns the current value of the decaying failure counter.
func (d *DecayStrategy) FailureCount() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.failureCount
}

// scheduleRecovery runs as the state machine's onOpen callback, under the
// write lock already held by the mutation that opened the circuit. Timers
// are never cancelled: one made stale by later transitions still fires and
// still forces HalfOpen.
func (d *DecayStrategy) scheduleRecovery() {
	d.logf(slog.LevelInfo, fmt.Sprintf("Retrying in %s", d.recoveryTime))
	d.scheduler.AfterFunc(d.recoveryTime, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.state.recoveryElapsed()
	})
}

func (d *DecayStrategy) logf(level slog.Level, msg string) {
	if d.log == nil {
		return
	}
	defer func() { _ = recover() }()
	d.log(level, d.state.call, msg)
}
