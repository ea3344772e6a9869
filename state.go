package breaker

import (
	"log/slog"
	"math"
	"strconv"
)

// State represents the circuit breaker state.
type State int

const (
	// Closed is the normal operating state. Calls flow through and
	// failures are counted.
	Closed State = iota

	// Open is the tripped state. Connections are terminated instead of
	// reaching the protected dependency.
	Open

	// HalfOpen is the recovery probing state entered after the recovery
	// delay. One success closes the circuit.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// circuitState is the transition core of one circuit: the current phase
// plus the decaying failure counter. Failures count a full unit toward the
// limit while successes only subtract recoveryRatio, so a cascade of
// consecutive failures trips the circuit quickly but sparse intermittent
// failures slowly heal instead of accumulating forever.
//
// Not safe for concurrent use. DecayStrategy serializes all access.
type circuitState struct {
	phase         State
	failureCount  float64
	failureLimit  float64
	recoveryRatio float64

	// onOpen fires on each transition into Open. trip is idempotent, so
	// at most one invocation happens per Open transition.
	onOpen func()

	log LogFunc

	// call is the exchange whose outcome is being processed. Held for log
	// correlation only and cleared before the outcome handler returns.
	call Call
}

func (cs *circuitState) opened() bool     { return cs.phase == Open }
func (cs *circuitState) closed() bool     { return cs.phase == Closed }
func (cs *circuitState) halfOpened() bool { return cs.phase == HalfOpen }

// trip moves the circuit to Open. No-op when already Open.
func (cs *circuitState) trip() {
	if cs.phase == Open {
		return
	}
	cs.phase = Open
	cs.logf(slog.LevelError, "Opening circuit!")
	if cs.onOpen != nil {
		cs.onOpen()
	}
}

// reset moves the circuit to Closed and zeroes the failure counter.
func (cs *circuitState) reset() {
	cs.phase = Closed
	cs.failureCount = 0
	cs.logf(slog.LevelInfo, "Closing circuit. Failure count reset to "+cs.roundedCount())
}

// probe moves the circuit to HalfOpen.
func (cs *circuitState) probe() {
	cs.phase = HalfOpen
	cs.logf(slog.LevelInfo, "Half-opening circuit")
}

// recordFailure counts one failure and trips the circuit once the counter
// reaches the limit.
func (cs *circuitState) recordFailure() {
	cs.failureCount++
	cs.logf(slog.LevelWarn, "Failure count is "+cs.roundedCount())
	if cs.failureCount >= cs.failureLimit {
		cs.trip()
	}
}

// recordSuccess decays the failure counter by recoveryRatio while it is
// positive. A success observed while HalfOpen closes the circuit outright,
// regardless of the counter. The counter is not clamped at zero: a long
// decay chain may leave it slightly negative.
func (cs *circuitState) recordSuccess() {
	if cs.failureCount > 0 {
		cs.failureCount -= cs.recoveryRatio
		cs.logf(slog.LevelInfo, "Failure count is "+cs.roundedCount())
	}
	if cs.phase == HalfOpen {
		cs.reset()
	}
}

// recoveryElapsed is invoked when the recovery timer fires. It is
// unconditional: timers are never cancelled, so one made stale by later
// transitions still forces HalfOpen.
func (cs *circuitState) recoveryElapsed() {
	cs.probe()
}

// roundedCount renders the failure counter to two decimals for log lines.
func (cs *circuitState) roundedCount() string {
	return strconv.FormatFloat(math.Round(cs.failureCount*100)/100, 'f', -1, 64)
}

// logf hands the event to the sink. Sink panics are swallowed so a broken
// logger cannot corrupt circuit state.
func (cs *circuitState) logf(level slog.Level, msg string) {
	if cs.log == nil {
		return
	}
	defer func() { _ = recover() }()
	cs.log(level, cs.call, msg)
}
