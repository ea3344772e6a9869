package breaker

import "errors"

// Call is the contract between the breaker and the transport layer: one
// request/response exchange over a connection the breaker may terminate.
type Call interface {
	// Terminate aborts the exchange's underlying connection. reason is a
	// human-readable explanation surfaced through the transport's own
	// error path.
	Terminate(reason string)

	// Failed reports whether the completed response classifies as a
	// server error.
	Failed() bool
}

// Target optionally identifies the remote endpoint of a Call for log
// correlation. Calls without routing information simply don't implement it.
type Target interface {
	Host() string
	Path() string
}

// Status is the health-dashboard summary of one circuit.
type Status struct {
	Status string `json:"status"`
}

// Status values reported by StatusReport.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// ErrOpen is returned by transport adapters when the circuit is open and
// the call was not attempted. Its text doubles as the termination reason.
var ErrOpen = errors.New("circuit open")

// IsOpen reports whether err is because the circuit is open.
func IsOpen(err error) bool {
	return errors.Is(err, ErrOpen)
}

// Breaker is the call-site facade: it guards outbound calls against an
// open circuit and feeds completed exchanges back to the Strategy.
// Construct one Breaker per protected dependency and share it across all
// call sites for that dependency.
type Breaker struct {
	strategy Strategy
}

// New creates a Breaker with the given options. Unless WithStrategy
// supplies a custom policy, a DecayStrategy is built from the remaining
// options; invalid configuration fails here rather than producing a
// circuit that never opens.
func New(opts ...Option) (*Breaker, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	strategy := cfg.strategy
	if strategy == nil {
		var err error
		strategy, err = newDecayStrategy(cfg)
		if err != nil {
			return nil, err
		}
	}
	return &Breaker{strategy: strategy}, nil
}

// Request guards an outbound call. While the circuit is open the call's
// connection is terminated before the call proceeds, so an open circuit
// tears the connection down even when the transport layer never consults
// the breaker. The call payload itself is never touched: the facade
// composes as a pass-through filter in a call pipeline.
func (b *Breaker) Request(call Call) {
	if b.strategy.Opened(call) {
		call.Terminate(ErrOpen.Error())
	}
}

// Response feeds the completed exchange's outcome to the strategy. If the
// circuit is open afterwards, including when this very outcome tripped it,
// the connection is terminated.
func (b *Breaker) Response(call Call) {
	b.strategy.HandleResponse(call)
	if b.strategy.Opened(call) {
		call.Terminate(ErrOpen.Error())
	}
}

// StatusReport summarizes the circuit for health dashboards.
func (b *Breaker) StatusReport() Status {
	return b.strategy.StatusReport()
}

// Trip forces the circuit open. Administrative override; bypasses failure
// counting.
func (b *Breaker) Trip() {
	b.strategy.Trip()
}
