// Package breaker implements the circuit breaker pattern for guarding one
// remote-call path.
//
// A Breaker sits in front of outbound calls, counts failures, and once they
// exceed a threshold stops issuing further calls for a cooldown period,
// then cautiously probes recovery. It protects the caller from wasting
// resources on a failing dependency and protects the dependency from being
// hammered while unhealthy.
//
// # Quick Start
//
// Wrap an http.Client with the bundled transport adapter:
//
//	b, err := breaker.New(
//	    breaker.WithFailureLimit(5),
//	    breaker.WithRecoveryTime(30*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := &http.Client{Transport: &breaker.RoundTripper{Breaker: b}}
//
//	resp, err := client.Get("https://payments.internal/charge")
//	if breaker.IsOpen(err) {
//	    return handleFallback()
//	}
//
// # Circuit States
//
// The circuit has three states:
//
//	Closed (normal):
//	    - Calls flow through
//	    - Each failure adds a full unit to the failure counter
//	    - Each success decays the counter by the recovery ratio
//	    - When the counter reaches the failure limit, the circuit opens
//
//	Open (tripped):
//	    - Connections are terminated with reason "circuit open"
//	    - After the recovery time, the circuit transitions to half-open
//
//	HalfOpen (probing):
//	    - Calls flow through again
//	    - One success closes the circuit and resets the counter
//	    - A failure can reopen it through the ordinary limit check
//
// The decaying counter means a cascade of consecutive failures trips the
// circuit quickly, while sparse intermittent failures below the limit
// slowly heal instead of accumulating forever.
//
// # Custom Integrations
//
// The breaker never performs I/O itself. Integrations adapt their transport
// to the Call interface: Terminate aborts the underlying connection and
// Failed classifies the completed response. Implement Target as well to get
// host/path correlation in log lines. Feed calls through the two-phase
// facade:
//
//	b.Request(call)   // before the call; terminates the connection if open
//	// ... perform the call ...
//	b.Response(call)  // after the call; records the outcome
//
// # Configuration
//
// Policy is configured with options validated at construction time:
//
//	b, err := breaker.New(
//	    breaker.WithFailureLimit(3),
//	    breaker.WithRecoveryTime(10*time.Second),
//	    breaker.WithRecoveryRatio(0.5),
//	)
//
// or loaded from breaker.yaml and BREAKER_* environment variables:
//
//	cfg, err := breaker.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b, err := breaker.New(breaker.FromConfig(cfg))
//
// Default values:
//
//   - FailureLimit: 5
//   - RecoveryTime: 30 seconds
//   - RecoveryRatio: 0.1
//
// # Health Dashboards
//
// StatusReport summarizes the circuit as {"status":"OPEN"} or
// {"status":"CLOSED"}. A half-open circuit reports CLOSED because it still
// admits traffic.
//
// # Administrative Override
//
// Trip forces the circuit open without waiting for failures:
//
//	b.Trip()
//
// Useful for admin endpoints while a downstream incident is being handled.
// The recovery probe is scheduled as usual, so the circuit heals on its own.
//
// # Logging
//
// Every transition and counter change is reported to a pluggable sink. The
// default writes tinted single-line records to stdout. Replace it with
// WithLogger, or silence it with NopLog:
//
//	b, err := breaker.New(breaker.WithLogger(breaker.NopLog))
//
// Sink panics are swallowed at the invocation boundary; logging is
// best-effort and never corrupts circuit state.
//
// # Alternative Policies
//
// Breaker is polymorphic over the Strategy interface. Supply a custom
// policy, say a sliding-window counter, with WithStrategy:
//
//	b, err := breaker.New(breaker.WithStrategy(myWindowStrategy))
//
// # Scope
//
// One Breaker manages exactly one logical circuit. Create one per protected
// dependency; instances share no state. This is not a retry policy, rate
// limiter, or load balancer.
package breaker
