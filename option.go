package breaker

import "time"

type options struct {
	Config

	log       LogFunc
	scheduler Scheduler
	strategy  Strategy
}

func defaultOptions() options {
	return options{
		Config:    DefaultConfig(),
		log:       defaultLog(),
		scheduler: timerScheduler{},
	}
}

// Option configures a Breaker or a DecayStrategy.
type Option func(*options)

// WithFailureLimit sets the failure count at which the circuit opens.
// Default is 5.
func WithFailureLimit(n float64) Option {
	return func(o *options) {
		o.FailureLimit = n
	}
}

// WithRecoveryTime sets how long an open circuit waits before probing
// recovery. Default is 30 seconds.
func WithRecoveryTime(d time.Duration) Option {
	return func(o *options) {
		o.RecoveryTime = d
	}
}

// WithRecoveryRatio sets the fraction subtracted from the failure counter
// on each success. Default is 0.1.
func WithRecoveryRatio(r float64) Option {
	return func(o *options) {
		o.RecoveryRatio = r
	}
}

// FromConfig applies a loaded configuration wholesale.
func FromConfig(cfg Config) Option {
	return func(o *options) {
		o.Config = cfg
	}
}

// WithLogger replaces the default console sink. The sink receives every
// transition and counter change; use NopLog to silence the circuit.
func WithLogger(fn LogFunc) Option {
	return func(o *options) {
		o.log = fn
	}
}

// WithScheduler sets the deferred-timer facility used to schedule recovery
// probes. Default runs callbacks on a time.AfterFunc goroutine. Useful for
// testing.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithStrategy makes the Breaker delegate to a custom policy instead of
// building the default DecayStrategy. The remaining policy options are
// ignored in that case.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}
