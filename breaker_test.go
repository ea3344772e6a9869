package breaker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/julescopeland/breaker"
)

type BreakerSuite struct {
	suite.Suite
	scheduler *fakeScheduler
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.scheduler = &fakeScheduler{}
}

func (s *BreakerSuite) newBreaker(opts ...breaker.Option) *breaker.Breaker {
	opts = append([]breaker.Option{
		breaker.WithScheduler(s.scheduler),
		breaker.WithLogger(breaker.NopLog),
	}, opts...)
	b, err := breaker.New(opts...)
	s.Require().NoError(err)
	return b
}

func (s *BreakerSuite) TestNew_CreatesClosedBreakerWithDefaults() {
	b := s.newBreaker()

	s.Equal(breaker.Status{Status: breaker.StatusClosed}, b.StatusReport())
}

func (s *BreakerSuite) TestNew_RejectsInvalidConfig() {
	_, err := breaker.New(breaker.WithFailureLimit(-1), breaker.WithLogger(breaker.NopLog))
	s.Error(err)

	_, err = breaker.New(breaker.WithRecoveryTime(0), breaker.WithLogger(breaker.NopLog))
	s.Error(err)
}

func (s *BreakerSuite) TestNew_FromLoadedConfig() {
	cfg := breaker.Config{
		FailureLimit:  2,
		RecoveryTime:  time.Second,
		RecoveryRatio: 0.5,
	}
	b := s.newBreaker(breaker.FromConfig(cfg))

	b.Response(failure())
	s.Equal(breaker.StatusClosed, b.StatusReport().Status)

	b.Response(failure())
	s.Equal(breaker.StatusOpen, b.StatusReport().Status)
}

func (s *BreakerSuite) TestRequest_PassesThroughWhileClosed() {
	b := s.newBreaker()
	call := success()

	b.Request(call)

	s.Empty(call.terminations)
}

func (s *BreakerSuite) TestRequest_TerminatesConnectionWhileOpen() {
	b := s.newBreaker()
	b.Trip()

	call := success()
	b.Request(call)

	s.Equal([]string{"circuit open"}, call.terminations)
}

func (s *BreakerSuite) TestResponse_TerminatesOnTheCrossingFailure() {
	b := s.newBreaker(breaker.WithFailureLimit(3))

	first, second, third := failure(), failure(), failure()

	b.Response(first)
	b.Response(second)

	s.Empty(first.terminations)
	s.Empty(second.terminations)

	b.Response(third)

	s.Equal([]string{"circuit open"}, third.terminations,
		"the response that crosses the limit has its connection terminated")
}

func (s *BreakerSuite) TestResponse_SuccessLeavesConnectionAlone() {
	b := s.newBreaker()
	call := success()

	b.Response(call)

	s.Empty(call.terminations)
}

func (s *BreakerSuite) TestTrip_AdministrativeOverride() {
	b := s.newBreaker()

	b.Trip()

	s.Equal(breaker.StatusOpen, b.StatusReport().Status)
	s.Equal(1, s.scheduler.Count(), "a forced trip still schedules recovery")
}

// Scenario from the drawing board: failureLimit=3, recoveryRatio=0.5,
// recoveryTime=1s. Three failures open the circuit, a request while open is
// cut with "circuit open", the recovery timer half-opens it, and a single
// success closes it fully.
func (s *BreakerSuite) TestScenario_TripRecoverClose() {
	b := s.newBreaker(
		breaker.WithFailureLimit(3),
		breaker.WithRecoveryRatio(0.5),
		breaker.WithRecoveryTime(time.Second),
	)

	for i := 0; i < 3; i++ {
		b.Response(failure())
	}
	s.Equal(breaker.StatusOpen, b.StatusReport().Status)

	blocked := success()
	b.Request(blocked)
	s.Equal([]string{"circuit open"}, blocked.terminations)

	s.Require().Equal(1, s.scheduler.Count())
	s.Equal(time.Second, s.scheduler.delays[0])
	s.scheduler.Fire(0)

	s.Equal(breaker.StatusClosed, b.StatusReport().Status, "half-open reports CLOSED")

	b.Response(success())
	s.Equal(breaker.StatusClosed, b.StatusReport().Status)

	probe := success()
	b.Request(probe)
	s.Empty(probe.terminations, "closed circuit admits traffic again")
}

type stubStrategy struct {
	opened   bool
	handled  []breaker.Call
	tripped  int
	reported int
}

func (st *stubStrategy) Opened(breaker.Call) bool { return st.opened }

func (st *stubStrategy) HandleResponse(call breaker.Call) {
	st.handled = append(st.handled, call)
}

func (st *stubStrategy) StatusReport() breaker.Status {
	st.reported++
	return breaker.Status{Status: breaker.StatusClosed}
}

func (st *stubStrategy) Trip() { st.tripped++ }

func TestNew_WithCustomStrategy(t *testing.T) {
	st := &stubStrategy{}
	b, err := breaker.New(breaker.WithStrategy(st))
	require.NoError(t, err)

	call := success()
	b.Response(call)
	b.StatusReport()
	b.Trip()

	require.Len(t, st.handled, 1)
	require.Equal(t, 1, st.reported)
	require.Equal(t, 1, st.tripped)

	st.opened = true
	blocked := success()
	b.Request(blocked)
	require.Equal(t, []string{"circuit open"}, blocked.terminations)
}
