package breaker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// LogFunc receives every transition and counter change of a circuit.
// call is the exchange that produced the event and may be nil. The breaker
// recovers panics at the invocation boundary, so a faulty sink degrades to
// silence instead of corrupting circuit state.
type LogFunc func(level slog.Level, call Call, msg string)

// NopLog discards all log events.
func NopLog(slog.Level, Call, string) {}

// defaultLog writes single tinted lines to stdout, tagging each event with
// a host/path correlation id extracted from the call when available.
func defaultLog() LogFunc {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	return func(level slog.Level, call Call, msg string) {
		logger.Log(context.Background(), level, msg, slog.String("circuit", callTarget(call)))
	}
}

// callTarget renders "[host][path]", tolerating a missing call or a call
// without routing information.
func callTarget(call Call) string {
	target, ok := call.(Target)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s][%s]", target.Host(), target.Path())
}
