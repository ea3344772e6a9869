package breaker

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type targetedCall struct {
	host, path string
}

func (c *targetedCall) Terminate(string) {}
func (c *targetedCall) Failed() bool     { return false }
func (c *targetedCall) Host() string     { return c.host }
func (c *targetedCall) Path() string     { return c.path }

type plainCall struct{}

func (plainCall) Terminate(string) {}
func (plainCall) Failed() bool     { return false }

func TestCallTarget(t *testing.T) {
	tests := map[string]struct {
		call Call
		want string
	}{
		"call with routing info": {call: &targetedCall{host: "api.internal", path: "/charge"}, want: "[api.internal][/charge]"},
		"call without target":    {call: plainCall{}, want: "[unknown]"},
		"missing call":           {call: nil, want: "[unknown]"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, callTarget(tc.call))
		})
	}
}

func TestDefaultLog_ToleratesNilCall(t *testing.T) {
	log := defaultLog()

	require.NotPanics(t, func() {
		log(slog.LevelInfo, nil, "Half-opening circuit")
	})
}
