package config

import (
	"io"
	"log/slog"

	"github.com/wagiedev/pingpong-go/internal/trace"
	"github.com/wagiedev/pingpong-go/internal/wire"
)

// Options configures a round trip.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Spawner starts the responder. If nil, a child process is spawned,
	// or a goroutine when InProcess is set.
	Spawner Spawner

	// InProcess runs the responder in a goroutine of the initiator process
	// instead of a child process. Ignored when Spawner is set.
	InProcess bool

	// Source produces the value to send. If nil, a time-seeded generator is used.
	Source wire.Source

	// Observer receives the human-readable trace. If nil, the trace is discarded.
	Observer trace.Observer

	// ResponderPath is the executable started as the responder.
	// If empty, the running executable is used.
	ResponderPath string

	// Args are the arguments passed to the responder executable.
	// If nil, the initiator's own arguments are reused.
	Args []string

	// Env provides additional environment variables for the responder process.
	Env map[string]string

	// Stdout and Stderr receive the responder process's output.
	// If nil, the initiator's standard streams are used.
	Stdout io.Writer
	Stderr io.Writer
}
