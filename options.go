package pingpong

import (
	"io"
	"log/slog"

	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/trace"
)

// Options configures Run and ServeResponder.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSpawner replaces the way the responder is started.
func WithSpawner(spawner Spawner) Option {
	return func(o *Options) {
		o.Spawner = spawner
	}
}

// WithInProcess runs the responder in a goroutine instead of a child process.
func WithInProcess() Option {
	return func(o *Options) {
		o.InProcess = true
	}
}

// WithSource sets the generator of the value to send.
func WithSource(source Source) Option {
	return func(o *Options) {
		o.Source = source
	}
}

// WithValue sends v instead of a random value.
func WithValue(v Value) Option {
	return WithSource(Fixed(v))
}

// WithObserver sets the receiver of the human-readable trace.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithTrace writes the human-readable trace to w.
func WithTrace(w io.Writer) Option {
	return WithObserver(trace.NewPrinter(w))
}

// WithResponderPath sets the executable started as the responder.
// If not set, the running executable is started again.
func WithResponderPath(path string) Option {
	return func(o *Options) {
		o.ResponderPath = path
	}
}

// WithArgs sets the responder's arguments.
// If not set, the initiator's own arguments are passed on.
func WithArgs(args ...string) Option {
	return func(o *Options) {
		o.Args = append([]string{}, args...)
	}
}

// WithEnv provides additional environment variables for the responder process.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithStdout sets where the responder process's standard output goes.
func WithStdout(w io.Writer) Option {
	return func(o *Options) {
		o.Stdout = w
	}
}

// WithStderr sets where the responder process's standard error goes.
func WithStderr(w io.Writer) Option {
	return func(o *Options) {
		o.Stderr = w
	}
}
