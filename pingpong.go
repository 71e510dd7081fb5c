package pingpong

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/errors"
	"github.com/wagiedev/pingpong-go/internal/exchange"
	"github.com/wagiedev/pingpong-go/internal/spawn"
	"github.com/wagiedev/pingpong-go/internal/trace"
	"github.com/wagiedev/pingpong-go/internal/wire"
)

// Run performs one round trip as the initiator.
//
// It returns *ResourceError if the pipes cannot be created, *SpawnError if
// the responder cannot be started, and *TransferError if the value or its
// echo cannot be moved. No value is written when spawning fails.
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	options := applyOptions(opts)
	base := loggerOf(options)
	log := base.With("component", "initiator")

	params := exchange.Params{
		Logger:   log,
		Spawner:  spawnerOf(base, options),
		Source:   options.Source,
		Observer: observerOf(options),
		RunID:    ulid.Make().String(),
	}

	if params.Source == nil {
		params.Source = wire.TimeSeeded()
	}

	log.Info("Starting round trip", "run_id", params.RunID)

	return exchange.SpawnAndRun(ctx, params)
}

// IsResponder reports whether this process was started by Run as a
// responder. Call it before anything else in main or TestMain.
func IsResponder() bool {
	env, err := config.LoadResponderEnv()

	return err == nil && env.IsResponder()
}

// ServeResponder runs the responder protocol over the endpoints inherited
// from the initiator, then returns. The caller should exit afterwards.
//
// Returns ErrNotResponder if the process was not started as a responder.
func ServeResponder(ctx context.Context, opts ...Option) error {
	options := applyOptions(opts)
	log := loggerOf(options).With("component", "responder")

	env, err := config.LoadResponderEnv()
	if err != nil {
		return err
	}

	if !env.IsResponder() {
		return errors.ErrNotResponder
	}

	log = log.With("run_id", env.RunID)

	ends, err := channel.InheritedResponderEnds()
	if err != nil {
		log.Error("Failed to open inherited endpoints", "error", err)

		return err
	}

	return exchange.RunResponder(ctx, log, ends, observerOf(options))
}

func loggerOf(options *Options) *slog.Logger {
	if options.Logger == nil {
		return NopLogger()
	}

	return options.Logger
}

func observerOf(options *Options) trace.Observer {
	if options.Observer == nil {
		return trace.Nop{}
	}

	return options.Observer
}

func spawnerOf(log *slog.Logger, options *Options) config.Spawner {
	switch {
	case options.Spawner != nil:
		return options.Spawner
	case options.InProcess:
		obs := observerOf(options)
		responderLog := log.With("component", "responder")

		return spawn.NewGoroutine(log, func(ctx context.Context, ends *channel.ResponderEnds) error {
			return exchange.RunResponder(ctx, responderLog, ends, obs)
		})
	default:
		return spawn.NewProcess(log, options)
	}
}
