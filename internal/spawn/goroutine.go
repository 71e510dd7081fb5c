package spawn

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/errors"
)

// ResponderFunc runs the responder protocol over ends and closes them.
type ResponderFunc func(ctx context.Context, ends *channel.ResponderEnds) error

// Goroutine implements Spawner by running the responder in a goroutine.
type Goroutine struct {
	log *slog.Logger
	run ResponderFunc
}

// Compile-time verification that Goroutine implements the Spawner interface.
var _ config.Spawner = (*Goroutine)(nil)

// NewGoroutine creates a spawner that calls run in a new goroutine.
func NewGoroutine(log *slog.Logger, run ResponderFunc) *Goroutine {
	return &Goroutine{
		log: log.With("component", "goroutine_spawner"),
		run: run,
	}
}

// Spawn starts run over ends. The goroutine owns ends from here on.
func (s *Goroutine) Spawn(
	ctx context.Context,
	ends *channel.ResponderEnds,
	req config.SpawnRequest,
) (config.Worker, error) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.run(gCtx, ends)
	})

	s.log.Debug("Responder goroutine started", "run_id", req.RunID)

	return &goroutineWorker{log: s.log, g: g}, nil
}

// goroutineWorker is a responder running in this process.
type goroutineWorker struct {
	log *slog.Logger
	g   *errgroup.Group
}

func (w *goroutineWorker) Pid() int {
	return os.Getpid()
}

// Wait joins the goroutine. A failed responder reports exit code 1.
func (w *goroutineWorker) Wait() (config.WorkerStatus, error) {
	status := config.WorkerStatus{Pid: w.Pid(), Exited: true}

	if err := w.g.Wait(); err != nil {
		status.ExitCode = 1
		w.log.Error("Responder goroutine failed", "error", err)

		return status, &errors.ProcessError{Pid: status.Pid, ExitCode: status.ExitCode, Err: err}
	}

	return status, nil
}
