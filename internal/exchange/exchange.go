package exchange

import (
	"context"
	"log/slog"
	"os"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/trace"
	"github.com/wagiedev/pingpong-go/internal/wire"
)

// Params configures SpawnAndRun. All fields are required.
type Params struct {
	Logger   *slog.Logger
	Spawner  config.Spawner
	Source   wire.Source
	Observer trace.Observer
	RunID    string
}

// SpawnAndRun performs one complete round trip from the initiator side.
//
// It returns *errors.ResourceError if the pipes cannot be allocated and
// *errors.SpawnError if the worker cannot be started; in both cases no
// value is read or written. Any other error comes from the transfer.
func SpawnAndRun(ctx context.Context, p Params) (*Result, error) {
	log := p.Logger.With("run_id", p.RunID)
	log.Debug("State transition", "state", StateInit)

	pair, err := channel.NewPair()
	if err != nil {
		log.Error("Failed to allocate pipes", "error", err)

		return nil, err
	}

	fds := pair.Descriptors()
	p.Observer.Setup(trace.Setup{
		Pid:       os.Getpid(),
		FwdRead:   fds[0],
		FwdWrite:  fds[1],
		BackRead:  fds[2],
		BackWrite: fds[3],
	})

	ini, resp := pair.Split()

	worker, err := p.Spawner.Spawn(ctx, resp, config.SpawnRequest{RunID: p.RunID})
	if err != nil {
		log.Error("Failed to spawn worker", "error", err)
		_ = pair.Close()

		return nil, err
	}

	log.Info("Worker spawned", "pid", worker.Pid())

	result, err := RunInitiator(ctx, log, ini, worker, p.Source, p.Observer)
	if err != nil {
		return nil, err
	}

	result.RunID = p.RunID

	return result, nil
}
