package config

import (
	"context"

	"github.com/wagiedev/pingpong-go/internal/channel"
)

// Spawner starts the responder side of a round trip.
// Implement this to run the responder somewhere other than a child process,
// or to inject failures in tests.
//
// The default implementation is spawn.Process, which re-executes the
// current binary. Custom spawners can be injected via Options.Spawner.
type Spawner interface {
	// Spawn starts a worker that owns ends. On success the spawner has taken
	// ownership of ends and the caller must not use them. On failure ends are
	// untouched and still belong to the caller.
	Spawn(ctx context.Context, ends *channel.ResponderEnds, req SpawnRequest) (Worker, error)
}

// SpawnRequest carries per-run data to the worker.
type SpawnRequest struct {
	RunID string
}

// Worker is a started responder.
type Worker interface {
	// Pid returns the worker's process ID. In-process workers report the
	// initiator's own pid.
	Pid() int

	// Wait blocks until the worker has terminated and returns its status.
	// It must be called exactly once.
	Wait() (WorkerStatus, error)
}

// WorkerStatus is the outcome of reaping a worker.
type WorkerStatus struct {
	Pid      int
	ExitCode int
	Exited   bool
}
