package spawn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/errors"
)

// Process implements Spawner by re-executing a binary as a child process.
type Process struct {
	log        *slog.Logger
	discoverer Discoverer
	args       []string
	env        map[string]string
	stdout     io.Writer
	stderr     io.Writer
}

// Compile-time verification that Process implements the Spawner interface.
var _ config.Spawner = (*Process)(nil)

// NewProcess creates a process spawner from options.
//
// Executable discovery is deferred to Spawn, which uses options.ResponderPath
// if set and the running executable otherwise.
func NewProcess(log *slog.Logger, options *config.Options) *Process {
	args := options.Args
	if args == nil && len(os.Args) > 1 {
		args = os.Args[1:]
	}

	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	log = log.With("component", "process_spawner")

	return &Process{
		log: log,
		discoverer: NewDiscoverer(&DiscoveryConfig{
			Path:   options.ResponderPath,
			Logger: log,
		}),
		args:   args,
		env:    options.Env,
		stdout: stdout,
		stderr: stderr,
	}
}

// Spawn starts the responder process.
//
// The child inherits ends as descriptors 3 and 4 and nothing else from the
// pair. Once the child runs, the parent's copies of ends are closed, leaving
// the initiator with its own two endpoints only.
//
// Returns *errors.SpawnError if the executable cannot be located or started.
func (p *Process) Spawn(
	ctx context.Context,
	ends *channel.ResponderEnds,
	req config.SpawnRequest,
) (config.Worker, error) {
	path, err := p.discoverer.Discover()
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G204: re-executing our own binary is the point
	cmd := exec.CommandContext(ctx, path, p.args...)
	cmd.Env = p.environ(req)
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr
	cmd.ExtraFiles = ends.Files()

	p.log.Debug("Starting responder process", "path", path, "args", p.args, "run_id", req.RunID)

	if err := cmd.Start(); err != nil {
		p.log.Error("Failed to start responder process", "error", err)

		return nil, &errors.SpawnError{Path: path, Err: err}
	}

	p.log.Info("Responder process started", "pid", cmd.Process.Pid,
		"recv_fd", ends.Recv.FD(), "send_fd", ends.Send.FD())

	// The child holds its own duplicates now.
	if err := ends.Close(); err != nil {
		p.log.Warn("Failed to close handed-off endpoints", "error", err)
	}

	return &processWorker{log: p.log, cmd: cmd}, nil
}

// environ returns the child environment: ours, the configured extras in a
// stable order, then the handshake.
func (p *Process) environ(req config.SpawnRequest) []string {
	env := os.Environ()

	for _, k := range slices.Sorted(maps.Keys(p.env)) {
		env = append(env, k+"="+p.env[k])
	}

	handshake := &config.ResponderEnv{Role: config.RoleResponder, RunID: req.RunID}

	return append(env, handshake.Environ()...)
}

// processWorker is a responder running in a child process.
type processWorker struct {
	log *slog.Logger
	cmd *exec.Cmd
}

func (w *processWorker) Pid() int {
	return w.cmd.Process.Pid
}

// Wait reaps the child. A non-zero exit is returned as *errors.ProcessError
// alongside the status.
func (w *processWorker) Wait() (config.WorkerStatus, error) {
	pid := w.Pid()

	w.log.Debug("Waiting for responder process to exit", "pid", pid)

	err := w.cmd.Wait()

	state := w.cmd.ProcessState
	if state == nil {
		return config.WorkerStatus{Pid: pid}, fmt.Errorf("wait for pid %d: %w", pid, err)
	}

	status := config.WorkerStatus{
		Pid:      pid,
		ExitCode: state.ExitCode(),
		Exited:   state.Exited(),
	}

	if err != nil {
		if _, ok := stderrors.AsType[*exec.ExitError](err); ok {
			w.log.Error("Responder process exited with error", "pid", pid, "exit_code", status.ExitCode)
		}

		return status, &errors.ProcessError{Pid: pid, ExitCode: status.ExitCode, Err: err}
	}

	w.log.Debug("Responder process exited successfully", "pid", pid)

	return status, nil
}
