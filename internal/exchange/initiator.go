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

// Result is the outcome of a round trip as seen by the initiator.
type Result struct {
	RunID    string
	Sent     wire.Value
	Received wire.Value
	Worker   config.WorkerStatus
}

// Matched reports whether the echo equals the value that was sent.
func (r *Result) Matched() bool {
	return r.Sent == r.Received
}

// RunInitiator sends one value from source to the worker and reads the echo.
//
// ends must be the initiator's two endpoints, with the responder's copies
// already gone. The worker is reaped after the value has been written and
// before the echo is read. Its exit status is recorded in the result but
// not validated. Both endpoints are closed on return.
func RunInitiator(
	ctx context.Context,
	log *slog.Logger,
	ends *channel.InitiatorEnds,
	worker config.Worker,
	source wire.Source,
	obs trace.Observer,
) (*Result, error) {
	defer ends.Close()

	log = log.With("role", "initiator")
	log.Debug("State transition", "state", StateEndpointsTrimmed, "open_endpoints", ends.OpenCount())

	sent := source()

	obs.Sent(trace.Sent{
		WorkerPid: worker.Pid(),
		Pid:       os.Getpid(),
		Ppid:      os.Getppid(),
		Value:     sent,
		FD:        ends.Send.FD(),
	})

	if err := ends.Send.WriteValue(ctx, sent); err != nil {
		log.Error("Failed to send value", "fd", ends.Send.FD(), "error", err)
		_ = ends.Close()
		reap(log, worker)

		return nil, err
	}

	log.Debug("State transition", "state", StateSent, "value", sent, "fd", ends.Send.FD())

	if err := ends.Send.Close(); err != nil {
		log.Warn("Failed to close send endpoint", "fd", ends.Send.FD(), "error", err)
	}

	log.Debug("State transition", "state", StateWaitForChild, "pid", worker.Pid())

	status := reap(log, worker)

	received, err := ends.Recv.ReadValue(ctx)
	if err != nil {
		log.Error("Failed to receive echo", "fd", ends.Recv.FD(), "error", err)

		return nil, err
	}

	log.Debug("State transition", "state", StateReceived, "value", received, "fd", ends.Recv.FD())

	if err := ends.Recv.Close(); err != nil {
		log.Warn("Failed to close receive endpoint", "fd", ends.Recv.FD(), "error", err)
	}

	log.Debug("State transition", "state", StateChannelClosed)

	obs.Received(trace.Received{
		Pid:      os.Getpid(),
		Value:    received,
		Expected: sent,
		FD:       ends.Recv.FD(),
	})

	result := &Result{Sent: sent, Received: received, Worker: status}
	if !result.Matched() {
		log.Warn("Echo does not match sent value", "sent", sent, "received", received)
	}

	log.Debug("State transition", "state", StateTerminated)

	return result, nil
}

// reap waits for the worker. A failed worker is logged, not returned: the
// echo read that follows reports whether anything actually went wrong.
func reap(log *slog.Logger, worker config.Worker) config.WorkerStatus {
	status, err := worker.Wait()
	if err != nil {
		log.Warn("Worker did not exit cleanly", "pid", status.Pid, "exit_code", status.ExitCode, "error", err)
	} else {
		log.Debug("Worker reaped", "pid", status.Pid, "exit_code", status.ExitCode)
	}

	return status
}
