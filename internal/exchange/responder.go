package exchange

import (
	"context"
	"log/slog"
	"os"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/trace"
)

// RunResponder reads one value from ends.Recv and writes it back, unmodified,
// on ends.Send. Both endpoints are closed on return.
func RunResponder(
	ctx context.Context,
	log *slog.Logger,
	ends *channel.ResponderEnds,
	obs trace.Observer,
) error {
	defer ends.Close()

	log = log.With("role", "responder")
	log.Debug("State transition", "state", StateEndpointsTrimmed, "open_endpoints", ends.OpenCount())

	v, err := ends.Recv.ReadValue(ctx)
	if err != nil {
		log.Error("Failed to receive value", "fd", ends.Recv.FD(), "error", err)

		return err
	}

	log.Debug("State transition", "state", StateReceived, "value", v, "fd", ends.Recv.FD())

	if err := ends.Recv.Close(); err != nil {
		log.Warn("Failed to close receive endpoint", "fd", ends.Recv.FD(), "error", err)
	}

	obs.Echoed(trace.Echoed{
		Pid:    os.Getpid(),
		Ppid:   os.Getppid(),
		Value:  v,
		RecvFD: ends.Recv.FD(),
		SendFD: ends.Send.FD(),
	})

	if err := ends.Send.WriteValue(ctx, v); err != nil {
		log.Error("Failed to echo value", "fd", ends.Send.FD(), "error", err)

		return err
	}

	log.Debug("State transition", "state", StateSent, "value", v, "fd", ends.Send.FD())

	if err := ends.Send.Close(); err != nil {
		log.Warn("Failed to close send endpoint", "fd", ends.Send.FD(), "error", err)
	}

	log.Debug("State transition", "state", StateChannelClosed)
	log.Debug("State transition", "state", StateTerminated)

	return nil
}
