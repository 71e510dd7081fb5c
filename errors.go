package pingpong

import "github.com/wagiedev/pingpong-go/internal/errors"

// Re-export error types from internal package

// ResourceError indicates the pipes could not be allocated.
type ResourceError = errors.ResourceError

// SpawnError indicates the responder could not be started.
type SpawnError = errors.SpawnError

// TransferError indicates a read or write moved fewer bytes than PayloadWidth.
type TransferError = errors.TransferError

// ProcessError indicates the responder exited with a non-zero status.
type ProcessError = errors.ProcessError

// PingPongError is the base interface for all pingpong errors.
type PingPongError = errors.PingPongError

// Re-export sentinel errors from internal package.
var (
	// ErrNotResponder indicates ServeResponder was called in a process that
	// was not started as a responder.
	ErrNotResponder = errors.ErrNotResponder

	// ErrMissingEndpoint indicates the responder did not inherit its endpoints.
	ErrMissingEndpoint = errors.ErrMissingEndpoint

	// ErrEndpointClosed indicates an endpoint was used after it was closed.
	ErrEndpointClosed = errors.ErrEndpointClosed
)
