package errors

import (
	"errors"
	"fmt"
)

// PingPongError is the base interface for all pingpong errors.
type PingPongError interface {
	error
	IsPingPongError() bool
}

// Compile-time verification that all error types implement PingPongError.
var (
	_ PingPongError = (*ResourceError)(nil)
	_ PingPongError = (*SpawnError)(nil)
	_ PingPongError = (*TransferError)(nil)
	_ PingPongError = (*ProcessError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotResponder indicates ServeResponder was called in a process that
	// was not started as a responder.
	ErrNotResponder = errors.New("process was not started as a responder")

	// ErrMissingEndpoint indicates the responder did not inherit one of its
	// pipe endpoints.
	ErrMissingEndpoint = errors.New("inherited endpoint missing")

	// ErrEndpointClosed indicates an endpoint was used after it was closed.
	ErrEndpointClosed = errors.New("endpoint closed")
)

// ResourceError indicates the pipes could not be allocated.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("allocate %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsPingPongError implements PingPongError.
func (e *ResourceError) IsPingPongError() bool { return true }

// SpawnError indicates the worker could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("spawn worker: %v", e.Err)
	}

	return fmt.Sprintf("spawn worker %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsPingPongError implements PingPongError.
func (e *SpawnError) IsPingPongError() bool { return true }

// TransferError indicates a read or write on a pipe endpoint moved fewer
// bytes than the payload width, or failed outright.
type TransferError struct {
	Op       string // "read" or "write"
	Endpoint string
	FD       int
	N        int // bytes transferred before the failure
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s (fd=%d): %d bytes transferred: %v", e.Op, e.Endpoint, e.FD, e.N, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// IsPingPongError implements PingPongError.
func (e *TransferError) IsPingPongError() bool { return true }

// ProcessError indicates the worker exited with a non-zero status.
type ProcessError struct {
	Pid      int
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("worker process %d failed (exit %d): %v", e.Pid, e.ExitCode, e.Err)
	}

	return fmt.Sprintf("worker process %d failed (exit %d)", e.Pid, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsPingPongError implements PingPongError.
func (e *ProcessError) IsPingPongError() bool { return true }
