package channel

import (
	"context"
	stderrors "errors"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wagiedev/pingpong-go/internal/errors"
	"github.com/wagiedev/pingpong-go/internal/wire"
)

// Endpoint is one end of a pipe, owned by exactly one role.
type Endpoint struct {
	name string
	fd   int

	mu sync.Mutex
	f  *os.File
}

func newEndpoint(name string, f *os.File) *Endpoint {
	return &Endpoint{name: name, fd: rawFD(f), f: f}
}

// rawFD returns the descriptor of f without switching it to blocking mode,
// which File.Fd would do and which disables deadlines.
func rawFD(f *os.File) int {
	conn, err := f.SyscallConn()
	if err != nil {
		return -1
	}

	fd := -1
	_ = conn.Control(func(u uintptr) { fd = int(u) })

	return fd
}

// Name returns the endpoint's label, e.g. "fwd/read".
func (e *Endpoint) Name() string { return e.name }

// FD returns the descriptor number the endpoint had when it was opened.
// The number stays valid for reporting after Close.
func (e *Endpoint) FD() int { return e.fd }

// File returns the underlying file, or nil once the endpoint is closed.
func (e *Endpoint) File() *os.File {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.f
}

// Closed reports whether Close has been called.
func (e *Endpoint) Closed() bool {
	return e.File() == nil
}

// Close closes the endpoint. It is safe to call Close more than once.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.f == nil {
		return nil
	}

	err := e.f.Close()
	e.f = nil

	return err
}

// ReadValue blocks until exactly wire.PayloadWidth bytes have been read.
//
// Cancelling ctx interrupts the read on pollable descriptors. A short or
// failed read is reported as *errors.TransferError.
func (e *Endpoint) ReadValue(ctx context.Context) (wire.Value, error) {
	f := e.File()
	if f == nil {
		return 0, e.transferError("read", 0, errors.ErrEndpointClosed)
	}

	stop := interruptOnDone(ctx, f)
	defer stop()

	v, n, err := wire.ReadValue(f)
	if err != nil {
		return 0, e.transferError("read", n, contextCause(ctx, err))
	}

	return v, nil
}

// WriteValue writes v as exactly wire.PayloadWidth bytes.
func (e *Endpoint) WriteValue(ctx context.Context, v wire.Value) error {
	f := e.File()
	if f == nil {
		return e.transferError("write", 0, errors.ErrEndpointClosed)
	}

	stop := interruptOnDone(ctx, f)
	defer stop()

	n, err := wire.WriteValue(f, v)
	if err != nil {
		return e.transferError("write", n, contextCause(ctx, err))
	}

	return nil
}

func (e *Endpoint) transferError(op string, n int, err error) error {
	return &errors.TransferError{
		Op:       op,
		Endpoint: e.name,
		FD:       e.fd,
		N:        n,
		Err:      err,
	}
}

// interruptOnDone expires f's deadline when ctx is done. Descriptors that do
// not support deadlines keep blocking.
func interruptOnDone(ctx context.Context, f *os.File) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		_ = f.SetDeadline(time.Now())
	})
}

// contextCause replaces a deadline error caused by ctx with ctx's error.
func contextCause(ctx context.Context, err error) error {
	if ctx.Err() != nil && stderrors.Is(err, os.ErrDeadlineExceeded) {
		return ctx.Err()
	}

	return err
}

// IsOpen reports whether fd refers to an open descriptor in this process.
func IsOpen(fd int) bool {
	if fd < 0 {
		return false
	}

	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)

	return err == nil
}

// OpenCount returns how many of fds are open descriptors in this process.
func OpenCount(fds ...int) int {
	n := 0

	for _, fd := range fds {
		if IsOpen(fd) {
			n++
		}
	}

	return n
}
