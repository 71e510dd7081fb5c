package channel

import (
	stderrors "errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/wagiedev/pingpong-go/internal/errors"
)

// Descriptor numbers at which a child-process responder inherits its
// endpoints. They follow stdin, stdout and stderr.
const (
	ResponderRecvFD = 3
	ResponderSendFD = 4
)

// Channel names.
const (
	Fwd  = "fwd"
	Back = "back"
)

// pipe is replaced in tests to simulate descriptor exhaustion.
var pipe = os.Pipe

// Channel is a unidirectional pipe.
type Channel struct {
	Name  string
	Read  *Endpoint
	Write *Endpoint
}

// New creates a pipe. Failure to allocate it is reported as
// *errors.ResourceError.
func New(name string) (*Channel, error) {
	r, w, err := pipe()
	if err != nil {
		return nil, &errors.ResourceError{Op: name + " pipe", Err: err}
	}

	return &Channel{
		Name:  name,
		Read:  newEndpoint(name+"/read", r),
		Write: newEndpoint(name+"/write", w),
	}, nil
}

// Close closes both endpoints.
func (c *Channel) Close() error {
	return stderrors.Join(c.Read.Close(), c.Write.Close())
}

// Pair is the two channels of one round trip.
type Pair struct {
	Fwd  *Channel
	Back *Channel
}

// NewPair creates the fwd and back channels. If the second allocation fails,
// the first channel is closed before returning.
func NewPair() (*Pair, error) {
	fwd, err := New(Fwd)
	if err != nil {
		return nil, err
	}

	back, err := New(Back)
	if err != nil {
		_ = fwd.Close()

		return nil, err
	}

	return &Pair{Fwd: fwd, Back: back}, nil
}

// Descriptors returns the descriptor numbers of the pair as
// [fwd read, fwd write, back read, back write].
func (p *Pair) Descriptors() [4]int {
	return [4]int{p.Fwd.Read.FD(), p.Fwd.Write.FD(), p.Back.Read.FD(), p.Back.Write.FD()}
}

// Split hands out the per-role endpoint sets. After Split the pair should
// not be used for I/O; each role owns and closes its own endpoints.
func (p *Pair) Split() (*InitiatorEnds, *ResponderEnds) {
	return &InitiatorEnds{Send: p.Fwd.Write, Recv: p.Back.Read},
		&ResponderEnds{Recv: p.Fwd.Read, Send: p.Back.Write}
}

// Close closes every endpoint of the pair that is still open.
func (p *Pair) Close() error {
	return stderrors.Join(p.Fwd.Close(), p.Back.Close())
}

// InitiatorEnds are the endpoints owned by the initiator: the write end of
// fwd and the read end of back.
type InitiatorEnds struct {
	Send *Endpoint
	Recv *Endpoint
}

// Close closes both endpoints.
func (e *InitiatorEnds) Close() error {
	return stderrors.Join(e.Send.Close(), e.Recv.Close())
}

// OpenCount returns how many of the initiator's endpoints are still open.
func (e *InitiatorEnds) OpenCount() int {
	return OpenCount(openFDs(e.Send, e.Recv)...)
}

// ResponderEnds are the endpoints owned by the responder: the read end of
// fwd and the write end of back.
type ResponderEnds struct {
	Recv *Endpoint
	Send *Endpoint
}

// Close closes both endpoints.
func (e *ResponderEnds) Close() error {
	return stderrors.Join(e.Recv.Close(), e.Send.Close())
}

// OpenCount returns how many of the responder's endpoints are still open.
func (e *ResponderEnds) OpenCount() int {
	return OpenCount(openFDs(e.Recv, e.Send)...)
}

// Files returns the files to pass to a child process, ordered so that they
// land on ResponderRecvFD and ResponderSendFD when used as
// exec.Cmd.ExtraFiles. The endpoints still own the files; close them once
// the child has started.
func (e *ResponderEnds) Files() []*os.File {
	return []*os.File{e.Recv.File(), e.Send.File()}
}

// InheritedResponderEnds reopens the endpoints a child-process responder
// received from its parent.
func InheritedResponderEnds() (*ResponderEnds, error) {
	recv, err := inherit(ResponderRecvFD, Fwd+"/read")
	if err != nil {
		return nil, err
	}

	send, err := inherit(ResponderSendFD, Back+"/write")
	if err != nil {
		_ = recv.Close()

		return nil, err
	}

	return &ResponderEnds{Recv: recv, Send: send}, nil
}

func inherit(fd int, name string) (*Endpoint, error) {
	if !IsOpen(fd) {
		return nil, fmt.Errorf("%s (fd=%d): %w", name, fd, errors.ErrMissingEndpoint)
	}

	// A non-blocking descriptor is registered with the runtime poller by
	// os.NewFile, which makes deadlines work.
	_ = unix.SetNonblock(fd, true)
	unix.CloseOnExec(fd)

	return &Endpoint{name: name, fd: fd, f: os.NewFile(uintptr(fd), name)}, nil
}

// openFDs returns the descriptor numbers of endpoints that have not been
// closed.
func openFDs(eps ...*Endpoint) []int {
	fds := make([]int, 0, len(eps))

	for _, ep := range eps {
		if !ep.Closed() {
			fds = append(fds, ep.FD())
		}
	}

	return fds
}
