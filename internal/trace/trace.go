package trace

import (
	"fmt"
	"io"
	"sync"

	"github.com/wagiedev/pingpong-go/internal/wire"
)

// Setup describes the initiator right after both pipes were created.
type Setup struct {
	Pid       int
	FwdRead   int
	FwdWrite  int
	BackRead  int
	BackWrite int
}

// Sent describes the initiator just before it writes its value.
type Sent struct {
	WorkerPid int
	Pid       int
	Ppid      int
	Value     wire.Value
	FD        int
}

// Echoed describes the responder after it received the value and before it
// writes it back.
type Echoed struct {
	Pid    int
	Ppid   int
	Value  wire.Value
	RecvFD int
	SendFD int
}

// Received describes the initiator after it read the echo.
type Received struct {
	Pid      int
	Value    wire.Value
	Expected wire.Value
	FD       int
}

// Matched reports whether the echo equals the value that was sent.
func (r Received) Matched() bool { return r.Value == r.Expected }

// Observer is notified at each milestone of a round trip.
// Implementations must be safe for use from two goroutines at once, since an
// in-process responder reports from its own goroutine.
type Observer interface {
	Setup(Setup)
	Sent(Sent)
	Echoed(Echoed)
	Received(Received)
}

// Nop is an Observer that discards everything.
type Nop struct{}

var _ Observer = Nop{}

func (Nop) Setup(Setup) {}
func (Nop) Sent(Sent) {}
func (Nop) Echoed(Echoed) {}
func (Nop) Received(Received) {}

// Printer writes the trace as indented text.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Observer = (*Printer)(nil)

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintf(p.w, format, args...)
}

// Setup implements Observer.
func (p *Printer) Setup(s Setup) {
	p.printf("Hello, I am PID %d:\n"+
		"  - first pipe returns: [%d, %d]\n"+
		"  - second pipe returns: [%d, %d]\n\n",
		s.Pid, s.FwdRead, s.FwdWrite, s.BackRead, s.BackWrite)
}

// Sent implements Observer.
func (p *Printer) Sent(s Sent) {
	p.printf("Where spawn returns %d:\n"+
		"  - getpid returns: %d\n"+
		"  - getppid returns: %d\n"+
		"  - random returns: %d\n"+
		"  - sending value %d via fd=%d\n\n",
		s.WorkerPid, s.Pid, s.Ppid, s.Value, s.Value, s.FD)
}

// Echoed implements Observer.
func (p *Printer) Echoed(e Echoed) {
	p.printf("Where spawn returns 0:\n"+
		"  - getpid returns: %d\n"+
		"  - getppid returns: %d\n"+
		"  - received value %d via fd=%d\n"+
		"  - echoing value on fd=%d and exiting\n\n",
		e.Pid, e.Ppid, e.Value, e.RecvFD, e.SendFD)
}

// Received implements Observer.
func (p *Printer) Received(r Received) {
	p.printf("Hello again, PID %d:\n"+
		"  - received value %d via fd=%d\n",
		r.Pid, r.Value, r.FD)

	if !r.Matched() {
		p.printf("  - expected %d, round trip corrupted\n", r.Expected)
	}
}
