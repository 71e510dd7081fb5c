package exchange

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/errors"
	"github.com/wagiedev/pingpong-go/internal/spawn"
	"github.com/wagiedev/pingpong-go/internal/trace"
	"github.com/wagiedev/pingpong-go/internal/wire"
)

// recorder is an Observer that keeps every event.
type recorder struct {
	mu       sync.Mutex
	setup    []trace.Setup
	sent     []trace.Sent
	echoed   []trace.Echoed
	received []trace.Received
}

func (r *recorder) Setup(e trace.Setup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setup = append(r.setup, e)
}

func (r *recorder) Sent(e trace.Sent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, e)
}

func (r *recorder) Echoed(e trace.Echoed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.echoed = append(r.echoed, e)
}

func (r *recorder) Received(e trace.Received) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.received = append(r.received, e)
}

func echoSpawner(log *slog.Logger, obs trace.Observer) *spawn.Goroutine {
	return spawn.NewGoroutine(log, func(ctx context.Context, ends *channel.ResponderEnds) error {
		return RunResponder(ctx, log, ends, obs)
	})
}

func TestSpawnAndRun_RoundTrip(t *testing.T) {
	log := slog.Default()
	rec := &recorder{}

	result, err := SpawnAndRun(context.Background(), Params{
		Logger:   log,
		Spawner:  echoSpawner(log, rec),
		Source:   wire.Fixed(123456),
		Observer: rec,
		RunID:    "run-1",
	})
	require.NoError(t, err)

	require.Equal(t, "run-1", result.RunID)
	require.Equal(t, wire.Value(123456), result.Sent)
	require.Equal(t, wire.Value(123456), result.Received)
	require.True(t, result.Matched())
	require.True(t, result.Worker.Exited)
	require.Zero(t, result.Worker.ExitCode)

	require.Len(t, rec.setup, 1)
	require.Len(t, rec.sent, 1)
	require.Len(t, rec.echoed, 1)
	require.Len(t, rec.received, 1)

	setup := rec.setup[0]
	require.Equal(t, setup.FwdWrite, rec.sent[0].FD)
	require.Equal(t, setup.FwdRead, rec.echoed[0].RecvFD)
	require.Equal(t, setup.BackWrite, rec.echoed[0].SendFD)
	require.Equal(t, setup.BackRead, rec.received[0].FD)
	require.Equal(t, wire.Value(123456), rec.echoed[0].Value)
	require.True(t, rec.received[0].Matched())

	// All four descriptors are released once the run is over.
	require.Zero(t, channel.OpenCount(setup.FwdRead, setup.FwdWrite, setup.BackRead, setup.BackWrite))
}

func TestSpawnAndRun_IdentityForManyValues(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := wire.Seeded(1)

	for range 25 {
		v := src()

		result, err := SpawnAndRun(context.Background(), Params{
			Logger:   log,
			Spawner:  echoSpawner(log, trace.Nop{}),
			Source:   wire.Fixed(v),
			Observer: trace.Nop{},
		})
		require.NoError(t, err)
		require.Equal(t, v, result.Received)
	}
}

// TestSpawnAndRun_SpawnFailure tests that a failed spawn performs no I/O and
// releases every descriptor.
func TestSpawnAndRun_SpawnFailure(t *testing.T) {
	rec := &recorder{}
	sourceCalled := false

	var fds [2]int

	spawner := spawn.SpawnFunc(func(_ context.Context, ends *channel.ResponderEnds, _ config.SpawnRequest) (config.Worker, error) {
		fds = [2]int{ends.Recv.FD(), ends.Send.FD()}

		return nil, &errors.SpawnError{Err: syscall.EAGAIN}
	})

	result, err := SpawnAndRun(context.Background(), Params{
		Logger:  slog.Default(),
		Spawner: spawner,
		Source: func() wire.Value {
			sourceCalled = true

			return 1
		},
		Observer: rec,
	})
	require.Nil(t, result)

	_, ok := stderrors.AsType[*errors.SpawnError](err)
	require.True(t, ok)
	require.ErrorIs(t, err, syscall.EAGAIN)

	require.False(t, sourceCalled)
	require.Empty(t, rec.sent)
	require.Empty(t, rec.received)
	require.Len(t, rec.setup, 1)

	setup := rec.setup[0]
	require.Equal(t, [2]int{setup.FwdRead, setup.BackWrite}, fds)
	require.Zero(t, channel.OpenCount(setup.FwdRead, setup.FwdWrite, setup.BackRead, setup.BackWrite))
}

func TestSpawnAndRun_CorruptedEcho(t *testing.T) {
	log := slog.Default()
	rec := &recorder{}

	spawner := spawn.NewGoroutine(log, func(ctx context.Context, ends *channel.ResponderEnds) error {
		defer ends.Close()

		v, err := ends.Recv.ReadValue(ctx)
		if err != nil {
			return err
		}

		return ends.Send.WriteValue(ctx, v+1)
	})

	result, err := SpawnAndRun(context.Background(), Params{
		Logger:   log,
		Spawner:  spawner,
		Source:   wire.Fixed(41),
		Observer: rec,
	})

	// A mismatch is reported, not returned as an error.
	require.NoError(t, err)
	require.False(t, result.Matched())
	require.Equal(t, wire.Value(42), result.Received)
	require.False(t, rec.received[0].Matched())
}

func TestSpawnAndRun_ResponderExitsWithoutEcho(t *testing.T) {
	log := slog.Default()

	spawner := spawn.NewGoroutine(log, func(ctx context.Context, ends *channel.ResponderEnds) error {
		defer ends.Close()

		_, err := ends.Recv.ReadValue(ctx)

		return err
	})

	result, err := SpawnAndRun(context.Background(), Params{
		Logger:   log,
		Spawner:  spawner,
		Source:   wire.Fixed(5),
		Observer: trace.Nop{},
	})
	require.Nil(t, result)

	xferErr, ok := stderrors.AsType[*errors.TransferError](err)
	require.True(t, ok)
	require.Equal(t, "read", xferErr.Op)
	require.Equal(t, "back/read", xferErr.Endpoint)
	require.ErrorIs(t, err, io.EOF)
}

// TestSpawnAndRun_ResponderGone tests that a write to a responder that has
// already closed its endpoints fails and the worker is still reaped.
func TestSpawnAndRun_ResponderGone(t *testing.T) {
	log := slog.Default()
	done := make(chan struct{})

	spawner := spawn.SpawnFunc(func(_ context.Context, ends *channel.ResponderEnds, _ config.SpawnRequest) (config.Worker, error) {
		require.NoError(t, ends.Close())

		return &fakeWorker{waited: done}, nil
	})

	result, err := SpawnAndRun(context.Background(), Params{
		Logger:   log,
		Spawner:  spawner,
		Source:   wire.Fixed(5),
		Observer: trace.Nop{},
	})
	require.Nil(t, result)
	require.ErrorIs(t, err, syscall.EPIPE)

	select {
	case <-done:
	default:
		t.Fatal("worker was not reaped")
	}
}

func TestSpawnAndRun_Cancelled(t *testing.T) {
	log := slog.Default()

	spawner := spawn.NewGoroutine(log, func(ctx context.Context, ends *channel.ResponderEnds) error {
		defer ends.Close()

		if _, err := ends.Recv.ReadValue(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()

	_, err := SpawnAndRun(ctx, Params{
		Logger:   log,
		Spawner:  spawner,
		Source:   wire.Fixed(5),
		Observer: trace.Nop{},
	})
	require.Error(t, err)
	require.Less(t, time.Since(start), 10*time.Second)
}

func TestRunResponder_Echo(t *testing.T) {
	pair, err := channel.NewPair()
	require.NoError(t, err)

	t.Cleanup(func() { _ = pair.Close() })

	ini, resp := pair.Split()
	ctx := context.Background()
	rec := &recorder{}

	require.NoError(t, ini.Send.WriteValue(ctx, -123456))
	require.NoError(t, RunResponder(ctx, slog.Default(), resp, rec))

	// The responder closed both of its endpoints.
	require.True(t, resp.Recv.Closed())
	require.True(t, resp.Send.Closed())
	require.Equal(t, 2, ini.OpenCount())

	v, err := ini.Recv.ReadValue(ctx)
	require.NoError(t, err)
	require.Equal(t, wire.Value(-123456), v)

	require.Len(t, rec.echoed, 1)
	require.Equal(t, resp.Recv.FD(), rec.echoed[0].RecvFD)
}

func TestRunInitiator_ClosesEndpoints(t *testing.T) {
	pair, err := channel.NewPair()
	require.NoError(t, err)

	t.Cleanup(func() { _ = pair.Close() })

	ini, resp := pair.Split()
	log := slog.Default()

	worker, err := echoSpawner(log, trace.Nop{}).Spawn(context.Background(), resp, config.SpawnRequest{})
	require.NoError(t, err)

	result, err := RunInitiator(context.Background(), log, ini, worker, wire.Fixed(9), trace.Nop{})
	require.NoError(t, err)
	require.True(t, result.Matched())
	require.Zero(t, ini.OpenCount())
}

type fakeWorker struct {
	waited chan struct{}
}

func (w *fakeWorker) Pid() int { return 4242 }

func (w *fakeWorker) Wait() (config.WorkerStatus, error) {
	close(w.waited)

	return config.WorkerStatus{Pid: 4242, Exited: true}, nil
}
