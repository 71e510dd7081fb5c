package pingpong

import (
	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
	"github.com/wagiedev/pingpong-go/internal/exchange"
	"github.com/wagiedev/pingpong-go/internal/trace"
	"github.com/wagiedev/pingpong-go/internal/wire"
)

// Value is the integer exchanged by a round trip.
type Value = wire.Value

// PayloadWidth is the number of bytes one Value occupies on a pipe.
const PayloadWidth = wire.PayloadWidth

// Source produces the value the initiator sends.
type Source = wire.Source

// Result is the outcome of a round trip.
type Result = exchange.Result

// Spawner starts the responder. See WithSpawner.
type Spawner = config.Spawner

// SpawnRequest carries per-run data to a Spawner.
type SpawnRequest = config.SpawnRequest

// Worker is a started responder.
type Worker = config.Worker

// WorkerStatus is the outcome of reaping a Worker.
type WorkerStatus = config.WorkerStatus

// ResponderEnds are the two endpoints a Spawner hands to its worker.
type ResponderEnds = channel.ResponderEnds

// Observer receives the human-readable trace of a round trip.
type Observer = trace.Observer

// Trace events delivered to an Observer.
type (
	SetupEvent    = trace.Setup
	SentEvent     = trace.Sent
	EchoedEvent   = trace.Echoed
	ReceivedEvent = trace.Received
)

// Fixed returns a Source that always yields v.
func Fixed(v Value) Source { return wire.Fixed(v) }

// TimeSeeded returns a Source seeded from the current time.
func TimeSeeded() Source { return wire.TimeSeeded() }

// Seeded returns a deterministic Source for seed.
func Seeded(seed uint64) Source { return wire.Seeded(seed) }
