package spawn

import (
	"context"

	"github.com/wagiedev/pingpong-go/internal/channel"
	"github.com/wagiedev/pingpong-go/internal/config"
)

// SpawnFunc adapts an ordinary function to the Spawner interface.
type SpawnFunc func(ctx context.Context, ends *channel.ResponderEnds, req config.SpawnRequest) (config.Worker, error)

// Compile-time verification that SpawnFunc implements the Spawner interface.
var _ config.Spawner = SpawnFunc(nil)

// Spawn calls f.
func (f SpawnFunc) Spawn(
	ctx context.Context,
	ends *channel.ResponderEnds,
	req config.SpawnRequest,
) (config.Worker, error) {
	return f(ctx, ends, req)
}
