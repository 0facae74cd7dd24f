package redis

import (
	"context"
	"time"
)

// Client defines the interface for the Redis client used by the snapshot
// store. Hash, sorted-set, stream and pub/sub commands from the wider
// platform client are intentionally absent; the engine only needs plain
// key/value access plus connection health.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}
