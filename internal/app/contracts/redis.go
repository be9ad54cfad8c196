package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetInto(ctx context.Context, key string, dest interface{}) (bool, error)
	Expire(ctx context.Context, key string, exp time.Duration) error
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	Publish(ctx context.Context, channel string, message interface{}) error
	// Subscribe delivers every payload published on channel until ctx ends.
	Subscribe(ctx context.Context, channel string, handler func(payload string)) error
}
