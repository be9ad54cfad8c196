package redis

import (
	"context"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return err
}

func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Set(ctx, key, jsonValue, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return err
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return data, nil
	} else if err != nil {
		return data, exceptions.ErrRedisGetNoData(err, key)
	}

	return data, err
}

// GetInto decodes the JSON stored at key into dest and reports whether the key existed.
func (r *redisRepository) GetInto(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == "" {
		return false, nil
	}

	err = json.Unmarshal([]byte(data), dest)
	if err != nil {
		return false, exceptions.ErrCannotParseJSON(err)
	}
	return true, nil
}

func (r *redisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	err := r.client.Expire(ctx, key, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, jsonValue, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) Publish(ctx context.Context, channel string, message interface{}) error {
	jsonValue, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Publish(ctx, channel, jsonValue).Err()
	if err != nil {
		return exceptions.ErrRedisPublish(err, channel)
	}
	return nil
}

func (r *redisRepository) Subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := r.client.Subscribe(ctx, channel)

	// Receive waits for the subscription confirmation so no publish is missed after we return.
	_, err := pubsub.Receive(ctx)
	if err != nil {
		pubsub.Close()
		return exceptions.ErrRedisSubscribe(err, channel)
	}

	go func() {
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case message, ok := <-messages:
				if !ok {
					return
				}
				handler(message.Payload)
			}
		}
	}()
	return nil
}
