package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// maxUpdateRetries bounds optimistic retries when a watched key changes.
const maxUpdateRetries = 10

// ErrConflict is returned when Update keeps losing to concurrent writers.
var ErrConflict = errors.New("concurrent update conflict")

// Redis stores values under a key prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, addr, password string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			// Best-effort close on connect failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) key(key string) string { return r.prefix + key }

// Get returns the value under key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key without expiry.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Clear removes key.
func (r *Redis) Clear(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Update applies fn under WATCH and retries when the key changes before EXEC.
func (r *Redis) Update(ctx context.Context, key string, fn UpdateFunc) error {
	full := r.key(key)
	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, full).Result()
		ok := true
		if errors.Is(err, redis.Nil) {
			ok = false
		} else if err != nil {
			return err
		}
		next, err := fn(cur, ok)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, full, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, full)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		slog.Debug("redis update conflict, retrying", "key", full, "attempt", attempt+1)
	}
	return fmt.Errorf("%w: %s", ErrConflict, full)
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
