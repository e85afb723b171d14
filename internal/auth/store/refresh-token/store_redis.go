package refreshtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"shopgate/pkg/platform/sentinel"
)

var storeOpDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "shopgate_refresh_store_op_duration_ms",
	Help:    "Latency of refresh token store operations in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
}, []string{"op"})

// Redis key prefix for tracked refresh tokens.
const keyPrefix = "refresh_token:"

// RedisStore is the production credential store. Redis gives us atomic
// single-key set-with-TTL, which is all the overwrite-wins invariant needs.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore constructs a Redis-backed refresh token store.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func key(userID string) string {
	return keyPrefix + userID
}

// Put stores the refresh token under the user's key with the 7-day TTL,
// unconditionally replacing any previous entry.
func (s *RedisStore) Put(ctx context.Context, userID, refreshToken string) error {
	defer observe("put", time.Now())

	if err := s.client.Set(ctx, key(userID), refreshToken, TTL).Err(); err != nil {
		return fmt.Errorf("put refresh token: %v: %w", err, sentinel.ErrUnavailable)
	}
	return nil
}

// Get returns the currently tracked refresh token for the user.
func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	defer observe("get", time.Now())

	val, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("refresh token not tracked: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get refresh token: %v: %w", err, sentinel.ErrUnavailable)
	}
	return val, nil
}

// Delete removes the user's entry. The bool reports whether a key existed,
// for diagnostics only.
func (s *RedisStore) Delete(ctx context.Context, userID string) (bool, error) {
	defer observe("delete", time.Now())

	removed, err := s.client.Del(ctx, key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete refresh token: %v: %w", err, sentinel.ErrUnavailable)
	}
	return removed > 0, nil
}

func observe(op string, start time.Time) {
	storeOpDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}
