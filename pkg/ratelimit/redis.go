package ratelimit

import (
	"context"
	"fmt"
	"time"

	"booking-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter over Redis. One key per
// (route, caller, window); the first increment sets the TTL.
type Limiter struct {
	client *redis.Client
}

func NewRedis(config utils.RedisConfig) *Limiter {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	return &Limiter{client: client}
}

func (l *Limiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Allow reports whether the caller is inside the limit for the current
// window. Callers decide what to do on error; the middleware fails open so
// a Redis outage never blocks bookings.
func (l *Limiter) Allow(ctx context.Context, route, caller string, limit int, window time.Duration) (bool, error) {
	windowStart := time.Now().Unix() / int64(window.Seconds())
	key := fmt.Sprintf("rl:%s:%s:%d", route, caller, windowStart)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr %s: %w", key, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire %s: %w", key, err)
		}
	}

	return count <= int64(limit), nil
}
