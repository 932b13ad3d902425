// Package ratelimit throttles repeated failed logins per email with Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per email inside a fixed window.
type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Redis connection successfully opened.")
	return rdb, nil
}

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window.
func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		rdb:         rdb,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func key(email string) string {
	return "rate:login:" + email
}

// Allow reports whether another login attempt may be made for email.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	count, err := l.rdb.Get(ctx, key(email)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login attempts: %w", err)
	}
	return count < l.maxAttempts, nil
}

// RecordFailure counts a failed attempt; the window starts at the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	k := key(email)
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.rdb.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}
