// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the optional Redis client.

The API only uses Redis for the verification mail outbox, a list a separate
mail worker drains. Without REDIS_URL the service runs and logs mail instead.
*/
package redis

import (
	stdctx "context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient parses redisURL, sizes the pool and pings once before returning.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: redis:// or rediss:// URL.
//   - poolSize: Maximum socket connections. Zero keeps the go-redis default.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, redisURL string, poolSize int, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if poolSize > 0 {
		options.PoolSize = poolSize
	}
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}

// ListPusher is the slice of [redis.Cmdable] that [PushJSON] needs.
type ListPusher interface {
	RPush(context stdctx.Context, key string, values ...interface{}) *redis.IntCmd
}

// PushJSON encodes payload and appends it to the list at key.
func PushJSON(context stdctx.Context, client ListPusher, key string, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("redis: encode %s payload: %w", key, err)
	}

	if err := client.RPush(context, key, encoded).Err(); err != nil {
		return fmt.Errorf("redis: push to %s: %w", key, err)
	}
	return nil
}
