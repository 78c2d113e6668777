// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the PostgreSQL connection pool and the
// transaction helper used by the account and address repositories.
//
// Repositories receive the pool and run their row-locking read-modify-write
// cycles through [WithTx].
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// PoolOptions sizes the pool. Zero values leave pgxpool's defaults in place.
type PoolOptions struct {
	MaxConns int32
	MinConns int32

	// StatementTimeout is set as statement_timeout on every new connection,
	// so a stuck row lock cannot hold a request forever.
	StatementTimeout time.Duration
}

// NewPool creates a pool for dsn and pings it before returning.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - dsn: A libpq-compatible connection string or postgres:// URL.
//   - options: Pool sizing, see [PoolOptions].
//   - logger: Structured logger for pool-level events.
func NewPool(ctx context.Context, dsn string, options PoolOptions, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	if options.MaxConns > 0 {
		poolConfig.MaxConns = options.MaxConns
	}
	if options.MinConns > 0 {
		poolConfig.MinConns = options.MinConns
	}
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	if options.StatementTimeout > 0 {
		// Runtime params are sent in the startup packet, no extra round trip.
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", options.StatementTimeout.Milliseconds())
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Int("min_conns", int(poolConfig.MinConns)),
		slog.Duration("statement_timeout", options.StatementTimeout),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}

// WithTx runs fn inside a READ COMMITTED transaction.
//
// The transaction commits when fn returns nil and rolls back otherwise. The
// error returned by fn is passed through unchanged so domain errors survive.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	return pgx.BeginTxFunc(ctx, pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}
