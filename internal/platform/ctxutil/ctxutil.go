// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values set by middleware.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/userdesk/internal/platform/ctxkey"
	"github.com/taibuivan/userdesk/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// RequestID returns the correlation id, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.RequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the per-request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// Logger returns the per-request logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.Logger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithClaims attaches the verified bearer token claims.
func WithClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.Claims, claims)
}

// Claims returns the verified claims, or nil for anonymous requests.
func Claims(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.Claims).(*sec.AuthClaims)
	return claims
}

// AccountID returns the authenticated account id and whether there is one.
func AccountID(ctx context.Context) (string, bool) {
	claims := Claims(ctx)
	if claims == nil || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
