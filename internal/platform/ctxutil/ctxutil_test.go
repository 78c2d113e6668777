// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/platform/ctxutil"
	"github.com/taibuivan/userdesk/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.RequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0190f5a4-req")
	assert.Equal(t, "0190f5a4-req", ctxutil.RequestID(ctx))
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.Logger(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.Logger(ctxutil.WithLogger(ctx, logger)))

	assert.Same(t, slog.Default(), ctxutil.Logger(ctxutil.WithLogger(ctx, nil)), "nil logger falls back")
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.Claims(ctx))

	_, ok := ctxutil.AccountID(ctx)
	assert.False(t, ok)

	ctx = ctxutil.WithClaims(ctx, &sec.AuthClaims{UserID: "acc-1", Role: "member"})
	claims := ctxutil.Claims(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "member", claims.Role)

	accountID, ok := ctxutil.AccountID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "acc-1", accountID)

	_, ok = ctxutil.AccountID(ctxutil.WithClaims(context.Background(), &sec.AuthClaims{}))
	assert.False(t, ok, "claims without a subject are not an identity")
}
