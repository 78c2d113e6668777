// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys for per-request values.
//
// It imports nothing, so respond can read the request logger without
// depending on ctxutil and, through it, on sec.
package ctxkey

type key int

const (
	// RequestID holds the X-Request-ID correlation string.
	RequestID key = iota

	// Claims holds the verified bearer token's [sec.AuthClaims].
	Claims

	// Logger holds the per-request [*log/slog.Logger].
	Logger
)
