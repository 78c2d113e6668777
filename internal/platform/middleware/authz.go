// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/constants"
	"github.com/taibuivan/userdesk/internal/platform/ctxutil"
	"github.com/taibuivan/userdesk/internal/platform/respond"
	"github.com/taibuivan/userdesk/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens in middleware.
//
// Implementations must reject tokens minted for any purpose other than access.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(strings.TrimSpace(tokenStr))
			if err != nil {
				ctxutil.Logger(request.Context()).DebugContext(request.Context(), "bearer_token_rejected",
					slog.Any("error", err),
				)
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.Claims(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
