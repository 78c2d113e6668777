// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/platform/ctxutil"
	"github.com/taibuivan/userdesk/internal/platform/middleware"
	"github.com/taibuivan/userdesk/internal/platform/sec"
)

type corsConfig struct {
	dev     bool
	origins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.dev }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

// whoami echoes the authenticated user id, or "anonymous".
var whoami = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if claims := ctxutil.Claims(request.Context()); claims != nil {
		_, _ = io.WriteString(writer, claims.UserID)
		return
	}
	_, _ = io.WriteString(writer, "anonymous")
})

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService("middleware-test-secret", "userdesk.test")
	require.NoError(t, err)
	return tokens
}

/*
TestAuthenticate covers anonymous, valid, malformed and wrong-purpose credentials.
*/
func TestAuthenticate(t *testing.T) {
	tokens := newTokens(t)

	access, err := tokens.Issue(sec.Claims{UserID: "u1", Role: "member"}, time.Hour)
	require.NoError(t, err)
	verification, err := tokens.Issue(sec.Claims{UserID: "u1", Purpose: sec.PurposeVerifyEmail}, time.Hour)
	require.NoError(t, err)

	handler := middleware.Authenticate(tokens)(whoami)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid_bearer", "Bearer " + access, http.StatusOK, "u1"},
		{"lowercase_scheme", "bearer " + access, http.StatusOK, "u1"},
		{"basic_scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"missing_token", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage_token", "Bearer nope", http.StatusUnauthorized, ""},
		{"verification_token", "Bearer " + verification, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	tokens := newTokens(t)
	access, err := tokens.Issue(sec.Claims{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	handler := middleware.Authenticate(tokens)(middleware.RequireAuth(whoami))

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Contains(t, anonymous.Body.String(), "UNAUTHORIZED")

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+access)
	authorized := httptest.NewRecorder()
	handler.ServeHTTP(authorized, request)
	assert.Equal(t, http.StatusOK, authorized.Code)
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://app.example"}})(whoami)

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed.Header.Set("Origin", "https://app.example")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, allowed)
	assert.Equal(t, "https://app.example", recorder.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/", nil)
	denied.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, denied)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://app.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	handler := middleware.RequestID()(middleware.StructuredLogger(logger)(middleware.PanicRecovery()(panicky)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "missing", incoming: ""},
		{name: "client supplied", incoming: "fixed-id", keep: true},
		{name: "contains spaces", incoming: "two words"},
		{name: "too long", incoming: strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				request.Header.Set("X-Request-ID", tt.incoming)
			}
			recorder := httptest.NewRecorder()
			middleware.RequestID()(whoami).ServeHTTP(recorder, request)

			got := recorder.Header().Get("X-Request-ID")
			require.NotEmpty(t, got)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
				assert.Len(t, got, 36)
			}
		})
	}
}

func TestNoStore(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.NoStore(whoami).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", recorder.Header().Get("Pragma"))
}
