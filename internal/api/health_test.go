// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/api"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type readinessBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			IsOK bool   `json:"ok"`
		} `json:"checks"`
	} `json:"data"`
}

func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, discard)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantCode   int
		wantStatus string
		wantChecks int
	}{
		{name: "no dependencies", wantCode: http.StatusOK, wantStatus: "ready"},
		{
			name:       "all healthy",
			deps:       api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: 2,
		},
		{
			name:       "cache down",
			deps:       api.HealthDependencies{CheckDatabase: healthy, CheckCache: broken},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantChecks: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps, discard)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, tt.wantCode, recorder.Code)

			var body readinessBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Data.Status)
			assert.Len(t, body.Data.Checks, tt.wantChecks)
			assert.NotContains(t, recorder.Body.String(), "connection refused")
		})
	}
}
