// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/userdesk/internal/platform/constants"
	"github.com/taibuivan/userdesk/internal/platform/respond"
)

// readinessTimeout bounds each dependency ping.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
//
// A nil checker is skipped, so the memory store and a missing Redis URL do
// not make the service unready.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

type checkResult struct {
	Name string `json:"name"`
	IsOK bool   `json:"ok"`
}

// readiness handles GET /ready (Readiness probe).
//
// Failure causes are logged, never returned to the caller.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check func(context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		context, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		err := dependency.check(context)
		cancel()

		if err != nil {
			isSystemReady = false
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", dependency.name),
				slog.Any("error", err),
			)
		}
		results = append(results, checkResult{Name: dependency.name, IsOK: err == nil})
	}

	status, httpStatus := "ready", http.StatusOK
	if !isSystemReady {
		status, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}
