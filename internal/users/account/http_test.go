// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/platform/middleware"
	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/internal/users/account"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

func newServer(t *testing.T) (http.Handler, string) {
	t.Helper()
	repository, id := seed(t)

	tokens, err := sec.NewTokenService("unit-test-secret-with-enough-bytes!!", "userdesk.test")
	require.NoError(t, err)
	bearer, err := tokens.Issue(sec.Claims{UserID: id, Role: "member"}, time.Hour)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/me", account.NewHandler(account.NewService(repository, nil)).Routes())
	return router, bearer
}

func call(handler http.Handler, method, body, bearer string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, "/me", strings.NewReader(body))
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Me(t *testing.T) {
	router, bearer := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodGet, "", "").Code)

	recorder := call(router, http.MethodGet, "", bearer)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data auth.PublicProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "alice@example.com", envelope.Data.Email)
	assert.NotContains(t, recorder.Body.String(), "hash")
}

func TestHandler_UpdateMe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDOB    *string
	}{
		{name: "rename", body: `{"first_name":"Alicia"}`, wantStatus: http.StatusOK, wantDOB: strPtr("1995-05-04")},
		{name: "clear dob", body: `{"dob":null}`, wantStatus: http.StatusOK},
		{name: "future dob", body: `{"dob":"2999-01-01"}`, wantStatus: http.StatusBadRequest},
		{name: "blank name", body: `{"last_name":"   "}`, wantStatus: http.StatusBadRequest},
		{name: "not json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, bearer := newServer(t)

			recorder := call(router, http.MethodPatch, tt.body, bearer)
			require.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var envelope struct {
				Data auth.PublicProfile `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantDOB, envelope.Data.DateOfBirth)
		})
	}
}
