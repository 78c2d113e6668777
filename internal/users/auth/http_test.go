// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/platform/middleware"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
	Meta map[string]any `json:"meta"`
}

func newRouter(f *fixture) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(f.tokens))
	router.Mount("/auth", auth.NewHandler(f.service).Routes())
	return router
}

func do(t *testing.T, handler http.Handler, method, target, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

const registerBody = `{
	"first_name": "Alice",
	"last_name": "Liddell",
	"username": "alice",
	"email": "alice@example.com",
	"password": "Wonder1and!",
	"dob": "1995-05-04"
}`

func TestHandler_Register(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := do(t, router, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data auth.RegisterResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Data.AccountID)

	recorder = do(t, router, http.MethodPost, "/auth/register", registerBody, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, recorder).Code)
}

func TestHandler_Register_Validation(t *testing.T) {
	f := newFixture(t)

	recorder := do(t, newRouter(f), http.MethodPost, "/auth/register",
		`{"username":"a!","email":"nope","password":"weak","dob":"2999-01-01"}`, "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeError(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	var fields []string
	for _, detail := range body.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"dob", "email", "first_name", "last_name", "password", "username"}, fields)
}

func TestHandler_LoginFlow(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/auth/register", registerBody, "").Code)

	recorder := do(t, router, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"Wonder1and!"}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, auth.CodeNotVerified, decodeError(t, recorder).Code)

	token := f.notifier.lastToken(t)
	recorder = do(t, router, http.MethodPost, "/auth/verify-account?token="+url.QueryEscape(token), "", "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = do(t, router, http.MethodPost, "/auth/verify-account", `{"token":"`+token+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, auth.CodeAlreadyVerified, decodeError(t, recorder).Code)

	recorder = do(t, router, http.MethodPost, "/auth/login", `{"identifier":"alice","password":"Wonder1and!"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var login struct {
		Data auth.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))
	assert.Equal(t, "Bearer", login.Data.TokenType)
	assert.Equal(t, "alice", login.Data.User.Username)
	assert.NotContains(t, recorder.Body.String(), "password")

	recorder = do(t, router, http.MethodPatch, "/auth/password",
		`{"current_password":"Wonder1and!","new_password":"LookingGl4ss!"}`, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(t, router, http.MethodPatch, "/auth/password",
		`{"current_password":"Wonder1and!","new_password":"LookingGl4ss!"}`, login.Data.AccessToken)
	assert.Equal(t, http.StatusNoContent, recorder.Code, recorder.Body.String())
}

func TestHandler_ChangePassword_Validation(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	f.registerVerified(t)

	recorder := do(t, router, http.MethodPost, "/auth/login", `{"identifier":"alice","password":"Wonder1and!"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var login struct {
		Data auth.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))

	tests := []struct {
		name        string
		newPassword string
	}{
		{name: "disallowed character", newPassword: "Looking-Gl4ss"},
		{name: "too short", newPassword: "Gl4ss!"},
		{name: "no digit", newPassword: "LookingGlass!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, http.MethodPatch, "/auth/password",
				`{"current_password":"Wonder1and!","new_password":"`+tt.newPassword+`"}`, login.Data.AccessToken)
			require.Equal(t, http.StatusBadRequest, recorder.Code)

			body := decodeError(t, recorder)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			require.Len(t, body.Details, 1)
			assert.Equal(t, auth.FieldNewPassword, body.Details[0].Field)
		})
	}
}

func TestHandler_Register_EmailRules(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "malformed", email: "alice.example.com"},
		{name: "wider than the column", email: strings.Repeat("a", 250) + "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			body := strings.Replace(registerBody, "alice@example.com", tt.email, 1)

			recorder := do(t, newRouter(f), http.MethodPost, "/auth/register", body, "")
			require.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())

			envelope := decodeError(t, recorder)
			assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
			require.Len(t, envelope.Details, 1)
			assert.Equal(t, auth.FieldEmail, envelope.Details[0].Field)
		})
	}
}

func TestHandler_Login_BlockedEnvelope(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	f.registerVerified(t)

	var recorder *httptest.ResponseRecorder
	for range 3 {
		recorder = do(t, router, http.MethodPost, "/auth/login", `{"username":"alice","password":"Wrong-pass1"}`, "")
	}

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeError(t, recorder)
	assert.Equal(t, auth.CodeAccountBlocked, body.Code)
	assert.EqualValues(t, 30, body.Meta["remaining_minutes"])
	assert.Contains(t, body.Error, "30 minutes")
}

func TestHandler_VerifyAccount_MissingToken(t *testing.T) {
	f := newFixture(t)

	recorder := do(t, newRouter(f), http.MethodPost, "/auth/verify-account", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, recorder).Code)
}
