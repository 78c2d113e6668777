// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package address_test

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
	"github.com/taibuivan/userdesk/internal/users/address"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	tokens  *sec.TokenService
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	tokens, err := sec.NewTokenService("unit-test-secret-with-enough-bytes!!", "userdesk.test")
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/addresses", address.NewHandler(address.NewService(address.NewMemoryRepository(), nil)).Routes())
	return &apiClient{t: t, handler: router, tokens: tokens}
}

func (c *apiClient) do(accountID, method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if accountID != "" {
		bearer, err := c.tokens.Issue(sec.Claims{UserID: accountID, Role: "member"}, time.Hour)
		require.NoError(c.t, err)
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	c.handler.ServeHTTP(recorder, request)
	return recorder
}

const homeBody = `{
	"title": "Home",
	"house_number": "12",
	"address_line1": "Rabbit Hole Lane",
	"city": "Oxford",
	"state": "Oxfordshire",
	"zip_code": "12345",
	"is_default": true
}`

func TestHandler_AddressLifecycle(t *testing.T) {
	api := newAPI(t)

	assert.Equal(t, http.StatusUnauthorized, api.do("", http.MethodGet, "/addresses", "").Code)

	recorder := api.do("acc-1", http.MethodPost, "/addresses", homeBody)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data address.Address `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.True(t, created.Data.IsDefault)

	recorder = api.do("acc-1", http.MethodGet, "/addresses?city=Oxford&page=1&limit=5", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var listed struct {
		Data []address.Address `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
	assert.Equal(t, 1, listed.Meta.Total)
	assert.Equal(t, 5, listed.Meta.Limit)

	recorder = api.do("acc-1", http.MethodGet, "/addresses/title/Home", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var byTitle struct {
		Data address.TitleResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &byTitle))
	assert.Equal(t, 1, byTitle.Data.Count)

	target := "/addresses/" + created.Data.ID
	assert.Equal(t, http.StatusNotFound, api.do("acc-2", http.MethodPut, target, `{"city":"Paris"}`).Code)

	recorder = api.do("acc-1", http.MethodPut, target, `{"city":"Cambridge"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), "Cambridge")

	assert.Equal(t, http.StatusNoContent, api.do("acc-1", http.MethodDelete, target, "").Code)
	assert.Equal(t, http.StatusNotFound, api.do("acc-1", http.MethodDelete, target, "").Code)
}

func TestHandler_CreateValidation(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing fields", body: `{"title":"Home"}`},
		{name: "zip not numeric", body: strings.Replace(homeBody, `"12345"`, `"AB1"`, 1)},
		{name: "bad json", body: `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := api.do("acc-1", http.MethodPost, "/addresses", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}

	recorder := api.do("acc-1", http.MethodPut, "/addresses/any", `{"zip_code":""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "present fields cannot be blanked")
}
