// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/ctxutil"
	"github.com/taibuivan/userdesk/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Validatable is implemented by request DTOs with ozzo-validation rules.
type Validatable interface {
	Validate() error
}

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeAndValidate decodes the JSON body into target and runs its Validate method.

Returns:
  - error: validate.ErrInvalidJSON, a VALIDATION_ERROR with field details, or nil
*/
func DecodeAndValidate(request *http.Request, target Validatable) error {
	if err := DecodeJSON(request, target); err != nil {
		return err
	}
	return validate.Check(target.Validate())
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query returns a trimmed query-string value, or "" when absent.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
RequiredUserID returns the account ID of the authenticated caller.

Returns:
  - string: Account ID (the token's uid claim)
  - error: apperr.Unauthorized if the request carries no verified bearer token
*/
func RequiredUserID(request *http.Request) (string, error) {
	accountID, ok := ctxutil.AccountID(request.Context())
	if !ok {
		return "", apperr.Unauthorized("Authentication required")
	}
	return accountID, nil
}
