// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/taibuivan/userdesk/internal/platform/middleware"
	requestutil "github.com/taibuivan/userdesk/internal/platform/request"
	"github.com/taibuivan/userdesk/internal/platform/respond"
	"github.com/taibuivan/userdesk/internal/platform/validate"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

// Handler implements the HTTP layer for the caller's own profile.
//
// # Security
//
// Every route requires an authenticated request.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the profile endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/me.

Description: Retrieves the profile of the authenticated user.

Response:
  - 200: PublicProfile
  - 401: UNAUTHORIZED
  - 404: NOT_FOUND (account removed after the token was issued)
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// updateMeRequest is a partial profile update. "dob": null clears the date.
type updateMeRequest struct {
	FirstName   *string        `json:"first_name"`
	LastName    *string        `json:"last_name"`
	DateOfBirth optionalString `json:"dob"`
}

func (input updateMeRequest) Validate() error {
	return validation.Errors{
		"first_name": validation.Validate(input.FirstName, validation.NilOrNotEmpty, notBlank, validation.Length(1, 100)),
		"last_name":  validation.Validate(input.LastName, validation.NilOrNotEmpty, notBlank, validation.Length(1, 100)),
		"dob":        validation.Validate(input.DateOfBirth.Value, validate.PastDate),
	}.Filter()
}

// notBlank rejects strings made only of whitespace.
var notBlank = validation.By(func(value interface{}) error {
	text, ok := value.(*string)
	if !ok || text == nil {
		return nil
	}
	if strings.TrimSpace(*text) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// dateOfBirth converts the optional dob field into a patch value.
func (input updateMeRequest) dateOfBirth() (auth.Nullable[time.Time], error) {
	switch {
	case !input.DateOfBirth.Set:
		return auth.Nullable[time.Time]{}, nil
	case input.DateOfBirth.Value == nil:
		return auth.Null[time.Time](), nil
	}

	parsed, err := validate.ParseDate(*input.DateOfBirth.Value)
	if err != nil {
		return auth.Nullable[time.Time]{}, validate.RequiredError("dob", "must be a valid date in YYYY-MM-DD format")
	}
	return auth.Some(parsed), nil
}

/*
PATCH /api/v1/me.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: updateMeRequest (first_name, last_name, dob; all optional)

Response:
  - 200: PublicProfile: The updated profile
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dob, err := input.dateOfBirth()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: dob,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
