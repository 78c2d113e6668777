// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/taibuivan/userdesk/internal/platform/middleware"
	requestutil "github.com/taibuivan/userdesk/internal/platform/request"
	"github.com/taibuivan/userdesk/internal/platform/respond"
	"github.com/taibuivan/userdesk/internal/platform/validate"
)

// # JSON Field Identifiers

const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDateOfBirth     = "dob"
	FieldIdentifier      = "identifier"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldMessage         = "message"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// Registration, login, email verification and password changes. Profile
// and address endpoints live in their own packages.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST  /register       : Creates an unverified account.
//   - POST  /login          : Authenticates and returns a JWT.
//   - POST  /verify-account : Consumes a verification token.
//   - PATCH /password       : Changes the caller's password.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/verify-account", handler.verifyAccount)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Patch("/password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dob"`
}

func (input registerRequest) Validate() error {
	return validation.Errors{
		FieldFirstName:   validation.Validate(strings.TrimSpace(input.FirstName), validation.Required.Error("first name is required"), validation.Length(1, 100)),
		FieldLastName:    validation.Validate(strings.TrimSpace(input.LastName), validation.Required.Error("last name is required"), validation.Length(1, 100)),
		FieldUsername:    validation.Validate(strings.TrimSpace(input.Username), append([]validation.Rule{validation.Required.Error("username is required")}, validate.Username()...)...),
		FieldEmail:       validation.Validate(strings.TrimSpace(input.Email), validation.Required.Error("email is required"), validation.Length(3, maxEmailLength), is.Email.Error("must be a valid email address")),
		FieldPassword:    validation.Validate(input.Password, validation.Required.Error("password is required"), validation.Length(8, 72), validate.StrongPassword),
		FieldDateOfBirth: validation.Validate(input.DateOfBirth, validation.Required.Error("date of birth is required"), validate.PastDate),
	}.Filter()
}

// loginRequest accepts a single identifier, or the email / username pair
// sent by older clients.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// login returns the identifier to look up, in priority order.
func (input loginRequest) login() string {
	for _, candidate := range []string{input.Identifier, input.Email, input.Username} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (input loginRequest) Validate() error {
	return validation.Errors{
		FieldIdentifier: validation.Validate(input.login(), validation.Required.Error("email or username is required"), validation.Length(1, 254)),
		FieldPassword:   validation.Validate(input.Password, validation.Required.Error("password is required")),
	}.Filter()
}

type verifyAccountRequest struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (input changePasswordRequest) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.CurrentPassword, validation.Required.Error("current password is required")),
		validation.Field(&input.NewPassword, validation.Required.Error("new password is required"), validation.Length(8, 72), validate.StrongPassword),
	)
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, and persists an
unverified account. The verification link is dispatched best-effort.

Request:
  - Body: registerRequest (first_name, last_name, username, email, password, dob)

Response:
  - 201: RegisterResult: The new account ID
  - 400: VALIDATION_ERROR or CONFLICT
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dob, err := validate.ParseDate(input.DateOfBirth)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldDateOfBirth, "must be a valid date in YYYY-MM-DD format"))
		return
	}

	result, err := handler.authService.Register(request.Context(), RegisterInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DateOfBirth: &dob,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
Login authenticates a user and issues an access token.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (identifier | email | username, password)

Response:
  - 200: LoginResult: Access token and public profile
  - 400: INVALID_CREDENTIALS, ACCOUNT_BLOCKED (meta.remaining_minutes) or NOT_VERIFIED
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), input.login(), input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
VerifyAccount confirms a user's email ownership.

POST /api/v1/auth/verify-account

Description: The token may be given as the "token" query parameter (as in the
mailed link) or in the JSON body.

Response:
  - 200: Success: Account verified
  - 400: INVALID_OR_EXPIRED_TOKEN or ALREADY_VERIFIED
  - 404: NOT_FOUND
*/
func (handler *Handler) verifyAccount(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Query(request, FieldToken)

	if token == "" {
		var input verifyAccountRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = strings.TrimSpace(input.Token)
	}

	if token == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "is required"))
		return
	}

	if err := handler.authService.VerifyEmail(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Account verified successfully",
	})
}

/*
ChangePassword updates the authenticated user's password.

PATCH /api/v1/auth/password

Request:
  - Body: changePasswordRequest (current_password, new_password)

Response:
  - 204: No Content: Password changed
  - 400: INVALID_CREDENTIALS or VALIDATION_ERROR
  - 401: UNAUTHORIZED
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), accountID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
