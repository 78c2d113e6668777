// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strconv"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
)

// Error codes returned by the authentication use cases.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountBlocked     = "ACCOUNT_BLOCKED"
	CodeNotVerified        = "NOT_VERIFIED"
	CodeAlreadyVerified    = "ALREADY_VERIFIED"
	CodeInvalidToken       = "INVALID_OR_EXPIRED_TOKEN"
)

// metaRemainingMinutes is the Meta key carried by ACCOUNT_BLOCKED errors.
const metaRemainingMinutes = "remaining_minutes"

// Sentinels. Compare with errors.Is; they match on Code, so copies produced by
// WithMeta or WithCause still match.
var (
	// ErrAccountConflict means the email or username is already registered.
	ErrAccountConflict = apperr.New(apperr.CodeConflict, "Email or username already exists.", http.StatusBadRequest)

	// ErrInvalidCredentials covers both unknown identifiers and wrong passwords.
	ErrInvalidCredentials = apperr.New(CodeInvalidCredentials, "Invalid login credentials.", http.StatusBadRequest)

	// ErrAccountBlocked is the lockout failure. Use [AccountBlocked] to attach the remaining time.
	ErrAccountBlocked = apperr.New(CodeAccountBlocked, "Account is temporarily blocked.", http.StatusBadRequest)

	// ErrNotVerified rejects logins before the email address is confirmed.
	ErrNotVerified = apperr.New(CodeNotVerified, "Please verify your email before logging in.", http.StatusBadRequest)

	// ErrAlreadyVerified is returned when a verification link is used on a verified account.
	ErrAlreadyVerified = apperr.New(CodeAlreadyVerified, "Account is already verified.", http.StatusBadRequest)

	// ErrInvalidOrExpiredToken covers every verification token that cannot be honoured.
	ErrInvalidOrExpiredToken = apperr.New(CodeInvalidToken, "Invalid or expired token.", http.StatusBadRequest)

	// ErrAccountNotFound is returned when the target account does not exist.
	ErrAccountNotFound = apperr.NotFound("Account")
)

// AccountBlocked returns an ACCOUNT_BLOCKED error carrying the minutes left on the block.
func AccountBlocked(remainingMinutes int) *apperr.AppError {
	blocked := ErrAccountBlocked.WithMeta(metaRemainingMinutes, remainingMinutes)
	blocked.Message = "Account is temporarily blocked. Try again in " + pluralMinutes(remainingMinutes) + "."
	return blocked
}

// BlockedMinutes extracts the remaining minutes from an ACCOUNT_BLOCKED error.
func BlockedMinutes(err error) (int, bool) {
	appError := apperr.As(err)
	if appError == nil || appError.Code != CodeAccountBlocked {
		return 0, false
	}
	minutes, ok := appError.Meta[metaRemainingMinutes].(int)
	return minutes, ok
}

func pluralMinutes(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return strconv.Itoa(minutes) + " minutes"
}
