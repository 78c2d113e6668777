// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate adapts ozzo-validation results into [apperr.AppError] values
// and hosts the field rules shared by several request payloads.
//
// # Architecture
//
// Request DTOs implement Validate() with [validation.ValidateStruct]. Handlers
// pass the result through [Check], which converts field failures into a single
// VALIDATION_ERROR with sorted per-field details.
package validate

import (
	"errors"
	"regexp"
	"sort"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
)

// dateLayout is the ISO calendar date accepted for birth dates.
const dateLayout = "2006-01-02"

// passwordSpecials are the non-alphanumeric characters a password may contain.
const passwordSpecials = "@$!%*?#&"

var (
	// usernamePattern allows letters, digits, dots, underscores and hyphens.
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// digitsPattern matches an all-digit string such as a postal code.
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// # Shared Rules

// Username is the rule set for account handles: 3 to 15 characters of [A-Za-z0-9._-].
func Username() []validation.Rule {
	return []validation.Rule{
		validation.Length(3, 15).Error("must be between 3 and 15 characters"),
		validation.Match(usernamePattern).Error("may only contain letters, numbers, dots, underscores and hyphens"),
	}
}

// StrongPassword requires at least 8 characters with a lowercase letter, an
// uppercase letter, a digit and one of @$!%*?#&, and nothing outside those classes.
var StrongPassword = validation.By(func(value interface{}) error {
	password, ok := stringValue(value)
	if !ok || password == "" {
		return nil
	}
	if !IsStrongPassword(password) {
		return errors.New("must be at least 8 characters and include uppercase, lowercase, a number and a special character (@$!%*?#&)")
	}
	return nil
})

// PastDate requires an ISO date (YYYY-MM-DD) strictly before today.
var PastDate = validation.By(func(value interface{}) error {
	raw, ok := stringValue(value)
	if !ok || raw == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return errors.New("must be a valid date in YYYY-MM-DD format")
	}
	if !parsed.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
		return errors.New("must be a date in the past")
	}
	return nil
})

// Digits requires every character to be an ASCII digit.
var Digits = validation.Match(digitsPattern).Error("must contain digits only")

// IsStrongPassword reports whether password satisfies the [StrongPassword] policy.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case isPasswordSpecial(r):
			hasSpecial = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}

// ParseDate parses a value accepted by [PastDate].
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}

// # Result Conversion

// Check converts the error returned by an ozzo Validate() call.
//
// nil stays nil, field errors become one VALIDATION_ERROR with details sorted
// by field name, and rule failures that are not field errors become INTERNAL_ERROR.
func Check(err error) error {
	if err == nil {
		return nil
	}

	var internalError validation.InternalError
	if errors.As(err, &internalError) {
		return apperr.Internal(internalError.InternalError())
	}

	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		details := flatten("", fieldErrors, nil)
		sort.Slice(details, func(i, j int) bool { return details[i].Field < details[j].Field })
		return apperr.ValidationError("Validation failed", details...)
	}

	return apperr.ValidationError(err.Error())
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

// flatten walks nested [validation.Errors] producing dotted field names.
func flatten(prefix string, fieldErrors validation.Errors, out []apperr.FieldError) []apperr.FieldError {
	for field, fieldErr := range fieldErrors {
		if fieldErr == nil {
			continue
		}

		name := field
		if prefix != "" {
			name = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			out = flatten(name, nested, out)
			continue
		}
		out = append(out, apperr.FieldError{Field: name, Message: fieldErr.Error()})
	}
	return out
}

func stringValue(value interface{}) (string, bool) {
	value, isNil := validation.Indirect(value)
	if isNil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func isPasswordSpecial(r rune) bool {
	for _, special := range passwordSpecials {
		if r == special {
			return true
		}
	}
	return false
}
