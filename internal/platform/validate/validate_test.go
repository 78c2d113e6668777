// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/validate"
)

type signupForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Birthday string `json:"dob"`
}

func (f signupForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, append([]validation.Rule{validation.Required}, validate.Username()...)...),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required, validate.StrongPassword),
		validation.Field(&f.Birthday, validate.PastDate),
	)
}

/*
TestCheck_FieldErrors verifies that ozzo field errors become sorted FieldError details.
*/
func TestCheck_FieldErrors(t *testing.T) {
	form := signupForm{Username: "a!", Email: "nope", Password: "weak", Birthday: "2999-01-01"}

	err := validate.Check(form.Validate())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
		assert.NotEmpty(t, detail.Message)
	}
	assert.Equal(t, []string{"dob", "email", "password", "username"}, fields)
}

func TestCheck_Passthrough(t *testing.T) {
	assert.NoError(t, validate.Check(nil))

	valid := signupForm{Username: "alice", Email: "alice@x.com", Password: "Passw0rd!", Birthday: "1990-05-17"}
	assert.NoError(t, validate.Check(valid.Validate()))

	plain := validate.Check(errors.New("something odd"))
	assert.True(t, apperr.HasCode(plain, apperr.CodeValidation))
}

/*
TestIsStrongPassword exercises each character-class requirement.
*/
func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all_classes", "Passw0rd!", true},
		{"hash_special", "Abcdef1#", true},
		{"too_short", "Pa0!", false},
		{"no_upper", "passw0rd!", false},
		{"no_lower", "PASSW0RD!", false},
		{"no_digit", "Password!", false},
		{"no_special", "Passw0rdd", false},
		{"disallowed_special", "Passw0rd^", false},
		{"space", "Pass w0rd!", false},
		{"non_ascii", "Pässw0rd!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validate.IsStrongPassword(tt.password))
		})
	}
}

func TestUsernameRules(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"alice", true},
		{"a.b_c-d", true},
		{"ab", false},
		{"sixteen_chars_xx", false},
		{"bad name", false},
		{"émile", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := validation.Validate(tt.username, validate.Username()...)
			assert.Equal(t, tt.valid, err == nil, "error: %v", err)
		})
	}
}

func TestPastDate(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	assert.NoError(t, validation.Validate(yesterday, validate.PastDate))
	assert.NoError(t, validation.Validate("", validate.PastDate))
	assert.Error(t, validation.Validate(tomorrow, validate.PastDate))
	assert.Error(t, validation.Validate("17/05/1990", validate.PastDate))
}

func TestDigits(t *testing.T) {
	assert.NoError(t, validation.Validate("560001", validate.Digits))
	assert.Error(t, validation.Validate("56A001", validate.Digits))
}
