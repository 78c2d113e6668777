// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the signed-in user's own profile.

# Architecture

  - Domain: Builds on the auth package's [auth.Account] entity and repository.
  - Scope: Only first name, last name and date of birth are editable here.
    Credentials and verification state belong to the auth package.
*/
package account

import (
	"context"
	"encoding/json"
	"time"

	"github.com/taibuivan/userdesk/internal/users/auth"
)

// # Repository Contracts

// ProfileRepository is the subset of [auth.AccountRepository] the profile needs.
type ProfileRepository interface {
	/*
		FindByID retrieves an account by ID.

		Returns:
		  - *auth.Account: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.Account, error)

	/*
		Update applies a partial update and returns the stored row.
	*/
	Update(context context.Context, id string, patch auth.AccountPatch) (*auth.Account, error)
}

// # Use Case Inputs

// UpdateProfileInput is a partial profile update. Nil fields are left alone.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	DateOfBirth auth.Nullable[time.Time]
}

// optionalString tells an absent JSON field apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only called when the key is present, null included.
func (field *optionalString) UnmarshalJSON(data []byte) error {
	field.Set = true
	return json.Unmarshal(data, &field.Value)
}
