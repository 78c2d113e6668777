// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/pkg/pointer"
)

// # Domain Entities

// Account is the persisted user record.
//
// # Invariants
//
//   - FailedLoginAttempts and BlockUntil change only on the login path.
//   - BlockUntil in the future is what blocks a login. IsActive is
//     rewritten on every lockout write and may lag once a block lapses.
//   - EmailVerificationToken and EmailVerificationExpires are both set or both nil.
//   - IsVerified flips to true once and never back.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	DateOfBirth  *time.Time
	Role         sec.UserRole

	IsVerified bool
	IsActive   bool

	FailedLoginAttempts int
	FailedLoginAt       *time.Time
	BlockUntil          *time.Time

	// EmailVerificationToken holds the SHA-256 digest of the pending nonce, never the nonce.
	EmailVerificationToken   *string
	EmailVerificationExpires *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicProfile is the client-safe projection of an [Account].
type PublicProfile struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *string    `json:"dob,omitempty"`
	Role        string     `json:"role"`
	IsVerified  bool       `json:"is_verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Public returns the projection of the account that may leave the service.
func (account *Account) Public() PublicProfile {
	profile := PublicProfile{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Role:        account.Role.String(),
		IsVerified:  account.IsVerified,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
	}
	if account.DateOfBirth != nil {
		formatted := account.DateOfBirth.Format(time.DateOnly)
		profile.DateOfBirth = &formatted
	}
	return profile
}

// Clone returns a deep copy, so callers cannot mutate a stored record through a pointer.
func (account *Account) Clone() *Account {
	if account == nil {
		return nil
	}
	clone := *account
	clone.DateOfBirth = pointer.Copy(account.DateOfBirth)
	clone.FailedLoginAt = pointer.Copy(account.FailedLoginAt)
	clone.BlockUntil = pointer.Copy(account.BlockUntil)
	clone.EmailVerificationToken = pointer.Copy(account.EmailVerificationToken)
	clone.EmailVerificationExpires = pointer.Copy(account.EmailVerificationExpires)
	clone.LastLoginAt = pointer.Copy(account.LastLoginAt)
	return &clone
}

// # Use Case Inputs & Results

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Username    string
	Email       string
	Password    string
	DateOfBirth *time.Time
}

// RegisterResult is returned by [Service.Register].
type RegisterResult struct {
	AccountID string `json:"account_id"`
}

// LoginResult is returned by [Service.Login].
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        PublicProfile `json:"user"`
}
