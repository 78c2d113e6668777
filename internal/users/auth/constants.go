// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Lockout Policy

const (
	// MaxFailedAttempts is the number of consecutive failures that blocks an account.
	MaxFailedAttempts = 3

	// BlockDuration is how long a blocked account rejects every login attempt.
	BlockDuration = 30 * time.Minute
)

// # Token Lifetimes

const (
	// AccessTokenTTL is the lifetime of a bearer token issued by Login.
	AccessTokenTTL = time.Hour

	// VerificationTokenTTL is how long a mailed verification link stays usable.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationNonceLength is the byte length of the random verification nonce.
	VerificationNonceLength = 32
)

// maxEmailLength matches the width of the users.account email column.
const maxEmailLength = 254

// TokenTypeBearer is the token_type reported by the login endpoint.
const TokenTypeBearer = "Bearer"
