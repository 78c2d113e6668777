// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest input bcrypt reads in full.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned for inputs bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// PasswordHasher hashes and verifies account passwords with bcrypt.
//
// The salt is generated per call and embedded in the output, so hashing the
// same plaintext twice yields two different strings that both verify.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
// Values outside bcrypt's accepted range fall back to [DefaultBcryptCost].
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt encoding of plainTextPassword.
func (hasher *PasswordHasher) Hash(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether plainTextPassword matches existingHash.
// Malformed or empty hashes never match, and neither does input that [Hash]
// would have refused.
func (hasher *PasswordHasher) Verify(plainTextPassword, existingHash string) bool {
	if existingHash == "" || len(plainTextPassword) > MaxPasswordBytes {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
