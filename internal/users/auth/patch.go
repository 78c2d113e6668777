// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/taibuivan/userdesk/pkg/pointer"
)

// Nullable is a patch value for a nullable column.
//
// The zero value leaves the column untouched. [Some] writes a value and
// [Null] writes NULL.
type Nullable[T any] struct {
	set   bool
	value *T
}

// Some returns a Nullable that writes value.
func Some[T any](value T) Nullable[T] {
	return Nullable[T]{set: true, value: &value}
}

// Null returns a Nullable that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true}
}

// IsSet reports whether the patch touches the column.
func (n Nullable[T]) IsSet() bool { return n.set }

// Value returns the new value, or nil when the column is being cleared.
func (n Nullable[T]) Value() *T { return n.value }

func (n Nullable[T]) applyTo(target **T) {
	if n.set {
		*target = pointer.Copy(n.value)
	}
}

// AccountPatch is a partial update of an [Account].
//
// Only the named fields can be patched. Nil pointers and unset Nullables
// are left as they are in storage.
type AccountPatch struct {
	PasswordHash *string
	FirstName    *string
	LastName     *string
	DateOfBirth  Nullable[time.Time]

	IsVerified *bool
	IsActive   *bool

	FailedLoginAttempts *int
	FailedLoginAt       Nullable[time.Time]
	BlockUntil          Nullable[time.Time]

	EmailVerificationToken   Nullable[string]
	EmailVerificationExpires Nullable[time.Time]

	LastLoginAt Nullable[time.Time]
}

// IsEmpty reports whether the patch changes nothing.
func (patch AccountPatch) IsEmpty() bool {
	return patch.PasswordHash == nil &&
		patch.FirstName == nil &&
		patch.LastName == nil &&
		!patch.DateOfBirth.IsSet() &&
		patch.IsVerified == nil &&
		patch.IsActive == nil &&
		patch.FailedLoginAttempts == nil &&
		!patch.FailedLoginAt.IsSet() &&
		!patch.BlockUntil.IsSet() &&
		!patch.EmailVerificationToken.IsSet() &&
		!patch.EmailVerificationExpires.IsSet() &&
		!patch.LastLoginAt.IsSet()
}

// Apply writes the patch onto account in place.
func (patch AccountPatch) Apply(account *Account) {
	if patch.PasswordHash != nil {
		account.PasswordHash = *patch.PasswordHash
	}
	if patch.FirstName != nil {
		account.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		account.LastName = *patch.LastName
	}
	if patch.IsVerified != nil {
		account.IsVerified = *patch.IsVerified
	}
	if patch.IsActive != nil {
		account.IsActive = *patch.IsActive
	}
	if patch.FailedLoginAttempts != nil {
		account.FailedLoginAttempts = *patch.FailedLoginAttempts
	}

	patch.DateOfBirth.applyTo(&account.DateOfBirth)
	patch.FailedLoginAt.applyTo(&account.FailedLoginAt)
	patch.BlockUntil.applyTo(&account.BlockUntil)
	patch.EmailVerificationToken.applyTo(&account.EmailVerificationToken)
	patch.EmailVerificationExpires.applyTo(&account.EmailVerificationExpires)
	patch.LastLoginAt.applyTo(&account.LastLoginAt)
}
