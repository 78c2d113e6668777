// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # Account Data Access

// MutateFunc computes a patch from the current, locked account row.
//
// Returning an error aborts the mutation and nothing is written.
type MutateFunc func(current *Account) (AccountPatch, error)

// AccountRepository defines the data access contract for accounts.
//
// Lookups return an error matching [ErrAccountNotFound] when no row exists.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByEmailOrUsername returns the account whose email equals email or
		whose username equals username.

		Parameters:
		  - context: context.Context
		  - email: string (canonical form)
		  - username: string (canonical form)

		Returns:
		  - *Account: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByEmailOrUsername(context context.Context, email, username string) (*Account, error)

	/*
		ExistsByEmailOrUsername reports whether either identifier is taken.
	*/
	ExistsByEmailOrUsername(context context.Context, email, username string) (bool, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: [ErrAccountConflict] on a duplicate email or username
	*/
	Create(context context.Context, account *Account) error

	/*
		Update applies a partial update and returns the stored row.
	*/
	Update(context context.Context, id string, patch AccountPatch) (*Account, error)

	/*
		Mutate performs an atomic read-modify-write on one account.

		Description: The row is locked for the duration of fn, so concurrent
		mutations of the same account are serialized and never lose updates.
		fn must not block on anything but CPU-cheap logic.

		Returns:
		  - *Account: The row after the patch (or unchanged, for an empty patch)
		  - error: fn's error unchanged, NOT_FOUND, or database failures
	*/
	Mutate(context context.Context, id string, fn MutateFunc) (*Account, error)
}
