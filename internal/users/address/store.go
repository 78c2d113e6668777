// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package address

import "context"

// Repository defines the persistence contract for addresses.
//
// Every method is scoped by accountID; rows of other accounts behave as absent.
type Repository interface {

	/*
		List returns the account's addresses matching filter, newest first.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - filter: Filter
		  - limit, offset: int (limit <= 0 means no limit)

		Returns:
		  - []*Address: The requested page
		  - int: Total matches across all pages
		  - error: Storage failures
	*/
	List(context context.Context, accountID string, filter Filter, limit, offset int) ([]*Address, int, error)

	/*
		Create persists a new address, clearing any other default first when
		address.IsDefault is set.
	*/
	Create(context context.Context, address *Address) error

	/*
		Update applies patch to the account's address and returns the result.

		Returns:
		  - error: [ErrAddressNotFound] when the address is missing or not owned
	*/
	Update(context context.Context, accountID, id string, patch Patch) (*Address, error)

	/*
		Delete removes the account's address.

		Returns:
		  - error: [ErrAddressNotFound] when the address is missing or not owned
	*/
	Delete(context context.Context, accountID, id string) error
}
