// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package address manages the postal address book of each account.

# Invariants

  - An address belongs to exactly one account and is only visible to it.
  - At most one address per account has IsDefault set. Marking one as the
    default clears the flag on the others in the same transaction.
*/
package address

import (
	"net/http"
	"time"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
)

// # Domain Entities

// Address is a saved postal address.
type Address struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	Title        string    `json:"title"`
	HouseNumber  string    `json:"house_number"`
	BuildingName string    `json:"building_name"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter narrows an account's address listing. Empty fields match anything.
type Filter struct {
	Title string
	City  string
	State string
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title        *string
	HouseNumber  *string
	BuildingName *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	ZipCode      *string
	IsDefault    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch.Title == nil && patch.HouseNumber == nil && patch.BuildingName == nil &&
		patch.AddressLine1 == nil && patch.AddressLine2 == nil && patch.City == nil &&
		patch.State == nil && patch.ZipCode == nil && patch.IsDefault == nil
}

// Apply writes the patch onto address in place.
func (patch Patch) Apply(address *Address) {
	set := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}
	set(&address.Title, patch.Title)
	set(&address.HouseNumber, patch.HouseNumber)
	set(&address.BuildingName, patch.BuildingName)
	set(&address.AddressLine1, patch.AddressLine1)
	set(&address.AddressLine2, patch.AddressLine2)
	set(&address.City, patch.City)
	set(&address.State, patch.State)
	set(&address.ZipCode, patch.ZipCode)
	if patch.IsDefault != nil {
		address.IsDefault = *patch.IsDefault
	}
}

// TitleResult is returned by [Service.ListByTitle].
type TitleResult struct {
	Count     int        `json:"count"`
	Addresses []*Address `json:"addresses"`
}

// ErrAddressNotFound covers both missing addresses and addresses owned by someone else.
var ErrAddressNotFound = apperr.New(apperr.CodeNotFound, "Address not found", http.StatusNotFound)

// ErrDefaultRace is returned when two requests make different addresses the default at once.
var ErrDefaultRace = apperr.New(apperr.CodeConflict, "Another default address was set at the same time. Please retry.", http.StatusConflict)
