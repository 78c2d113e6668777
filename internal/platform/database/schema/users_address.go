// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAddressTable represents the 'users.address' table
type UserAddressTable struct {
	Table        string
	ID           string
	AccountID    string
	Title        string
	HouseNumber  string
	BuildingName string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	IsDefault    string
	CreatedAt    string
	UpdatedAt    string
}

// UserAddress is the schema definition for users.address
var UserAddress = UserAddressTable{
	Table:        "users.address",
	ID:           "id",
	AccountID:    "accountid",
	Title:        "title",
	HouseNumber:  "housenumber",
	BuildingName: "buildingname",
	AddressLine1: "addressline1",
	AddressLine2: "addressline2",
	City:         "city",
	State:        "state",
	ZipCode:      "zipcode",
	IsDefault:    "isdefault",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names, in scan order.
func (t UserAddressTable) Columns() []string {
	return []string{
		t.ID, t.AccountID, t.Title, t.HouseNumber, t.BuildingName,
		t.AddressLine1, t.AddressLine2, t.City, t.State, t.ZipCode,
		t.IsDefault, t.CreatedAt, t.UpdatedAt,
	}
}
