// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names used by the postgres repositories.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                    string
	ID                       string
	Username                 string
	Email                    string
	Password                 string
	FirstName                string
	LastName                 string
	DateOfBirth              string
	Role                     string
	IsVerified               string
	IsActive                 string
	FailedLoginAttempts      string
	FailedLoginAt            string
	BlockUntil               string
	EmailVerificationToken   string
	EmailVerificationExpires string
	LastLoginAt              string
	CreatedAt                string
	UpdatedAt                string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                    "users.account",
	ID:                       "id",
	Username:                 "username",
	Email:                    "email",
	Password:                 "passwordhash",
	FirstName:                "firstname",
	LastName:                 "lastname",
	DateOfBirth:              "dateofbirth",
	Role:                     "role",
	IsVerified:               "isverified",
	IsActive:                 "isactive",
	FailedLoginAttempts:      "failedloginattempts",
	FailedLoginAt:            "failedloginat",
	BlockUntil:               "blockuntil",
	EmailVerificationToken:   "emailverificationtoken",
	EmailVerificationExpires: "emailverificationexpires",
	LastLoginAt:              "lastloginat",
	CreatedAt:                "createdat",
	UpdatedAt:                "updatedat",
}

// Columns returns all standard column names, in scan order.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.FirstName, t.LastName,
		t.DateOfBirth, t.Role, t.IsVerified, t.IsActive, t.FailedLoginAttempts,
		t.FailedLoginAt, t.BlockUntil, t.EmailVerificationToken,
		t.EmailVerificationExpires, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
