// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ident canonicalizes login identifiers before they are stored or looked up.
//
// # Rules
//
// Emails are NFKC-normalized, trimmed and case-folded, so "Alice@X.com" and
// "alice@x.com" address the same account. Usernames are NFKC-normalized and
// trimmed but keep their case, because the handle is shown back to users.
package ident

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Email returns the canonical form of an email address.
func Email(raw string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKC, cases.Fold()), strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return folded
}

// Username returns the canonical form of an account handle.
func Username(raw string) string {
	return norm.NFKC.String(strings.TrimSpace(raw))
}

// LooksLikeEmail reports whether a login identifier should be matched
// against the email column rather than the username column.
func LooksLikeEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}
