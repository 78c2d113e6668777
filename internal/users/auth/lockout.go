// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/taibuivan/userdesk/pkg/pointer"
)

// LockoutPolicy counts consecutive failed logins and blocks the account once
// the threshold is reached.
//
// # States
//
//   - Open: BlockUntil is nil or in the past. Passwords are checked.
//   - Blocked: BlockUntil is in the future. Every attempt is rejected before
//     the password is looked at.
//
// BlockUntil is the authoritative signal. IsActive is rewritten in the same
// patch as BlockUntil on every lockout write so both always agree.
//
// Only a successful login returns the counter to zero. A failure after an
// expired block therefore still counts past the threshold and blocks again.
type LockoutPolicy struct {
	MaxAttempts   int
	BlockDuration time.Duration
}

// DefaultLockoutPolicy is three attempts and a thirty minute block.
var DefaultLockoutPolicy = LockoutPolicy{
	MaxAttempts:   MaxFailedAttempts,
	BlockDuration: BlockDuration,
}

// Gate reports whether account is blocked at now and, if so, the whole
// minutes left on the block, rounded up.
func (policy LockoutPolicy) Gate(account *Account, now time.Time) (blocked bool, remainingMinutes int) {
	if account.BlockUntil == nil || !now.Before(*account.BlockUntil) {
		return false, 0
	}
	return true, RemainingMinutes(*account.BlockUntil, now)
}

// RecordFailure returns the patch for one more failed attempt against the
// current row, and whether that attempt blocks the account.
func (policy LockoutPolicy) RecordFailure(account *Account, now time.Time) (AccountPatch, bool) {
	attempts := account.FailedLoginAttempts + 1

	patch := AccountPatch{
		FailedLoginAttempts: &attempts,
		FailedLoginAt:       Some(now),
	}

	if attempts >= policy.MaxAttempts {
		patch.BlockUntil = Some(now.Add(policy.BlockDuration))
		patch.IsActive = pointer.To(false)
		return patch, true
	}

	patch.IsActive = pointer.To(true)
	return patch, false
}

// Reset returns the patch applied after a successful password check.
func (policy LockoutPolicy) Reset() AccountPatch {
	return AccountPatch{
		FailedLoginAttempts: pointer.To(0),
		FailedLoginAt:       Null[time.Time](),
		BlockUntil:          Null[time.Time](),
		IsActive:            pointer.To(true),
	}
}

// RemainingMinutes returns the minutes from now until until, rounded up,
// and never less than one.
func RemainingMinutes(until, now time.Time) int {
	remaining := until.Sub(now)
	minutes := int(remaining / time.Minute)
	if remaining%time.Minute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
