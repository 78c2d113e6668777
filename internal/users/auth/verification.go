// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"fmt"
	"time"

	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/pkg/pointer"
)

// VerificationTicket is a freshly issued verification credential.
//
// Token is mailed to the user. Digest and ExpiresAt are stored on the account.
type VerificationTicket struct {
	Token     string
	Digest    string
	ExpiresAt time.Time
}

// VerificationTokens issues and checks email-verification tokens.
//
// # Two independent checks
//
// The mailed token is a signed, purpose-scoped JWT whose jti carries a random
// nonce. A token is honoured only if the signature and expiry are valid AND the
// SHA-256 of the nonce equals the digest stored on the account. Issuing a new
// ticket overwrites the stored digest, so older links die with it.
type VerificationTokens struct {
	tokens TokenIssuer
	ttl    time.Duration
}

// NewVerificationTokens creates the verification token lifecycle helper.
func NewVerificationTokens(tokens TokenIssuer, ttl time.Duration) *VerificationTokens {
	if ttl <= 0 {
		ttl = VerificationTokenTTL
	}
	return &VerificationTokens{tokens: tokens, ttl: ttl}
}

// Issue mints a ticket for accountID.
func (verification *VerificationTokens) Issue(accountID string, now time.Time) (*VerificationTicket, error) {
	nonce, err := sec.GenerateSecureToken(VerificationNonceLength)
	if err != nil {
		return nil, fmt.Errorf("verification_nonce_failed: %w", err)
	}

	token, err := verification.tokens.Issue(sec.Claims{
		UserID:  accountID,
		Purpose: sec.PurposeVerifyEmail,
		Nonce:   nonce,
	}, verification.ttl)
	if err != nil {
		return nil, fmt.Errorf("verification_sign_failed: %w", err)
	}

	return &VerificationTicket{
		Token:     token,
		Digest:    sec.HashToken(nonce),
		ExpiresAt: now.Add(verification.ttl),
	}, nil
}

// Decode validates the signed half of a presented token and returns the
// account id and nonce it carries.
func (verification *VerificationTokens) Decode(token string) (accountID, nonce string, err error) {
	claims, err := verification.tokens.VerifyPurpose(token, sec.PurposeVerifyEmail)
	if err != nil || claims.ID == "" {
		return "", "", ErrInvalidOrExpiredToken.WithCause(err)
	}
	return claims.UserID, claims.ID, nil
}

// Check validates the stored half against the current account row.
func (verification *VerificationTokens) Check(account *Account, nonce string, now time.Time) error {
	if account.IsVerified {
		return ErrAlreadyVerified
	}
	if account.EmailVerificationToken == nil || account.EmailVerificationExpires == nil {
		return ErrInvalidOrExpiredToken
	}
	if !now.Before(*account.EmailVerificationExpires) {
		return ErrInvalidOrExpiredToken
	}
	if !sec.TokenHashEqual(*account.EmailVerificationToken, sec.HashToken(nonce)) {
		return ErrInvalidOrExpiredToken
	}
	return nil
}

// Consume returns the patch that activates the account and clears both token fields.
func (verification *VerificationTokens) Consume() AccountPatch {
	return AccountPatch{
		IsVerified:               pointer.To(true),
		IsActive:                 pointer.To(true),
		EmailVerificationToken:   Null[string](),
		EmailVerificationExpires: Null[time.Time](),
	}
}
