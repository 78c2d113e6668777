// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing, random
// tokens) from the domain logic. Domain services receive these primitives via
// constructor injection and never touch key material directly.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails signature, algorithm,
// issuer, purpose or expiry checks. Callers should not distinguish further.
var ErrInvalidToken = errors.New("sec: invalid or expired token")

// Purpose scopes a token to the single use it was minted for.
type Purpose string

const (
	// PurposeAccess marks bearer tokens accepted by the API middleware.
	PurposeAccess Purpose = "access"

	// PurposeVerifyEmail marks tokens mailed for account verification.
	PurposeVerifyEmail Purpose = "verify_email"
)

// AuthClaims represents the payload embedded inside a signed token.
//
// # Why custom claims?
//
// Embedding the account id and role lets [middleware.Authenticate] rebuild the
// caller identity without a database round-trip.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID  string  `json:"uid"`
	Role    string  `json:"rol"`
	Purpose Purpose `json:"pur"`
}

// Claims is the input to [TokenService.Issue].
type Claims struct {
	UserID  string
	Role    string
	Purpose Purpose

	// Nonce becomes the token's jti. A random value is generated when empty.
	Nonce string
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// TokenService signs and verifies HS256 tokens with a process-wide secret.
//
// Tokens are stateless: validity depends only on the signature and the
// embedded expiry. There is no server-side revocation.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a TokenService. The secret must come from configuration.
func NewTokenService(secret, issuer string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Issue signs claims into a token that expires after timeToLive.
func (service *TokenService) Issue(claims Claims, timeToLive time.Duration) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("sec: token subject must not be empty")
	}
	if timeToLive <= 0 {
		return "", fmt.Errorf("sec: invalid token ttl %s", timeToLive)
	}

	tokenID := claims.Nonce
	if tokenID == "" {
		tokenID = uuid.NewString()
	}

	purpose := claims.Purpose
	if purpose == "" {
		purpose = PurposeAccess
	}

	currentTime := service.now()
	payload := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   claims.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			NotBefore: jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:  claims.UserID,
		Role:    claims.Role,
		Purpose: purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, issuer and expiry of tokenString.
//
// Every failure, including malformed input, wraps [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyPurpose is [TokenService.Verify] restricted to one [Purpose].
func (service *TokenService) VerifyPurpose(tokenString string, purpose Purpose) (*AuthClaims, error) {
	claims, err := service.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: purpose %q", ErrInvalidToken, claims.Purpose)
	}
	return claims, nil
}

// VerifyAccessToken accepts only [PurposeAccess] tokens. It satisfies the
// middleware's verifier interface.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.VerifyPurpose(tokenString, PurposeAccess)
}
