// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration, login, email verification and
password changes.

Architecture:

  - Service: Orchestrates the four use cases over the contracts below.
  - Repository: [AccountRepository], backed by Postgres or memory.
  - Security: bcrypt hashing and HS256 tokens from internal/platform/sec.
  - Lockout: [LockoutPolicy] blocks an account after repeated failures.

Every lockout and verification write goes through [AccountRepository.Mutate],
so concurrent requests against one account are serialized on its row.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/pkg/ident"
	"github.com/taibuivan/userdesk/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer signs and verifies the service's JWTs.
type TokenIssuer interface {
	Issue(claims sec.Claims, timeToLive time.Duration) (string, error)
	VerifyPurpose(token string, purpose sec.Purpose) (*sec.AuthClaims, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// ServiceConfig carries the tunables read from configuration.
type ServiceConfig struct {
	// AccessTTL is the lifetime of login tokens. Zero means [AccessTokenTTL].
	AccessTTL time.Duration

	// VerificationTTL is the lifetime of verification links. Zero means [VerificationTokenTTL].
	VerificationTTL time.Duration

	// VerificationURL is the page the mailed link points at; the token is
	// appended as the "token" query parameter.
	VerificationURL string
}

// Option customizes a [Service].
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// WithLockoutPolicy overrides [DefaultLockoutPolicy].
func WithLockoutPolicy(policy LockoutPolicy) Option {
	return func(service *Service) { service.lockout = policy }
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, lockout
// or verification logic must be reviewed by the security team.
type Service struct {
	accounts     AccountRepository
	hasher       PasswordHasher
	tokens       TokenIssuer
	verification *VerificationTokens
	notifier     VerificationNotifier
	lockout      LockoutPolicy

	accessTTL       time.Duration
	verificationURL string

	now    func() time.Time
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	accounts AccountRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	notifier VerificationNotifier,
	config ServiceConfig,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if config.AccessTTL <= 0 {
		config.AccessTTL = AccessTokenTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}

	service := &Service{
		accounts:        accounts,
		hasher:          hasher,
		tokens:          tokens,
		verification:    NewVerificationTokens(tokens, config.VerificationTTL),
		notifier:        notifier,
		lockout:         DefaultLockoutPolicy,
		accessTTL:       config.AccessTTL,
		verificationURL: config.VerificationURL,
		now:             time.Now,
		logger:          logger,
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Registration Flow

/*
Register enrolls a new, unverified account and mails its verification link.

Description: Email and username are canonicalized before the uniqueness
check. The verification digest is stored in the same insert that creates the
account. Mail dispatch is best-effort and never fails the registration.

Parameters:
  - context: context.Context
  - input: RegisterInput (already validated)

Returns:
  - *RegisterResult: The new account ID
  - error: [ErrAccountConflict] or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*RegisterResult, error) {
	email := ident.Email(input.Email)
	username := ident.Username(input.Username)

	exists, err := service.accounts.ExistsByEmailOrUsername(context, email, username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_exists_failed: %w", err)
	}
	if exists {
		return nil, ErrAccountConflict
	}

	passwordHash, err := service.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, sec.ErrPasswordTooLong) {
			return nil, apperr.ValidationError("Password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := service.now().UTC()
	accountID := uuid.New()

	ticket, err := service.verification.Issue(accountID, now)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	account := &Account{
		ID:                       accountID,
		Username:                 username,
		Email:                    email,
		PasswordHash:             passwordHash,
		FirstName:                strings.TrimSpace(input.FirstName),
		LastName:                 strings.TrimSpace(input.LastName),
		DateOfBirth:              input.DateOfBirth,
		Role:                     sec.RoleMember,
		IsVerified:               false,
		IsActive:                 true,
		EmailVerificationToken:   &ticket.Digest,
		EmailVerificationExpires: &ticket.ExpiresAt,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	// A concurrent registration can still slip past the pre-check; the store
	// reports that race as ErrAccountConflict too.
	if err := service.accounts.Create(context, account); err != nil {
		if errors.Is(err, ErrAccountConflict) {
			return nil, ErrAccountConflict
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "auth_account_registered", slog.String("account_id", accountID))

	mail := VerificationMail{
		AccountID: accountID,
		Email:     email,
		Username:  username,
		Link:      service.verificationLink(ticket.Token),
		ExpiresAt: ticket.ExpiresAt,
	}
	if err := service.notifier.SendVerification(context, mail); err != nil {
		service.logger.WarnContext(context, "auth_verification_dispatch_failed",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
	}

	return &RegisterResult{AccountID: accountID}, nil
}

// # Authentication Flow

/*
Login authenticates by email or username and issues an access token.

Description: The order of checks is lookup, lockout gate, verification, then
password. A wrong password increments the failure counter on the locked row;
the attempt that reaches the threshold is answered with ACCOUNT_BLOCKED. A
correct password clears the counter and stamps the login time.

Parameters:
  - context: context.Context
  - identifier: string (email or username)
  - password: string

Returns:
  - *LoginResult: Access token and public profile
  - error: INVALID_CREDENTIALS, ACCOUNT_BLOCKED, NOT_VERIFIED or storage errors
*/
func (service *Service) Login(context context.Context, identifier, password string) (*LoginResult, error) {
	account, err := service.accounts.FindByEmailOrUsername(context, ident.Email(identifier), ident.Username(identifier))
	if err != nil {
		if apperr.IsNotFound(err) {
			// Burn a bcrypt comparison so unknown identifiers take as long as wrong passwords.
			service.hasher.Verify(password, service.dummyPasswordHash())
			service.logger.InfoContext(context, "auth_login_failed", slog.String("reason", "unknown_identifier"))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	now := service.now().UTC()

	if blocked, minutes := service.lockout.Gate(account, now); blocked {
		service.logger.InfoContext(context, "auth_login_rejected_blocked",
			slog.String("account_id", account.ID),
			slog.Int("remaining_minutes", minutes),
		)
		return nil, AccountBlocked(minutes)
	}

	if !account.IsVerified {
		return nil, ErrNotVerified
	}

	if !service.hasher.Verify(password, account.PasswordHash) {
		return nil, service.recordFailure(context, account.ID, now)
	}

	updated, err := service.accounts.Mutate(context, account.ID, func(current *Account) (AccountPatch, error) {
		if blocked, minutes := service.lockout.Gate(current, now); blocked {
			return AccountPatch{}, AccountBlocked(minutes)
		}
		patch := service.lockout.Reset()
		patch.LastLoginAt = Some(now)
		return patch, nil
	})
	if err != nil {
		return nil, passThrough(err, "auth_service_login_reset_failed")
	}

	accessToken, err := service.tokens.Issue(sec.Claims{
		UserID: updated.ID,
		Role:   updated.Role.String(),
	}, service.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	service.logger.InfoContext(context, "auth_login_succeeded", slog.String("account_id", updated.ID))

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(service.accessTTL / time.Second),
		User:        updated.Public(),
	}, nil
}

// recordFailure counts one wrong password and returns the error to answer with.
func (service *Service) recordFailure(context context.Context, accountID string, now time.Time) error {
	var (
		crossed        bool
		alreadyBlocked int
	)

	_, err := service.accounts.Mutate(context, accountID, func(current *Account) (AccountPatch, error) {
		// Another request may have blocked the account since our read.
		if blocked, minutes := service.lockout.Gate(current, now); blocked {
			alreadyBlocked = minutes
			return AccountPatch{}, nil
		}
		patch, blocks := service.lockout.RecordFailure(current, now)
		crossed = blocks
		return patch, nil
	})
	if err != nil {
		return passThrough(err, "auth_service_record_failure_failed")
	}

	switch {
	case alreadyBlocked > 0:
		return AccountBlocked(alreadyBlocked)
	case crossed:
		service.logger.WarnContext(context, "auth_account_blocked",
			slog.String("account_id", accountID),
			slog.Duration("block_duration", service.lockout.BlockDuration),
		)
		return AccountBlocked(RemainingMinutes(now.Add(service.lockout.BlockDuration), now))
	default:
		service.logger.InfoContext(context, "auth_login_failed",
			slog.String("account_id", accountID),
			slog.String("reason", "wrong_password"),
		)
		return ErrInvalidCredentials
	}
}

// # Verification Flow

/*
VerifyEmail activates the account named by a mailed verification token.

Description: The signature, purpose and expiry of the token are checked
first. The stored digest is then compared on the locked row, and a match
marks the account verified and clears the digest in the same write, so a
token works at most once.

Returns:
  - error: INVALID_OR_EXPIRED_TOKEN, ALREADY_VERIFIED, NOT_FOUND or storage errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {
	accountID, nonce, err := service.verification.Decode(token)
	if err != nil {
		return err
	}

	now := service.now().UTC()
	_, err = service.accounts.Mutate(context, accountID, func(current *Account) (AccountPatch, error) {
		if err := service.verification.Check(current, nonce, now); err != nil {
			return AccountPatch{}, err
		}
		return service.verification.Consume(), nil
	})
	if err != nil {
		return passThrough(err, "auth_service_verify_failed")
	}

	service.logger.InfoContext(context, "auth_account_verified", slog.String("account_id", accountID))
	return nil
}

// # Credential Management

/*
ChangePassword replaces the password after re-checking the current one.

Parameters:
  - context: context.Context
  - accountID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: NOT_FOUND, INVALID_CREDENTIALS or storage errors
*/
func (service *Service) ChangePassword(context context.Context, accountID, currentPassword, newPassword string) error {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return passThrough(err, "auth_service_change_password_lookup_failed")
	}

	if !service.hasher.Verify(currentPassword, account.PasswordHash) {
		return ErrInvalidCredentials
	}

	passwordHash, err := service.hasher.Hash(newPassword)
	if err != nil {
		if errors.Is(err, sec.ErrPasswordTooLong) {
			return apperr.ValidationError("Password must be at most 72 bytes")
		}
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if _, err := service.accounts.Update(context, accountID, AccountPatch{PasswordHash: &passwordHash}); err != nil {
		return passThrough(err, "auth_service_change_password_failed")
	}

	service.logger.InfoContext(context, "auth_password_changed", slog.String("account_id", accountID))
	return nil
}

// # Helpers

func (service *Service) verificationLink(token string) string {
	return service.verificationURL + "?token=" + url.QueryEscape(token)
}

func (service *Service) dummyPasswordHash() string {
	service.dummyOnce.Do(func() {
		hash, err := service.hasher.Hash(uuid.New())
		if err == nil {
			service.dummyHash = hash
		}
	})
	return service.dummyHash
}

// passThrough returns application errors as they are and tags everything else.
func passThrough(err error, tag string) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", tag, err)
}
