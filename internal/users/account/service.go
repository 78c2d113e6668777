// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

// # Service Layer

// Service orchestrates profile reads and updates.
type Service struct {
	accountRepository ProfileRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo ProfileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the public projection of a user's account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.PublicProfile: The profile, without credentials
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.PublicProfile, error) {
	account, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, wrap(err, "account_service_get_profile_failed")
	}

	profile := account.Public()
	return &profile, nil
}

/*
UpdateProfile applies a partial set of changes to the caller's profile.

Description: Names are trimmed. An input with no fields returns the current
profile without writing.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.PublicProfile: The updated profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.PublicProfile, error) {
	patch := auth.AccountPatch{DateOfBirth: input.DateOfBirth}

	if input.FirstName != nil {
		firstName := strings.TrimSpace(*input.FirstName)
		patch.FirstName = &firstName
	}
	if input.LastName != nil {
		lastName := strings.TrimSpace(*input.LastName)
		patch.LastName = &lastName
	}

	if patch.IsEmpty() {
		return service.GetProfile(context, userID)
	}

	account, err := service.accountRepository.Update(context, userID, patch)
	if err != nil {
		return nil, wrap(err, "account_service_update_failed")
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	profile := account.Public()
	return &profile, nil
}

func wrap(err error, tag string) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", tag, err)
}
