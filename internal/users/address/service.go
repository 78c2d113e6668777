// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package address

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/validate"
	"github.com/taibuivan/userdesk/pkg/pagination"
	"github.com/taibuivan/userdesk/pkg/uuid"
)

// CreateInput carries a validated new address.
type CreateInput struct {
	Title        string
	HouseNumber  string
	BuildingName string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	IsDefault    bool
}

// Service implements the address book use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new address [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repository: repository, logger: logger, now: time.Now}
}

/*
List returns a page of the account's addresses.

Parameters:
  - context: context.Context
  - accountID: string
  - filter: Filter (exact-match title, city, state)
  - page: pagination.Params

Returns:
  - []*Address: The page, newest first
  - pagination.Meta: Page metadata
  - error: Storage failures
*/
func (service *Service) List(context context.Context, accountID string, filter Filter, page pagination.Params) ([]*Address, pagination.Meta, error) {
	addresses, total, err := service.repository.List(context, accountID, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("address_service_list_failed: %w", err)
	}
	return addresses, pagination.NewMeta(page, total), nil
}

// ListByTitle returns every address of the account with exactly this title, and the count.
func (service *Service) ListByTitle(context context.Context, accountID, title string) (*TitleResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validate.RequiredError("title", "is required")
	}

	addresses, total, err := service.repository.List(context, accountID, Filter{Title: title}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("address_service_list_by_title_failed: %w", err)
	}
	return &TitleResult{Count: total, Addresses: addresses}, nil
}

/*
Create saves a new address for the account.

Description: When IsDefault is set the previous default loses the flag.
*/
func (service *Service) Create(context context.Context, accountID string, input CreateInput) (*Address, error) {
	now := service.now().UTC()
	address := &Address{
		ID:           uuid.New(),
		AccountID:    accountID,
		Title:        strings.TrimSpace(input.Title),
		HouseNumber:  strings.TrimSpace(input.HouseNumber),
		BuildingName: strings.TrimSpace(input.BuildingName),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		AddressLine2: strings.TrimSpace(input.AddressLine2),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		ZipCode:      strings.TrimSpace(input.ZipCode),
		IsDefault:    input.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repository.Create(context, address); err != nil {
		return nil, wrap(err, "address_service_create_failed")
	}

	service.logger.InfoContext(context, "address_created",
		slog.String("account_id", accountID),
		slog.String("address_id", address.ID),
		slog.Bool("is_default", address.IsDefault),
	)
	return address, nil
}

// Update applies a partial update to one of the account's addresses.
func (service *Service) Update(context context.Context, accountID, id string, patch Patch) (*Address, error) {
	if !uuid.Valid(id) {
		return nil, ErrAddressNotFound
	}

	for _, field := range []**string{
		&patch.Title, &patch.HouseNumber, &patch.BuildingName, &patch.AddressLine1,
		&patch.AddressLine2, &patch.City, &patch.State, &patch.ZipCode,
	} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}

	address, err := service.repository.Update(context, accountID, id, patch)
	if err != nil {
		return nil, wrap(err, "address_service_update_failed")
	}

	service.logger.InfoContext(context, "address_updated",
		slog.String("account_id", accountID),
		slog.String("address_id", id),
	)
	return address, nil
}

// Delete removes one of the account's addresses.
func (service *Service) Delete(context context.Context, accountID, id string) error {
	if !uuid.Valid(id) {
		return ErrAddressNotFound
	}

	if err := service.repository.Delete(context, accountID, id); err != nil {
		return wrap(err, "address_service_delete_failed")
	}

	service.logger.InfoContext(context, "address_deleted",
		slog.String("account_id", accountID),
		slog.String("address_id", id),
	)
	return nil
}

func wrap(err error, tag string) error {
	if apperr.IsAppError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", tag, err)
}
