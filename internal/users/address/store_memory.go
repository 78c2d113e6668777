// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package address

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-process [Repository] for STORE_DRIVER=memory and tests.
type MemoryRepository struct {
	mu        sync.Mutex
	addresses []*Address
	now       func() time.Time
}

// NewMemoryRepository creates an empty in-memory address store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// List returns copies of the matching addresses, newest first.
func (repository *MemoryRepository) List(_ context.Context, accountID string, filter Filter, limit, offset int) ([]*Address, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	matches := make([]*Address, 0)
	// Walk backwards so equal timestamps keep newest-inserted first.
	for i := len(repository.addresses) - 1; i >= 0; i-- {
		address := repository.addresses[i]
		if address.AccountID != accountID || !filter.matches(address) {
			continue
		}
		copied := *address
		matches = append(matches, &copied)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	if offset >= total {
		return []*Address{}, total, nil
	}
	matches = matches[offset:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, total, nil
}

// Create stores a copy of address.
func (repository *MemoryRepository) Create(_ context.Context, address *Address) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if address.IsDefault {
		repository.clearDefault(address.AccountID, address.ID)
	}
	copied := *address
	repository.addresses = append(repository.addresses, &copied)
	return nil
}

// Update patches an owned address.
func (repository *MemoryRepository) Update(_ context.Context, accountID, id string, patch Patch) (*Address, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	address := repository.find(accountID, id)
	if address == nil {
		return nil, ErrAddressNotFound
	}
	if patch.IsEmpty() {
		copied := *address
		return &copied, nil
	}

	if patch.IsDefault != nil && *patch.IsDefault {
		repository.clearDefault(accountID, id)
	}
	patch.Apply(address)
	address.UpdatedAt = repository.now().UTC()

	copied := *address
	return &copied, nil
}

// Delete removes an owned address.
func (repository *MemoryRepository) Delete(_ context.Context, accountID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i, address := range repository.addresses {
		if address.ID == id && address.AccountID == accountID {
			repository.addresses = append(repository.addresses[:i], repository.addresses[i+1:]...)
			return nil
		}
	}
	return ErrAddressNotFound
}

func (repository *MemoryRepository) find(accountID, id string) *Address {
	for _, address := range repository.addresses {
		if address.ID == id && address.AccountID == accountID {
			return address
		}
	}
	return nil
}

func (repository *MemoryRepository) clearDefault(accountID, keepID string) {
	now := repository.now().UTC()
	for _, address := range repository.addresses {
		if address.AccountID == accountID && address.ID != keepID && address.IsDefault {
			address.IsDefault = false
			address.UpdatedAt = now
		}
	}
}

func (filter Filter) matches(address *Address) bool {
	return (filter.Title == "" || filter.Title == address.Title) &&
		(filter.City == "" || filter.City == address.City) &&
		(filter.State == "" || filter.State == address.State)
}
