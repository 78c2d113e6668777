// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryAccountRepository is an in-process [AccountRepository].
//
// It backs STORE_DRIVER=memory and the package tests. Records are cloned on
// the way in and out so callers never share state with the store.
type MemoryAccountRepository struct {
	mu         sync.Mutex
	accounts   map[string]*Account
	byEmail    map[string]string
	byUsername map[string]string
	now        func() time.Time
}

// NewMemoryAccountRepository creates an empty in-memory repository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts:   make(map[string]*Account),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		now:        time.Now,
	}
}

// FindByID returns a copy of the stored account.
func (repository *MemoryAccountRepository) FindByID(_ context.Context, id string) (*Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account.Clone(), nil
}

// FindByEmailOrUsername returns the account matching either identifier, email first.
func (repository *MemoryAccountRepository) FindByEmailOrUsername(_ context.Context, email, username string) (*Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if id, ok := repository.byEmail[email]; ok && email != "" {
		return repository.accounts[id].Clone(), nil
	}
	if id, ok := repository.byUsername[username]; ok && username != "" {
		return repository.accounts[id].Clone(), nil
	}
	return nil, ErrAccountNotFound
}

// ExistsByEmailOrUsername reports whether either identifier is taken.
func (repository *MemoryAccountRepository) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	_, emailTaken := repository.byEmail[email]
	_, usernameTaken := repository.byUsername[username]
	return emailTaken || usernameTaken, nil
}

// Create stores a copy of account, enforcing both uniqueness constraints.
func (repository *MemoryAccountRepository) Create(_ context.Context, account *Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.byEmail[account.Email]; ok {
		return ErrAccountConflict
	}
	if _, ok := repository.byUsername[account.Username]; ok {
		return ErrAccountConflict
	}
	if _, ok := repository.accounts[account.ID]; ok {
		return ErrAccountConflict
	}

	stored := account.Clone()
	repository.accounts[stored.ID] = stored
	repository.byEmail[stored.Email] = stored.ID
	repository.byUsername[stored.Username] = stored.ID
	return nil
}

// Update applies patch and returns the new state.
func (repository *MemoryAccountRepository) Update(_ context.Context, id string, patch AccountPatch) (*Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	repository.apply(account, patch)
	return account.Clone(), nil
}

// Mutate holds the store lock across fn, so every mutation is serialized.
func (repository *MemoryAccountRepository) Mutate(_ context.Context, id string, fn MutateFunc) (*Account, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	account, ok := repository.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}

	patch, err := fn(account.Clone())
	if err != nil {
		return nil, err
	}

	repository.apply(account, patch)
	return account.Clone(), nil
}

func (repository *MemoryAccountRepository) apply(account *Account, patch AccountPatch) {
	if patch.IsEmpty() {
		return
	}
	patch.Apply(account)
	account.UpdatedAt = repository.now().UTC()
}
