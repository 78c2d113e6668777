// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/internal/platform/apperr"
	"github.com/taibuivan/userdesk/internal/platform/sec"
	"github.com/taibuivan/userdesk/internal/users/account"
	"github.com/taibuivan/userdesk/internal/users/auth"
)

func seed(t *testing.T) (*auth.MemoryAccountRepository, string) {
	t.Helper()
	dob := time.Date(1995, 5, 4, 0, 0, 0, 0, time.UTC)
	repository := auth.NewMemoryAccountRepository()
	require.NoError(t, repository.Create(context.Background(), &auth.Account{
		ID:           "acc-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$not-a-real-hash",
		FirstName:    "Alice",
		LastName:     "Liddell",
		DateOfBirth:  &dob,
		Role:         sec.RoleMember,
		IsVerified:   true,
		IsActive:     true,
	}))
	return repository, "acc-1"
}

func TestService_GetProfile(t *testing.T) {
	repository, id := seed(t)
	service := account.NewService(repository, nil)

	profile, err := service.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	require.NotNil(t, profile.DateOfBirth)
	assert.Equal(t, "1995-05-04", *profile.DateOfBirth)

	_, err = service.GetProfile(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_UpdateProfile(t *testing.T) {
	lastName := "  Pleasance "
	newDOB := time.Date(1996, 7, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     account.UpdateProfileInput
		wantFirst string
		wantLast  string
		wantDOB   *string
	}{
		{
			name:      "empty update keeps everything",
			input:     account.UpdateProfileInput{},
			wantFirst: "Alice",
			wantLast:  "Liddell",
			wantDOB:   strPtr("1995-05-04"),
		},
		{
			name:      "trims last name only",
			input:     account.UpdateProfileInput{LastName: &lastName},
			wantFirst: "Alice",
			wantLast:  "Pleasance",
			wantDOB:   strPtr("1995-05-04"),
		},
		{
			name:      "sets date of birth",
			input:     account.UpdateProfileInput{DateOfBirth: auth.Some(newDOB)},
			wantFirst: "Alice",
			wantLast:  "Liddell",
			wantDOB:   strPtr("1996-07-08"),
		},
		{
			name:      "clears date of birth",
			input:     account.UpdateProfileInput{DateOfBirth: auth.Null[time.Time]()},
			wantFirst: "Alice",
			wantLast:  "Liddell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, id := seed(t)
			service := account.NewService(repository, nil)

			profile, err := service.UpdateProfile(context.Background(), id, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFirst, profile.FirstName)
			assert.Equal(t, tt.wantLast, profile.LastName)
			assert.Equal(t, tt.wantDOB, profile.DateOfBirth)

			stored, err := repository.FindByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLast, stored.LastName)
			assert.True(t, stored.IsVerified, "profile updates never touch verification state")
		})
	}
}

func strPtr(value string) *string { return &value }
