// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/core/account"
	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/pkg/pointer"
)

type memoryRepository struct {
	accounts map[string]*account.Account
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{accounts: map[string]*account.Account{}}
}

func (repository *memoryRepository) ListByUser(_ context.Context, userID string) ([]*account.Account, error) {
	var owned []*account.Account
	for _, entry := range repository.accounts {
		if entry.UserID == userID && entry.DeletedAt == nil {
			owned = append(owned, entry)
		}
	}
	return owned, nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*account.Account, error) {
	entry, ok := repository.accounts[id]
	if !ok || entry.DeletedAt != nil {
		return nil, apperr.NotFound("Account")
	}
	return entry, nil
}

func (repository *memoryRepository) Create(_ context.Context, entry *account.Account) error {
	repository.accounts[entry.ID] = entry
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, entry *account.Account) error {
	repository.accounts[entry.ID] = entry
	return nil
}

func (repository *memoryRepository) SoftDelete(_ context.Context, id string) error {
	delete(repository.accounts, id)
	return nil
}

func newService(repository account.Repository) *account.Service {
	return account.NewService(repository, "84", slog.New(slog.DiscardHandler))
}

func TestService_LinkAccount(t *testing.T) {
	t.Run("normalizes the phone before storage", func(t *testing.T) {
		repository := newMemoryRepository()
		service := newService(repository)

		linked := &account.Account{
			UserID:      "user-1",
			PhoneNumber: "0912345678",
			DisplayName: pointer.To("Work phone"),
			SessionKey:  "session-abc",
		}
		err := service.LinkAccount(context.Background(), linked)

		require.NoError(t, err)
		assert.NotEmpty(t, linked.ID)
		assert.Equal(t, "+84912345678", linked.PhoneNumber)
		assert.Equal(t, "Work phone", pointer.Val(linked.DisplayName))
		assert.True(t, linked.IsActive)
	})

	t.Run("rejects a missing session key", func(t *testing.T) {
		service := newService(newMemoryRepository())

		err := service.LinkAccount(context.Background(), &account.Account{
			UserID:      "user-1",
			PhoneNumber: "0912345678",
		})

		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})
}

func TestService_Ownership(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)

	linked := &account.Account{
		UserID:      "user-1",
		PhoneNumber: "0912345678",
		SessionKey:  "session-abc",
	}
	require.NoError(t, service.LinkAccount(context.Background(), linked))

	t.Run("owner can read", func(t *testing.T) {
		found, err := service.GetAccount(context.Background(), "user-1", linked.ID)
		require.NoError(t, err)
		assert.Equal(t, linked.ID, found.ID)
	})

	t.Run("foreign account reports not found", func(t *testing.T) {
		_, err := service.GetAccount(context.Background(), "user-2", linked.ID)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})
}

func TestService_SessionKey(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)

	linked := &account.Account{
		UserID:      "user-1",
		PhoneNumber: "0912345678",
		SessionKey:  "session-abc",
	}
	require.NoError(t, service.LinkAccount(context.Background(), linked))

	t.Run("active account yields the key", func(t *testing.T) {
		key, err := service.SessionKey(context.Background(), "user-1", linked.ID)
		require.NoError(t, err)
		assert.Equal(t, "session-abc", key)
	})

	t.Run("disconnected account is unprocessable", func(t *testing.T) {
		linked.IsActive = false
		require.NoError(t, repository.Update(context.Background(), linked))

		_, err := service.SessionKey(context.Background(), "user-1", linked.ID)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 422, appError.HTTPStatus)
	})
}
