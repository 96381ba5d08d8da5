// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package contact_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/core/contact"
	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/telegram"
	"github.com/vhlong/telegate/pkg/pagination"
)

type stubClient struct {
	contacts    []telegram.Contact
	contactsErr error
	removed     [][]int64
	removeErr   error
}

func (stub *stubClient) GetAddressBook(_ context.Context, _ string) ([]telegram.Contact, error) {
	return stub.contacts, stub.contactsErr
}

func (stub *stubClient) ImportContacts(_ context.Context, _ string, _ []telegram.ImportEntry) ([]*int64, error) {
	return nil, errors.New("not scripted")
}

func (stub *stubClient) RemoveContacts(_ context.Context, _ string, userIDs []int64) (int, error) {
	stub.removed = append(stub.removed, userIDs)
	if stub.removeErr != nil {
		return 0, stub.removeErr
	}
	return len(userIDs), nil
}

func (stub *stubClient) AddGroupMember(_ context.Context, _ string, _, _ int64) error {
	return errors.New("not scripted")
}

func (stub *stubClient) AddGroupMembersBatch(_ context.Context, _ string, _ int64, _ []int64) error {
	return errors.New("not scripted")
}

type stubSessions struct {
	key string
	err error
}

func (stub *stubSessions) SessionKey(_ context.Context, _, _ string) (string, error) {
	return stub.key, stub.err
}

func newService(client telegram.Client, sessions contact.SessionDirectory) *contact.Service {
	return contact.NewService(client, sessions, slog.New(slog.DiscardHandler))
}

func book(size int) []telegram.Contact {
	contacts := make([]telegram.Contact, size)
	for index := range contacts {
		contacts[index] = telegram.Contact{ID: int64(index + 1)}
	}
	return contacts
}

func TestService_ListContacts(t *testing.T) {
	t.Run("paginates the full book in memory", func(t *testing.T) {
		client := &stubClient{contacts: book(25)}
		service := newService(client, &stubSessions{key: "session"})

		page, meta, err := service.ListContacts(
			context.Background(), "user-1", "account-1", pagination.Params{Page: 2, Limit: 10},
		)

		require.NoError(t, err)
		require.Len(t, page, 10)
		assert.Equal(t, int64(11), page[0].ID)
		assert.Equal(t, 25, meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("bridge failure maps to upstream error", func(t *testing.T) {
		client := &stubClient{contactsErr: errors.New("bridge unreachable")}
		service := newService(client, &stubSessions{key: "session"})

		_, _, err := service.ListContacts(
			context.Background(), "user-1", "account-1", pagination.Params{Page: 1, Limit: 10},
		)

		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 502, appError.HTTPStatus)
	})

	t.Run("ownership failure short-circuits", func(t *testing.T) {
		client := &stubClient{}
		service := newService(client, &stubSessions{err: apperr.NotFound("Account")})

		_, _, err := service.ListContacts(
			context.Background(), "user-2", "account-1", pagination.Params{Page: 1, Limit: 10},
		)

		require.Error(t, err)
	})
}

func TestService_DeleteContacts(t *testing.T) {
	t.Run("removes the selected entries", func(t *testing.T) {
		client := &stubClient{}
		service := newService(client, &stubSessions{key: "session"})

		removed, err := service.DeleteContacts(
			context.Background(), "user-1", "account-1", []int64{4, 5},
		)

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		require.Len(t, client.removed, 1)
		assert.Equal(t, []int64{4, 5}, client.removed[0])
	})

	t.Run("empty selection is a validation error", func(t *testing.T) {
		client := &stubClient{}
		service := newService(client, &stubSessions{key: "session"})

		_, err := service.DeleteContacts(context.Background(), "user-1", "account-1", nil)

		require.Error(t, err)
		assert.Empty(t, client.removed)
	})
}
