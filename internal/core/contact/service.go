// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package contact exposes the address book of a linked Telegram account.

The address book lives on the Telegram side, not in the local database; this
package proxies reads and deletions through the bridge under the account's
session. Listing is paginated in memory since the protocol always returns
the full book.
*/
package contact

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/telegram"
	"github.com/vhlong/telegate/pkg/pagination"
)

// SessionDirectory resolves an owned account id to its bridge session key.
// Implemented by the account service.
type SessionDirectory interface {
	SessionKey(ctx context.Context, userID, accountID string) (string, error)
}

// # Service Layer

// Service proxies address-book operations through the bridge.
type Service struct {
	client   telegram.Client
	sessions SessionDirectory
	logger   *slog.Logger
}

// NewService constructs a new contact [Service].
func NewService(client telegram.Client, sessions SessionDirectory, logger *slog.Logger) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

/*
ListContacts returns one page of the account's address book.

Parameters:
  - context: context.Context
  - userID: string (The authenticated caller)
  - accountID: string
  - params: pagination.Params

Returns:
  - []telegram.Contact: The requested page
  - pagination.Meta: Page metadata over the full book
  - error: Ownership or bridge failures
*/
func (service *Service) ListContacts(
	context context.Context,
	userID, accountID string,
	params pagination.Params,
) ([]telegram.Contact, pagination.Meta, error) {
	sessionKey, err := service.sessions.SessionKey(context, userID, accountID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	contacts, err := service.client.GetAddressBook(context, sessionKey)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Upstream("Unable to fetch the Telegram address book", err)
	}

	page := pagination.Slice(contacts, params)
	return page, pagination.NewMeta(params.Page, params.Limit, len(contacts)), nil
}

/*
DeleteContacts removes the given entries from the account's address book.

Parameters:
  - context: context.Context
  - userID: string
  - accountID: string
  - contactIDs: []int64 (Remote user identifiers)

Returns:
  - int: Number of entries removed
  - error: Ownership, validation or bridge failures
*/
func (service *Service) DeleteContacts(
	context context.Context,
	userID, accountID string,
	contactIDs []int64,
) (int, error) {
	if len(contactIDs) == 0 {
		return 0, apperr.ValidationError("No contacts selected")
	}

	sessionKey, err := service.sessions.SessionKey(context, userID, accountID)
	if err != nil {
		return 0, err
	}

	removed, err := service.client.RemoveContacts(context, sessionKey, contactIDs)
	if err != nil {
		return 0, apperr.Upstream("Unable to remove contacts", err)
	}

	service.logger.Info("contacts_removed",
		slog.String("account_id", accountID),
		slog.Int("removed_count", removed),
	)

	return removed, nil
}
