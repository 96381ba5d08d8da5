// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/platform/validate"
	"github.com/vhlong/telegate/pkg/phone"
	"github.com/vhlong/telegate/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for linked Telegram accounts.
type Service struct {
	repo               Repository
	defaultCountryCode string
	logger             *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, defaultCountryCode string, logger *slog.Logger) *Service {
	return &Service{
		repo:               repo,
		defaultCountryCode: defaultCountryCode,
		logger:             logger,
	}
}

/*
ListAccounts returns every account linked by the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Account: Owned accounts, newest first
  - error: Retrieval errors
*/
func (service *Service) ListAccounts(context context.Context, userID string) ([]*Account, error) {
	return service.repo.ListByUser(context, userID)
}

/*
GetAccount retrieves one account, enforcing ownership.

A foreign account id reports not-found rather than forbidden so account ids
cannot be probed across tenants.

Parameters:
  - context: context.Context
  - userID: string (The authenticated caller)
  - id: string (Account UUIDv7)

Returns:
  - *Account: Hydrated entity
  - error: ErrNotFound if missing, deleted or owned by someone else
*/
func (service *Service) GetAccount(context context.Context, userID, id string) (*Account, error) {
	account, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperr.NotFound("Account")
	}
	return account, nil
}

/*
LinkAccount registers a new Telegram account for the user.

The phone is normalized before storage so the same account cannot be linked
twice under different spellings.

Parameters:
  - context: context.Context
  - account: *Account (PhoneNumber, DisplayName and SessionKey set)

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) LinkAccount(context context.Context, account *Account) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldPhoneNumber, account.PhoneNumber).
		Phone(FieldPhoneNumber, account.PhoneNumber, service.defaultCountryCode, true).
		Required(FieldSessionKey, account.SessionKey)
	if err := validator.Err(); err != nil {
		return err
	}

	account.ID = uuid.New()
	account.PhoneNumber = phone.Normalize(account.PhoneNumber, service.defaultCountryCode)
	account.IsActive = true

	if err := service.repo.Create(context, account); err != nil {
		return err
	}

	service.logger.Info("account_linked",
		slog.String("account_id", account.ID),
		slog.String("user_id", account.UserID),
	)

	return nil
}

/*
UpdateAccount modifies display name, session key or active flag.

Parameters:
  - context: context.Context
  - userID: string
  - account: *Account (ID plus the fields to change)

Returns:
  - error: Ownership, validation or persistence failures
*/
func (service *Service) UpdateAccount(context context.Context, userID string, account *Account) error {
	existing, err := service.GetAccount(context, userID, account.ID)
	if err != nil {
		return err
	}

	if account.DisplayName != nil {
		existing.DisplayName = account.DisplayName
	}
	if account.SessionKey != "" {
		existing.SessionKey = account.SessionKey
	}
	existing.IsActive = account.IsActive

	return service.repo.Update(context, existing)
}

/*
UnlinkAccount soft-deletes an account.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - error: Ownership or persistence failures
*/
func (service *Service) UnlinkAccount(context context.Context, userID, id string) error {
	if _, err := service.GetAccount(context, userID, id); err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("account_unlinked",
		slog.String("account_id", id),
		slog.String("user_id", userID),
	)

	return nil
}

/*
SessionKey resolves an owned, active account to its bridge session key.

Parameters:
  - context: context.Context
  - userID: string
  - accountID: string

Returns:
  - string: The opaque session credential
  - error: ErrNotFound for foreign ids, Unprocessable when disconnected
*/
func (service *Service) SessionKey(context context.Context, userID, accountID string) (string, error) {
	account, err := service.GetAccount(context, userID, accountID)
	if err != nil {
		return "", err
	}
	if !account.IsActive || account.SessionKey == "" {
		return "", apperr.Unprocessable("Telegram account is not connected")
	}
	return account.SessionKey, nil
}
