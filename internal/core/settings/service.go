// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/vhlong/telegate/internal/core/roster"
	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/platform/constants"
	"github.com/vhlong/telegate/internal/platform/validate"
)

// # Service Layer

// Defaults are the server-wide preferences used for users without a saved
// row, sourced from configuration at startup.
type Defaults struct {
	DefaultCountryCode    string
	BulkAddDelayMs        int
	AutoCleanupContacts   bool
	PhoneValidationStrict bool
}

// Service orchestrates stored preferences and their defaults.
type Service struct {
	repo     Repository
	defaults Defaults
	logger   *slog.Logger
}

// NewService constructs a new settings [Service].
func NewService(repo Repository, defaults Defaults, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

/*
GetSettings returns the user's preferences, falling back to server defaults
when nothing was ever saved.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Settings: Saved row or defaults
  - error: Retrieval errors other than a missing row
*/
func (service *Service) GetSettings(context context.Context, userID string) (*Settings, error) {
	saved, err := service.repo.Find(context, userID)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == 404 {
			return service.defaultSettings(userID), nil
		}
		return nil, err
	}
	return saved, nil
}

/*
UpdateSettings validates and saves the user's preferences.

The delay must stay inside the supported pacing window; values outside it
are rejected rather than silently clamped so the dashboard can surface the
constraint.

Parameters:
  - context: context.Context
  - settings: *Settings

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) UpdateSettings(context context.Context, settings *Settings) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldCountryCode, settings.DefaultCountryCode).
		CountryCode(FieldCountryCode, settings.DefaultCountryCode).
		Range(FieldDelayMs, settings.BulkAddDelayMs,
			int(constants.MinBulkAddDelay/time.Millisecond),
			int(constants.MaxBulkAddDelay/time.Millisecond))
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Upsert(context, settings); err != nil {
		return err
	}

	service.logger.Info("settings_updated",
		slog.String("user_id", settings.UserID),
	)

	return nil
}

/*
OptionsFor converts the user's preferences into pipeline options.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - roster.Options: The effective run options
  - error: Retrieval errors
*/
func (service *Service) OptionsFor(context context.Context, userID string) (roster.Options, error) {
	settings, err := service.GetSettings(context, userID)
	if err != nil {
		return roster.Options{}, err
	}
	return roster.Options{
		DefaultCountryCode:  settings.DefaultCountryCode,
		BulkAddDelay:        time.Duration(settings.BulkAddDelayMs) * time.Millisecond,
		AutoCleanupContacts: settings.AutoCleanupContacts,
		StrictValidation:    settings.PhoneValidationStrict,
	}, nil
}

func (service *Service) defaultSettings(userID string) *Settings {
	return &Settings{
		UserID:                userID,
		DefaultCountryCode:    service.defaults.DefaultCountryCode,
		BulkAddDelayMs:        service.defaults.BulkAddDelayMs,
		AutoCleanupContacts:   service.defaults.AutoCleanupContacts,
		PhoneValidationStrict: service.defaults.PhoneValidationStrict,
	}
}
