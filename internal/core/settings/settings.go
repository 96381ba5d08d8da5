// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package settings stores per-user pipeline preferences.

Preferences drive phone normalization and the pacing of bulk group-add runs.
Users who never saved anything get server defaults; a saved row always wins.
*/
package settings

import "time"

// # Core Entities

// Settings holds one user's stored preferences.
type Settings struct {
	UserID string `json:"-"`

	// DefaultCountryCode is the ITU calling code applied to local-form numbers.
	DefaultCountryCode string `json:"default_country_code"`

	// BulkAddDelayMs is the pause between sequential group-add calls, kept
	// inside the supported window.
	BulkAddDelayMs int `json:"bulk_add_delay_ms"`

	// AutoCleanupContacts removes freshly-imported address-book entries after
	// a bulk run completes.
	AutoCleanupContacts bool `json:"auto_cleanup_contacts"`

	// PhoneValidationStrict enforces the E.164 digit window during parsing.
	PhoneValidationStrict bool `json:"phone_validation_strict"`

	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldCountryCode = "default_country_code"
	FieldDelayMs     = "bulk_add_delay_ms"
)
