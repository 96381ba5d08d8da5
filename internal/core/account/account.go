// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package account manages the Telegram accounts a user has linked to the
dashboard.

Each account wraps an authenticated Telegram session; every protocol
operation elsewhere in the system acts under exactly one of these sessions.

# Core Responsibility

  - Linking: Defines the [Account] entity and its lifecycle.
  - Ownership: Every lookup is scoped to the owning user; accounts are never
    visible across tenants.
  - Session custody: Stores the opaque session key and hands it out only to
    server-side callers, never over the API.
*/
package account

import "time"

// # Core Entities

// Account represents one linked Telegram account.
type Account struct {
	ID          string  `json:"id"` // UUIDv7
	UserID      string  `json:"-"`
	PhoneNumber string  `json:"phone_number"`
	DisplayName *string `json:"display_name,omitempty"`

	// SessionKey is the opaque credential for the bridge. It never leaves
	// the server process.
	SessionKey string `json:"-"`

	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldPhoneNumber = "phone_number"
	FieldDisplayName = "display_name"
	FieldSessionKey  = "session_key"
)
