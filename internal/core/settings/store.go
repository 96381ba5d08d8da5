// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package settings

import "context"

// # Settings Data Access

// Repository defines the data access contract for stored preferences.
type Repository interface {

	/*
		Find retrieves a user's saved preferences.

		Parameters:
		  - context: context.Context
		  - userID: string (UUIDv7)

		Returns:
		  - *Settings: The saved row
		  - error: ErrNotFound when the user never saved anything
	*/
	Find(context context.Context, userID string) (*Settings, error)

	/*
		Upsert saves the preferences, inserting or replacing the row.

		Parameters:
		  - context: context.Context
		  - settings: *Settings

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, settings *Settings) error
}
