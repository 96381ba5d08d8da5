// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package account

import "context"

// # Account Data Access

// Repository defines the data access contract for linked accounts.
type Repository interface {

	/*
		ListByUser returns all non-deleted accounts owned by a user.

		Parameters:
		  - context: context.Context
		  - userID: string (UUIDv7)

		Returns:
		  - []*Account: Slice of owned accounts, newest first
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]*Account, error)

	/*
		FindByID retrieves an account by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Account: Hydrated entity including the session key
		  - error: ErrNotFound if missing or deleted
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		Create persists a new linked account.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Conflict when the phone is already linked by this user
	*/
	Create(context context.Context, account *Account) error

	/*
		Update modifies display name, session key and active flag.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, account *Account) error

	/*
		SoftDelete marks an account as deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}
