// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package audit

import "context"

// # Audit Data Access

// Repository defines the data access contract for the audit trail.
type Repository interface {

	/*
		Insert appends one entry. Entries are never updated or deleted.

		Parameters:
		  - context: context.Context
		  - entry: *Entry

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, entry *Entry) error

	/*
		ListByUser returns a page of the user's entries, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Entry: The requested page
		  - int: Total entry count for the user
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Entry, int, error)
}
