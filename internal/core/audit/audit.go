// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package audit keeps a per-user trail of bulk operations.

Entries are append-only. The summary column is schemaless jsonb since each
action type carries a different shape; the dashboard renders it as-is.
*/
package audit

import "time"

// # Actions

// Action identifies what kind of operation an entry records.
type Action string

const (
	ActionBulkAddMembers Action = "bulk_add_members"
	ActionContactCleanup Action = "contact_cleanup"
)

// # Core Entities

// Entry is one recorded operation.
type Entry struct {
	ID        string         `json:"id"` // UUIDv7
	UserID    string         `json:"-"`
	AccountID string         `json:"account_id"`
	Action    Action         `json:"action"`
	Summary   map[string]any `json:"summary"`
	CreatedAt time.Time      `json:"created_at"`
}
