// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package audit

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/core/roster"
	"github.com/vhlong/telegate/pkg/uuid"
)

// # Service Layer

// Service records and lists audit entries. It implements
// [roster.RunRecorder] for the bulk-add pipeline.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new audit [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
RecordBulkAdd persists the summary of one completed pipeline run.

Only the counts go into the summary; per-member results are returned to the
caller synchronously and would bloat the trail.

Parameters:
  - context: context.Context
  - record: roster.BulkAddRecord

Returns:
  - error: Persistence failures; the pipeline logs and ignores them
*/
func (service *Service) RecordBulkAdd(context context.Context, record roster.BulkAddRecord) error {
	summary := map[string]any{
		"group_id":        record.GroupID,
		"group_kind":      string(record.GroupKind),
		"total":           record.Result.Total,
		"successful":      record.Result.Successful,
		"failed":          record.Result.Failed,
		"already_members": record.Result.AlreadyMembers,
		"not_found":       record.Result.NotFound,
	}
	if record.Result.CleanedUp != nil {
		summary["cleaned_up"] = *record.Result.CleanedUp
	}

	return service.repo.Insert(context, &Entry{
		ID:        uuid.New(),
		UserID:    record.UserID,
		AccountID: record.AccountID,
		Action:    ActionBulkAddMembers,
		Summary:   summary,
	})
}

/*
ListEntries returns a page of the user's audit trail, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*Entry: The requested page
  - int: Total entry count
  - error: Retrieval failures
*/
func (service *Service) ListEntries(context context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}
