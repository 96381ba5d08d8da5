// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package audit_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/core/audit"
	"github.com/vhlong/telegate/internal/core/roster"
	"github.com/vhlong/telegate/internal/telegram"
)

type memoryRepository struct {
	entries []*audit.Entry
}

func (repository *memoryRepository) Insert(_ context.Context, entry *audit.Entry) error {
	repository.entries = append(repository.entries, entry)
	return nil
}

func (repository *memoryRepository) ListByUser(
	_ context.Context, userID string, _, _ int,
) ([]*audit.Entry, int, error) {
	var owned []*audit.Entry
	for _, entry := range repository.entries {
		if entry.UserID == userID {
			owned = append(owned, entry)
		}
	}
	return owned, len(owned), nil
}

func TestService_RecordBulkAdd(t *testing.T) {
	repository := &memoryRepository{}
	service := audit.NewService(repository, slog.New(slog.DiscardHandler))

	cleaned := 2
	record := roster.BulkAddRecord{
		UserID:    "user-1",
		AccountID: "account-1",
		GroupID:   42,
		GroupKind: telegram.GroupSuper,
		Result: roster.BulkAddMembersResult{
			Total:          5,
			Successful:     3,
			AlreadyMembers: 1,
			NotFound:       1,
			CleanedUp:      &cleaned,
		},
	}

	require.NoError(t, service.RecordBulkAdd(context.Background(), record))

	require.Len(t, repository.entries, 1)
	entry := repository.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, audit.ActionBulkAddMembers, entry.Action)
	assert.Equal(t, "account-1", entry.AccountID)
	assert.Equal(t, 5, entry.Summary["total"])
	assert.Equal(t, 3, entry.Summary["successful"])
	assert.Equal(t, 2, entry.Summary["cleaned_up"])

	// Per-member results stay out of the trail.
	assert.NotContains(t, entry.Summary, "results")
}
