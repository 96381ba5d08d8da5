// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/telegram"
)

// # Cleanup

// Cleaner reverses the import side-effect of a pipeline run by removing
// address-book entries that the run itself created.
type Cleaner struct {
	client telegram.Client
	logger *slog.Logger
}

// NewCleaner creates a Cleaner backed by the given protocol client.
func NewCleaner(client telegram.Client, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		client: client,
		logger: logger,
	}
}

/*
Cleanup removes the freshly-imported address-book entries in one call.

Only members with WasImported set are eligible; identities that pre-existed
the run must never be touched. The operation is best effort: a failure is
logged and swallowed because the group adds have already happened and a
cleanup error must not fail the run retroactively.

Parameters:
  - ctx: carries cancellation; the caller detaches it from the run's
    cancellation so an aborted run still gets its imports reversed.
  - sessionKey: the authenticated Telegram session to act under.
  - members: the resolver output for the run.

Returns:
  - int: the number of entries removed; 0 when nothing was eligible or the
    removal failed.
*/
func (cleaner *Cleaner) Cleanup(
	ctx context.Context,
	sessionKey string,
	members []ResolvedMember,
) int {
	var userIDs []int64
	for _, member := range members {
		if member.WasImported && member.UserID != nil {
			userIDs = append(userIDs, *member.UserID)
		}
	}
	if len(userIDs) == 0 {
		return 0
	}

	removed, err := cleaner.client.RemoveContacts(ctx, sessionKey, userIDs)
	if err != nil {
		cleaner.logger.Warn("contact_cleanup_failed",
			slog.Int("contact_count", len(userIDs)),
			slog.Any("error", err),
		)
		return 0
	}

	cleaner.logger.Info("contact_cleanup_completed",
		slog.Int("removed_count", removed),
	)
	return removed
}
