// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/telegram"
	"github.com/vhlong/telegate/pkg/slice"
)

// # Service

// RunRecorder persists an audit trail of completed pipeline runs. Recording
// is best effort; the pipeline never fails because of it.
type RunRecorder interface {
	RecordBulkAdd(ctx context.Context, record BulkAddRecord) error
}

// BulkAddRecord is the audit payload for one completed run.
type BulkAddRecord struct {
	UserID    string               `json:"user_id"`
	AccountID string               `json:"account_id"`
	GroupID   int64                `json:"group_id"`
	GroupKind telegram.GroupKind   `json:"group_kind"`
	Result    BulkAddMembersResult `json:"result"`
}

// Service orchestrates the bulk-add pipeline end to end.
type Service struct {
	resolver *Resolver
	adder    *GroupAdder
	cleaner  *Cleaner
	recorder RunRecorder
	logger   *slog.Logger
}

/*
NewService creates the pipeline service.

Parameters:
  - client: the protocol client all stages share.
  - recorder: the audit sink; may be nil to disable recording.
  - logger: structured logger.
  - delay: pause between sequential add calls; nil uses [SleepDelay].

Returns:
  - *Service: the created instance.
*/
func NewService(
	client telegram.Client,
	recorder RunRecorder,
	logger *slog.Logger,
	delay DelayFunc,
) *Service {
	return &Service{
		resolver: NewResolver(client, logger),
		adder:    NewGroupAdder(client, logger, delay),
		cleaner:  NewCleaner(client, logger),
		recorder: recorder,
		logger:   logger,
	}
}

// BulkAddInput carries everything one pipeline run needs. The session key
// and ownership checks are the caller's responsibility; the pipeline itself
// is tenant-agnostic.
type BulkAddInput struct {
	SessionKey string
	UserID     string
	AccountID  string
	GroupID    int64
	GroupKind  telegram.GroupKind
	Candidates []Candidate
	Options    Options
}

/*
ProcessBulkAdd runs the full pipeline: dedup, resolve, add, cleanup, audit.

Secret groups are rejected up front since the protocol has no server-side
member management for them. Cancellation mid-run stops further add calls but
cleanup still runs on a detached context, so imports never leak because a
client went away. No stage is ever retried; partial results are reported
as-is and retrying is the operator's decision.

Parameters:
  - ctx: carries cancellation and the request deadline.
  - input: the run parameters.

Returns:
  - *BulkAddMembersResult: one entry per valid candidate plus the counts.
  - error: validation or capacity precondition failures, or an address-book
    fetch failure; all occur before any group mutation.
*/
func (service *Service) ProcessBulkAdd(
	ctx context.Context,
	input BulkAddInput,
) (*BulkAddMembersResult, error) {
	// 1. Strategy preconditions.
	if input.GroupKind == telegram.GroupSecret {
		return nil, apperr.Unprocessable("Secret chats do not support member management")
	}
	if !input.GroupKind.IsValid() {
		return nil, apperr.ValidationError("Unknown group kind")
	}

	options := input.Options.Clamped()

	// 2. Dedup first so one phone never triggers two remote attempts, then
	// keep only candidates that parsed cleanly.
	unique := RemoveDuplicates(input.Candidates)
	valid, invalid := slice.Partition(unique, func(candidate Candidate) bool {
		return candidate.IsValid
	})
	if len(valid) == 0 {
		return nil, apperr.ValidationError("No valid phone numbers found in the input")
	}

	service.logger.Info("bulk_add_started",
		slog.String("account_id", input.AccountID),
		slog.Int64("group_id", input.GroupID),
		slog.String("group_kind", string(input.GroupKind)),
		slog.Int("candidate_count", len(valid)),
		slog.Int("invalid_count", len(invalid)),
	)

	// 3. Resolve phones to identities.
	members, err := service.resolver.Resolve(ctx, input.SessionKey, valid)
	if err != nil {
		return nil, err
	}

	// 4. Attach them to the group.
	results, err := service.adder.AddMembers(
		ctx, input.SessionKey, input.GroupID, input.GroupKind, members, options.BulkAddDelay,
	)
	if err != nil {
		return nil, err
	}

	result := tally(results)

	// 5. Reverse the import side-effect. Detached from the run's
	// cancellation: an aborted run must still get its imports removed.
	if options.AutoCleanupContacts {
		removed := service.cleaner.Cleanup(context.WithoutCancel(ctx), input.SessionKey, members)
		result.CleanedUp = &removed
	}

	// 6. Audit trail, best effort.
	if service.recorder != nil {
		record := BulkAddRecord{
			UserID:    input.UserID,
			AccountID: input.AccountID,
			GroupID:   input.GroupID,
			GroupKind: input.GroupKind,
			Result:    *result,
		}
		if err := service.recorder.RecordBulkAdd(context.WithoutCancel(ctx), record); err != nil {
			service.logger.Warn("bulk_add_audit_failed", slog.Any("error", err))
		}
	}

	service.logger.Info("bulk_add_completed",
		slog.Int64("group_id", input.GroupID),
		slog.Int("total", result.Total),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed),
		slog.Int("already_members", result.AlreadyMembers),
		slog.Int("not_found", result.NotFound),
	)

	return result, nil
}

// tally folds per-member outcomes into the run summary.
func tally(results []AddMemberResult) *BulkAddMembersResult {
	summary := &BulkAddMembersResult{
		Total:   len(results),
		Results: results,
	}
	for _, result := range results {
		switch result.Status {
		case AddSuccess:
			summary.Successful++
		case AddAlreadyMember:
			summary.AlreadyMembers++
		case AddNotFound:
			summary.NotFound++
		default:
			summary.Failed++
		}
	}
	return summary
}
