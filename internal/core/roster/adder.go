// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster

import (
	"context"
	"log/slog"
	"time"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/platform/constants"
	"github.com/vhlong/telegate/internal/telegram"
)

// # Group Adder

// DelayFunc pauses between sequential add calls. Injected so tests can run
// without real waits; the production implementation is [SleepDelay].
type DelayFunc func(ctx context.Context, duration time.Duration)

// SleepDelay waits for the given duration or until the context is done,
// whichever comes first.
func SleepDelay(ctx context.Context, duration time.Duration) {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// GroupAdder attaches resolved members to a target group using a strategy
// picked by group kind.
type GroupAdder struct {
	client telegram.Client
	logger *slog.Logger
	delay  DelayFunc
}

// NewGroupAdder creates a GroupAdder. A nil delay falls back to [SleepDelay].
func NewGroupAdder(client telegram.Client, logger *slog.Logger, delay DelayFunc) *GroupAdder {
	if delay == nil {
		delay = SleepDelay
	}
	return &GroupAdder{
		client: client,
		logger: logger,
		delay:  delay,
	}
}

/*
AddMembers adds resolved members to the group.

Members that did not resolve to a user id are never attempted; they are
reported first as [AddNotFound], relative order preserved, followed by the
attempted entries in input order.

Strategy by kind:
  - basic: hard cap of [constants.BasicGroupMemberCap] enforced before any
    remote call, then strictly sequential adds with a delay between calls
    (not after the last).
  - super: one batched call when the attempt set reaches
    [constants.BatchAddThreshold]. Batch success marks all as [AddSuccess];
    an already-member batch error marks all as [AddAlreadyMember]; any other
    batch error falls back to sequential adds so one bad member cannot sink
    the batch. Below the threshold, sequential from the start.

Cancellation stops issuing further add calls; members not yet attempted are
reported as [AddFailed] with the cancellation cause so the result still
covers every input entry.

Parameters:
  - ctx: carries cancellation and the request deadline.
  - sessionKey: the authenticated Telegram session to act under.
  - groupID: the target group.
  - kind: the group flavor, drives the strategy.
  - members: resolver output, order preserved.
  - pause: the delay between sequential calls, already clamped.

Returns:
  - []AddMemberResult: one per member.
  - error: only the basic-group capacity precondition; it fails the whole
    call before any remote activity.
*/
func (adder *GroupAdder) AddMembers(
	ctx context.Context,
	sessionKey string,
	groupID int64,
	kind telegram.GroupKind,
	members []ResolvedMember,
	pause time.Duration,
) ([]AddMemberResult, error) {
	// 1. Pre-filter: unresolvable members are reported, never attempted.
	results := make([]AddMemberResult, 0, len(members))
	var attemptable []ResolvedMember

	for _, member := range members {
		if member.Status != StatusResolved || member.UserID == nil {
			results = append(results, AddMemberResult{
				PhoneNumber: member.PhoneNumber,
				Name:        member.Name,
				Status:      AddNotFound,
				Error:       member.Error,
			})
			continue
		}
		attemptable = append(attemptable, member)
	}

	// 2. Capacity precondition, checked before any network call.
	if kind == telegram.GroupBasic && len(attemptable) > constants.BasicGroupMemberCap {
		return nil, apperr.Unprocessable(
			"Basic groups support at most 200 members. Upgrade to a supergroup or shorten the list",
		)
	}

	// 3. Batched path for large supergroup runs.
	if kind == telegram.GroupSuper && len(attemptable) >= constants.BatchAddThreshold {
		batched, ok := adder.addBatch(ctx, sessionKey, groupID, attemptable)
		if ok {
			return append(results, batched...), nil
		}
		adder.logger.Warn("batch_add_fallback",
			slog.Int64("group_id", groupID),
			slog.Int("member_count", len(attemptable)),
		)
	}

	return append(results, adder.addSequential(ctx, sessionKey, groupID, attemptable, pause)...), nil
}

// addBatch tries the single batched add call. The second return value is
// false when the caller should fall back to sequential adds.
func (adder *GroupAdder) addBatch(
	ctx context.Context,
	sessionKey string,
	groupID int64,
	members []ResolvedMember,
) ([]AddMemberResult, bool) {
	userIDs := make([]int64, len(members))
	for index, member := range members {
		userIDs[index] = *member.UserID
	}

	err := adder.client.AddGroupMembersBatch(ctx, sessionKey, groupID, userIDs)
	switch {
	case err == nil:
		return attemptResults(members, AddSuccess), true
	case telegram.IsAlreadyMember(err):
		// The protocol does not say which members tripped the error, so the
		// whole batch is classified as already present.
		return attemptResults(members, AddAlreadyMember), true
	default:
		return nil, false
	}
}

// addSequential issues one add call per member with a pause between calls.
func (adder *GroupAdder) addSequential(
	ctx context.Context,
	sessionKey string,
	groupID int64,
	members []ResolvedMember,
	pause time.Duration,
) []AddMemberResult {
	results := make([]AddMemberResult, 0, len(members))

	for index, member := range members {
		if index > 0 && ctx.Err() == nil {
			adder.delay(ctx, pause)
		}

		// Checked after the delay too: a cancellation landing mid-pause must
		// not issue one more call with a dead context.
		if ctx.Err() != nil {
			results = append(results, AddMemberResult{
				PhoneNumber: member.PhoneNumber,
				Name:        member.Name,
				UserID:      member.UserID,
				Status:      AddFailed,
				Error:       "Operation cancelled",
			})
			continue
		}

		result := AddMemberResult{
			PhoneNumber: member.PhoneNumber,
			Name:        member.Name,
			UserID:      member.UserID,
		}

		err := adder.client.AddGroupMember(ctx, sessionKey, groupID, *member.UserID)
		switch {
		case err == nil:
			result.Status = AddSuccess
		case telegram.IsAlreadyMember(err):
			result.Status = AddAlreadyMember
		default:
			result.Status = AddFailed
			result.Error = err.Error()
			adder.logger.Warn("group_add_failed",
				slog.Int64("group_id", groupID),
				slog.Int64("user_id", *member.UserID),
				slog.Any("error", err),
			)
		}

		results = append(results, result)
	}

	return results
}

func attemptResults(members []ResolvedMember, status AddStatus) []AddMemberResult {
	results := make([]AddMemberResult, len(members))
	for index, member := range members {
		results[index] = AddMemberResult{
			PhoneNumber: member.PhoneNumber,
			Name:        member.Name,
			UserID:      member.UserID,
			Status:      status,
		}
	}
	return results
}
