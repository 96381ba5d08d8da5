// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/core/roster"
	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/telegram"
)

func resolvedMembers(userIDs ...int64) []roster.ResolvedMember {
	members := make([]roster.ResolvedMember, len(userIDs))
	for index, userID := range userIDs {
		id := userID
		members[index] = roster.ResolvedMember{
			PhoneNumber: "+8491000000" + string(rune('0'+index)),
			UserID:      &id,
			Status:      roster.StatusResolved,
		}
	}
	return members
}

func TestGroupAdder_Basic(t *testing.T) {
	t.Run("sequential adds with delay between calls", func(t *testing.T) {
		stub := &stubClient{}
		var delays []time.Duration
		adder := roster.NewGroupAdder(stub, discardLogger(), func(_ context.Context, d time.Duration) {
			delays = append(delays, d)
		})

		results, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupBasic,
			resolvedMembers(1, 2, 3), 1500*time.Millisecond,
		)

		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, result := range results {
			assert.Equal(t, roster.AddSuccess, result.Status)
		}
		assert.Equal(t, []int64{1, 2, 3}, stub.addCalls)

		// Delay between calls, never after the last one.
		require.Len(t, delays, 2)
		assert.Equal(t, 1500*time.Millisecond, delays[0])
		assert.Empty(t, stub.batchCalls)
	})

	t.Run("capacity exceeded fails before any call", func(t *testing.T) {
		stub := &stubClient{}
		adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

		userIDs := make([]int64, 201)
		for index := range userIDs {
			userIDs[index] = int64(index + 1)
		}

		results, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupBasic,
			resolvedMembers(userIDs...), time.Second,
		)

		require.Error(t, err)
		assert.Nil(t, results)
		assert.Empty(t, stub.addCalls)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 422, appError.HTTPStatus)
	})

	t.Run("already member classified without failing the run", func(t *testing.T) {
		stub := &stubClient{addErrs: map[int64]error{
			2: &telegram.RPCError{Status: 400, Message: "USER_ALREADY_PARTICIPANT"},
			3: errors.New("PEER_FLOOD"),
		}}
		adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

		results, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupBasic,
			resolvedMembers(1, 2, 3), time.Second,
		)

		require.NoError(t, err)
		assert.Equal(t, roster.AddSuccess, results[0].Status)
		assert.Equal(t, roster.AddAlreadyMember, results[1].Status)
		assert.Equal(t, roster.AddFailed, results[2].Status)
		assert.Equal(t, "PEER_FLOOD", results[2].Error)
	})
}

func TestGroupAdder_Super(t *testing.T) {
	tenMembers := func() []roster.ResolvedMember {
		userIDs := make([]int64, 10)
		for index := range userIDs {
			userIDs[index] = int64(index + 1)
		}
		return resolvedMembers(userIDs...)
	}

	t.Run("batch success marks everyone", func(t *testing.T) {
		stub := &stubClient{}
		adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

		results, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupSuper,
			tenMembers(), time.Second,
		)

		require.NoError(t, err)
		require.Len(t, results, 10)
		for _, result := range results {
			assert.Equal(t, roster.AddSuccess, result.Status)
		}
		require.Len(t, stub.batchCalls, 1)
		assert.Empty(t, stub.addCalls)
	})

	t.Run("batch already-member marks everyone", func(t *testing.T) {
		stub := &stubClient{
			batchErr: &telegram.RPCError{Status: 400, Message: "USER_ALREADY_PARTICIPANT"},
		}
		adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

		results, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupSuper,
			tenMembers(), time.Second,
		)

		require.NoError(t, err)
		for _, result := range results {
			assert.Equal(t, roster.AddAlreadyMember, result.Status)
		}
		assert.Empty(t, stub.addCalls)
	})

	t.Run("batch failure falls back to sequential", func(t *testing.T) {
		stub := &stubClient{
			batchErr: errors.New("CHAT_WRITE_FORBIDDEN"),
			addErrs:  map[int64]error{5: errors.New("USER_PRIVACY_RESTRICTED")},
		}
		adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

		results, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupSuper,
			tenMembers(), time.Second,
		)

		require.NoError(t, err)
		require.Len(t, stub.batchCalls, 1)
		require.Len(t, stub.addCalls, 10)

		failedCount := 0
		for _, result := range results {
			if result.Status == roster.AddFailed {
				failedCount++
			}
		}
		assert.Equal(t, 1, failedCount)
	})

	t.Run("below threshold goes sequential from the start", func(t *testing.T) {
		stub := &stubClient{}
		adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

		_, err := adder.AddMembers(
			context.Background(), "session", 42, telegram.GroupSuper,
			resolvedMembers(1, 2, 3), time.Second,
		)

		require.NoError(t, err)
		assert.Empty(t, stub.batchCalls)
		assert.Equal(t, []int64{1, 2, 3}, stub.addCalls)
	})
}

func TestGroupAdder_Prefilter(t *testing.T) {
	members := []roster.ResolvedMember{
		{PhoneNumber: "+84911111111", UserID: ptr(1), Status: roster.StatusResolved},
		{PhoneNumber: "+84922222222", Status: roster.StatusNotFound, Error: "Phone number is not registered on Telegram"},
		{PhoneNumber: "+84933333333", UserID: ptr(3), Status: roster.StatusResolved},
		{PhoneNumber: "+84944444444", Status: roster.StatusImportFailed, Error: "FLOOD_WAIT_7"},
	}

	stub := &stubClient{}
	adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {})

	results, err := adder.AddMembers(
		context.Background(), "session", 42, telegram.GroupBasic, members, time.Second,
	)

	require.NoError(t, err)
	require.Len(t, results, 4)

	// Unattemptable entries come first, order preserved, then attempts in order.
	assert.Equal(t, roster.AddNotFound, results[0].Status)
	assert.Equal(t, "+84922222222", results[0].PhoneNumber)
	assert.Equal(t, roster.AddNotFound, results[1].Status)
	assert.Equal(t, "+84944444444", results[1].PhoneNumber)
	assert.Equal(t, "+84911111111", results[2].PhoneNumber)
	assert.Equal(t, "+84933333333", results[3].PhoneNumber)

	assert.Equal(t, []int64{1, 3}, stub.addCalls)
}

func TestGroupAdder_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	stub := &stubClient{}
	callCount := 0
	adder := roster.NewGroupAdder(stub, discardLogger(), func(context.Context, time.Duration) {
		callCount++
		if callCount == 2 {
			cancel()
		}
	})

	results, err := adder.AddMembers(
		ctx, "session", 42, telegram.GroupBasic, resolvedMembers(1, 2, 3, 4), time.Second,
	)

	require.NoError(t, err)
	require.Len(t, results, 4)

	// The cancellation lands inside the second delay, so no further add call
	// is issued; the remaining members are still reported.
	assert.Equal(t, []int64{1, 2}, stub.addCalls)
	assert.Equal(t, roster.AddFailed, results[2].Status)
	assert.Equal(t, "Operation cancelled", results[2].Error)
	assert.Equal(t, roster.AddFailed, results[3].Status)
	assert.Equal(t, "Operation cancelled", results[3].Error)

	// The delay itself is not re-entered once the context is dead.
	assert.Equal(t, 2, callCount)
}
