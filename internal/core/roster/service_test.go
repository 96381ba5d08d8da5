// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/core/roster"
	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/telegram"
)

type stubRecorder struct {
	records []roster.BulkAddRecord
	err     error
}

func (stub *stubRecorder) RecordBulkAdd(_ context.Context, record roster.BulkAddRecord) error {
	stub.records = append(stub.records, record)
	return stub.err
}

func noDelay(context.Context, time.Duration) {}

func baseInput(candidates []roster.Candidate) roster.BulkAddInput {
	return roster.BulkAddInput{
		SessionKey: "session",
		UserID:     "user-1",
		AccountID:  "account-1",
		GroupID:    42,
		GroupKind:  telegram.GroupBasic,
		Candidates: candidates,
		Options: roster.Options{
			DefaultCountryCode:  "84",
			BulkAddDelay:        time.Second,
			AutoCleanupContacts: true,
		},
	}
}

func TestService_ProcessBulkAdd(t *testing.T) {
	t.Run("end to end with import and cleanup", func(t *testing.T) {
		// One phone already in the address book, one freshly imported, one
		// not on the network at all.
		candidates := roster.ParseText("0911111111\n0922222222\n0933333333", "84", false)

		stub := &stubClient{
			contacts:    []telegram.Contact{{ID: 100, PhoneNumber: "+84911111111"}},
			importSlots: []*int64{ptr(200), nil},
		}
		recorder := &stubRecorder{}
		service := roster.NewService(stub, recorder, discardLogger(), noDelay)

		result, err := service.ProcessBulkAdd(context.Background(), baseInput(candidates))

		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Successful)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 0, result.AlreadyMembers)
		assert.Equal(t, 1, result.NotFound)
		assert.Equal(t, result.Total,
			result.Successful+result.Failed+result.AlreadyMembers+result.NotFound)

		// Cleanup removed only the freshly imported identity.
		require.NotNil(t, result.CleanedUp)
		assert.Equal(t, 1, *result.CleanedUp)
		require.Len(t, stub.removed, 1)
		assert.Equal(t, []int64{200}, stub.removed[0])

		// The run was recorded once with the final summary.
		require.Len(t, recorder.records, 1)
		assert.Equal(t, "account-1", recorder.records[0].AccountID)
		assert.Equal(t, 3, recorder.records[0].Result.Total)
	})

	t.Run("duplicates collapse before any remote call", func(t *testing.T) {
		candidates := roster.ParseText("0911111111\n+84911111111", "84", false)

		stub := &stubClient{importSlots: []*int64{ptr(100)}}
		service := roster.NewService(stub, nil, discardLogger(), noDelay)

		result, err := service.ProcessBulkAdd(context.Background(), baseInput(candidates))

		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		require.Len(t, stub.imported, 1)
		assert.Len(t, stub.imported[0], 1)
		assert.Len(t, stub.addCalls, 1)
	})

	t.Run("secret group rejected before any call", func(t *testing.T) {
		candidates := roster.ParseText("0911111111", "84", false)
		input := baseInput(candidates)
		input.GroupKind = telegram.GroupSecret

		stub := &stubClient{}
		service := roster.NewService(stub, nil, discardLogger(), noDelay)

		result, err := service.ProcessBulkAdd(context.Background(), input)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Empty(t, stub.imported)
		assert.Empty(t, stub.addCalls)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 422, appError.HTTPStatus)
	})

	t.Run("no valid candidates is a validation error", func(t *testing.T) {
		candidates := roster.ParseText("garbage\nmore-garbage", "84", false)

		stub := &stubClient{}
		service := roster.NewService(stub, nil, discardLogger(), noDelay)

		_, err := service.ProcessBulkAdd(context.Background(), baseInput(candidates))

		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})

	t.Run("cleanup disabled leaves imports in place", func(t *testing.T) {
		candidates := roster.ParseText("0922222222", "84", false)
		input := baseInput(candidates)
		input.Options.AutoCleanupContacts = false

		stub := &stubClient{importSlots: []*int64{ptr(200)}}
		service := roster.NewService(stub, nil, discardLogger(), noDelay)

		result, err := service.ProcessBulkAdd(context.Background(), input)

		require.NoError(t, err)
		assert.Nil(t, result.CleanedUp)
		assert.Empty(t, stub.removed)
	})

	t.Run("delay below the floor is clamped", func(t *testing.T) {
		candidates := roster.ParseText("0911111111\n0922222222", "84", false)
		input := baseInput(candidates)
		input.Options.BulkAddDelay = 10 * time.Millisecond
		input.Options.AutoCleanupContacts = false

		var delays []time.Duration
		stub := &stubClient{importSlots: []*int64{ptr(1), ptr(2)}}
		service := roster.NewService(stub, nil, discardLogger(),
			func(_ context.Context, d time.Duration) {
				delays = append(delays, d)
			})

		_, err := service.ProcessBulkAdd(context.Background(), input)

		require.NoError(t, err)
		require.Len(t, delays, 1)
		assert.Equal(t, time.Second, delays[0])
	})

	t.Run("recorder failure does not fail the run", func(t *testing.T) {
		candidates := roster.ParseText("0911111111", "84", false)

		stub := &stubClient{importSlots: []*int64{ptr(1)}}
		recorder := &stubRecorder{err: assert.AnError}
		service := roster.NewService(stub, recorder, discardLogger(), noDelay)

		result, err := service.ProcessBulkAdd(context.Background(), baseInput(candidates))

		require.NoError(t, err)
		assert.Equal(t, 1, result.Successful)
	})
}
