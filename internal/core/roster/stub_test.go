// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster_test

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/telegram"
)

// stubClient is a scripted telegram.Client that records every call so tests
// can assert on call order and payloads.
type stubClient struct {
	contacts    []telegram.Contact
	contactsErr error

	importSlots []*int64
	importErr   error
	imported    [][]telegram.ImportEntry

	removeErr   error
	removed     [][]int64
	removeCount int

	addErrs  map[int64]error
	addCalls []int64

	batchErr   error
	batchCalls [][]int64
}

func (stub *stubClient) GetAddressBook(_ context.Context, _ string) ([]telegram.Contact, error) {
	if stub.contactsErr != nil {
		return nil, stub.contactsErr
	}
	return stub.contacts, nil
}

func (stub *stubClient) ImportContacts(
	_ context.Context, _ string, entries []telegram.ImportEntry,
) ([]*int64, error) {
	stub.imported = append(stub.imported, entries)
	if stub.importErr != nil {
		return nil, stub.importErr
	}
	return stub.importSlots, nil
}

func (stub *stubClient) RemoveContacts(_ context.Context, _ string, userIDs []int64) (int, error) {
	stub.removed = append(stub.removed, userIDs)
	if stub.removeErr != nil {
		return 0, stub.removeErr
	}
	if stub.removeCount > 0 {
		return stub.removeCount, nil
	}
	return len(userIDs), nil
}

func (stub *stubClient) AddGroupMember(_ context.Context, _ string, _, userID int64) error {
	stub.addCalls = append(stub.addCalls, userID)
	if err, ok := stub.addErrs[userID]; ok {
		return err
	}
	return nil
}

func (stub *stubClient) AddGroupMembersBatch(
	_ context.Context, _ string, _ int64, userIDs []int64,
) error {
	stub.batchCalls = append(stub.batchCalls, userIDs)
	return stub.batchErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func ptr(value int64) *int64 {
	return &value
}
