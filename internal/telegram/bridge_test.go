// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package telegram_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/telegram"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *telegram.BridgeClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	return telegram.NewBridgeClient(server.URL, "test-key", 5*time.Second, logger)
}

/*
TestBridge_GetAddressBook verifies route, auth header, and decoding.
*/
func TestBridge_GetAddressBook(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "/sessions/sess-1/contacts", request.URL.Path)
		assert.Equal(t, "Bearer test-key", request.Header.Get("Authorization"))

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"contacts": []map[string]any{
				{"id": 111, "phone_number": "+84912345678", "display_name": "Alice"},
				{"id": 222, "phone_number": "+84987654321", "display_name": "Bob"},
			},
		})
	})

	contacts, err := client.GetAddressBook(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, int64(111), contacts[0].ID)
	assert.Equal(t, "+84912345678", contacts[0].PhoneNumber)
}

/*
TestBridge_ImportContacts_PositionalCorrelation verifies the slot count guard.
*/
func TestBridge_ImportContacts_PositionalCorrelation(t *testing.T) {
	entries := []telegram.ImportEntry{
		{PhoneNumber: "+84911111111", DisplayName: "One"},
		{PhoneNumber: "+84922222222", DisplayName: "Two"},
	}

	t.Run("correlated_response", func(t *testing.T) {
		client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/sessions/sess-1/contacts/import", request.URL.Path)

			// Second phone is not on the network: null slot, same position.
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"user_ids": []any{int64(555), nil},
			})
		})

		ids, err := client.ImportContacts(context.Background(), "sess-1", entries)
		require.NoError(t, err)
		require.Len(t, ids, 2)
		require.NotNil(t, ids[0])
		assert.Equal(t, int64(555), *ids[0])
		assert.Nil(t, ids[1])
	})

	t.Run("slot_count_mismatch_rejected", func(t *testing.T) {
		client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"user_ids": []any{int64(555)},
			})
		})

		_, err := client.ImportContacts(context.Background(), "sess-1", entries)
		require.Error(t, err)
	})
}

/*
TestBridge_RemoveContacts verifies the removal count round-trip.
*/
func TestBridge_RemoveContacts(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		var payload struct {
			UserIDs []int64 `json:"user_ids"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, []int64{5, 7}, payload.UserIDs)

		_ = json.NewEncoder(writer).Encode(map[string]int{"removed": 2})
	})

	removed, err := client.RemoveContacts(context.Background(), "sess-1", []int64{5, 7})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}

/*
TestBridge_RemoteError verifies that bridge rejections become RPCErrors with
the protocol message preserved verbatim.
*/
func TestBridge_RemoteError(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(writer).Encode(map[string]string{"error": "USER_ALREADY_IN_CHAT"})
	})

	err := client.AddGroupMember(context.Background(), "sess-1", 100, 555)
	require.Error(t, err)

	var rpcErr *telegram.RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, "USER_ALREADY_IN_CHAT", rpcErr.Message)
	assert.Equal(t, http.StatusBadRequest, rpcErr.Status)
}

/*
TestIsAlreadyMember covers the substring heuristic for the "already" family.
*/
func TestIsAlreadyMember(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"protocol_constant", &telegram.RPCError{Message: "USER_ALREADY_IN_CHAT"}, true},
		{"lowercase_wording", errors.New("user is already a participant"), true},
		{"unrelated_error", errors.New("PEER_FLOOD"), false},
		{"nil_error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, telegram.IsAlreadyMember(tt.err))
		})
	}
}
