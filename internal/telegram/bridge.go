// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// BridgeClient implements [Client] against the MTProto bridge sidecar.
//
// # Transport
//
// Every operation is a JSON request to the bridge. A 2xx response carries the
// operation payload; any other status carries an error envelope whose text is
// surfaced verbatim as an [*RPCError]. Transport-level failures (connection
// refused, timeout) are returned as plain wrapped errors so callers can tell
// "the peer said no" apart from "the peer is unreachable".
type BridgeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBridgeClient constructs a bridge-backed [Client].
func NewBridgeClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *BridgeClient {
	return &BridgeClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// # Client Implementation

// GetAddressBook implements [Client].
func (client *BridgeClient) GetAddressBook(context context.Context, sessionKey string) ([]Contact, error) {
	var result struct {
		Contacts []Contact `json:"contacts"`
	}

	path := fmt.Sprintf("/sessions/%s/contacts", sessionKey)
	if err := client.call(context, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}

	return result.Contacts, nil
}

// ImportContacts implements [Client].
//
// The bridge mirrors the protocol's contacts.importContacts semantics: the
// returned slice always has len(entries) slots, positionally correlated.
func (client *BridgeClient) ImportContacts(context context.Context, sessionKey string, entries []ImportEntry) ([]*int64, error) {
	payload := struct {
		Contacts []ImportEntry `json:"contacts"`
	}{Contacts: entries}

	var result struct {
		UserIDs []*int64 `json:"user_ids"`
	}

	path := fmt.Sprintf("/sessions/%s/contacts/import", sessionKey)
	if err := client.call(context, http.MethodPost, path, payload, &result); err != nil {
		return nil, err
	}

	// Guard against a misbehaving bridge: positional correlation is the whole
	// contract of this call.
	if len(result.UserIDs) != len(entries) {
		return nil, fmt.Errorf("telegram: import response has %d slots for %d entries", len(result.UserIDs), len(entries))
	}

	return result.UserIDs, nil
}

// RemoveContacts implements [Client].
func (client *BridgeClient) RemoveContacts(context context.Context, sessionKey string, userIDs []int64) (int, error) {
	payload := struct {
		UserIDs []int64 `json:"user_ids"`
	}{UserIDs: userIDs}

	var result struct {
		Removed int `json:"removed"`
	}

	path := fmt.Sprintf("/sessions/%s/contacts/remove", sessionKey)
	if err := client.call(context, http.MethodPost, path, payload, &result); err != nil {
		return 0, err
	}

	return result.Removed, nil
}

// AddGroupMember implements [Client].
func (client *BridgeClient) AddGroupMember(context context.Context, sessionKey string, groupID, userID int64) error {
	payload := struct {
		UserID int64 `json:"user_id"`
	}{UserID: userID}

	path := fmt.Sprintf("/sessions/%s/groups/%d/members", sessionKey, groupID)
	return client.call(context, http.MethodPost, path, payload, nil)
}

// AddGroupMembersBatch implements [Client].
func (client *BridgeClient) AddGroupMembersBatch(context context.Context, sessionKey string, groupID int64, userIDs []int64) error {
	payload := struct {
		UserIDs []int64 `json:"user_ids"`
	}{UserIDs: userIDs}

	path := fmt.Sprintf("/sessions/%s/groups/%d/members/batch", sessionKey, groupID)
	return client.call(context, http.MethodPost, path, payload, nil)
}

// Ping checks that the bridge process is up. Used by the readiness probe.
func (client *BridgeClient) Ping(context context.Context) error {
	return client.call(context, http.MethodGet, "/healthz", nil, nil)
}

// # Transport Plumbing

/*
call issues one JSON request against the bridge and decodes the response.

Parameters:
  - context: context.Context
  - method: string (HTTP verb)
  - path: string (Bridge route, starting with '/')
  - payload: any (Request body, nil for bodyless calls)
  - result: any (Pointer decoded from a 2xx body, nil to discard)

Returns:
  - error: *RPCError for remote rejections, wrapped transport errors otherwise
*/
func (client *BridgeClient) call(context context.Context, method, path string, payload, result any) error {
	var body *bytes.Buffer

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("telegram: failed to encode request: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("telegram: failed to build request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if client.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+client.apiKey)
	}

	startTime := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("telegram: bridge unreachable: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	client.logger.Debug("bridge_call_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	// Remote rejection: surface the bridge's error text verbatim.
	if response.StatusCode < 200 || response.StatusCode > 299 {
		rpcError := &RPCError{Status: response.StatusCode}
		if err := json.NewDecoder(response.Body).Decode(rpcError); err != nil || rpcError.Message == "" {
			rpcError.Message = fmt.Sprintf("bridge returned status %d", response.StatusCode)
		}
		return rpcError
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return fmt.Errorf("telegram: failed to decode response: %w", err)
	}

	return nil
}
