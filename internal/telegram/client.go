// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package telegram defines the contract with the chat-protocol peer.

The actual MTProto client runs as a sidecar bridge process that owns the
Telegram sessions; this package exposes the typed operations the backend
consumes and a production [BridgeClient] that reaches the sidecar over HTTP.

# Core Responsibility

  - Contract: The [Client] interface consumed by the contact and roster domains.
  - Transport: [BridgeClient], a thin JSON-over-HTTP adapter.
  - Classification: Helpers for the error heuristics the protocol forces on us.

Everything protocol-specific (encryption, flood-wait retries, session
persistence) lives on the bridge side and is out of scope here.
*/
package telegram

import (
	"context"
	"strings"
)

// # Wire Types

// Contact is one address-book entry of a linked Telegram account.
type Contact struct {
	// ID is the remote user identifier on the Telegram network.
	ID int64 `json:"id"`

	// PhoneNumber is the contact's phone in international form.
	PhoneNumber string `json:"phone_number"`

	// DisplayName is the name stored in the address book, may be empty.
	DisplayName string `json:"display_name"`
}

// ImportEntry is one contact to be created in the address book.
type ImportEntry struct {
	PhoneNumber string `json:"phone_number"`
	DisplayName string `json:"display_name"`
}

// GroupKind mirrors the three chat flavors the protocol distinguishes.
type GroupKind string

const (
	// GroupBasic is a legacy group, capped at 200 members, no batch primitive.
	GroupBasic GroupKind = "basic"

	// GroupSuper is a supergroup/channel, supports batched member additions.
	GroupSuper GroupKind = "super"

	// GroupSecret is a secret chat. It has exactly one pre-existing
	// counterpart and can never accept additions.
	GroupSecret GroupKind = "secret"
)

// IsValid reports whether the kind is one of the known chat flavors.
func (k GroupKind) IsValid() bool {
	switch k {
	case GroupBasic, GroupSuper, GroupSecret:
		return true
	}
	return false
}

// # Peer Contract

// Client is the set of chat-protocol operations the backend consumes.
//
// All operations address a linked account by its bridge session key and fail
// with a textual error. Implementations must preserve the remote error text
// verbatim: the roster pipeline classifies outcomes by message content.
type Client interface {

	/*
		GetAddressBook returns the full contact listing of the account.

		Parameters:
		  - context: context.Context
		  - sessionKey: string (Bridge session reference)

		Returns:
		  - []Contact: Every saved contact, order unspecified
		  - error: Transport or remote failures
	*/
	GetAddressBook(context context.Context, sessionKey string) ([]Contact, error)

	/*
		ImportContacts creates address-book entries for the given phones.

		Description: The response is positionally correlated with the request:
		slot i holds the remote identifier for entry i, or nil when the phone
		has no Telegram account. The response is NOT keyed by phone number.

		Parameters:
		  - context: context.Context
		  - sessionKey: string
		  - entries: []ImportEntry (Order is significant)

		Returns:
		  - []*int64: One slot per entry, nil = not on the network
		  - error: Whole-batch transport or remote failures
	*/
	ImportContacts(context context.Context, sessionKey string, entries []ImportEntry) ([]*int64, error)

	/*
		RemoveContacts deletes address-book entries by remote identifier.

		Parameters:
		  - context: context.Context
		  - sessionKey: string
		  - userIDs: []int64

		Returns:
		  - int: Number of entries actually removed
		  - error: Transport or remote failures
	*/
	RemoveContacts(context context.Context, sessionKey string, userIDs []int64) (int, error)

	/*
		AddGroupMember adds a single user to a group.

		Parameters:
		  - context: context.Context
		  - sessionKey: string
		  - groupID: int64 (Remote chat identifier)
		  - userID: int64

		Returns:
		  - error: Remote failure with the protocol's message preserved
	*/
	AddGroupMember(context context.Context, sessionKey string, groupID, userID int64) error

	/*
		AddGroupMembersBatch adds several users to a supergroup in one call.

		Description: The protocol reports batch failures as a single message
		with no per-member detail; callers needing per-member outcomes must
		fall back to [AddGroupMember].

		Parameters:
		  - context: context.Context
		  - sessionKey: string
		  - groupID: int64
		  - userIDs: []int64

		Returns:
		  - error: Remote failure with the protocol's message preserved
	*/
	AddGroupMembersBatch(context context.Context, sessionKey string, groupID int64, userIDs []int64) error
}

// # Error Classification

// RPCError is a remote failure reported by the bridge.
//
// Message carries the protocol error text (e.g. "USER_ALREADY_IN_CHAT")
// verbatim; Status is the bridge's HTTP status for the call.
type RPCError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *RPCError) Error() string { return e.Message }

// IsAlreadyMember reports whether err looks like the protocol's
// "user is already a participant" family of failures.
//
// The protocol exposes no structured code for this case, so classification is
// a case-insensitive substring match on "already". Known limitation: wording
// changes on the remote side would break this heuristic.
func IsAlreadyMember(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "already")
}
