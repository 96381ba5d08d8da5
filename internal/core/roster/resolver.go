// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster

import (
	"context"
	"log/slog"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/telegram"
)

// # Identity Resolver

// Resolver maps normalized phone numbers to remote Telegram identities,
// importing into the session's address book when a phone is not yet known.
type Resolver struct {
	client telegram.Client
	logger *slog.Logger
}

// NewResolver creates a Resolver backed by the given protocol client.
func NewResolver(client telegram.Client, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger,
	}
}

/*
Resolve turns valid candidates into [ResolvedMember] records.

The address book is fetched once per run and used as a lookup table; every
candidate not found there goes into a single batched import call whose
response correlates with the request positionally. A nil slot in the response
means the phone has no Telegram account.

Completeness is guaranteed: every candidate yields exactly one
ResolvedMember, in input order. An import failure marks all imported-batch
entries as [StatusImportFailed] instead of failing the run, so candidates
that resolved from the address book still proceed to the add stage.

Parameters:
  - ctx: carries cancellation and the request deadline.
  - sessionKey: the authenticated Telegram session to act under.
  - candidates: valid, deduplicated candidates.

Returns:
  - []ResolvedMember: one per candidate, input order.
  - error: only if the address-book fetch fails; resolution cannot proceed
    without the lookup table and nothing has been mutated yet.
*/
func (resolver *Resolver) Resolve(
	ctx context.Context,
	sessionKey string,
	candidates []Candidate,
) ([]ResolvedMember, error) {
	if len(candidates) == 0 {
		return []ResolvedMember{}, nil
	}

	// 1. Fetch the address book once and index it by normalized phone.
	contacts, err := resolver.client.GetAddressBook(ctx, sessionKey)
	if err != nil {
		return nil, apperr.Upstream("Unable to fetch the Telegram address book", err)
	}

	known := make(map[string]telegram.Contact, len(contacts))
	for _, contact := range contacts {
		known[contact.PhoneNumber] = contact
	}

	// 2. Partition: already-known phones resolve immediately, the rest are
	// collected for one batched import.
	members := make([]ResolvedMember, len(candidates))
	var importEntries []telegram.ImportEntry
	var importIndexes []int

	for index, candidate := range candidates {
		if contact, ok := known[candidate.PhoneNumber]; ok {
			userID := contact.ID
			members[index] = ResolvedMember{
				PhoneNumber: candidate.PhoneNumber,
				Name:        pickName(candidate.Name, contact.DisplayName),
				UserID:      &userID,
				Status:      StatusResolved,
				WasImported: false,
			}
			continue
		}

		importEntries = append(importEntries, telegram.ImportEntry{
			PhoneNumber: candidate.PhoneNumber,
			DisplayName: candidate.Name,
		})
		importIndexes = append(importIndexes, index)
	}

	if len(importEntries) == 0 {
		return members, nil
	}

	// 3. One import call for the whole unknown set. Positional correlation:
	// slot i answers entry i, nil meaning the phone is not on the network.
	slots, err := resolver.client.ImportContacts(ctx, sessionKey, importEntries)
	if err != nil {
		resolver.logger.Error("contact_import_failed",
			slog.Int("batch_size", len(importEntries)),
			slog.Any("error", err),
		)
		// The remote message is carried through verbatim so the caller can
		// tell a flood wait from an auth failure.
		for _, index := range importIndexes {
			members[index] = ResolvedMember{
				PhoneNumber: candidates[index].PhoneNumber,
				Name:        candidates[index].Name,
				Status:      StatusImportFailed,
				Error:       err.Error(),
			}
		}
		return members, nil
	}

	for slot, index := range importIndexes {
		candidate := candidates[index]
		if slots[slot] == nil {
			members[index] = ResolvedMember{
				PhoneNumber: candidate.PhoneNumber,
				Name:        candidate.Name,
				Status:      StatusNotFound,
				Error:       "Phone number is not registered on Telegram",
			}
			continue
		}
		members[index] = ResolvedMember{
			PhoneNumber: candidate.PhoneNumber,
			Name:        candidate.Name,
			UserID:      slots[slot],
			Status:      StatusResolved,
			WasImported: true,
		}
	}

	return members, nil
}

func pickName(supplied, stored string) string {
	if supplied != "" {
		return supplied
	}
	return stored
}
