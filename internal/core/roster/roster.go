// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

/*
Package roster implements bulk group-membership reconciliation.

It takes an arbitrary phone-number list (free text, CSV upload, or
contact-picker selection), deduplicates it, resolves each phone to a remote
Telegram identity (importing into the address book where needed), adds the
resolved identities to a target group with a kind-dependent strategy, and
optionally reverses the import side-effect afterwards.

# Pipeline

	parsing -> resolving/importing -> adding -> cleanup (best effort) -> complete

Every stage produces a list keyed by normalized phone number that the next
stage enriches; result order mirrors input order so the dashboard can report
per-line progress and re-export failed rows.

# Concurrency

One pipeline run is a single logical task: all bridge calls are issued
strictly in sequence. The protocol enforces implicit flood limits and
concurrent identity creation for the same phone could race, so there is no
fan-out by design. Independent runs (different account, different group) share
no mutable state and may execute in parallel.
*/
package roster

import (
	"time"

	"github.com/vhlong/telegate/internal/platform/constants"
)

// # Parse Stage

// Candidate is one line/entry from user input, created once by the parser and
// immutable afterwards. Later stages wrap it in richer records.
type Candidate struct {
	// RawPhone is the phone exactly as supplied.
	RawPhone string `json:"raw_phone"`

	// PhoneNumber is the normalized international form, the dedup/join key
	// for the whole pipeline.
	PhoneNumber string `json:"phone_number"`

	// Name is the display name if supplied.
	Name string `json:"name,omitempty"`

	// LineNumber is the 1-based position in the source input, used for error
	// reporting. Contact-picker entries use 0, being not line-oriented.
	LineNumber int `json:"line_number"`

	IsValid         bool   `json:"is_valid"`
	ValidationError string `json:"validation_error,omitempty"`
}

// # Resolve Stage

// ResolveStatus classifies the outcome of identity resolution for one candidate.
type ResolveStatus string

const (
	// StatusResolved means a remote identity was found or freshly imported.
	StatusResolved ResolveStatus = "resolved"

	// StatusNotFound means the phone has no Telegram account.
	StatusNotFound ResolveStatus = "not_found"

	// StatusImportFailed means the batched import call itself failed; this is
	// a whole-batch outcome, not a per-entry one.
	StatusImportFailed ResolveStatus = "import_failed"
)

// ResolvedMember is a valid [Candidate] after identity resolution.
//
// Invariant: WasImported implies Status == StatusResolved implies UserID != nil.
type ResolvedMember struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name,omitempty"`

	// UserID is the remote identity identifier; nil if resolution failed.
	UserID *int64 `json:"user_id,omitempty"`

	Status ResolveStatus `json:"status"`

	// WasImported is true only if this run newly created the address-book
	// entry. Cleanup must never remove an identity that pre-existed the run.
	WasImported bool `json:"was_imported"`

	Error string `json:"error,omitempty"`
}

// # Add Stage

// AddStatus classifies the outcome of one group-add attempt.
type AddStatus string

const (
	AddSuccess       AddStatus = "success"
	AddAlreadyMember AddStatus = "already_member"
	AddFailed        AddStatus = "failed"
	AddNotFound      AddStatus = "not_found"
)

// AddMemberResult is the outcome of attempting to add one [ResolvedMember]
// to the group.
type AddMemberResult struct {
	PhoneNumber string    `json:"phone_number"`
	Name        string    `json:"name,omitempty"`
	UserID      *int64    `json:"user_id,omitempty"`
	Status      AddStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// BulkAddMembersResult is the run summary returned to the caller.
//
// Invariant: Successful + Failed + AlreadyMembers + NotFound == Total, where
// NotFound covers candidates that never reached an add attempt (no Telegram
// account, or the import batch failed).
type BulkAddMembersResult struct {
	Total          int `json:"total"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	AlreadyMembers int `json:"already_members"`
	NotFound       int `json:"not_found"`

	// Results preserves the stage ordering guarantees: unresolvable entries
	// first, attempted entries in input order.
	Results []AddMemberResult `json:"results"`

	// CleanedUp is the number of freshly-imported address-book entries
	// removed afterwards; nil when cleanup was disabled.
	CleanedUp *int `json:"cleaned_up,omitempty"`
}

// # Run Options

// Options carries the per-run configuration, passed explicitly into the
// pipeline. The pipeline never reaches into ambient or global state.
type Options struct {
	// DefaultCountryCode is the ITU calling code applied to local-form numbers.
	DefaultCountryCode string `json:"country_code"`

	// BulkAddDelay is the pause inserted between sequential add calls.
	BulkAddDelay time.Duration `json:"-"`

	// AutoCleanupContacts removes freshly-imported address-book entries once
	// the add stage has completed.
	AutoCleanupContacts bool `json:"auto_cleanup"`

	// StrictValidation enforces the E.164 digit window during parsing.
	StrictValidation bool `json:"strict"`
}

// Clamped returns a copy with the delay forced into the supported window.
//
// The delay exists to respect the protocol's implicit rate limits; values
// outside the window would either trip flood protection or waste minutes on
// large runs.
func (o Options) Clamped() Options {
	if o.BulkAddDelay < constants.MinBulkAddDelay {
		o.BulkAddDelay = constants.MinBulkAddDelay
	}
	if o.BulkAddDelay > constants.MaxBulkAddDelay {
		o.BulkAddDelay = constants.MaxBulkAddDelay
	}
	return o
}
