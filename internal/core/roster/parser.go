// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster

import (
	"path/filepath"
	"strings"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/pkg/phone"
	"github.com/vhlong/telegate/pkg/textutil"
)

// # File Gate

// allowedExtensions is the whitelist for member-list uploads.
var allowedExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

/*
ValidateFileName rejects uploads whose extension is not a supported
member-list format. The check is by extension only; content sniffing is the
parser's job.

Parameters:
  - name: the file name as supplied by the upload.

Returns:
  - error: an [apperr.AppError] with validation semantics, or nil.
*/
func ValidateFileName(name string) error {
	extension := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[extension] {
		return apperr.ValidationError("Unsupported file type. Please upload a .txt or .csv file")
	}
	return nil
}

// # Free Text

/*
ParseText splits free-form text into [Candidate] entries. Lines are split
first, then each line is split on commas, so both one-number-per-line and
comma-separated input work. Empty tokens are skipped. Every surviving token
becomes exactly one Candidate; unparseable phones yield an invalid Candidate
rather than being dropped, so the caller can report them.

Parameters:
  - text: the raw input.
  - countryCode: ITU calling code applied to local-form numbers.
  - strict: enforce the E.164 digit window.

Returns:
  - []Candidate: one entry per non-empty token, in input order.
*/
func ParseText(text, countryCode string, strict bool) []Candidate {
	var candidates []Candidate

	for lineIndex, line := range strings.Split(text, "\n") {
		for _, token := range strings.Split(line, ",") {
			raw := strings.TrimSpace(token)
			if raw == "" {
				continue
			}
			candidates = append(candidates, newCandidate(raw, "", lineIndex+1, countryCode, strict))
		}
	}

	return candidates
}

// # CSV

/*
ParseCSV parses "name,phone" rows into [Candidate] entries. A first line
containing "name" or "phone" (case-insensitive) is treated as a header and
skipped. Fields are quote-stripped. Rows with fewer than two fields become an
invalid Candidate so the row count is preserved for reporting.

Parameters:
  - data: the raw CSV content.
  - countryCode: ITU calling code applied to local-form numbers.
  - strict: enforce the E.164 digit window.

Returns:
  - []Candidate: one entry per non-empty data row, in input order.
*/
func ParseCSV(data, countryCode string, strict bool) []Candidate {
	var candidates []Candidate

	for lineIndex, line := range strings.Split(data, "\n") {
		row := strings.TrimSpace(line)
		if row == "" {
			continue
		}
		if lineIndex == 0 && isHeaderRow(row) {
			continue
		}

		fields := strings.Split(row, ",")
		if len(fields) < 2 {
			candidates = append(candidates, Candidate{
				RawPhone:        row,
				LineNumber:      lineIndex + 1,
				IsValid:         false,
				ValidationError: "Invalid CSV format",
			})
			continue
		}

		name := stripQuotes(fields[0])
		raw := stripQuotes(fields[1])
		candidates = append(candidates, newCandidate(raw, name, lineIndex+1, countryCode, strict))
	}

	return candidates
}

func isHeaderRow(row string) bool {
	lowered := strings.ToLower(row)
	return strings.Contains(lowered, "name") || strings.Contains(lowered, "phone")
}

func stripQuotes(field string) string {
	return strings.Trim(strings.TrimSpace(field), `"`)
}

// # Contact Picker

// PickedContact is one entry selected from the dashboard's contact picker.
type PickedContact struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name,omitempty"`
}

/*
FromContacts converts contact-picker selections into [Candidate] entries.
Picker entries come from an address book the user already sees, so they are
trusted: no validation is applied, only normalization to establish the join
key. LineNumber is 0 since the source is not line-oriented.

Parameters:
  - contacts: the selected entries.
  - countryCode: ITU calling code applied to local-form numbers.

Returns:
  - []Candidate: one entry per contact with a non-empty phone, in order.
*/
func FromContacts(contacts []PickedContact, countryCode string) []Candidate {
	var candidates []Candidate

	for _, contact := range contacts {
		raw := strings.TrimSpace(contact.PhoneNumber)
		if raw == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			RawPhone:    raw,
			PhoneNumber: phone.Normalize(raw, countryCode),
			Name:        textutil.CleanName(contact.Name),
			LineNumber:  0,
			IsValid:     true,
		})
	}

	return candidates
}

// # Deduplication

/*
RemoveDuplicates drops candidates whose normalized phone was already seen,
keeping the first occurrence and preserving order. Dedup runs before any
remote call so one phone never triggers two import or add attempts.

Candidates without a normalized phone (malformed rows) are kept as-is; they
never reach a remote call, and collapsing them would hide distinct bad rows
from the report.

Parameters:
  - candidates: the parsed entries.

Returns:
  - []Candidate: first occurrence per normalized phone, input order kept.
*/
func RemoveDuplicates(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.PhoneNumber != "" {
			if seen[candidate.PhoneNumber] {
				continue
			}
			seen[candidate.PhoneNumber] = true
		}
		unique = append(unique, candidate)
	}

	return unique
}

// newCandidate builds a Candidate from one raw token, normalizing the phone
// and recording a validation verdict instead of dropping bad input.
func newCandidate(raw, name string, lineNumber int, countryCode string, strict bool) Candidate {
	candidate := Candidate{
		RawPhone:   raw,
		Name:       textutil.CleanName(name),
		LineNumber: lineNumber,
	}

	normalized := phone.Normalize(raw, countryCode)
	candidate.PhoneNumber = normalized

	if err := phone.Validate(normalized, strict); err != nil {
		candidate.ValidationError = err.Error()
		return candidate
	}

	candidate.IsValid = true
	return candidate
}
