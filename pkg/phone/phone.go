// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

// Package phone canonicalizes raw phone-number strings into a comparable
// international form.
//
// # Usage
//
// The normalized form (`+<countrycode><digits>`) is the join key for the whole
// bulk-add pipeline: deduplication, address-book matching, and result
// correlation all compare normalized values. Normalization and validation are
// deliberately separate steps: normalization never fails, while validation
// reports why a number is unusable.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

const (
	// minDigits and maxDigits bound the national-significant-number length
	// accepted by the Telegram network (E.164 minus edge cases).
	minDigits = 10
	maxDigits = 15
)

var (
	// digitsOnly matches a fully-normalized international number.
	digitsOnly = regexp.MustCompile(`^\+[0-9]+$`)

	// stripper removes formatting noise people paste from contact lists.
	stripper = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "", ".", "")
)

// Validation failure modes. The parser copies these messages verbatim onto
// invalid candidates so the UI can show them per line.
var (
	ErrEmpty     = errors.New("Phone number is empty")
	ErrTooShort  = errors.New("Phone number is too short")
	ErrTooLong   = errors.New("Phone number is too long")
	ErrMalformed = errors.New("Phone number contains invalid characters")
)

// Normalize converts a raw phone string into international form.
//
// # Rules
//
//  1. Whitespace, hyphens, dots, and parentheses are stripped.
//  2. A value already prefixed with '+' is returned unchanged.
//  3. A leading '0' (local dialing form) is replaced by '+<countryCode>'.
//  4. Digits already starting with the country code only gain a '+'.
//  5. Anything else is prefixed with '+<countryCode>'.
//
// Normalize is pure and never fails; malformed input is caught by [Validate].
// For any valid normalized number p, Normalize(p, cc) == p.
func Normalize(raw, defaultCountryCode string) string {
	cleaned := stripper.Replace(strings.TrimSpace(raw))

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}

	if strings.HasPrefix(cleaned, "0") {
		return "+" + defaultCountryCode + cleaned[1:]
	}

	if strings.HasPrefix(cleaned, defaultCountryCode) {
		return "+" + cleaned
	}

	return "+" + defaultCountryCode + cleaned
}

// Validate checks a normalized phone number.
//
// # Modes
//
// In strict mode the digit count must fall within the E.164 window
// ([minDigits]–[maxDigits]). In lenient mode only the shape is checked:
// a '+' followed exclusively by digits. Lenient mode exists for markets
// with short legacy number plans.
func Validate(normalized string, strict bool) error {
	if normalized == "" || normalized == "+" {
		return ErrEmpty
	}

	if !digitsOnly.MatchString(normalized) {
		return ErrMalformed
	}

	if !strict {
		return nil
	}

	digits := len(normalized) - 1 // exclude the '+'
	if digits < minDigits {
		return ErrTooShort
	}
	if digits > maxDigits {
		return ErrTooLong
	}

	return nil
}

// IsValid reports whether the normalized number passes [Validate] in the
// given mode.
func IsValid(normalized string, strict bool) bool {
	return Validate(normalized, strict) == nil
}
