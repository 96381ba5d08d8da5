// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

// Package textutil normalizes display names before they cross the wire.
//
// # Usage
//
// Contact names pasted from spreadsheets or exported address books often carry
// decomposed Unicode sequences and stray control characters. The Telegram
// network compares names byte-for-byte, so everything sent through the bridge
// is normalized to NFC first.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanName canonicalizes a contact display name.
//
// It NFC-normalizes the string, strips control characters, and collapses
// surrounding whitespace. An empty result is returned as-is; callers decide
// whether a nameless contact is acceptable.
func CleanName(name string) string {
	normalized := norm.NFC.String(name)

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normalized)

	return strings.TrimSpace(cleaned)
}
