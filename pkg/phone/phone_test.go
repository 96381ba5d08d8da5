// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/pkg/phone"
)

/*
TestNormalize covers every prefix rule of the canonical form.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		countryCode string
		want        string
	}{
		{"already_international", "+84912345678", "84", "+84912345678"},
		{"local_zero_prefix", "0987654321", "84", "+84987654321"},
		{"bare_country_code", "84912345678", "84", "+84912345678"},
		{"no_prefix_at_all", "912345678", "84", "+84912345678"},
		{"formatting_noise", " (09) 12-34.56 78 ", "84", "+84912345678"},
		{"plus_with_spaces", "+84 912 345 678", "84", "+84912345678"},
		{"other_country_code", "0171234567", "49", "+49171234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phone.Normalize(tt.raw, tt.countryCode))
		})
	}
}

/*
TestNormalize_Idempotent verifies Normalize(p, cc) == p for valid normalized p.
*/
func TestNormalize_Idempotent(t *testing.T) {
	valid := []string{"+84912345678", "+14155550100", "+4915112345678"}

	for _, p := range valid {
		assert.Equal(t, p, phone.Normalize(p, "84"))
		assert.Equal(t, p, phone.Normalize(phone.Normalize(p, "84"), "84"))
	}
}

/*
TestValidate exercises the strict E.164 window and the failure taxonomy.
*/
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		strict  bool
		wantErr error
	}{
		{"valid_strict", "+84912345678", true, nil},
		{"empty", "", true, phone.ErrEmpty},
		{"lone_plus", "+", true, phone.ErrEmpty},
		{"letters", "+84abc123", true, phone.ErrMalformed},
		{"missing_plus", "84912345678", true, phone.ErrMalformed},
		{"too_short", "+84123", true, phone.ErrTooShort},
		{"too_long", "+8412345678901234", true, phone.ErrTooLong},
		{"short_but_lenient", "+84123", false, nil},
		{"malformed_still_fails_lenient", "bad", false, phone.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := phone.Validate(tt.input, tt.strict)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, phone.IsValid(tt.input, tt.strict))
			} else {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, phone.IsValid(tt.input, tt.strict))
			}
		})
	}
}
