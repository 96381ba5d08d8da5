// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhlong/telegate/internal/core/roster"
)

func TestParseText(t *testing.T) {
	t.Run("one number per line", func(t *testing.T) {
		candidates := roster.ParseText("+84912345678\n0987654321", "84", false)

		require.Len(t, candidates, 2)
		assert.Equal(t, "+84912345678", candidates[0].PhoneNumber)
		assert.True(t, candidates[0].IsValid)
		assert.Equal(t, 1, candidates[0].LineNumber)
		assert.Equal(t, "+84987654321", candidates[1].PhoneNumber)
		assert.True(t, candidates[1].IsValid)
		assert.Equal(t, 2, candidates[1].LineNumber)
	})

	t.Run("comma separated within a line", func(t *testing.T) {
		candidates := roster.ParseText("0912345678, 0987654321", "84", false)

		require.Len(t, candidates, 2)
		assert.Equal(t, "+84912345678", candidates[0].PhoneNumber)
		assert.Equal(t, "+84987654321", candidates[1].PhoneNumber)
		assert.Equal(t, 1, candidates[1].LineNumber)
	})

	t.Run("blank lines and empty tokens are skipped", func(t *testing.T) {
		candidates := roster.ParseText("\n0912345678\n\n , \n", "84", false)

		require.Len(t, candidates, 1)
		assert.Equal(t, 2, candidates[0].LineNumber)
	})

	t.Run("unparseable phone yields invalid candidate", func(t *testing.T) {
		candidates := roster.ParseText("not-a-phone", "84", false)

		require.Len(t, candidates, 1)
		assert.False(t, candidates[0].IsValid)
		assert.NotEmpty(t, candidates[0].ValidationError)
		assert.Equal(t, "not-a-phone", candidates[0].RawPhone)
	})

	t.Run("strict mode enforces digit window", func(t *testing.T) {
		lenient := roster.ParseText("+123456", "84", false)
		strict := roster.ParseText("+123456", "84", true)

		require.Len(t, lenient, 1)
		require.Len(t, strict, 1)
		assert.True(t, lenient[0].IsValid)
		assert.False(t, strict[0].IsValid)
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("header row is skipped", func(t *testing.T) {
		data := "Name,Phone\nAlice,+84912345678\nBob,0987654321"

		candidates := roster.ParseCSV(data, "84", false)

		require.Len(t, candidates, 2)
		assert.Equal(t, "Alice", candidates[0].Name)
		assert.Equal(t, "+84912345678", candidates[0].PhoneNumber)
		assert.Equal(t, 2, candidates[0].LineNumber)
		assert.Equal(t, "Bob", candidates[1].Name)
		assert.Equal(t, "+84987654321", candidates[1].PhoneNumber)
	})

	t.Run("no header when first row is data", func(t *testing.T) {
		candidates := roster.ParseCSV("Alice,+84912345678", "84", false)

		require.Len(t, candidates, 1)
		assert.Equal(t, 1, candidates[0].LineNumber)
	})

	t.Run("quoted fields are stripped", func(t *testing.T) {
		candidates := roster.ParseCSV(`"Alice","+84912345678"`, "84", false)

		require.Len(t, candidates, 1)
		assert.Equal(t, "Alice", candidates[0].Name)
		assert.Equal(t, "+84912345678", candidates[0].PhoneNumber)
	})

	t.Run("short row becomes invalid candidate", func(t *testing.T) {
		candidates := roster.ParseCSV("Name,Phone\njustonefield", "84", false)

		require.Len(t, candidates, 1)
		assert.False(t, candidates[0].IsValid)
		assert.Equal(t, "Invalid CSV format", candidates[0].ValidationError)
	})
}

func TestFromContacts(t *testing.T) {
	contacts := []roster.PickedContact{
		{PhoneNumber: "+84912345678", Name: "Alice"},
		{PhoneNumber: "0987654321", Name: "Bob"},
		{PhoneNumber: "", Name: "Skipped"},
	}

	candidates := roster.FromContacts(contacts, "84")

	require.Len(t, candidates, 2)
	for _, candidate := range candidates {
		assert.True(t, candidate.IsValid)
		assert.Equal(t, 0, candidate.LineNumber)
	}
	assert.Equal(t, "+84987654321", candidates[1].PhoneNumber)
}

func TestRemoveDuplicates(t *testing.T) {
	t.Run("keeps the first occurrence per normalized phone", func(t *testing.T) {
		candidates := roster.ParseText("0912345678\n+84912345678\n0987654321", "84", false)

		unique := roster.RemoveDuplicates(candidates)

		require.Len(t, unique, 2)
		assert.Equal(t, "+84912345678", unique[0].PhoneNumber)
		assert.Equal(t, 1, unique[0].LineNumber)
		assert.Equal(t, "+84987654321", unique[1].PhoneNumber)
	})

	t.Run("malformed rows without a phone never collapse", func(t *testing.T) {
		candidates := roster.ParseCSV("Name,Phone\nbroken-row-one\nbroken-row-two\nAlice,0912345678", "84", false)

		unique := roster.RemoveDuplicates(candidates)

		require.Len(t, unique, 3)
		assert.Equal(t, "broken-row-one", unique[0].RawPhone)
		assert.Equal(t, "broken-row-two", unique[1].RawPhone)
		assert.False(t, unique[0].IsValid)
		assert.False(t, unique[1].IsValid)
		assert.Equal(t, "+84912345678", unique[2].PhoneNumber)
	})
}

func TestValidateFileName(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		wantErr  bool
	}{
		{name: "txt allowed", fileName: "members.txt", wantErr: false},
		{name: "csv allowed", fileName: "Members.CSV", wantErr: false},
		{name: "xlsx rejected", fileName: "members.xlsx", wantErr: true},
		{name: "no extension rejected", fileName: "members", wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := roster.ValidateFileName(testCase.fileName)
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
