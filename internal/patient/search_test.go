package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestName(t *testing.T) {
	names := []string{"John", "Jane", "Josefa", "Mereoni", "Sitiveni"}

	tests := []struct {
		query string
		want  string
	}{
		{query: "Jon", want: "John"},
		{query: "jane", want: "Jane"},
		{query: "Mereony", want: "Mereoni"},
		{query: "Sitivni", want: "Sitiveni"},
		{query: "xqzw", want: ""},
		{query: "", want: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, closestName(tc.query, names), "query %q", tc.query)
	}
}

func TestClosestNameEmptyPool(t *testing.T) {
	assert.Equal(t, "", closestName("John", nil))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("anna", "anna"))
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 0.0, similarity("ab", ""))

	// One edit over four runes.
	assert.InDelta(t, 0.75, similarity("anna", "anne"), 1e-9)

	// Exactly at the cutoff boundary: "jon" vs "john" is one edit over four.
	assert.InDelta(t, 0.75, similarity("jon", "john"), 1e-9)
}
