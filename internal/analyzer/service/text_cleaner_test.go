package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCleaner_Clean(t *testing.T) {
	cleaner := MustTextCleaner()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: " \n\t ", expected: ""},
		{name: "collapses whitespace", input: "  Apple   reported\n\nrecord\trevenue. ", expected: "Apple reported record revenue."},
		{name: "non-breaking space", input: "Apple\u00a0\u00a0Inc", expected: "Apple Inc"},
		{
			name:     "share widget",
			input:    "Share Share Facebook Copy Link copied Print Email X LinkedIn Stocks rallied today.",
			expected: "Stocks rallied today.",
		},
		{name: "share on", input: "Stocks rallied. share on twitter", expected: "Stocks rallied."},
		{name: "follow us", input: "Follow us on LinkedIn Shares fell.", expected: "Shares fell."},
		{
			name:     "copyright footer",
			input:    "Shares fell. Copyright © 2024 Example Media. All rights reserved",
			expected: "Shares fell.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleaner.Clean(tt.input))
		})
	}
}

func TestNewTextCleaner_ExtraPatterns(t *testing.T) {
	cleaner, err := NewTextCleaner(`Read more at \S+`, "  ")
	require.NoError(t, err)

	assert.Equal(t, "Earnings beat estimates.", cleaner.Clean("Earnings beat estimates. READ MORE AT example.com"))
}

func TestNewTextCleaner_InvalidPattern(t *testing.T) {
	_, err := NewTextCleaner(`(unclosed`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile boilerplate pattern")

	assert.Panics(t, func() { MustTextCleaner(`(unclosed`) })
}
