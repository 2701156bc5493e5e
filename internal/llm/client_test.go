package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare json untouched",
			input:    `{"score": 7}`,
			expected: `{"score": 7}`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n{\"score\": 7}\n```",
			expected: `{"score": 7}`,
		},
		{
			name:     "plain fence stripped",
			input:    "```\n{\"score\": 7}\n```",
			expected: `{"score": 7}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"score\": 7}\n  ",
			expected: `{"score": 7}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), "", DefaultModel)
	assert.Error(t, err)
}
