package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ATSReport(t *testing.T) {
	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{
			name:     "complete report",
			document: `{"score": 7, "missing_keywords": ["kubernetes", "docker"], "suggestions": ["Led migration to Kubernetes"]}`,
			valid:    true,
		},
		{
			name:     "empty arrays allowed",
			document: `{"score": 10, "missing_keywords": [], "suggestions": []}`,
			valid:    true,
		},
		{
			name:     "missing score",
			document: `{"missing_keywords": [], "suggestions": []}`,
			valid:    false,
		},
		{
			name:     "score out of range",
			document: `{"score": 11, "missing_keywords": [], "suggestions": []}`,
			valid:    false,
		},
		{
			name:     "score not integer",
			document: `{"score": "seven", "missing_keywords": [], "suggestions": []}`,
			valid:    false,
		},
		{
			name:     "unexpected extra field",
			document: `{"score": 5, "missing_keywords": [], "suggestions": [], "verdict": "hire"}`,
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(ATSReport, tt.document)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nonexistent", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}
