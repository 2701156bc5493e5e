package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Go, SQL & Kubernetes! (5 years)")
	assert.Equal(t, []string{"go", "sql", "kubernetes", "years"}, tokens)
}

func TestMissing_SurfacesAbsentTermsOnly(t *testing.T) {
	resume := "Python Developer with 5 years experience"
	jobDescription := "We need Kubernetes, Docker, Python. Kubernetes experience required."

	missing := Missing(resume, jobDescription)

	assert.Contains(t, missing, "kubernetes")
	assert.Contains(t, missing, "docker")
	assert.NotContains(t, missing, "python")
	assert.NotContains(t, missing, "experience")
}

func TestMissing_DisjointVocabularyIsNonEmptyAndBounded(t *testing.T) {
	resume := "gardening cooking painting"
	jobDescription := strings.Repeat("terraform ansible prometheus grafana postgres redis kafka spark airflow snowflake databricks elasticsearch ", 3)

	missing := Missing(resume, jobDescription)

	require.NotEmpty(t, missing)
	assert.LessOrEqual(t, len(missing), 10)
}

func TestMissing_ExcludesStopWordsAndShortTokens(t *testing.T) {
	missing := Missing("", "the and for with aws gcp sql from this that kubernetes")

	for _, tok := range missing {
		assert.NotContains(t, []string{"the", "and", "for", "with", "from", "this", "that"}, tok)
		assert.Greater(t, len(tok), 3)
	}
	// aws, gcp and sql are too short to qualify even though they are real skills.
	assert.NotContains(t, missing, "aws")
	assert.NotContains(t, missing, "sql")
	assert.Contains(t, missing, "kubernetes")
}

func TestMissing_OrderedByFrequency(t *testing.T) {
	jobDescription := "docker docker docker kubernetes kubernetes terraform"

	missing := Missing("", jobDescription)

	require.Len(t, missing, 3)
	assert.Equal(t, []string{"docker", "kubernetes", "terraform"}, missing)
}

func TestMissing_CoveredResumeReturnsEmpty(t *testing.T) {
	text := "kubernetes docker python golang"
	assert.Empty(t, Missing(text, text))
}
