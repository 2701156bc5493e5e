// Package keywords implements the deterministic resume-to-job-description
// keyword matcher: plain term-frequency analysis, no model calls.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// maxSuggestions bounds the number of missing keywords reported.
const maxSuggestions = 10

// minTokenLength filters out short filler words; tokens of length <= 3
// are never suggested.
const minTokenLength = 4

// stopWords are never suggested regardless of frequency.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "to": {}, "of": {}, "in": {}, "a": {}, "with": {},
	"for": {}, "is": {}, "on": {}, "an": {}, "as": {}, "by": {}, "at": {},
	"from": {}, "or": {}, "be": {}, "are": {}, "this": {}, "that": {}, "it": {},
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z']+`)

// Tokenize lowercases text and splits it into alphabetic tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Missing returns job-description terms absent from the resume, ordered by
// descending frequency in the job description and capped at ten. Stop words
// and tokens of length three or less are excluded.
func Missing(resumeText, jobDescription string) []string {
	resumeTokens := make(map[string]struct{})
	for _, tok := range Tokenize(resumeText) {
		resumeTokens[tok] = struct{}{}
	}

	jobTokens := Tokenize(jobDescription)
	counts := make(map[string]int, len(jobTokens))
	firstSeen := make(map[string]int, len(jobTokens))
	for i, tok := range jobTokens {
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	ordered := make([]string, 0, len(counts))
	for tok := range counts {
		ordered = append(ordered, tok)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if counts[ordered[i]] != counts[ordered[j]] {
			return counts[ordered[i]] > counts[ordered[j]]
		}
		return firstSeen[ordered[i]] < firstSeen[ordered[j]]
	})

	suggestions := make([]string, 0, maxSuggestions)
	for _, tok := range ordered {
		if len(tok) < minTokenLength {
			continue
		}
		if _, ok := stopWords[tok]; ok {
			continue
		}
		if _, ok := resumeTokens[tok]; ok {
			continue
		}
		suggestions = append(suggestions, tok)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
