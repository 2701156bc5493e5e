package extract

import (
	"strings"
)

// sectionKeywords are the heading cues used to re-segment raw resume text.
// A line containing one of these starts a new section; everything else is
// appended to the current section. Best-effort splitting, not a parser.
var sectionKeywords = []string{"education", "experience", "skills", "projects", "certifications"}

// Section is a titled run of resume lines.
type Section struct {
	Title string
	Lines []string
}

// SplitSections segments raw resume text into titled sections by matching
// lines against the fixed heading keyword list. Lines seen before any heading
// land in a "General" section.
func SplitSections(raw string) []Section {
	var sections []Section
	current := Section{Title: "General"}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isSectionHeading(line) {
			if len(current.Lines) > 0 {
				sections = append(sections, current)
			}
			current = Section{Title: titleCase(line)}
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	if len(current.Lines) > 0 {
		sections = append(sections, current)
	}
	return sections
}

func isSectionHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
