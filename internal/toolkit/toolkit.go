// Package toolkit is the curated prompt library: expert-written prompt
// templates with [placeholder] blanks the user fills in, optionally run
// against the model afterwards. The library is static data.
package toolkit

import (
	"regexp"
	"strings"
)

// Prompt is one reusable prompt template.
type Prompt struct {
	Title    string `json:"title"`
	Template string `json:"template"`
}

// Category groups prompts by job-search task.
type Category struct {
	Name    string   `json:"name"`
	Prompts []Prompt `json:"prompts"`
}

var library = []Category{
	{
		Name: "Job Search",
		Prompts: []Prompt{
			{
				Title:    "Find jobs using my interests and skills",
				Template: "Find me remote jobs in [industry or role] that align with my skills: [list your skills] and my experience: [brief summary].",
			},
			{
				Title:    "Generate cold outreach message for recruiter",
				Template: "Write a professional LinkedIn message to a recruiter for the role of [job title] at [company name]. Highlight my background in [field].",
			},
		},
	},
	{
		Name: "Resume Writing",
		Prompts: []Prompt{
			{
				Title:    "Resume summary generator",
				Template: "Write a resume summary for a [job title] with [years] years of experience in [field/industry]. Emphasize achievements and soft skills.",
			},
			{
				Title:    "Convert job duties into strong bullet points",
				Template: "Convert this plain job duty into an impactful resume bullet with metrics: [your current job duty].",
			},
		},
	},
	{
		Name: "Cover Letters",
		Prompts: []Prompt{
			{
				Title:    "Write a personalized cover letter",
				Template: "Write a cover letter for the role of [job title] at [company]. Highlight my experience in [field] and interest in [specific company value or mission].",
			},
		},
	},
	{
		Name: "Interview Prep",
		Prompts: []Prompt{
			{
				Title:    "Behavioral interview answer",
				Template: "Answer this behavioral interview question using the STAR format: [question]. Use my experience: [your experience summary].",
			},
		},
	},
}

// Library returns the full prompt library.
func Library() []Category {
	return library
}

// Search filters the library to prompts whose title or template contains the
// query, case-insensitive. An empty query returns the whole library.
// Categories with no matching prompt are dropped.
func Search(query string) []Category {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return library
	}

	var out []Category
	for _, cat := range library {
		var matched []Prompt
		for _, p := range cat.Prompts {
			if strings.Contains(strings.ToLower(p.Title), query) ||
				strings.Contains(strings.ToLower(p.Template), query) {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			out = append(out, Category{Name: cat.Name, Prompts: matched})
		}
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// Placeholders lists the fill-in blanks of a template, in order of first
// appearance, deduplicated.
func Placeholders(template string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// Fill substitutes placeholder values into a template. Blanks without a
// value keep their [placeholder] marker so the user can see what is missing.
func Fill(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.Trim(match, "[]")
		if v, ok := values[name]; ok && v != "" {
			return v
		}
		return match
	})
}
