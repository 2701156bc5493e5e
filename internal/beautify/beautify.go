// Package beautify renders raw resume input into the themed, printable HTML
// document offered for download by the CV beautifier page.
package beautify

import (
	"fmt"
	"html/template"
	"strings"
)

// Input holds the CV beautifier form fields. Experience is one bullet per
// line; Skills is free text, usually comma-separated.
type Input struct {
	FullName   string
	Contact    string
	Summary    string
	Experience string
	Education  string
	Skills     string
}

// ValidationError indicates a required form field was absent.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - is required", e.Field)
}

var cvTemplate = template.Must(template.New("cv").Parse(`<div style="font-family:sans-serif; border:1px solid #333; padding:2rem; border-radius:10px; background-color:#1E1E1E;">
  <div style="text-align:center; border-bottom: 2px solid #636AF2; padding-bottom: 1rem;">
    <h1 style="color:#FAFAFA; margin:0;">{{.FullName}}</h1>
    <p style="margin:5px; color:#A9A9A9;">{{.Contact}}</p>
  </div>
  <h3 style="color:#636AF2; margin-top:1.5rem; border-bottom:1px solid #333; padding-bottom:5px;">Professional Summary</h3>
  <p style="color:#FAFAFA;">{{.Summary}}</p>
  <h3 style="color:#636AF2; margin-top:1.5rem; border-bottom:1px solid #333; padding-bottom:5px;">Work Experience</h3>
  <div style="color:#FAFAFA;"><ul>{{range .ExperienceItems}}<li>{{.}}</li>{{end}}</ul></div>
  <h3 style="color:#636AF2; margin-top:1.5rem; border-bottom:1px solid #333; padding-bottom:5px;">Education</h3>
  <p style="color:#FAFAFA;">{{.Education}}</p>
  <h3 style="color:#636AF2; margin-top:1.5rem; border-bottom:1px solid #333; padding-bottom:5px;">Key Skills</h3>
  <p style="color:#FAFAFA;">{{.Skills}}</p>
</div>
`))

type templateData struct {
	FullName        string
	Contact         string
	Summary         string
	ExperienceItems []string
	Education       string
	Skills          string
}

// Render produces the themed HTML document for the given form input.
// Experience lines become list items; blank lines are dropped. All user
// content is HTML-escaped by the template engine.
func Render(in Input) (string, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return "", &ValidationError{Field: "full_name"}
	}

	var items []string
	for _, line := range strings.Split(in.Experience, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}

	var sb strings.Builder
	err := cvTemplate.Execute(&sb, templateData{
		FullName:        in.FullName,
		Contact:         in.Contact,
		Summary:         in.Summary,
		ExperienceItems: items,
		Education:       in.Education,
		Skills:          in.Skills,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render CV: %w", err)
	}
	return sb.String(), nil
}
