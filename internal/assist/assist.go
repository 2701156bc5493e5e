// Package assist implements the AI-backed text generators: cover letter,
// career roadmap, resume review, ATS keyword report, and the interview
// simulator. Every operation is a pure prompt-templating step followed by a
// single model call; only the interview simulator carries state, an
// append-only per-session transcript replayed into each prompt.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/llm"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/prompts"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/schemas"
)

const promptFile = "assist.json"

// ValidationError indicates a required input was absent. It is reported
// inline; the caller may retry immediately.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Generator runs all AI-backed text generation against one model client.
type Generator struct {
	client     llm.Client
	interviews *interviewSessions
}

// NewGenerator creates a Generator backed by the given model client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{
		client:     client,
		interviews: newInterviewSessions(),
	}
}

// CoverLetterInput holds the form fields for a cover letter.
type CoverLetterInput struct {
	Name             string
	JobTitle         string
	Company          string
	ResumeHighlights string
	JobDescription   string
}

// CoverLetter generates a tailored cover letter as markdown.
func (g *Generator) CoverLetter(ctx context.Context, in CoverLetterInput) (string, error) {
	required := map[string]string{
		"name":              in.Name,
		"job_title":         in.JobTitle,
		"company":           in.Company,
		"resume_highlights": in.ResumeHighlights,
		"job_description":   in.JobDescription,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return "", &ValidationError{Field: field, Message: "is required"}
		}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "cover_letter"), map[string]string{
		"Name":             in.Name,
		"JobTitle":         in.JobTitle,
		"Company":          in.Company,
		"ResumeHighlights": in.ResumeHighlights,
		"JobDescription":   in.JobDescription,
	})
	return g.client.GenerateContent(ctx, prompt)
}

// Roadmap generates a 6-month learning roadmap for the target role.
func (g *Generator) Roadmap(ctx context.Context, role string) (string, error) {
	if strings.TrimSpace(role) == "" {
		return "", &ValidationError{Field: "role", Message: "is required"}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "roadmap"), map[string]string{
		"Role": role,
	})
	return g.client.GenerateContent(ctx, prompt)
}

// ReviewInput pairs a resume with a job description.
type ReviewInput struct {
	Resume         string
	JobDescription string
}

func (in ReviewInput) validate() error {
	if strings.TrimSpace(in.Resume) == "" {
		return &ValidationError{Field: "resume", Message: "is required"}
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return &ValidationError{Field: "job_description", Message: "is required"}
	}
	return nil
}

// ResumeReview generates the three-section career-coach review as markdown.
func (g *Generator) ResumeReview(ctx context.Context, in ReviewInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "resume_review"), map[string]string{
		"Resume":         in.Resume,
		"JobDescription": in.JobDescription,
	})
	return g.client.GenerateContent(ctx, prompt)
}

// ATSReport is the structured output of the ATS optimizer.
type ATSReport struct {
	Score           int      `json:"score"`
	MissingKeywords []string `json:"missing_keywords"`
	Suggestions     []string `json:"suggestions"`
}

// ATSReport asks the model for a JSON keyword report and validates it
// against the embedded schema before returning it.
func (g *Generator) ATSReport(ctx context.Context, in ReviewInput) (*ATSReport, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "ats_report"), map[string]string{
		"Resume":         in.Resume,
		"JobDescription": in.JobDescription,
	})

	raw, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.ATSReport, raw); err != nil {
		return nil, &llm.ServiceError{Cause: fmt.Errorf("model returned malformed report: %w", err)}
	}

	var report ATSReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, &llm.ServiceError{Cause: fmt.Errorf("model returned malformed report: %w", err)}
	}
	return &report, nil
}
