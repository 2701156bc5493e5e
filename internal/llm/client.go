// Package llm provides the hosted-model client used by every AI-backed
// feature. The model is treated as an opaque, stateless collaborator: one
// prompt in, one markdown or JSON response out, no retries.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// defaultTemperature keeps output consistent across calls.
const defaultTemperature = 0.4

// Client is an abstraction over hosted LLM providers.
type Client interface {
	// GenerateContent generates markdown text from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// GenerateJSON generates a JSON document from a prompt.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// ServiceError indicates the model endpoint call failed. It surfaces to the
// user as a single generic message; nothing is retried.
type ServiceError struct {
	Cause error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("model request failed: %v", e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateContent generates markdown text from a prompt.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(defaultTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ServiceError{Cause: err}
	}

	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON content from a prompt.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(defaultTemperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ServiceError{Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ServiceError{Cause: fmt.Errorf("no candidates in response")}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ServiceError{Cause: fmt.Errorf("no content in response")}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &ServiceError{Cause: fmt.Errorf("no text parts in response")}
	}

	return strings.Join(parts, ""), nil
}

// CleanJSONBlock removes markdown code block wrappers from JSON output.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
