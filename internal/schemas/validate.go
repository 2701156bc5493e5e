// Package schemas validates structured model output against embedded JSON
// Schemas before it is trusted by callers.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ATSReport is the schema name for the ATS optimizer's JSON output.
const ATSReport = "ats_report"

// ValidationError reports where model output failed schema validation.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against the named embedded schema.
// Returns *ValidationError when the document is well-formed JSON that
// violates the schema.
func Validate(name, document string) error {
	schemaBytes, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", name, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate against schema %q: %w", name, err)
	}

	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}
	return nil
}
