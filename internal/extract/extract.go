// Package extract converts uploaded documents into plain text. PDFs are
// extracted page by page; plain text uploads are decoded as UTF-8. Nothing
// here understands document structure beyond the keyword-based section
// splitter used by the CV beautifier.
package extract

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// UnsupportedFormatError indicates a declared type the extractor cannot read.
type UnsupportedFormatError struct {
	DeclaredType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document type %q (supported: pdf, txt)", e.DeclaredType)
}

// ParseError indicates the uploaded bytes could not be read as the declared
// type. The user must re-upload; nothing is retried.
type ParseError struct {
	DeclaredType string
	Cause        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.DeclaredType, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Extract converts file bytes into plain text based on the declared type.
// Accepted types are "pdf" and "txt" (MIME forms application/pdf and
// text/plain are accepted too; parameters such as charset are ignored).
func Extract(data []byte, declaredType string) (string, error) {
	switch normalizeType(declaredType) {
	case "pdf":
		return pdfText(data)
	case "txt":
		return plainText(data)
	default:
		return "", &UnsupportedFormatError{DeclaredType: declaredType}
	}
}

func normalizeType(declaredType string) string {
	t := strings.ToLower(strings.TrimSpace(declaredType))
	t = strings.TrimPrefix(t, ".")
	// Content-Type values carry parameters ("text/plain; charset=utf-8").
	if media, _, err := mime.ParseMediaType(t); err == nil {
		t = media
	}
	switch t {
	case "pdf", "application/pdf":
		return "pdf"
	case "txt", "text", "text/plain":
		return "txt"
	default:
		return t
	}
}

// plainText decodes the upload as UTF-8, verbatim.
func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ParseError{DeclaredType: "txt", Cause: fmt.Errorf("content is not valid UTF-8")}
	}
	return string(data), nil
}

// pdfText extracts text from every page in order.
func pdfText(data []byte) (text string, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{DeclaredType: "pdf", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{DeclaredType: "pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ParseError{DeclaredType: "pdf", Cause: err}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
