package server

import (
	"io"
	"net/http"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/beautify"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/discover"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/extract"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/keywords"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/toolkit"
)

// maxUploadBytes caps resume uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// ExtractResponse carries the extracted resume text and its sections.
type ExtractResponse struct {
	Text     string            `json:"text"`
	Sections []extract.Section `json:"sections"`
}

// handleExtract accepts a multipart resume upload (field "file") and returns
// the extracted plain text split into recognized sections.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.fail(w, &ErrBadRequest{Message: "invalid multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, &ErrBadRequest{Message: "file field is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, &ErrBadRequest{Message: "failed to read upload"})
		return
	}

	text, err := extract.Extract(data, header.Header.Get("Content-Type"))
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ExtractResponse{
		Text:     text,
		Sections: extract.SplitSections(text),
	})
}

// KeywordsRequest is the local keyword matcher request body.
type KeywordsRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// KeywordsResponse lists the top missing keywords.
type KeywordsResponse struct {
	MissingKeywords []string `json:"missing_keywords"`
}

// handleKeywords runs the local keyword matcher. No model call involved.
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	missing := keywords.Missing(req.Resume, req.JobDescription)
	s.jsonResponse(w, http.StatusOK, KeywordsResponse{MissingKeywords: missing})
}

// BeautifyRequest is the CV beautifier form.
type BeautifyRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Contact    string `json:"contact"`
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

// BeautifyResponse carries the rendered HTML document.
type BeautifyResponse struct {
	HTML string `json:"html"`
}

// handleBeautify renders the themed CV HTML document.
func (s *Server) handleBeautify(w http.ResponseWriter, r *http.Request) {
	var req BeautifyRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	html, err := beautify.Render(beautify.Input{
		FullName:   req.FullName,
		Contact:    req.Contact,
		Summary:    req.Summary,
		Experience: req.Experience,
		Education:  req.Education,
		Skills:     req.Skills,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, BeautifyResponse{HTML: html})
}

// PromptsResponse is the prompt library, optionally filtered.
type PromptsResponse struct {
	Categories []toolkit.Category `json:"categories"`
}

// handleListPrompts returns the prompt library, filtered by the q parameter.
func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	s.jsonResponse(w, http.StatusOK, PromptsResponse{Categories: toolkit.Search(query)})
}

// FillPromptRequest fills a template's placeholders.
type FillPromptRequest struct {
	Template string            `json:"template" validate:"required"`
	Values   map[string]string `json:"values"`
}

// FillPromptResponse is the filled template with any remaining blanks.
type FillPromptResponse struct {
	Filled       string   `json:"filled"`
	Placeholders []string `json:"placeholders"`
}

// handleFillPrompt substitutes placeholder values into a prompt template.
func (s *Server) handleFillPrompt(w http.ResponseWriter, r *http.Request) {
	var req FillPromptRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	filled := toolkit.Fill(req.Template, req.Values)
	s.jsonResponse(w, http.StatusOK, FillPromptResponse{
		Filled:       filled,
		Placeholders: toolkit.Placeholders(filled),
	})
}

// DiscoverRequest is the job discovery request body.
type DiscoverRequest struct {
	Role     string   `json:"role" validate:"required"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
}

// handleDiscover scrapes live listings and returns the model's ranking.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		s.errorResponse(w, http.StatusNotImplemented, "job discovery is not configured")
		return
	}

	var req DiscoverRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.searcher.Search(r.Context(), discover.Query{
		Role:     req.Role,
		Location: req.Location,
		Skills:   req.Skills,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
