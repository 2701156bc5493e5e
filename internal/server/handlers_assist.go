package server

import (
	"net/http"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/assist"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/server/middleware"
)

// CoverLetterRequest is the cover letter generator request body.
type CoverLetterRequest struct {
	Name             string `json:"name" validate:"required"`
	JobTitle         string `json:"job_title" validate:"required"`
	Company          string `json:"company" validate:"required"`
	ResumeHighlights string `json:"resume_highlights" validate:"required"`
	JobDescription   string `json:"job_description" validate:"required"`
}

// RoadmapRequest is the career roadmap request body.
type RoadmapRequest struct {
	Role string `json:"role" validate:"required"`
}

// ReviewRequest pairs a resume with a job description.
type ReviewRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// GeneratedResponse wraps a markdown generation result.
type GeneratedResponse struct {
	Content string `json:"content"`
}

// handleCoverLetter generates a tailored cover letter.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req CoverLetterRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	content, err := s.generator.CoverLetter(r.Context(), assist.CoverLetterInput{
		Name:             req.Name,
		JobTitle:         req.JobTitle,
		Company:          req.Company,
		ResumeHighlights: req.ResumeHighlights,
		JobDescription:   req.JobDescription,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GeneratedResponse{Content: content})
}

// handleRoadmap generates a learning roadmap for a target role.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	var req RoadmapRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	content, err := s.generator.Roadmap(r.Context(), req.Role)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GeneratedResponse{Content: content})
}

// handleResumeReview generates the career-coach resume review.
func (s *Server) handleResumeReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	content, err := s.generator.ResumeReview(r.Context(), assist.ReviewInput{
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GeneratedResponse{Content: content})
}

// handleATSReport generates the structured ATS keyword report.
func (s *Server) handleATSReport(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	report, err := s.generator.ATSReport(r.Context(), assist.ReviewInput{
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// StartInterviewRequest opens a mock interview session.
type StartInterviewRequest struct {
	Persona  string `json:"persona" validate:"required"`
	JobTitle string `json:"job_title" validate:"required"`
}

// InterviewResponse carries the interviewer's latest question.
type InterviewResponse struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// InterviewReplyRequest is the candidate's answer.
type InterviewReplyRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// TranscriptResponse is the interview transcript so far.
type TranscriptResponse struct {
	SessionID string                    `json:"session_id"`
	Messages  []assist.InterviewMessage `json:"messages"`
}

// handlePersonas lists the interviewer personas the simulator can play.
func (s *Server) handlePersonas(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"personas": assist.Personas})
}

// handleStartInterview opens a session and returns the opening question.
func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req StartInterviewRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	id, question, err := s.generator.StartInterview(r.Context(), session.UID, req.Persona, req.JobTitle)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, InterviewResponse{SessionID: id, Question: question})
}

// handleInterviewReply records an answer and returns the next question.
func (s *Server) handleInterviewReply(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	id := r.PathValue("id")
	if err := requireField("id", id); err != nil {
		s.fail(w, err)
		return
	}

	var req InterviewReplyRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	question, err := s.generator.InterviewReply(r.Context(), session.UID, id, req.Answer)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, InterviewResponse{SessionID: id, Question: question})
}

// handleInterviewTranscript returns the session transcript so far.
func (s *Server) handleInterviewTranscript(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	id := r.PathValue("id")
	if err := requireField("id", id); err != nil {
		s.fail(w, err)
		return
	}

	messages, err := s.generator.InterviewTranscript(session.UID, id)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, TranscriptResponse{SessionID: id, Messages: messages})
}

// handleEndInterview discards the caller's session. Ending an unknown
// session, or one owned by someone else, is a no-op so the client can
// retry safely.
func (s *Server) handleEndInterview(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	id := r.PathValue("id")
	if err := requireField("id", id); err != nil {
		s.fail(w, err)
		return
	}

	s.generator.EndInterview(session.UID, id)
	w.WriteHeader(http.StatusNoContent)
}
