package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/assist"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/llm"
)

func TestHandleCoverLetter(t *testing.T) {
	env := newTestEnv(t)
	env.llm.response = "Dear Hiring Manager, ..."
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/cover-letter", token, CoverLetterRequest{
		Name:             "Jane Doe",
		JobTitle:         "Backend Engineer",
		Company:          "Acme",
		ResumeHighlights: "5 years Go",
		JobDescription:   "We need a Go engineer",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[GeneratedResponse](t, w)
	assert.Equal(t, "Dear Hiring Manager, ...", resp.Content)

	require.Len(t, env.llm.prompts, 1)
	assert.Contains(t, env.llm.prompts[0], "Jane Doe")
	assert.Contains(t, env.llm.prompts[0], "Acme")
}

func TestHandleCoverLetter_MissingField(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/cover-letter", token, CoverLetterRequest{
		Name: "Jane Doe",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.llm.prompts, "model must not be called for invalid input")
}

func TestHandleRoadmap_ModelFailure(t *testing.T) {
	env := newTestEnv(t)
	env.llm.err = &llm.ServiceError{Cause: errors.New("quota exhausted")}
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/roadmap", token, RoadmapRequest{Role: "Data Engineer"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleATSReport(t *testing.T) {
	env := newTestEnv(t)
	env.llm.response = `{"score": 7, "missing_keywords": ["docker"], "suggestions": ["add docker"]}`
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/ats-report", token, ReviewRequest{
		Resume:         "go engineer",
		JobDescription: "docker and go",
	})

	require.Equal(t, http.StatusOK, w.Code)
	report := decodeBody[assist.ATSReport](t, w)
	assert.Equal(t, 7, report.Score)
	assert.Equal(t, []string{"docker"}, report.MissingKeywords)
}

func TestHandleATSReport_MalformedModelOutput(t *testing.T) {
	env := newTestEnv(t)
	env.llm.response = `{"score": "seven"}`
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/ats-report", token, ReviewRequest{
		Resume:         "go engineer",
		JobDescription: "docker and go",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandlePersonas(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodGet, "/assist/personas", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string][]string](t, w)
	assert.Equal(t, assist.Personas, resp["personas"])
}

func TestInterviewFlow(t *testing.T) {
	env := newTestEnv(t)
	env.llm.response = "Tell me about yourself."
	token := env.token(t, "uid-1", "a@example.com")

	// Start
	w := env.request(t, http.MethodPost, "/assist/interviews", token, StartInterviewRequest{
		Persona:  "Technical Lead",
		JobTitle: "Backend Engineer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	started := decodeBody[InterviewResponse](t, w)
	require.NotEmpty(t, started.SessionID)
	assert.Equal(t, "Tell me about yourself.", started.Question)

	// Reply
	env.llm.response = "What is a goroutine?"
	w = env.request(t, http.MethodPost, "/assist/interviews/"+started.SessionID+"/replies", token,
		InterviewReplyRequest{Answer: "I build Go services."})
	require.Equal(t, http.StatusOK, w.Code)
	next := decodeBody[InterviewResponse](t, w)
	assert.Equal(t, "What is a goroutine?", next.Question)

	// Transcript carries all three turns
	w = env.request(t, http.MethodGet, "/assist/interviews/"+started.SessionID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	transcript := decodeBody[TranscriptResponse](t, w)
	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, assist.RoleInterviewer, transcript.Messages[0].Role)
	assert.Equal(t, assist.RoleCandidate, transcript.Messages[1].Role)

	// End, then the transcript is gone
	w = env.request(t, http.MethodDelete, "/assist/interviews/"+started.SessionID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodGet, "/assist/interviews/"+started.SessionID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInterview_OtherUserCannotAccessSession(t *testing.T) {
	env := newTestEnv(t)
	env.llm.response = "Tell me about yourself."
	owner := env.token(t, "uid-1", "a@example.com")
	other := env.token(t, "uid-2", "b@example.com")

	w := env.request(t, http.MethodPost, "/assist/interviews", owner, StartInterviewRequest{
		Persona:  "HR Manager",
		JobTitle: "Backend Engineer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	started := decodeBody[InterviewResponse](t, w)

	// Holding the session id is not enough to read or extend it.
	w = env.request(t, http.MethodGet, "/assist/interviews/"+started.SessionID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodPost, "/assist/interviews/"+started.SessionID+"/replies", other,
		InterviewReplyRequest{Answer: "let me in"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting as the wrong user leaves the owner's transcript intact.
	w = env.request(t, http.MethodDelete, "/assist/interviews/"+started.SessionID, other, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodGet, "/assist/interviews/"+started.SessionID, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleStartInterview_UnknownPersona(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/interviews", token, StartInterviewRequest{
		Persona:  "Wizard",
		JobTitle: "Backend Engineer",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleInterviewReply_UnknownSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "uid-1", "a@example.com")

	w := env.request(t, http.MethodPost, "/assist/interviews/missing/replies", token,
		InterviewReplyRequest{Answer: "hello"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
