package assist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/prompts"
	"github.com/google/uuid"
)

// Personas are the interviewer roles the simulator can play.
var Personas = []string{"HR Manager", "Technical Lead", "Product Manager", "Startup Founder"}

// ValidPersona reports whether p is a known interviewer persona.
func ValidPersona(p string) bool {
	for _, v := range Personas {
		if p == v {
			return true
		}
	}
	return false
}

// Message roles in an interview transcript.
const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// InterviewMessage is one turn of an interview transcript.
type InterviewMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionNotFoundError indicates an unknown or ended interview session.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("interview session not found: %s", e.SessionID)
}

// interviewSession is one live mock interview, owned by the user that
// opened it.
type interviewSession struct {
	owner    string
	messages []InterviewMessage
}

// interviewSessions holds ephemeral transcripts keyed by session id.
// Transcripts live only in memory and are never persisted. Every lookup
// checks the owner; a session belonging to someone else is reported as
// not found rather than forbidden.
type interviewSessions struct {
	mu       sync.Mutex
	sessions map[string]*interviewSession
}

func newInterviewSessions() *interviewSessions {
	return &interviewSessions{sessions: make(map[string]*interviewSession)}
}

func (s *interviewSessions) create(owner string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.sessions[id] = &interviewSession{owner: owner}
	return id
}

func (s *interviewSessions) appendMessage(owner, id string, msg InterviewMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.owner != owner {
		return &SessionNotFoundError{SessionID: id}
	}
	sess.messages = append(sess.messages, msg)
	return nil
}

func (s *interviewSessions) transcript(owner, id string) ([]InterviewMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.owner != owner {
		return nil, &SessionNotFoundError{SessionID: id}
	}
	out := make([]InterviewMessage, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

func (s *interviewSessions) end(owner, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok && sess.owner == owner {
		delete(s.sessions, id)
	}
}

// StartInterview opens a new mock-interview session for uid with the given
// persona and target job title, and returns the session id with the opening
// question.
func (g *Generator) StartInterview(ctx context.Context, uid, persona, jobTitle string) (string, string, error) {
	if !ValidPersona(persona) {
		return "", "", &ValidationError{Field: "persona", Message: fmt.Sprintf("must be one of %v", Personas)}
	}
	if strings.TrimSpace(jobTitle) == "" {
		return "", "", &ValidationError{Field: "job_title", Message: "is required"}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "interview_open"), map[string]string{
		"Persona":  persona,
		"JobTitle": jobTitle,
	})
	question, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	id := g.interviews.create(uid)
	_ = g.interviews.appendMessage(uid, id, InterviewMessage{Role: RoleInterviewer, Content: question})
	return id, question, nil
}

// InterviewReply records the candidate's answer and returns the interviewer's
// next question. The full transcript is replayed verbatim into the prompt;
// the model itself is stateless between calls. Sessions opened by another
// user are reported as not found.
func (g *Generator) InterviewReply(ctx context.Context, uid, sessionID, answer string) (string, error) {
	if strings.TrimSpace(answer) == "" {
		return "", &ValidationError{Field: "answer", Message: "is required"}
	}

	if err := g.interviews.appendMessage(uid, sessionID, InterviewMessage{Role: RoleCandidate, Content: answer}); err != nil {
		return "", err
	}

	transcript, err := g.interviews.transcript(uid, sessionID)
	if err != nil {
		return "", err
	}

	var history strings.Builder
	for _, msg := range transcript {
		fmt.Fprintf(&history, "%s: %s\n", msg.Role, msg.Content)
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "interview_next"), map[string]string{
		"History": history.String(),
	})
	question, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	_ = g.interviews.appendMessage(uid, sessionID, InterviewMessage{Role: RoleInterviewer, Content: question})
	return question, nil
}

// InterviewTranscript returns a copy of the session transcript so far.
func (g *Generator) InterviewTranscript(uid, sessionID string) ([]InterviewMessage, error) {
	return g.interviews.transcript(uid, sessionID)
}

// EndInterview discards the session and its transcript. Only the owner can
// end a session; for anyone else this is a no-op.
func (g *Generator) EndInterview(uid, sessionID string) {
	g.interviews.end(uid, sessionID)
}
