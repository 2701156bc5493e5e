package server

import (
	"net/http"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/server/middleware"
)

// handleAnalytics returns the admin dashboard aggregates. Only the configured
// admin account may read it; everyone else gets 403 regardless of whether the
// endpoint exists for them.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	if s.adminEmail == "" || session.Email != s.adminEmail {
		s.fail(w, &ErrForbidden{})
		return
	}

	if s.analytics == nil {
		s.errorResponse(w, http.StatusNotImplemented, "analytics is not configured")
		return
	}

	summary, err := s.analytics.Summarize(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, summary)
}
