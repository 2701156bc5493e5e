package server

import (
	"net/http"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/server/middleware"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

// CreateJobRequest is the request body for tracking a new application.
type CreateJobRequest struct {
	Company     string `json:"company" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Location    string `json:"location"`
	AppliedDate string `json:"applied_date"`
	Stage       string `json:"stage" validate:"required"`
	Notes       string `json:"notes"`
}

// UpdateJobRequest is the partial-update body. Absent fields are untouched.
type UpdateJobRequest struct {
	Company     *string `json:"company"`
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	AppliedDate *string `json:"applied_date"`
	Stage       *string `json:"stage"`
	Notes       *string `json:"notes"`
}

// ListJobsResponse wraps the job list with its count.
type ListJobsResponse struct {
	Jobs  []store.JobRecord `json:"jobs"`
	Count int               `json:"count"`
}

// BoardResponse groups jobs by stage in board column order.
type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
	Count   int           `json:"count"`
}

// BoardColumn is one Kanban column.
type BoardColumn struct {
	Stage string            `json:"stage"`
	Jobs  []store.JobRecord `json:"jobs"`
}

// handleListJobs lists the authenticated user's job records.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), session.UID)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}

// handleJobBoard returns the user's jobs grouped into Kanban columns. Every
// stage appears even when empty so the board renders all columns.
func (s *Server) handleJobBoard(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), session.UID)
	if err != nil {
		s.fail(w, err)
		return
	}

	byStage := make(map[store.Stage][]store.JobRecord)
	for _, job := range jobs {
		byStage[job.Stage] = append(byStage[job.Stage], job)
	}

	resp := BoardResponse{Count: len(jobs)}
	for _, stage := range store.Stages {
		resp.Columns = append(resp.Columns, BoardColumn{
			Stage: string(stage),
			Jobs:  byStage[stage],
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCreateJob tracks a new application for the authenticated user.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFrom(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var req CreateJobRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	id, err := s.store.CreateJob(r.Context(), session.UID, store.JobInput{
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		AppliedDate: req.AppliedDate,
		Stage:       store.Stage(req.Stage),
		Notes:       req.Notes,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// handleUpdateJob applies a partial update to one job record.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateJobRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	patch := store.JobPatch{
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		AppliedDate: req.AppliedDate,
		Notes:       req.Notes,
	}
	if req.Stage != nil {
		stage := store.Stage(*req.Stage)
		patch.Stage = &stage
	}
	if patch.IsEmpty() {
		s.fail(w, &ErrBadRequest{Message: "no fields to update"})
		return
	}

	if err := s.store.UpdateJob(r.Context(), session.UID, id, patch); err != nil {
		s.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteJob removes one job record outright.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
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

	if err := s.store.DeleteJob(r.Context(), session.UID, id); err != nil {
		s.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
