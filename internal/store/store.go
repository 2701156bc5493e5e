// Package store provides persistence for user accounts and their job
// application records. The production implementation is backed by Firestore;
// an in-memory implementation exists for tests and offline runs.
package store

import (
	"context"
	"fmt"
	"time"
)

// Stage is the pipeline position of a job application record.
type Stage string

// Stage values are part of the stored document format and must not change.
const (
	StageWishlist  Stage = "Wishlist"
	StageApplied   Stage = "Applied"
	StageInterview Stage = "Interview"
	StageOffer     Stage = "Offer"
	StageRejected  Stage = "Rejected"
)

// Stages lists all valid stages in board order.
var Stages = []Stage{StageWishlist, StageApplied, StageInterview, StageOffer, StageRejected}

// ValidStage reports whether s is one of the enumerated stages.
func ValidStage(s Stage) bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

// JobRecord is a single tracked job application. Field names are the wire
// format shared with existing user documents and must be preserved exactly.
type JobRecord struct {
	ID          string    `json:"id" firestore:"-"`
	Company     string    `json:"company" firestore:"company"`
	Title       string    `json:"title" firestore:"title"`
	Location    string    `json:"location,omitempty" firestore:"location"`
	AppliedDate string    `json:"applied_date" firestore:"applied_date"`
	Stage       Stage     `json:"stage" firestore:"stage"`
	Status      string    `json:"status,omitempty" firestore:"status"`
	Notes       string    `json:"notes,omitempty" firestore:"notes"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at"`
}

// JobInput holds the caller-supplied fields for a new job record. The id and
// creation timestamp are assigned by the store.
type JobInput struct {
	Company     string
	Title       string
	Location    string
	AppliedDate string
	Stage       Stage
	Notes       string
}

// JobPatch is a partial update of a job record. Nil fields are left untouched.
// The creation timestamp is immutable and cannot be patched.
type JobPatch struct {
	Company     *string
	Title       *string
	Location    *string
	AppliedDate *string
	Stage       *Stage
	Notes       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Company == nil && p.Title == nil && p.Location == nil &&
		p.AppliedDate == nil && p.Stage == nil && p.Notes == nil
}

// UserAccount is a registered user. Job records hang off the account as a
// per-user sub-collection keyed by UID.
type UserAccount struct {
	UID        string    `json:"uid" firestore:"-"`
	Email      string    `json:"email" firestore:"email"`
	Joined     time.Time `json:"joined" firestore:"joined"`
	LastActive time.Time `json:"last_active" firestore:"last_active"`
}

// RecordStore is the persistence abstraction over per-user job application
// documents and the user accounts that own them. Every job operation applies
// to exactly one user's sub-collection; there is no cross-user access path.
type RecordStore interface {
	// CreateJob stores a new record for uid and returns the assigned id.
	// The stage must be one of the enumerated values.
	CreateJob(ctx context.Context, uid string, in JobInput) (string, error)
	// ListJobs returns all records owned by uid.
	ListJobs(ctx context.Context, uid string) ([]JobRecord, error)
	// UpdateJob applies a partial update to one record. An unknown stage
	// value is rejected with UnknownStageError before anything is written.
	UpdateJob(ctx context.Context, uid, id string, patch JobPatch) error
	// DeleteJob removes one record outright. No soft-delete, no history.
	DeleteJob(ctx context.Context, uid, id string) error
	// CountJobs returns the number of records owned by uid.
	CountJobs(ctx context.Context, uid string) (int, error)

	// CreateUser stores a new user account document.
	CreateUser(ctx context.Context, account UserAccount) error
	// ListUsers returns every user account.
	ListUsers(ctx context.Context) ([]UserAccount, error)
	// TouchActivity records that uid was active now.
	TouchActivity(ctx context.Context, uid string) error

	// Close releases any resources held by the store.
	Close() error
}

// UnknownStageError indicates a stage value outside the fixed enumeration.
type UnknownStageError struct {
	Stage Stage
}

func (e *UnknownStageError) Error() string {
	return fmt.Sprintf("unknown stage %q (valid: %v)", e.Stage, Stages)
}

// NotFoundError indicates the addressed record or user does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ServiceError indicates the backing database call failed.
type ServiceError struct {
	Op    string
	Cause error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("store: %s failed: %v", e.Op, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// validateInput checks a JobInput before it is written.
func validateInput(in JobInput) error {
	if !ValidStage(in.Stage) {
		return &UnknownStageError{Stage: in.Stage}
	}
	return nil
}
