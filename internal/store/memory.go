package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory RecordStore used by tests and offline runs.
// Semantics mirror the Firestore implementation: last write wins, single
// record mutations are atomic under the lock, deletes are idempotent.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]UserAccount
	jobs  map[string]map[string]JobRecord // uid -> id -> record
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]UserAccount),
		jobs:  make(map[string]map[string]JobRecord),
		now:   time.Now,
	}
}

// CreateJob stores a new record and returns its assigned id.
func (m *MemoryStore) CreateJob(_ context.Context, uid string, in JobInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	if m.jobs[uid] == nil {
		m.jobs[uid] = make(map[string]JobRecord)
	}
	m.jobs[uid][id] = JobRecord{
		ID:          id,
		Company:     in.Company,
		Title:       in.Title,
		Location:    in.Location,
		AppliedDate: in.AppliedDate,
		Stage:       in.Stage,
		Status:      "Pending",
		Notes:       in.Notes,
		CreatedAt:   m.now().UTC(),
	}
	return id, nil
}

// ListJobs returns all records owned by uid, oldest first.
func (m *MemoryStore) ListJobs(_ context.Context, uid string) ([]JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]JobRecord, 0, len(m.jobs[uid]))
	for _, rec := range m.jobs[uid] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// UpdateJob applies a partial update to one record.
func (m *MemoryStore) UpdateJob(_ context.Context, uid, id string, patch JobPatch) error {
	if patch.Stage != nil && !ValidStage(*patch.Stage) {
		return &UnknownStageError{Stage: *patch.Stage}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.jobs[uid][id]
	if !ok {
		return &NotFoundError{Kind: "job", ID: id}
	}
	if patch.Company != nil {
		rec.Company = *patch.Company
	}
	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Location != nil {
		rec.Location = *patch.Location
	}
	if patch.AppliedDate != nil {
		rec.AppliedDate = *patch.AppliedDate
	}
	if patch.Stage != nil {
		rec.Stage = *patch.Stage
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}
	m.jobs[uid][id] = rec
	return nil
}

// DeleteJob removes one record. Deleting an absent record is a no-op.
func (m *MemoryStore) DeleteJob(_ context.Context, uid, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs[uid], id)
	return nil
}

// CountJobs returns the number of records owned by uid.
func (m *MemoryStore) CountJobs(_ context.Context, uid string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs[uid]), nil
}

// CreateUser stores a new user account document.
func (m *MemoryStore) CreateUser(_ context.Context, account UserAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.Joined.IsZero() {
		account.Joined = m.now().UTC()
	}
	if account.LastActive.IsZero() {
		account.LastActive = account.Joined
	}
	m.users[account.UID] = account
	return nil
}

// ListUsers returns every user account, ordered by UID for stable output.
func (m *MemoryStore) ListUsers(_ context.Context) ([]UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := make([]UserAccount, 0, len(m.users))
	for _, u := range m.users {
		accounts = append(accounts, u)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].UID < accounts[j].UID })
	return accounts, nil
}

// TouchActivity records that uid was active now.
func (m *MemoryStore) TouchActivity(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[uid]
	if !ok {
		return &NotFoundError{Kind: "user", ID: uid}
	}
	u.LastActive = m.now().UTC()
	m.users[uid] = u
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
