package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection = "users"
	jobsCollection  = "jobs"
)

// FirestoreStore is the production RecordStore, backed by a Firestore
// database. Jobs live in a per-user sub-collection (users/{uid}/jobs), so
// cross-session contention is prevented by the data partitioning itself.
// Mutations rely on Firestore's single-document atomicity only.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the Firestore database of the given project.
func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, &ServiceError{Op: "connect", Cause: err}
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) jobs(uid string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(uid).Collection(jobsCollection)
}

// CreateJob stores a new record under users/{uid}/jobs and returns the
// database-assigned document id.
func (s *FirestoreStore) CreateJob(ctx context.Context, uid string, in JobInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}

	ref := s.jobs(uid).NewDoc()
	rec := JobRecord{
		Company:     in.Company,
		Title:       in.Title,
		Location:    in.Location,
		AppliedDate: in.AppliedDate,
		Stage:       in.Stage,
		Status:      "Pending",
		Notes:       in.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := ref.Create(ctx, rec); err != nil {
		return "", &ServiceError{Op: "create job", Cause: err}
	}
	return ref.ID, nil
}

// ListJobs streams all records owned by uid, oldest first.
func (s *FirestoreStore) ListJobs(ctx context.Context, uid string) ([]JobRecord, error) {
	iter := s.jobs(uid).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var records []JobRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &ServiceError{Op: "list jobs", Cause: err}
		}
		var rec JobRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, &ServiceError{Op: "decode job", Cause: err}
		}
		rec.ID = doc.Ref.ID
		records = append(records, rec)
	}
	return records, nil
}

// UpdateJob applies a partial update to one record. Each mutation is a single
// document write; concurrent edits are last-write-wins.
func (s *FirestoreStore) UpdateJob(ctx context.Context, uid, id string, patch JobPatch) error {
	if patch.Stage != nil && !ValidStage(*patch.Stage) {
		return &UnknownStageError{Stage: *patch.Stage}
	}

	var updates []firestore.Update
	if patch.Company != nil {
		updates = append(updates, firestore.Update{Path: "company", Value: *patch.Company})
	}
	if patch.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *patch.Title})
	}
	if patch.Location != nil {
		updates = append(updates, firestore.Update{Path: "location", Value: *patch.Location})
	}
	if patch.AppliedDate != nil {
		updates = append(updates, firestore.Update{Path: "applied_date", Value: *patch.AppliedDate})
	}
	if patch.Stage != nil {
		updates = append(updates, firestore.Update{Path: "stage", Value: string(*patch.Stage)})
	}
	if patch.Notes != nil {
		updates = append(updates, firestore.Update{Path: "notes", Value: *patch.Notes})
	}
	if len(updates) == 0 {
		return nil
	}

	if _, err := s.jobs(uid).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return &NotFoundError{Kind: "job", ID: id}
		}
		return &ServiceError{Op: "update job", Cause: err}
	}
	return nil
}

// DeleteJob removes one record outright. Deleting an absent record succeeds.
func (s *FirestoreStore) DeleteJob(ctx context.Context, uid, id string) error {
	if _, err := s.jobs(uid).Doc(id).Delete(ctx); err != nil {
		return &ServiceError{Op: "delete job", Cause: err}
	}
	return nil
}

// CountJobs re-queries the user's sub-collection and counts the documents.
func (s *FirestoreStore) CountJobs(ctx context.Context, uid string) (int, error) {
	iter := s.jobs(uid).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, &ServiceError{Op: "count jobs", Cause: err}
		}
		count++
	}
	return count, nil
}

// CreateUser stores the account document at users/{uid}.
func (s *FirestoreStore) CreateUser(ctx context.Context, account UserAccount) error {
	if account.Joined.IsZero() {
		account.Joined = time.Now().UTC()
	}
	if account.LastActive.IsZero() {
		account.LastActive = account.Joined
	}
	if _, err := s.client.Collection(usersCollection).Doc(account.UID).Create(ctx, account); err != nil {
		return &ServiceError{Op: "create user", Cause: err}
	}
	return nil
}

// ListUsers streams every user account document.
func (s *FirestoreStore) ListUsers(ctx context.Context) ([]UserAccount, error) {
	iter := s.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var accounts []UserAccount
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &ServiceError{Op: "list users", Cause: err}
		}
		var account UserAccount
		if err := doc.DataTo(&account); err != nil {
			return nil, &ServiceError{Op: "decode user", Cause: err}
		}
		account.UID = doc.Ref.ID
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// TouchActivity updates the account's last_active timestamp.
func (s *FirestoreStore) TouchActivity(ctx context.Context, uid string) error {
	_, err := s.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "last_active", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &NotFoundError{Kind: "user", ID: uid}
		}
		return &ServiceError{Op: "touch activity", Cause: err}
	}
	return nil
}

// Close releases the Firestore client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
