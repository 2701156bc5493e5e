// Package analytics computes the admin dashboard aggregates. Everything is
// recomputed from the store on every call; there is no caching or
// incremental maintenance.
package analytics

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

// maxConcurrentCounts bounds the per-user count fan-out.
const maxConcurrentCounts = 8

// UserCount pairs a user with the number of jobs they track.
type UserCount struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Jobs  int    `json:"jobs"`
}

// Summary is the admin dashboard payload.
type Summary struct {
	TotalUsers    int         `json:"total_users"`
	ActiveToday   int         `json:"active_today"`
	TotalJobs     int         `json:"total_jobs"`
	PerUserCounts []UserCount `json:"per_user_counts"`
}

// Aggregator computes summaries from a record store.
type Aggregator struct {
	store store.RecordStore
	now   func() time.Time
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(s store.RecordStore) *Aggregator {
	return &Aggregator{store: s, now: time.Now}
}

// Summarize streams all users and re-queries each user's job sub-collection.
// The per-user counts are an O(users) fan-out of secondary queries, run with
// bounded concurrency.
func (a *Aggregator) Summarize(ctx context.Context) (*Summary, error) {
	users, err := a.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	today := a.now().UTC().Truncate(24 * time.Hour)
	summary := &Summary{
		TotalUsers:    len(users),
		PerUserCounts: make([]UserCount, len(users)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCounts)
	for i, u := range users {
		g.Go(func() error {
			n, err := a.store.CountJobs(gctx, u.UID)
			if err != nil {
				return err
			}
			summary.PerUserCounts[i] = UserCount{UID: u.UID, Email: u.Email, Jobs: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.LastActive.UTC().Truncate(24 * time.Hour).Equal(today) {
			summary.ActiveToday++
		}
	}
	for _, c := range summary.PerUserCounts {
		summary.TotalJobs += c.Jobs
	}
	sort.Slice(summary.PerUserCounts, func(i, j int) bool {
		if summary.PerUserCounts[i].Jobs != summary.PerUserCounts[j].Jobs {
			return summary.PerUserCounts[i].Jobs > summary.PerUserCounts[j].Jobs
		}
		return summary.PerUserCounts[i].UID < summary.PerUserCounts[j].UID
	})
	return summary, nil
}
