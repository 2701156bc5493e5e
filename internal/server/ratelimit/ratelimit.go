// Package ratelimit provides a per-client token bucket limiter for the
// model-backed endpoints. Generation calls are metered; CRUD traffic is not.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultCapacity is the burst allowance per client.
const DefaultCapacity = 10

// DefaultRefillRate is tokens per second per client.
const DefaultRefillRate = 0.2

// sweepInterval is how often idle buckets are evicted from the map.
const sweepInterval = time.Minute

// bucket refills at a steady rate up to its capacity.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter meters requests per client key.
type Limiter struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	buckets    map[string]*bucket
	lastSweep  time.Time
	now        func() time.Time
}

// NewLimiter creates a Limiter. Non-positive arguments fall back to defaults.
func NewLimiter(capacity int, refillRate float64) *Limiter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if refillRate <= 0 {
		refillRate = DefaultRefillRate
	}
	return &Limiter{
		capacity:   capacity,
		refillRate: refillRate,
		buckets:    make(map[string]*bucket),
		lastSweep:  time.Now(),
		now:        time.Now,
	}
}

// Allow consumes one token for the client if available.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.evictFull(now)
		l.lastSweep = now
	}

	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.capacity), lastRefill: now}
		l.buckets[clientID] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * l.refillRate
	if b.tokens > float64(l.capacity) {
		b.tokens = float64(l.capacity)
	}
	b.lastRefill = now

	if b.tokens < 1.0 {
		return false
	}
	b.tokens -= 1.0
	return true
}

// evictFull drops buckets that have refilled to capacity; a client seen
// again later starts over with the same full bucket. Keeps the map from
// growing one entry per client forever.
func (l *Limiter) evictFull(now time.Time) {
	for id, b := range l.buckets {
		if b.tokens+now.Sub(b.lastRefill).Seconds()*l.refillRate >= float64(l.capacity) {
			delete(l.buckets, id)
		}
	}
}
