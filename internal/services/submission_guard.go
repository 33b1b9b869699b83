// internal/services/submission_guard.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubmissionGuard hands out one-shot form tokens so a form posted twice
// (double click, browser resubmit) creates at most one review.
type SubmissionGuard struct {
	mtx       sync.Mutex
	redeemed  map[string]time.Time
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewSubmissionGuard(ttl time.Duration) *SubmissionGuard {
	return &SubmissionGuard{
		redeemed: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue returns a fresh token to embed in a rendered form.
func (g *SubmissionGuard) Issue() string {
	return uuid.NewString()
}

// Redeem reports whether a submission carrying token may proceed. The first
// redemption of a token wins until the TTL expires. An empty token is
// always allowed.
func (g *SubmissionGuard) Redeem(token string) bool {
	if token == "" {
		return true
	}

	g.mtx.Lock()
	defer g.mtx.Unlock()

	now := g.now()
	g.sweep(now)

	if expires, seen := g.redeemed[token]; seen && now.Before(expires) {
		return false
	}
	g.redeemed[token] = now.Add(g.ttl)
	return true
}

// Release makes token redeemable again, used when the submission it guarded failed.
func (g *SubmissionGuard) Release(token string) {
	if token == "" {
		return
	}
	g.mtx.Lock()
	delete(g.redeemed, token)
	g.mtx.Unlock()
}

// sweep drops expired tokens at most once a minute.
func (g *SubmissionGuard) sweep(now time.Time) {
	if now.Sub(g.lastSweep) < time.Minute {
		return
	}
	g.lastSweep = now
	for token, expires := range g.redeemed {
		if !now.Before(expires) {
			delete(g.redeemed, token)
		}
	}
}
