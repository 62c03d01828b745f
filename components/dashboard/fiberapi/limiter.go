package fiberapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RefreshLimiter throttles manual refreshes per session.
type RefreshLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	sessions map[string]*refreshVisitor
}

type refreshVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRefreshLimiter allows perSecond refreshes with the given burst. A
// non-positive rate returns nil, which allows everything.
func NewRefreshLimiter(perSecond float64, burst int) *RefreshLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RefreshLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		sessions: make(map[string]*refreshVisitor),
	}
}

// Allow reports whether sessionID may refresh now.
func (l *RefreshLimiter) Allow(sessionID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	v, ok := l.sessions[sessionID]
	if !ok {
		v = &refreshVisitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.sessions[sessionID] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()
	return v.limiter.Allow()
}

// Prune forgets sessions idle for longer than maxIdle.
func (l *RefreshLimiter) Prune(maxIdle time.Duration) int {
	if l == nil {
		return 0
	}
	cutoff := time.Now().Add(-maxIdle)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for id, v := range l.sessions {
		if v.lastSeen.Before(cutoff) {
			delete(l.sessions, id)
			removed++
		}
	}
	return removed
}
