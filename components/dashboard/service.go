package dashboard

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultMaxSessions   = 64
	defaultSettleTimeout = 1500 * time.Millisecond
)

var errMissingRepository = errors.New("dashboard: analytics repository not configured")

// Options configures the dashboard Service. Collaborators are interfaces so
// the analytics client, a mock, or a test fake can back the same service.
type Options struct {
	Directory       SellerDirectory
	Sellers         SellerMetricsRepository
	Platform        PlatformMetricsRepository
	Registry        *Registry
	Layout          *Layout
	ConfigValidator ConfigValidator
	DefaultSellerID string
	Fallback        Seller
	FetchTimeout    time.Duration
	SettleTimeout   time.Duration
	MaxSessions     int
	Logger          *zerolog.Logger
	Telemetry       Telemetry
}

// Service owns the widget registry and layout and hands out sessions.
type Service struct {
	opts Options
	deps AdapterDeps

	mu       sync.Mutex
	sessions map[string]*list.Element
	lru      *list.List
}

// NewService builds a Service with safe defaults. The layout is validated
// against the registry and widget schemas up front.
func NewService(opts Options) (*Service, error) {
	unavailable := unavailableRepository{err: errMissingRepository}
	if opts.Directory == nil {
		opts.Directory = unavailable
	}
	if opts.Sellers == nil {
		opts.Sellers = unavailable
	}
	if opts.Platform == nil {
		opts.Platform = unavailable
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Layout == nil {
		opts.Layout = DefaultLayout()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Fallback.ID == "" {
		opts.Fallback = FallbackSeller
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.SettleTimeout < 0 {
		opts.SettleTimeout = 0
	} else if opts.SettleTimeout == 0 {
		opts.SettleTimeout = defaultSettleTimeout
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	if err := opts.Layout.Validate(opts.Registry, opts.ConfigValidator); err != nil {
		return nil, err
	}
	return &Service{
		opts:     opts,
		deps:     AdapterDeps{Sellers: opts.Sellers, Platform: opts.Platform},
		sessions: make(map[string]*list.Element),
		lru:      list.New(),
	}, nil
}

// Layout returns the active layout.
func (s *Service) Layout() *Layout { return s.opts.Layout }

// Registry returns the widget registry.
func (s *Service) Registry() *Registry { return s.opts.Registry }

// NewSession creates and starts a session, evicting the least recently used
// one when the cap is reached.
func (s *Service) NewSession() *Session {
	sess := newSession(s)
	s.mu.Lock()
	s.sessions[sess.id] = s.lru.PushFront(sess)
	var evicted []*Session
	for s.lru.Len() > s.opts.MaxSessions {
		oldest := s.lru.Back()
		victim := s.lru.Remove(oldest).(*Session)
		delete(s.sessions, victim.id)
		evicted = append(evicted, victim)
	}
	s.mu.Unlock()

	for _, victim := range evicted {
		victim.Close()
		s.recordTelemetry(context.Background(), "dashboard.session.evicted", map[string]any{"session": victim.id})
	}
	sess.Start()
	s.recordTelemetry(context.Background(), "dashboard.session.open", map[string]any{"session": sess.id})
	return sess
}

// Session returns a live session by id and marks it recently used.
func (s *Service) Session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	s.lru.MoveToFront(elem)
	sess := elem.Value.(*Session)
	return sess, sess.valid()
}

// SessionOrNew returns the session for id, or a fresh one.
func (s *Service) SessionOrNew(id string) (*Session, bool) {
	if id != "" {
		if sess, ok := s.Session(id); ok {
			return sess, false
		}
	}
	return s.NewSession(), true
}

// CloseSession closes and forgets a session.
func (s *Service) CloseSession(id string) {
	s.mu.Lock()
	elem, ok := s.sessions[id]
	if ok {
		s.lru.Remove(elem)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if ok {
		elem.Value.(*Session).Close()
	}
}

// SweepIdle closes sessions untouched for longer than maxIdle and returns
// how many were closed.
func (s *Service) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	var stale []*Session
	for elem := s.lru.Back(); elem != nil; {
		prev := elem.Prev()
		sess := elem.Value.(*Session)
		if sess.touchedAt().Before(cutoff) {
			s.lru.Remove(elem)
			delete(s.sessions, sess.id)
			stale = append(stale, sess)
		}
		elem = prev
	}
	s.mu.Unlock()
	for _, sess := range stale {
		sess.Close()
	}
	return len(stale)
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Close closes every session.
func (s *Service) Close() {
	s.mu.Lock()
	all := make([]*Session, 0, s.lru.Len())
	for elem := s.lru.Front(); elem != nil; elem = elem.Next() {
		all = append(all, elem.Value.(*Session))
	}
	s.lru.Init()
	s.sessions = make(map[string]*list.Element)
	s.mu.Unlock()
	for _, sess := range all {
		sess.Close()
	}
}

// ChangeSeller changes the selection of a session.
func (s *Service) ChangeSeller(ctx context.Context, sessionID, sellerID string) error {
	sess, ok := s.Session(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	if err := sess.ChangeSeller(ctx, sellerID); err != nil {
		return err
	}
	s.recordTelemetry(sess.ctx, "dashboard.selection.change", map[string]any{
		"session":   sessionID,
		"seller_id": sellerID,
	})
	return nil
}

// RefreshPage re-fetches the board a session has open on page.
func (s *Service) RefreshPage(sessionID, page string) error {
	sess, ok := s.Session(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	board, err := sess.Open(page)
	if err != nil {
		return err
	}
	board.Refresh()
	return nil
}

// PageView opens page on a session and snapshots it once settled or after
// the settle timeout.
func (s *Service) PageView(ctx context.Context, sessionID, page string) (PageView, error) {
	sess, ok := s.Session(sessionID)
	if !ok {
		return PageView{}, ErrSessionNotFound
	}
	return sess.View(ctx, page)
}

// Sellers returns the session selection snapshot, waiting for the sellers
// list when ctx allows.
func (s *Service) Sellers(ctx context.Context, sessionID string) (SelectionState, error) {
	sess, ok := s.Session(sessionID)
	if !ok {
		return SelectionState{}, ErrSessionNotFound
	}
	_ = sess.WaitReady(ctx)
	return sess.Selection().Snapshot(), nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
