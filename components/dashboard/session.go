package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is one viewer: a SelectionContext plus at most one open Board.
type Session struct {
	id        string
	service   *Service
	selection *SelectionContext
	log       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	ready  chan struct{}
	start  sync.Once

	mu       sync.Mutex
	board    *Board
	closed   bool
	lastSeen time.Time
}

func newSession(s *Service) *Session {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	log := s.opts.Logger.With().Str("session", id).Logger()
	return &Session{
		id:      id,
		service: s,
		selection: NewSelectionContext(SelectionOptions{
			Directory:       s.opts.Directory,
			DefaultSellerID: s.opts.DefaultSellerID,
			Fallback:        s.opts.Fallback,
			Logger:          &log,
			Telemetry:       s.opts.Telemetry,
		}),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		ready:    make(chan struct{}),
		lastSeen: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Selection exposes the session selection context.
func (s *Session) Selection() *SelectionContext { return s.selection }

// Start loads the sellers list in the background. Later calls are no-ops.
func (s *Session) Start() {
	s.start.Do(func() {
		go func() {
			defer close(s.ready)
			if err := s.selection.Init(s.ctx); err != nil {
				s.log.Warn().Err(err).Msg("selection init")
			}
		}()
	})
}

// Ready is closed once the selection has settled.
func (s *Session) Ready() <-chan struct{} { return s.ready }

// WaitReady blocks until the selection settled or ctx is done.
func (s *Session) WaitReady(ctx context.Context) error {
	s.Start()
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Open returns the board for page, building it if needed. Opening a
// different page closes the previous board first.
func (s *Session) Open(page string) (*Board, error) {
	s.Start()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errSessionClosed
	}
	s.lastSeen = time.Now()
	if s.board != nil && s.board.Page().Code == page && !s.board.Closed() {
		return s.board, nil
	}
	layout, ok := s.service.opts.Layout.Page(page)
	if !ok {
		return nil, ErrUnknownPage
	}
	board, err := newBoard(layout, s.selection, s.service.opts.Registry, s.service.deps, s.service.opts)
	if err != nil {
		return nil, err
	}
	if s.board != nil {
		s.board.Close()
	}
	s.board = board
	board.start()
	s.service.recordTelemetry(s.ctx, "dashboard.page.open", map[string]any{
		"page":    page,
		"session": s.id,
	})
	return board, nil
}

// Board returns the currently open board, if any.
func (s *Session) Board() (*Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board, s.board != nil
}

// View opens page and waits up to the settle timeout before snapshotting it.
func (s *Session) View(ctx context.Context, page string) (PageView, error) {
	board, err := s.Open(page)
	if err != nil {
		return PageView{}, err
	}
	board.settle(ctx, s.ready, s.service.opts.SettleTimeout)
	return board.View(), nil
}

// ChangeSeller selects a seller from the loaded list. It waits for the list
// to load, bounded by ctx and the settle timeout when one is set, and
// returns ErrSelectionLoading if it does not. Unknown ids return
// ErrSellerNotFound and leave the selection untouched.
func (s *Session) ChangeSeller(ctx context.Context, id string) error {
	if timeout := s.service.opts.SettleTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := s.WaitReady(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSelectionLoading, err)
	}
	if _, ok := s.selection.Lookup(id); !ok {
		return ErrSellerNotFound
	}
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
	s.selection.ChangeSelection(id)
	return nil
}

// Refresh re-fetches every widget on the open board.
func (s *Session) Refresh() {
	if board, ok := s.Board(); ok {
		board.Refresh()
	}
}

// Close tears down the board and cancels the pending sellers load.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	board := s.board
	s.board = nil
	s.mu.Unlock()
	if board != nil {
		board.Close()
	}
	s.cancel()
}

func (s *Session) valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

func (s *Session) touchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
