package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFetchTimeout bounds a single adapter fetch.
const DefaultFetchTimeout = 8 * time.Second

// AdapterScope says whether an adapter follows the seller selection.
type AdapterScope string

const (
	ScopeSeller   AdapterScope = "seller"
	ScopePlatform AdapterScope = "platform"
)

// FetchFunc loads a response and turns it into a view-model. Platform
// adapters receive an empty seller id.
type FetchFunc func(ctx context.Context, sellerID string) (*ViewModel, error)

// StateListener is notified after every adapter transition.
type StateListener func(code string, state WidgetState)

// AdapterOptions configures an Adapter.
type AdapterOptions struct {
	Code      string
	Scope     AdapterScope
	Fetch     FetchFunc
	Timeout   time.Duration
	Logger    *zerolog.Logger
	Telemetry Telemetry
}

// Adapter drives one widget: it fetches when the selection changes and
// publishes WidgetState transitions. Every fetch carries a tag made of the
// seller id and a sequence number; results whose tag is no longer current
// are dropped, so the latest selection always wins.
type Adapter struct {
	code      string
	scope     AdapterScope
	fetch     FetchFunc
	timeout   time.Duration
	log       zerolog.Logger
	telemetry Telemetry

	base context.Context
	stop context.CancelFunc

	emitMu      sync.Mutex
	mu          sync.Mutex
	state       WidgetState
	seq         uint64
	current     requestTag
	cancel      context.CancelFunc
	listeners   []StateListener
	selection   *SelectionContext
	unsubscribe func()
	closed      bool
	inflight    int
	idle        chan struct{}
}

type requestTag struct {
	sellerID string
	seq      uint64
}

var errNoFetch = errors.New("dashboard: adapter has no fetch func")

// NewAdapter builds an idle adapter in the Loading state.
func NewAdapter(opts AdapterOptions) *Adapter {
	if opts.Scope == "" {
		opts.Scope = ScopeSeller
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	if opts.Fetch == nil {
		opts.Fetch = func(context.Context, string) (*ViewModel, error) { return nil, errNoFetch }
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	base, stop := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	return &Adapter{
		code:      opts.Code,
		scope:     opts.Scope,
		fetch:     opts.Fetch,
		timeout:   opts.Timeout,
		log:       log.With().Str("widget", opts.Code).Logger(),
		telemetry: normalizeTelemetry(opts.Telemetry),
		base:      base,
		stop:      stop,
		state:     WidgetState{Status: WidgetLoading},
		idle:      idle,
	}
}

// Code returns the widget code the adapter serves.
func (a *Adapter) Code() string { return a.code }

// Scope returns the adapter scope.
func (a *Adapter) Scope() AdapterScope { return a.scope }

// State returns a copy of the latest published state.
func (a *Adapter) State() WidgetState {
	a.mu.Lock()
	defer a.mu.Unlock()
	state := a.state
	state.ViewModel = state.ViewModel.Clone()
	return state
}

// OnChange registers a listener for state transitions.
func (a *Adapter) OnChange(fn StateListener) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.listeners = append(a.listeners, fn)
	a.mu.Unlock()
}

// Start begins fetching. Seller adapters subscribe to selection and load
// the current seller once it has settled; platform adapters load right away.
func (a *Adapter) Start(selection *SelectionContext) {
	if a.scope == ScopePlatform {
		a.load("")
		return
	}
	if selection == nil {
		return
	}
	a.mu.Lock()
	if a.closed || a.unsubscribe != nil {
		a.mu.Unlock()
		return
	}
	a.selection = selection
	a.mu.Unlock()

	unsubscribe := selection.Subscribe(a.onSelection)
	a.mu.Lock()
	a.unsubscribe = unsubscribe
	a.mu.Unlock()

	if snapshot := selection.Snapshot(); snapshot.Settled() {
		a.onSelection(snapshot)
	}
}

// Refresh re-fetches for the current selection (or the platform).
func (a *Adapter) Refresh() {
	if a.scope == ScopePlatform {
		a.load("")
		return
	}
	a.mu.Lock()
	selection := a.selection
	a.mu.Unlock()
	if selection == nil {
		return
	}
	snapshot := selection.Snapshot()
	if !snapshot.Settled() {
		return
	}
	a.load(snapshot.Selected.ID)
}

// Wait blocks until no fetch is in flight or ctx is done.
func (a *Adapter) Wait(ctx context.Context) error {
	a.mu.Lock()
	idle := a.idle
	a.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close unsubscribes from the selection and abandons any pending fetch.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	unsubscribe := a.unsubscribe
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	a.stop()
}

func (a *Adapter) onSelection(state SelectionState) {
	if !state.Settled() {
		return
	}
	a.mu.Lock()
	unchanged := a.seq > 0 && a.current.sellerID == state.Selected.ID
	a.mu.Unlock()
	if unchanged {
		return
	}
	a.load(state.Selected.ID)
}

func (a *Adapter) load(sellerID string) {
	a.emitMu.Lock()
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.emitMu.Unlock()
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.seq++
	tag := requestTag{sellerID: sellerID, seq: a.seq}
	ctx, cancel := context.WithTimeout(a.base, a.timeout)
	a.current = tag
	a.cancel = cancel
	if a.inflight == 0 {
		a.idle = make(chan struct{})
	}
	a.inflight++
	a.state = WidgetState{
		Status:    WidgetLoading,
		SellerID:  sellerID,
		Seq:       tag.seq,
		UpdatedAt: time.Now(),
	}
	state := a.state
	listeners := append([]StateListener(nil), a.listeners...)
	a.mu.Unlock()
	a.emit(listeners, state)
	a.emitMu.Unlock()

	go a.run(ctx, cancel, tag)
}

func (a *Adapter) run(ctx context.Context, cancel context.CancelFunc, tag requestTag) {
	defer cancel()
	started := time.Now()
	vm, err := a.fetch(ctx, tag.sellerID)
	a.apply(tag, vm, err, time.Since(started))
}

func (a *Adapter) apply(tag requestTag, vm *ViewModel, err error, took time.Duration) {
	a.emitMu.Lock()
	defer a.emitMu.Unlock()

	a.mu.Lock()
	a.inflight--
	if a.inflight == 0 {
		// Waiters wake only after listeners have seen the final state.
		defer close(a.idle)
	}
	if a.closed || tag != a.current {
		current := a.current
		a.mu.Unlock()
		a.log.Debug().
			Str("seller_id", tag.sellerID).
			Uint64("seq", tag.seq).
			Uint64("current_seq", current.seq).
			Msg("discarding stale response")
		a.telemetry.Record(a.base, "dashboard.adapter.stale", map[string]any{
			"widget":    a.code,
			"seller_id": tag.sellerID,
		})
		return
	}

	next := WidgetState{
		SellerID:  tag.sellerID,
		Seq:       tag.seq,
		UpdatedAt: time.Now(),
	}
	switch {
	case err != nil:
		next.Status = WidgetError
		next.Err = err
	case vm.IsEmpty():
		next.Status = WidgetEmpty
	default:
		next.Status = WidgetReady
		next.ViewModel = vm
	}
	a.state = next
	a.cancel = nil
	listeners := append([]StateListener(nil), a.listeners...)
	a.mu.Unlock()

	if err != nil {
		a.log.Warn().Err(err).Str("seller_id", tag.sellerID).Dur("took", took).Msg("widget fetch failed")
	}
	a.telemetry.Record(a.base, "dashboard.adapter.fetch", map[string]any{
		"widget":    a.code,
		"seller_id": tag.sellerID,
		"outcome":   string(next.Status),
		"duration":  took,
	})
	a.emit(listeners, next)
}

func (a *Adapter) emit(listeners []StateListener, state WidgetState) {
	for _, fn := range listeners {
		fn(a.code, state)
	}
}
