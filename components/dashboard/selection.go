package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// SelectionStatus tracks the sellers list lifecycle.
type SelectionStatus string

const (
	SelectionUninitialized SelectionStatus = "uninitialized"
	SelectionLoading       SelectionStatus = "loading"
	SelectionReady         SelectionStatus = "ready"
	SelectionFailed        SelectionStatus = "failed"
)

// SelectionState is an immutable snapshot of the selection context.
type SelectionState struct {
	Status   SelectionStatus
	Selected Seller
	Sellers  []Seller
	Loading  bool
	Err      error
	Version  uint64
}

// Settled reports whether the initial sellers fetch has completed.
func (s SelectionState) Settled() bool {
	return s.Status == SelectionReady || s.Status == SelectionFailed
}

// SelectionListener receives every state change in delivery order.
type SelectionListener func(SelectionState)

// SelectionOptions configures a SelectionContext.
type SelectionOptions struct {
	Directory       SellerDirectory
	DefaultSellerID string
	Fallback        Seller
	Logger          *zerolog.Logger
	Telemetry       Telemetry
}

// SelectionContext owns the selected seller and the sellers collection.
// It is the only writer of that state; readers subscribe for changes.
//
// Listeners run synchronously on the goroutine that caused the change and
// must not call Init or ChangeSelection themselves.
type SelectionContext struct {
	opts SelectionOptions
	log  zerolog.Logger

	// emitMu is held across mutate+deliver so listeners observe versions in order.
	emitMu sync.Mutex
	mu     sync.RWMutex
	state  SelectionState
	subs   []selectionSubscription
	nextID int
}

type selectionSubscription struct {
	id int
	fn SelectionListener
}

// NewSelectionContext builds a context in the Uninitialized state.
func NewSelectionContext(opts SelectionOptions) *SelectionContext {
	if opts.Fallback.ID == "" {
		opts.Fallback = FallbackSeller
	}
	if opts.DefaultSellerID == "" {
		opts.DefaultSellerID = opts.Fallback.ID
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &SelectionContext{
		opts: opts,
		log:  log.With().Str("component", "selection").Logger(),
		state: SelectionState{
			Status:   SelectionUninitialized,
			Selected: opts.Fallback,
		},
	}
}

// Subscribe registers a listener and returns its unsubscribe func.
func (c *SelectionContext) Subscribe(fn SelectionListener) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, selectionSubscription{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.subs {
				if sub.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Snapshot returns a copy of the current state.
func (c *SelectionContext) Snapshot() SelectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSelectionState(c.state)
}

// Init loads the sellers list once. A failed fetch is recorded on the state
// and the fallback seller is selected; Init itself only fails when called
// on an already initialized context.
func (c *SelectionContext) Init(ctx context.Context) error {
	started := c.update(func(s *SelectionState) bool {
		if s.Status != SelectionUninitialized {
			return false
		}
		s.Status = SelectionLoading
		s.Loading = true
		return true
	})
	if !started {
		return fmt.Errorf("dashboard: selection already initialized")
	}

	var (
		sellers []Seller
		err     error
	)
	if c.opts.Directory == nil {
		err = fmt.Errorf("dashboard: seller directory not configured")
	} else {
		sellers, err = c.opts.Directory.ListSellers(ctx)
	}

	if err != nil {
		c.log.Warn().Err(err).Str("fallback_seller", c.opts.Fallback.ID).Msg("sellers fetch failed, using fallback")
		c.opts.Telemetry.Record(ctx, "dashboard.selection.failed", map[string]any{"error": err.Error()})
		c.update(func(s *SelectionState) bool {
			s.Status = SelectionFailed
			s.Loading = false
			s.Err = err
			s.Sellers = []Seller{c.opts.Fallback}
			s.Selected = c.opts.Fallback
			return true
		})
		return nil
	}

	sellers = c.uniqueSellers(sellers)
	if len(sellers) == 0 {
		sellers = []Seller{c.opts.Fallback}
	}
	selected := sellers[0]
	for _, seller := range sellers {
		if seller.ID == c.opts.DefaultSellerID {
			selected = seller
			break
		}
	}
	c.update(func(s *SelectionState) bool {
		s.Status = SelectionReady
		s.Loading = false
		s.Err = nil
		s.Sellers = sellers
		s.Selected = selected
		return true
	})
	c.opts.Telemetry.Record(ctx, "dashboard.selection.ready", map[string]any{
		"sellers":  len(sellers),
		"selected": selected.ID,
	})
	return nil
}

// ChangeSelection selects the seller with the given id. Unknown ids are a
// no-op and report false.
func (c *SelectionContext) ChangeSelection(id string) bool {
	return c.update(func(s *SelectionState) bool {
		for _, seller := range s.Sellers {
			if seller.ID == id {
				s.Selected = seller
				return true
			}
		}
		return false
	})
}

// Lookup finds a seller in the loaded collection.
func (c *SelectionContext) Lookup(id string) (Seller, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, seller := range c.state.Sellers {
		if seller.ID == id {
			return seller, true
		}
	}
	return Seller{}, false
}

// update applies mutate under the state lock and, when it reports a change,
// bumps the version and notifies listeners in subscription order.
func (c *SelectionContext) update(mutate func(*SelectionState) bool) bool {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if !mutate(&c.state) {
		c.mu.Unlock()
		return false
	}
	c.state.Version++
	snapshot := cloneSelectionState(c.state)
	subs := make([]selectionSubscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
	return true
}

func (c *SelectionContext) uniqueSellers(sellers []Seller) []Seller {
	seen := make(map[string]struct{}, len(sellers))
	out := make([]Seller, 0, len(sellers))
	for _, seller := range sellers {
		if seller.ID == "" {
			continue
		}
		if _, dup := seen[seller.ID]; dup {
			c.log.Debug().Str("seller_id", seller.ID).Msg("dropping duplicate seller")
			continue
		}
		seen[seller.ID] = struct{}{}
		out = append(out, seller)
	}
	return out
}

func cloneSelectionState(s SelectionState) SelectionState {
	out := s
	if s.Sellers != nil {
		out.Sellers = make([]Seller, len(s.Sellers))
		copy(out.Sellers, s.Sellers)
	}
	return out
}
