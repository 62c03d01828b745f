package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Board is an opened page: one adapter per placed widget, all started
// against the owning session's selection.
type Board struct {
	page      PageLayout
	selection *SelectionContext
	widgets   []boardWidget
	scoped    bool
	log       zerolog.Logger
	telemetry Telemetry

	mu     sync.Mutex
	closed bool
}

type boardWidget struct {
	def     WidgetDefinition
	adapter *Adapter
}

// PageView is a point-in-time snapshot of a board.
type PageView struct {
	Page         PageLayout     `json:"page"`
	SellerScoped bool           `json:"seller_scoped"`
	Selection    SelectionState `json:"selection"`
	Widgets      []WidgetView   `json:"widgets"`
}

// Loading reports whether the selection or any widget has not settled.
func (v PageView) Loading() bool {
	if v.SellerScoped && !v.Selection.Settled() {
		return true
	}
	for _, w := range v.Widgets {
		if w.State.Status == WidgetLoading {
			return true
		}
	}
	return false
}

func newBoard(page PageLayout, selection *SelectionContext, reg *Registry, deps AdapterDeps, opts Options) (*Board, error) {
	b := &Board{
		page:      page,
		selection: selection,
		scoped:    page.SellerScoped(reg),
		log:       opts.Logger.With().Str("page", page.Code).Logger(),
		telemetry: opts.Telemetry,
	}
	for _, placement := range page.Widgets {
		def, ok := reg.Definition(placement.Code)
		if !ok {
			return nil, errUnknownWidget(placement.Code)
		}
		factory, _ := reg.Factory(placement.Code)
		cfg := parseWidgetConfig(placement.Configuration, def.Defaults)
		adapter := NewAdapter(AdapterOptions{
			Code:      def.Code,
			Scope:     def.Scope,
			Fetch:     factory(deps, cfg),
			Timeout:   opts.FetchTimeout,
			Logger:    opts.Logger,
			Telemetry: opts.Telemetry,
		})
		adapter.OnChange(b.observe)
		b.widgets = append(b.widgets, boardWidget{def: def, adapter: adapter})
	}
	return b, nil
}

func (b *Board) start() {
	for _, w := range b.widgets {
		w.adapter.Start(b.selection)
	}
	b.log.Debug().Int("widgets", len(b.widgets)).Msg("board started")
}

// observe records settled widget transitions with the page they belong to.
func (b *Board) observe(code string, state WidgetState) {
	if state.Status == WidgetLoading {
		return
	}
	b.telemetry.Record(context.Background(), "dashboard.widget.state", map[string]any{
		"page":      b.page.Code,
		"widget":    code,
		"status":    string(state.Status),
		"seller_id": state.SellerID,
	})
}

// Page returns the layout page the board was opened for.
func (b *Board) Page() PageLayout { return b.page }

// View snapshots the selection and every widget state.
func (b *Board) View() PageView {
	view := PageView{
		Page:         b.page,
		SellerScoped: b.scoped,
		Selection:    b.selection.Snapshot(),
		Widgets:      make([]WidgetView, 0, len(b.widgets)),
	}
	for _, w := range b.widgets {
		view.Widgets = append(view.Widgets, WidgetView{
			Code:  w.def.Code,
			Name:  w.def.Name,
			State: w.adapter.State(),
		})
	}
	return view
}

// Wait blocks until every in-flight fetch has settled or ctx is done.
func (b *Board) Wait(ctx context.Context) error {
	group, gctx := errgroup.WithContext(ctx)
	for _, w := range b.widgets {
		adapter := w.adapter
		group.Go(func() error {
			return adapter.Wait(gctx)
		})
	}
	return group.Wait()
}

// Refresh re-fetches every widget for the current selection.
func (b *Board) Refresh() {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}
	for _, w := range b.widgets {
		w.adapter.Refresh()
	}
	b.telemetry.Record(context.Background(), "dashboard.board.refresh", map[string]any{
		"page": b.page.Code,
	})
}

// Close stops every adapter; pending responses are discarded.
func (b *Board) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()
	for _, w := range b.widgets {
		w.adapter.Close()
	}
	b.log.Debug().Msg("board closed")
}

// Closed reports whether Close has been called.
func (b *Board) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// settle waits up to d for the selection and then the board to go idle.
func (b *Board) settle(ctx context.Context, ready <-chan struct{}, d time.Duration) {
	if d <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	if b.scoped {
		select {
		case <-ready:
		case <-ctx.Done():
			return
		}
	}
	_ = b.Wait(ctx)
}
