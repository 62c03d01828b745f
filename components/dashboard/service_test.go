package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

type serviceFixture struct {
	service   *Service
	sellers   *fakeSellers
	telemetry *recordingTelemetry
}

func newServiceFixture(t *testing.T, mutate func(*Options)) serviceFixture {
	t.Helper()
	fx := serviceFixture{sellers: newFakeSellers(), telemetry: &recordingTelemetry{}}
	opts := Options{
		Directory:     &fakeDirectory{sellers: []Seller{sellerA, sellerB, sellerC}},
		Sellers:       fx.sellers,
		Platform:      &fakePlatform{},
		SettleTimeout: 2 * time.Second,
		Telemetry:     fx.telemetry,
	}
	if mutate != nil {
		mutate(&opts)
	}
	service, err := NewService(opts)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	t.Cleanup(service.Close)
	fx.service = service
	return fx
}

func waitBoard(t *testing.T, board *Board) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := board.Wait(ctx); err != nil {
		t.Fatalf("board did not settle: %v", err)
	}
}

func widgetState(t *testing.T, view PageView, code string) WidgetState {
	t.Helper()
	for _, w := range view.Widgets {
		if w.Code == code {
			return w.State
		}
	}
	t.Fatalf("widget %s not on page %s", code, view.Page.Code)
	return WidgetState{}
}

func TestServicePageViewSettles(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()

	view, err := fx.service.PageView(context.Background(), sess.ID(), PageSeller)
	if err != nil {
		t.Fatalf("PageView returned error: %v", err)
	}
	if view.Loading() {
		t.Fatalf("expected settled page view")
	}
	if view.Selection.Selected != sellerA {
		t.Fatalf("expected first seller selected, got %+v", view.Selection.Selected)
	}
	if len(view.Widgets) != 4 {
		t.Fatalf("expected 4 seller widgets, got %d", len(view.Widgets))
	}
	for _, w := range view.Widgets {
		if w.State.Status != WidgetReady {
			t.Fatalf("widget %s not ready: %s", w.Code, w.State.Status)
		}
		if w.State.SellerID != sellerA.ID {
			t.Fatalf("widget %s loaded for %s", w.Code, w.State.SellerID)
		}
	}
	if len(fx.telemetry.named("dashboard.page.open")) != 1 {
		t.Fatalf("expected page.open telemetry")
	}
	if len(fx.telemetry.named("dashboard.session.open")) != 1 {
		t.Fatalf("expected session.open telemetry")
	}
}

func TestServiceDefaultSeller(t *testing.T) {
	fx := newServiceFixture(t, func(o *Options) { o.DefaultSellerID = sellerC.ID })
	sess := fx.service.NewSession()
	state, err := fx.service.Sellers(context.Background(), sess.ID())
	if err != nil {
		t.Fatalf("Sellers returned error: %v", err)
	}
	if state.Selected != sellerC {
		t.Fatalf("expected default seller, got %+v", state.Selected)
	}
	if len(state.Sellers) != 3 {
		t.Fatalf("expected 3 sellers, got %d", len(state.Sellers))
	}
}

func TestServiceChangeSellerRefetches(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()
	if _, err := fx.service.PageView(context.Background(), sess.ID(), PageSeller); err != nil {
		t.Fatalf("PageView returned error: %v", err)
	}

	if err := fx.service.ChangeSeller(context.Background(), sess.ID(), sellerB.ID); err != nil {
		t.Fatalf("ChangeSeller returned error: %v", err)
	}
	board, _ := sess.Board()
	waitBoard(t, board)

	view := board.View()
	if view.Selection.Selected != sellerB {
		t.Fatalf("expected seller B selected")
	}
	state := widgetState(t, view, WidgetMarketShare)
	if state.SellerID != sellerB.ID || state.Status != WidgetReady {
		t.Fatalf("unexpected market share state %+v", state)
	}
	// Two widgets share the sales performance endpoint.
	if fx.sellers.count(sellerB.ID) != 4 {
		t.Fatalf("expected one fetch per seller widget, got %d", fx.sellers.count(sellerB.ID))
	}
	if len(fx.telemetry.named("dashboard.selection.change")) != 1 {
		t.Fatalf("expected selection.change telemetry")
	}
}

func TestServiceChangeSellerUnknown(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()
	if err := sess.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	version := sess.Selection().Snapshot().Version

	err := fx.service.ChangeSeller(context.Background(), sess.ID(), "unknown")
	if !errors.Is(err, ErrSellerNotFound) {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
	if sess.Selection().Snapshot().Version != version {
		t.Fatalf("selection must not change on unknown seller")
	}
}

func TestServiceUnknownSessionAndPage(t *testing.T) {
	fx := newServiceFixture(t, nil)
	if err := fx.service.ChangeSeller(context.Background(), "missing", sellerA.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := fx.service.RefreshPage("missing", PageSeller); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := fx.service.PageView(context.Background(), "missing", PageSeller); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := fx.service.Sellers(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	sess := fx.service.NewSession()
	if _, err := fx.service.PageView(context.Background(), sess.ID(), "nope"); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestServiceDirectoryFailureUsesFallback(t *testing.T) {
	fx := newServiceFixture(t, func(o *Options) { o.Directory = &fakeDirectory{err: errBackend} })
	sess := fx.service.NewSession()

	view, err := fx.service.PageView(context.Background(), sess.ID(), PageSeller)
	if err != nil {
		t.Fatalf("PageView returned error: %v", err)
	}
	if view.Selection.Status != SelectionFailed || !errors.Is(view.Selection.Err, errBackend) {
		t.Fatalf("expected failed selection, got %+v", view.Selection)
	}
	if view.Selection.Selected != FallbackSeller {
		t.Fatalf("expected fallback seller, got %+v", view.Selection.Selected)
	}
	if state := widgetState(t, view, WidgetRevenueSummary); state.SellerID != FallbackSeller.ID {
		t.Fatalf("widgets should load for the fallback seller, got %+v", state)
	}
}

func TestServicePageSwitchClosesBoard(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()

	seller, err := sess.Open(PageSeller)
	if err != nil {
		t.Fatalf("Open seller: %v", err)
	}
	again, err := sess.Open(PageSeller)
	if err != nil || again != seller {
		t.Fatalf("reopening the same page should reuse the board")
	}
	market, err := sess.Open(PageMarketplace)
	if err != nil {
		t.Fatalf("Open marketplace: %v", err)
	}
	if !seller.Closed() {
		t.Fatalf("previous board should be closed")
	}
	if market.Closed() {
		t.Fatalf("new board should be open")
	}
	waitBoard(t, market)
	view := market.View()
	if view.SellerScoped {
		t.Fatalf("marketplace page is not seller scoped")
	}
	for _, w := range view.Widgets {
		if w.State.Status != WidgetReady {
			t.Fatalf("platform widget %s not ready: %s", w.Code, w.State.Status)
		}
	}
}

func TestServicePlatformWidgetsIgnoreSelection(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()
	board, err := sess.Open(PageMarketplace)
	if err != nil {
		t.Fatalf("Open marketplace: %v", err)
	}
	waitBoard(t, board)
	before := widgetState(t, board.View(), WidgetPlatformSearches).Seq

	if err := sess.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if err := sess.ChangeSeller(context.Background(), sellerB.ID); err != nil {
		t.Fatalf("ChangeSeller: %v", err)
	}
	waitBoard(t, board)
	if after := widgetState(t, board.View(), WidgetPlatformSearches).Seq; after != before {
		t.Fatalf("platform widget refetched on selection change")
	}
}

func TestServiceRefreshPage(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()
	if _, err := fx.service.PageView(context.Background(), sess.ID(), PageSeller); err != nil {
		t.Fatalf("PageView: %v", err)
	}
	if err := fx.service.RefreshPage(sess.ID(), PageSeller); err != nil {
		t.Fatalf("RefreshPage: %v", err)
	}
	board, _ := sess.Board()
	waitBoard(t, board)
	if got := fx.sellers.count(sellerA.ID); got != 8 {
		t.Fatalf("expected every seller widget fetched twice, got %d", got)
	}
	if len(fx.telemetry.named("dashboard.board.refresh")) != 1 {
		t.Fatalf("expected board.refresh telemetry")
	}
}

func TestServiceEvictsLeastRecentlyUsed(t *testing.T) {
	fx := newServiceFixture(t, func(o *Options) { o.MaxSessions = 2 })
	first := fx.service.NewSession()
	second := fx.service.NewSession()
	if _, ok := fx.service.Session(first.ID()); !ok {
		t.Fatalf("first session should be live")
	}
	third := fx.service.NewSession()

	if _, ok := fx.service.Session(second.ID()); ok {
		t.Fatalf("second session should have been evicted")
	}
	if _, ok := fx.service.Session(first.ID()); !ok {
		t.Fatalf("recently used session should survive")
	}
	if _, ok := fx.service.Session(third.ID()); !ok {
		t.Fatalf("new session should be live")
	}
	if fx.service.SessionCount() != 2 {
		t.Fatalf("expected 2 sessions, got %d", fx.service.SessionCount())
	}
	if _, err := second.Open(PageSeller); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("evicted session should refuse to open pages, got %v", err)
	}
	if len(fx.telemetry.named("dashboard.session.evicted")) != 1 {
		t.Fatalf("expected session.evicted telemetry")
	}
}

func TestServiceSessionOrNew(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess, created := fx.service.SessionOrNew("")
	if !created {
		t.Fatalf("expected a new session")
	}
	same, created := fx.service.SessionOrNew(sess.ID())
	if created || same != sess {
		t.Fatalf("expected existing session to be reused")
	}
	fx.service.CloseSession(sess.ID())
	if _, created := fx.service.SessionOrNew(sess.ID()); !created {
		t.Fatalf("closed session id should yield a new session")
	}
}

func TestServiceSweepIdle(t *testing.T) {
	fx := newServiceFixture(t, nil)
	stale := fx.service.NewSession()
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-time.Hour)
	stale.mu.Unlock()
	fresh := fx.service.NewSession()

	if n := fx.service.SweepIdle(30 * time.Minute); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, ok := fx.service.Session(stale.ID()); ok {
		t.Fatalf("idle session should be gone")
	}
	if _, ok := fx.service.Session(fresh.ID()); !ok {
		t.Fatalf("fresh session should remain")
	}
}

func TestNewServiceRejectsInvalidLayout(t *testing.T) {
	_, err := NewService(Options{Layout: &Layout{
		Version: LayoutVersion,
		Pages:   []PageLayout{{Code: "p", Widgets: []WidgetPlacement{{Code: "missing.widget"}}}},
	}})
	if err == nil {
		t.Fatalf("expected layout validation error")
	}
}

func TestServiceWithoutRepositories(t *testing.T) {
	service, err := NewService(Options{SettleTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	defer service.Close()
	sess := service.NewSession()
	view, err := service.PageView(context.Background(), sess.ID(), PageMarketplace)
	if err != nil {
		t.Fatalf("PageView: %v", err)
	}
	for _, w := range view.Widgets {
		if w.State.Status != WidgetError {
			t.Fatalf("expected error state without repositories, got %s", w.State.Status)
		}
	}
}

func TestServiceChangeSellerWaitsForSellers(t *testing.T) {
	gate := make(chan struct{})
	fx := newServiceFixture(t, func(o *Options) {
		o.Directory = &fakeDirectory{sellers: []Seller{sellerA, sellerB}, gate: gate}
	})
	sess := fx.service.NewSession()
	sess.Start()

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(gate)
	}()
	if err := fx.service.ChangeSeller(context.Background(), sess.ID(), sellerB.ID); err != nil {
		t.Fatalf("ChangeSeller before sellers loaded returned %v", err)
	}
	if got := sess.Selection().Snapshot().Selected; got != sellerB {
		t.Fatalf("expected seller B selected, got %+v", got)
	}
}

func TestServiceChangeSellerWhileSellersLoading(t *testing.T) {
	fx := newServiceFixture(t, func(o *Options) {
		o.Directory = &fakeDirectory{sellers: []Seller{sellerA}, gate: make(chan struct{})}
		o.SettleTimeout = 20 * time.Millisecond
	})
	sess := fx.service.NewSession()

	err := fx.service.ChangeSeller(context.Background(), sess.ID(), sellerA.ID)
	if !errors.Is(err, ErrSelectionLoading) {
		t.Fatalf("expected ErrSelectionLoading, got %v", err)
	}
	if errors.Is(err, ErrSellerNotFound) {
		t.Fatalf("a loading list must not report an unknown seller")
	}
}

func TestServiceRecordsWidgetStatePerPage(t *testing.T) {
	fx := newServiceFixture(t, nil)
	sess := fx.service.NewSession()
	if _, err := fx.service.PageView(context.Background(), sess.ID(), PageMarketplace); err != nil {
		t.Fatalf("PageView: %v", err)
	}

	events := fx.telemetry.named("dashboard.widget.state")
	if len(events) != 4 {
		t.Fatalf("expected one settled state per platform widget, got %d", len(events))
	}
	for _, e := range events {
		if e.payload["page"] != PageMarketplace || e.payload["status"] != string(WidgetReady) {
			t.Fatalf("unexpected widget.state payload %v", e.payload)
		}
	}
}
