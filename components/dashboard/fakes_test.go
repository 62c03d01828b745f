package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	sellerA = Seller{ID: "seller-a", Name: "Alpha Goods"}
	sellerB = Seller{ID: "seller-b", Name: "Beta Supply"}
	sellerC = Seller{ID: "seller-c", Name: "Gamma Outlet"}
)

type fakeDirectory struct {
	sellers []Seller
	err     error
	gate    chan struct{}
}

func (d *fakeDirectory) ListSellers(ctx context.Context) ([]Seller, error) {
	if d.gate != nil {
		select {
		case <-d.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	return append([]Seller(nil), d.sellers...), nil
}

// fakeSellers answers per-seller calls. A seller id with a gate blocks until
// the gate is closed.
type fakeSellers struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	errs  map[string]error
	calls map[string]int
}

func newFakeSellers() *fakeSellers {
	return &fakeSellers{
		gates: map[string]chan struct{}{},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeSellers) block(id string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[id] = gate
	return gate
}

func (f *fakeSellers) fail(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[id] = err
}

func (f *fakeSellers) count(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func (f *fakeSellers) enter(ctx context.Context, id string) error {
	if id == "" {
		return &MissingParameterError{Param: "seller_id", Endpoint: "fake"}
	}
	f.mu.Lock()
	f.calls[id]++
	gate := f.gates[id]
	err := f.errs[id]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeSellers) FetchSellerSummary(ctx context.Context, id string) (SellerSummary, error) {
	if err := f.enter(ctx, id); err != nil {
		return SellerSummary{}, err
	}
	return SellerSummary{SellerName: "name-" + id, Period: "last_30_days", Revenue: 1200, Orders: 12, ItemsSold: 30, AvgOrderValue: 100}, nil
}

func (f *fakeSellers) FetchSalesPerformance(ctx context.Context, id string) (SalesPerformance, error) {
	if err := f.enter(ctx, id); err != nil {
		return SalesPerformance{}, err
	}
	return SalesPerformance{
		SellerName: "name-" + id,
		RevenueByCategory: []CategoryRevenue{
			{Category: "Electronics", Revenue: 300},
			{Category: "Books", Revenue: 100},
		},
		RevenueByProduct: []ProductRevenue{
			{ProductID: "p1", Name: "Widget " + id, Revenue: 250},
			{ProductID: "p2", Name: "Gadget", Revenue: 150},
		},
	}, nil
}

func (f *fakeSellers) FetchMarketShare(ctx context.Context, id string) (MarketShareReport, error) {
	if err := f.enter(ctx, id); err != nil {
		return MarketShareReport{}, err
	}
	return MarketShareReport{
		SellerName: "name-" + id,
		Categories: []CategoryShare{{Category: "Electronics", SharePercentage: 42.25}},
	}, nil
}

type fakePlatform struct {
	err   error
	empty bool
}

func (f *fakePlatform) FetchCategoryShare(context.Context) (CategoryShareReport, error) {
	if f.err != nil || f.empty {
		return CategoryShareReport{}, f.err
	}
	return CategoryShareReport{
		TotalRevenue: 1000,
		Categories: []PlatformCategory{
			{Category: "Books", Revenue: 250, Percentage: 25, Orders: 4},
			{Category: "Electronics", Revenue: 750, Percentage: 75, Orders: 9},
		},
	}, nil
}

func (f *fakePlatform) FetchTopProducts(context.Context) (TopProductsReport, error) {
	if f.err != nil || f.empty {
		return TopProductsReport{}, f.err
	}
	return TopProductsReport{Products: []PlatformProduct{
		{ProductID: "p1", Name: "Laptop", Category: "Electronics", Revenue: 900, QuantitySold: 3},
		{ProductID: "p2", Name: "Novel", Category: "Books", Revenue: 40.5, QuantitySold: 5},
	}}, nil
}

func (f *fakePlatform) FetchSearchAnalytics(context.Context) (SearchAnalyticsReport, error) {
	if f.err != nil || f.empty {
		return SearchAnalyticsReport{}, f.err
	}
	return SearchAnalyticsReport{TotalSearches: 1500, Products: []SearchedProduct{
		{ProductID: "p1", Name: "Laptop", Category: "Electronics", SearchCount: 1000, Percentage: 66.7},
		{ProductID: "p2", Name: "Novel", Category: "Books", SearchCount: 500, Percentage: 33.3},
	}}, nil
}

func (f *fakePlatform) FetchRevenueByState(context.Context) (StateRevenueReport, error) {
	if f.err != nil || f.empty {
		return StateRevenueReport{}, f.err
	}
	return StateRevenueReport{TotalRevenue: 1000, States: []StateRevenue{
		{State: "NY", Revenue: 400, Orders: 4, Percentage: 40},
		{State: "CA", Revenue: 600, Orders: 6, Percentage: 60},
	}}, nil
}

type recordedEvent struct {
	name    string
	payload map[string]any
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{name: event, payload: payload})
}

func (r *recordingTelemetry) named(event string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedEvent
	for _, e := range r.events {
		if e.name == event {
			out = append(out, e)
		}
	}
	return out
}

// captureRenderer records the last template call and renders a marker.
type captureRenderer struct {
	mu       sync.Mutex
	template string
	data     map[string]any
	err      error
}

func (r *captureRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.template = name
	if payload, ok := data.(map[string]any); ok {
		r.data = payload
	}
	if r.err != nil {
		return "", r.err
	}
	html := fmt.Sprintf("<%s>", name)
	if len(out) > 0 && out[0] != nil {
		_, _ = io.WriteString(out[0], html)
	}
	return html, nil
}

var errBackend = errors.New("backend down")
