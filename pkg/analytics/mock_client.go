package analytics

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

// MockData seeds deterministic analytics responses for tests or local demos.
// Per-seller reports are keyed by seller id.
type MockData struct {
	Sellers          []dashboard.Seller
	Summaries        map[string]dashboard.SellerSummary
	SalesPerformance map[string]dashboard.SalesPerformance
	MarketShare      map[string]dashboard.MarketShareReport

	CategoryShare  dashboard.CategoryShareReport
	TopProducts    dashboard.TopProductsReport
	Searches       dashboard.SearchAnalyticsReport
	RevenueByState dashboard.StateRevenueReport
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu    sync.RWMutex
	data  MockData
	err   error
	delay time.Duration
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FailWith makes every call return err until cleared with nil.
func (c *MockClient) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// SetLatency delays every call by d, honoring context cancellation.
func (c *MockClient) SetLatency(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = d
}

// ListSellers returns the configured sellers.
func (c *MockClient) ListSellers(ctx context.Context) ([]dashboard.Seller, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]dashboard.Seller(nil), c.data.Sellers...), nil
}

// SellerAnalytics returns the summary stored for sellerID.
func (c *MockClient) SellerAnalytics(ctx context.Context, sellerID string) (dashboard.SellerSummary, error) {
	if err := c.sellerCall(ctx, PathSellerAnalytics, sellerID); err != nil {
		return dashboard.SellerSummary{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	summary, ok := c.data.Summaries[sellerID]
	if !ok {
		return dashboard.SellerSummary{}, notFound(PathSellerAnalytics, sellerID)
	}
	return summary, nil
}

// SalesPerformance returns the breakdown stored for sellerID.
func (c *MockClient) SalesPerformance(ctx context.Context, sellerID string) (dashboard.SalesPerformance, error) {
	if err := c.sellerCall(ctx, PathSalesPerformance, sellerID); err != nil {
		return dashboard.SalesPerformance{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	perf, ok := c.data.SalesPerformance[sellerID]
	if !ok {
		return dashboard.SalesPerformance{}, notFound(PathSalesPerformance, sellerID)
	}
	return clonePerformance(perf), nil
}

// MarketShare returns the market share report stored for sellerID.
func (c *MockClient) MarketShare(ctx context.Context, sellerID string) (dashboard.MarketShareReport, error) {
	if err := c.sellerCall(ctx, PathMarketShare, sellerID); err != nil {
		return dashboard.MarketShareReport{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	report, ok := c.data.MarketShare[sellerID]
	if !ok {
		return dashboard.MarketShareReport{}, notFound(PathMarketShare, sellerID)
	}
	report.Categories = append([]dashboard.CategoryShare(nil), report.Categories...)
	return report, nil
}

// CategoryShare returns the configured platform category split.
func (c *MockClient) CategoryShare(ctx context.Context) (dashboard.CategoryShareReport, error) {
	if err := c.wait(ctx); err != nil {
		return dashboard.CategoryShareReport{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.CategoryShare
	report.Categories = append([]dashboard.PlatformCategory(nil), report.Categories...)
	return report, nil
}

// TopProducts returns the configured platform ranking.
func (c *MockClient) TopProducts(ctx context.Context) (dashboard.TopProductsReport, error) {
	if err := c.wait(ctx); err != nil {
		return dashboard.TopProductsReport{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return dashboard.TopProductsReport{
		Products: append([]dashboard.PlatformProduct(nil), c.data.TopProducts.Products...),
	}, nil
}

// SearchAnalytics returns the configured search volumes.
func (c *MockClient) SearchAnalytics(ctx context.Context) (dashboard.SearchAnalyticsReport, error) {
	if err := c.wait(ctx); err != nil {
		return dashboard.SearchAnalyticsReport{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.Searches
	report.Products = append([]dashboard.SearchedProduct(nil), report.Products...)
	return report, nil
}

// RevenueByState returns the configured revenue split by state.
func (c *MockClient) RevenueByState(ctx context.Context) (dashboard.StateRevenueReport, error) {
	if err := c.wait(ctx); err != nil {
		return dashboard.StateRevenueReport{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	report := c.data.RevenueByState
	report.States = append([]dashboard.StateRevenue(nil), report.States...)
	return report, nil
}

func (c *MockClient) sellerCall(ctx context.Context, pattern, sellerID string) error {
	if _, err := sellerPath(pattern, sellerID); err != nil {
		return err
	}
	return c.wait(ctx)
}

func (c *MockClient) wait(ctx context.Context) error {
	c.mu.RLock()
	delay, err := c.delay, c.err
	c.mu.RUnlock()
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

func notFound(pattern, sellerID string) error {
	return &dashboard.NetworkError{
		Path:   strings.Replace(pattern, "%s", sellerID, 1),
		Status: http.StatusNotFound,
		Body:   `{"error":"Seller not found"}`,
	}
}

func clonePerformance(perf dashboard.SalesPerformance) dashboard.SalesPerformance {
	out := perf
	out.RevenueByCategory = append([]dashboard.CategoryRevenue(nil), perf.RevenueByCategory...)
	out.RevenueByProduct = append([]dashboard.ProductRevenue(nil), perf.RevenueByProduct...)
	out.QuantityByProduct = append([]dashboard.ProductQuantity(nil), perf.QuantityByProduct...)
	return out
}
