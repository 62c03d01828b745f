package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

// SellerClient fetches per-seller analytics.
type SellerClient interface {
	ListSellers(ctx context.Context) ([]dashboard.Seller, error)
	SellerAnalytics(ctx context.Context, sellerID string) (dashboard.SellerSummary, error)
	SalesPerformance(ctx context.Context, sellerID string) (dashboard.SalesPerformance, error)
	MarketShare(ctx context.Context, sellerID string) (dashboard.MarketShareReport, error)
}

// PlatformClient fetches marketplace-wide analytics.
type PlatformClient interface {
	CategoryShare(ctx context.Context) (dashboard.CategoryShareReport, error)
	TopProducts(ctx context.Context) (dashboard.TopProductsReport, error)
	SearchAnalytics(ctx context.Context) (dashboard.SearchAnalyticsReport, error)
	RevenueByState(ctx context.Context) (dashboard.StateRevenueReport, error)
}

// Client is a convenience union for services that implement every call.
type Client interface {
	SellerClient
	PlatformClient
}

var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*MockClient)(nil)
)
