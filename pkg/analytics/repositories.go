package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

// NewSellerDirectory adapts a client into the selection's sellers source.
func NewSellerDirectory(client SellerClient) dashboard.SellerDirectory {
	return &sellerDirectory{client: client}
}

type sellerDirectory struct {
	client SellerClient
}

func (d *sellerDirectory) ListSellers(ctx context.Context) ([]dashboard.Seller, error) {
	return d.client.ListSellers(ctx)
}

// NewSellerRepository adapts a client for seller-scoped widgets.
func NewSellerRepository(client SellerClient) dashboard.SellerMetricsRepository {
	return &sellerRepository{client: client}
}

type sellerRepository struct {
	client SellerClient
}

func (r *sellerRepository) FetchSellerSummary(ctx context.Context, sellerID string) (dashboard.SellerSummary, error) {
	return r.client.SellerAnalytics(ctx, sellerID)
}

func (r *sellerRepository) FetchSalesPerformance(ctx context.Context, sellerID string) (dashboard.SalesPerformance, error) {
	return r.client.SalesPerformance(ctx, sellerID)
}

func (r *sellerRepository) FetchMarketShare(ctx context.Context, sellerID string) (dashboard.MarketShareReport, error) {
	return r.client.MarketShare(ctx, sellerID)
}

// NewPlatformRepository adapts a client for marketplace widgets.
func NewPlatformRepository(client PlatformClient) dashboard.PlatformMetricsRepository {
	return &platformRepository{client: client}
}

type platformRepository struct {
	client PlatformClient
}

func (r *platformRepository) FetchCategoryShare(ctx context.Context) (dashboard.CategoryShareReport, error) {
	return r.client.CategoryShare(ctx)
}

func (r *platformRepository) FetchTopProducts(ctx context.Context) (dashboard.TopProductsReport, error) {
	return r.client.TopProducts(ctx)
}

func (r *platformRepository) FetchSearchAnalytics(ctx context.Context) (dashboard.SearchAnalyticsReport, error) {
	return r.client.SearchAnalytics(ctx)
}

func (r *platformRepository) FetchRevenueByState(ctx context.Context) (dashboard.StateRevenueReport, error) {
	return r.client.RevenueByState(ctx)
}

// ServiceOptions fills the repository fields of dashboard.Options from one
// client.
func ServiceOptions(client Client, opts dashboard.Options) dashboard.Options {
	opts.Directory = NewSellerDirectory(client)
	opts.Sellers = NewSellerRepository(client)
	opts.Platform = NewPlatformRepository(client)
	return opts
}
