package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

func TestRepositoriesDelegateToClient(t *testing.T) {
	mock := NewMockClient(DemoData())
	ctx := context.Background()
	sellerID := dashboard.FallbackSeller.ID

	sellers, err := NewSellerDirectory(mock).ListSellers(ctx)
	require.NoError(t, err)
	assert.Len(t, sellers, 5)

	repo := NewSellerRepository(mock)
	summary, err := repo.FetchSellerSummary(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, "TechGear Pro", summary.SellerName)

	perf, err := repo.FetchSalesPerformance(ctx, sellerID)
	require.NoError(t, err)
	assert.NotEmpty(t, perf.RevenueByCategory)

	share, err := repo.FetchMarketShare(ctx, sellerID)
	require.NoError(t, err)
	assert.Greater(t, share.PlatformShare, 0.0)

	platform := NewPlatformRepository(mock)
	categories, err := platform.FetchCategoryShare(ctx)
	require.NoError(t, err)
	assert.Len(t, categories.Categories, 5)

	products, err := platform.FetchTopProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products.Products, len(demoCatalog))

	searches, err := platform.FetchSearchAnalytics(ctx)
	require.NoError(t, err)
	assert.Positive(t, searches.TotalSearches)

	states, err := platform.FetchRevenueByState(ctx)
	require.NoError(t, err)
	assert.Len(t, states.States, 5)
}

func TestDemoDataIsConsistent(t *testing.T) {
	data := DemoData()

	var sellerRevenue float64
	for _, summary := range data.Summaries {
		sellerRevenue += summary.Revenue
	}
	assert.InDelta(t, data.CategoryShare.TotalRevenue, sellerRevenue, 0.05)

	var pct float64
	for _, c := range data.CategoryShare.Categories {
		pct += c.Percentage
	}
	assert.InDelta(t, 100, pct, 0.5)

	products := data.TopProducts.Products
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Revenue, products[i].Revenue)
	}
}

func TestMockClientErrors(t *testing.T) {
	mock := NewMockClient(DemoData())
	ctx := context.Background()

	_, err := mock.SellerAnalytics(ctx, "")
	assert.True(t, dashboard.IsMissingParameter(err))

	_, err = mock.SalesPerformance(ctx, "unknown")
	assert.True(t, dashboard.IsNetworkError(err))

	boom := errors.New("boom")
	mock.FailWith(boom)
	_, err = mock.ListSellers(ctx)
	assert.ErrorIs(t, err, boom)
	mock.FailWith(nil)

	mock.SetLatency(time.Second)
	timeout, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = mock.CategoryShare(timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockClientReturnsCopies(t *testing.T) {
	mock := NewMockClient(DemoData())
	ctx := context.Background()

	first, err := mock.TopProducts(ctx)
	require.NoError(t, err)
	first.Products[0].Name = "mutated"

	second, err := mock.TopProducts(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Products[0].Name)
}
