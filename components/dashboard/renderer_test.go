package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidgetRenderer(t *testing.T, cache RenderCache) *WidgetRenderer {
	t.Helper()
	templates, err := NewTemplateRenderer()
	require.NoError(t, err)
	return NewWidgetRenderer(templates, NewChartRenderer(WithChartCache(cache)))
}

func TestWidgetRendererPlaceholders(t *testing.T) {
	r := newTestWidgetRenderer(t, nil)
	cases := []struct {
		state WidgetState
		class string
		text  string
	}{
		{WidgetState{Status: WidgetLoading}, "widget-placeholder-loading", "Loading..."},
		{WidgetState{Status: WidgetEmpty}, "widget-placeholder-empty", "No data available"},
		{WidgetState{Status: WidgetError, Err: errors.New("remote error 404")}, "widget-placeholder-error", "Data unavailable"},
		{WidgetState{Status: WidgetReady}, "widget-placeholder-empty", "No data available"},
	}
	for _, tc := range cases {
		html, err := r.Render(WidgetView{Code: WidgetMarketShare, Name: "Market Share by Category", State: tc.state})
		require.NoError(t, err)
		assert.Contains(t, html, tc.class, tc.state.Status)
		assert.Contains(t, html, tc.text, tc.state.Status)
		assert.Contains(t, html, "market-share")
		assert.Contains(t, html, "Market Share by Category")
	}

	html, err := r.Render(WidgetView{Code: "w", State: WidgetState{Status: WidgetError, Err: errors.New(`remote error 500: GET /api/sellers/1/summary: {"trace":"db01"}`)}})
	require.NoError(t, err)
	assert.Contains(t, html, "Data unavailable")
	assert.NotContains(t, html, "/api/sellers")
	assert.NotContains(t, html, "db01")
}

func TestWidgetRendererStatCard(t *testing.T) {
	r := newTestWidgetRenderer(t, nil)
	vm := RevenueSummaryView(SellerSummary{SellerName: "TechGear Pro", Revenue: 1500, Orders: 3}, WidgetConfig{Title: "Revenue Overview"})
	html, err := r.Render(WidgetView{Code: WidgetRevenueSummary, Name: "Revenue Overview", State: WidgetState{Status: WidgetReady, ViewModel: vm}})
	require.NoError(t, err)

	assert.Contains(t, html, "Revenue Overview - TechGear Pro")
	assert.Contains(t, html, "widget-stats")
	assert.Contains(t, html, "$1,500")
}

func TestWidgetRendererTable(t *testing.T) {
	r := newTestWidgetRenderer(t, nil)
	vm := PlatformTopProductsView(TopProductsReport{Products: []PlatformProduct{
		{Name: "Laptop", Category: "Electronics", Revenue: 900, QuantitySold: 3},
	}}, WidgetConfig{Title: "Top {limit} Products (Platform)"})
	html, err := r.Render(WidgetView{Code: WidgetPlatformTopProducts, State: WidgetState{Status: WidgetReady, ViewModel: vm}})
	require.NoError(t, err)

	assert.Contains(t, html, "<th>Product Name</th>")
	assert.Contains(t, html, "<td>Laptop</td>")
	assert.Contains(t, html, "<td>$900.00</td>")
}

func TestWidgetRendererChartUsesCache(t *testing.T) {
	cache := NewChartCache(time.Minute)
	r := newTestWidgetRenderer(t, cache)
	vm := CategoryRevenueView(SalesPerformance{
		SellerName:        "SportZone",
		RevenueByCategory: []CategoryRevenue{{Category: "Sports", Revenue: 3}, {Category: "Books", Revenue: 1}},
	}, WidgetConfig{Title: "Revenue by Category", LabelWidth: DefaultLabelWidth})
	view := WidgetView{Code: WidgetCategoryRevenue, State: WidgetState{Status: WidgetReady, ViewModel: vm}}

	first, err := r.Render(view)
	require.NoError(t, err)
	second, err := r.Render(view)
	require.NoError(t, err)

	assert.Contains(t, first, "widget-chart")
	assert.Contains(t, first, "echarts")
	assert.Contains(t, first, "75.0%")
	assert.Contains(t, first, "25.0%")
	assert.Equal(t, strings.Count(first, "widget-legend"), strings.Count(second, "widget-legend"))
	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestWidgetRendererDoesNotMutateViewModel(t *testing.T) {
	r := newTestWidgetRenderer(t, nil)
	vm := MarketShareView(MarketShareReport{Categories: []CategoryShare{{Category: "Books", SharePercentage: 12}}}, WidgetConfig{Title: "Share", LabelWidth: DefaultLabelWidth})
	before := vm.Clone()
	_, err := r.Render(WidgetView{Code: WidgetMarketShare, State: WidgetState{Status: WidgetReady, ViewModel: vm}})
	require.NoError(t, err)
	assert.Equal(t, before, vm)
}

func TestChartRendererRejectsUnknownKind(t *testing.T) {
	charts := NewChartRenderer(WithChartTheme("dark"), WithChartAssetsHost("https://cdn.example.com/echarts"))
	assert.Equal(t, "dark", charts.Theme())
	_, err := charts.Render("w", &ViewModel{Kind: "radar", Labels: []string{"a"}})
	assert.Error(t, err)
	_, err = charts.Render("w", nil)
	assert.Error(t, err)
}

func TestChartRendererKinds(t *testing.T) {
	charts := NewChartRenderer(WithChartHeight("200px"))
	for _, kind := range []ViewKind{ViewBar, ViewHBar, ViewLine, ViewPie} {
		html, err := charts.Render("w", &ViewModel{
			Title:  "Chart",
			Kind:   kind,
			Labels: []string{"a", "b"},
			Series: []Series{{Name: "s", Values: []float64{1, 2}}},
		})
		require.NoError(t, err, kind)
		assert.Contains(t, html, "200px", kind)
	}
}

func TestLegendEntriesFallsBackToFormattedValues(t *testing.T) {
	entries := legendEntries(&ViewModel{
		Format: ValueCount,
		Labels: []string{"a"},
		Series: []Series{{Values: []float64{1200}}},
	})
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0]["label"])
	assert.Equal(t, "1,200", entries[0]["value"])
	assert.Nil(t, legendEntries(&ViewModel{}))
}
