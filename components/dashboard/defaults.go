package dashboard

import "context"

// Widget codes for the built-in widgets.
const (
	WidgetRevenueSummary         = "seller.widget.revenue_summary"
	WidgetCategoryRevenue        = "seller.widget.category_revenue"
	WidgetMarketShare            = "seller.widget.market_share"
	WidgetSellerTopProducts      = "seller.widget.top_products"
	WidgetPlatformCategoryShare  = "platform.widget.category_share"
	WidgetPlatformTopProducts    = "platform.widget.top_products"
	WidgetPlatformRevenueByState = "platform.widget.revenue_by_state"
	WidgetPlatformSearches       = "platform.widget.search_analytics"
)

// Page codes of the default layout.
const (
	PageSeller      = "seller"
	PageMarketplace = "marketplace"
)

type builtinWidget struct {
	definition WidgetDefinition
	factory    AdapterFactory
}

func builtinWidgets() []builtinWidget {
	return []builtinWidget{
		{
			definition: WidgetDefinition{
				Code:        WidgetRevenueSummary,
				Name:        "Revenue Overview",
				Description: "Revenue, orders, and average order value for the selected seller",
				Category:    "stats",
				Scope:       ScopeSeller,
				Schema:      widgetSchema(false, false),
				Defaults:    WidgetConfig{Title: "Revenue Overview"},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newRevenueSummaryFetch(deps.Sellers, cfg)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetCategoryRevenue,
				Name:        "Revenue by Category",
				Description: "Share of seller revenue per product category",
				Category:    "charts",
				Scope:       ScopeSeller,
				Schema:      widgetSchema(true, false),
				Defaults:    WidgetConfig{Title: "Revenue by Category"},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newSalesPerformanceFetch(deps.Sellers, cfg, CategoryRevenueView)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetMarketShare,
				Name:        "Market Share by Category",
				Description: "Seller share of platform revenue per category",
				Category:    "charts",
				Scope:       ScopeSeller,
				Schema:      widgetSchema(true, false),
				Defaults:    WidgetConfig{Title: "Market Share by Category"},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newMarketShareFetch(deps.Sellers, cfg)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetSellerTopProducts,
				Name:        "Top Products",
				Description: "Best selling products of the selected seller by revenue",
				Category:    "charts",
				Scope:       ScopeSeller,
				Schema:      widgetSchema(true, true),
				Defaults:    WidgetConfig{Title: "Top {limit} Products", Limit: 5, Kind: ViewBar},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newSalesPerformanceFetch(deps.Sellers, cfg, TopProductsView)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetPlatformCategoryShare,
				Name:        "Category Market Share",
				Description: "Platform revenue share per category",
				Category:    "charts",
				Scope:       ScopePlatform,
				Schema:      widgetSchema(true, false),
				Defaults:    WidgetConfig{Title: "Category Market Share"},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newPlatformFetch(deps.Platform.FetchCategoryShare, CategoryShareView, cfg)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetPlatformTopProducts,
				Name:        "Top Products (Platform)",
				Description: "Best selling products across the marketplace",
				Category:    "tables",
				Scope:       ScopePlatform,
				Schema:      widgetSchema(true, false),
				Defaults:    WidgetConfig{Title: "Top {limit} Products (Platform)", Limit: 10},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newPlatformFetch(deps.Platform.FetchTopProducts, PlatformTopProductsView, cfg)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetPlatformRevenueByState,
				Name:        "Revenue by State",
				Description: "States with the highest platform revenue",
				Category:    "charts",
				Scope:       ScopePlatform,
				Schema:      widgetSchema(true, false),
				Defaults:    WidgetConfig{Title: "Top {limit} States by Revenue", Limit: 5},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newPlatformFetch(deps.Platform.FetchRevenueByState, RevenueByStateView, cfg)
			},
		},
		{
			definition: WidgetDefinition{
				Code:        WidgetPlatformSearches,
				Name:        "Most Searched Products",
				Description: "Products customers search for most",
				Category:    "charts",
				Scope:       ScopePlatform,
				Schema:      widgetSchema(true, true),
				Defaults:    WidgetConfig{Title: "Most Searched Products", Limit: 10, Kind: ViewHBar},
			},
			factory: func(deps AdapterDeps, cfg WidgetConfig) FetchFunc {
				return newPlatformFetch(deps.Platform.FetchSearchAnalytics, SearchAnalyticsView, cfg)
			},
		},
	}
}

func widgetSchema(withLimit, withChart bool) map[string]any {
	props := map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"label_width": map[string]any{"type": "integer", "minimum": 5, "maximum": 80},
	}
	if withLimit {
		props["limit"] = map[string]any{"type": "integer", "minimum": 1, "maximum": 50}
	}
	if withChart {
		props["chart"] = map[string]any{"type": "string", "enum": []string{"bar", "hbar"}}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

// DefaultLayout returns the seller and marketplace pages.
func DefaultLayout() *Layout {
	return &Layout{
		Version: LayoutVersion,
		Pages: []PageLayout{
			{
				Code:  PageSeller,
				Title: "Seller Analytics",
				Widgets: []WidgetPlacement{
					{Code: WidgetRevenueSummary},
					{Code: WidgetCategoryRevenue},
					{Code: WidgetMarketShare},
					{Code: WidgetSellerTopProducts, Configuration: map[string]any{"limit": 5}},
				},
			},
			{
				Code:  PageMarketplace,
				Title: "Marketplace Overview",
				Widgets: []WidgetPlacement{
					{Code: WidgetPlatformCategoryShare},
					{Code: WidgetPlatformTopProducts, Configuration: map[string]any{"limit": 10}},
					{Code: WidgetPlatformRevenueByState, Configuration: map[string]any{"limit": 5}},
					{Code: WidgetPlatformSearches, Configuration: map[string]any{"limit": 10}},
				},
			},
		},
	}
}

// unavailableRepository answers every call with the same error. It stands in
// when a service is built without one of its repositories.
type unavailableRepository struct{ err error }

func (r unavailableRepository) FetchSellerSummary(context.Context, string) (SellerSummary, error) {
	return SellerSummary{}, r.err
}

func (r unavailableRepository) FetchSalesPerformance(context.Context, string) (SalesPerformance, error) {
	return SalesPerformance{}, r.err
}

func (r unavailableRepository) FetchMarketShare(context.Context, string) (MarketShareReport, error) {
	return MarketShareReport{}, r.err
}

func (r unavailableRepository) FetchCategoryShare(context.Context) (CategoryShareReport, error) {
	return CategoryShareReport{}, r.err
}

func (r unavailableRepository) FetchTopProducts(context.Context) (TopProductsReport, error) {
	return TopProductsReport{}, r.err
}

func (r unavailableRepository) FetchSearchAnalytics(context.Context) (SearchAnalyticsReport, error) {
	return SearchAnalyticsReport{}, r.err
}

func (r unavailableRepository) FetchRevenueByState(context.Context) (StateRevenueReport, error) {
	return StateRevenueReport{}, r.err
}

func (r unavailableRepository) ListSellers(context.Context) ([]Seller, error) {
	return nil, r.err
}
