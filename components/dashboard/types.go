package dashboard

import (
	"context"
	"time"
)

// SellerDirectory lists the sellers a viewer can pick from.
type SellerDirectory interface {
	ListSellers(ctx context.Context) ([]Seller, error)
}

// SellerMetricsRepository loads per-seller reports. Implementations must
// reject an empty seller id with a MissingParameterError.
type SellerMetricsRepository interface {
	FetchSellerSummary(ctx context.Context, sellerID string) (SellerSummary, error)
	FetchSalesPerformance(ctx context.Context, sellerID string) (SalesPerformance, error)
	FetchMarketShare(ctx context.Context, sellerID string) (MarketShareReport, error)
}

// PlatformMetricsRepository loads marketplace-wide reports.
type PlatformMetricsRepository interface {
	FetchCategoryShare(ctx context.Context) (CategoryShareReport, error)
	FetchTopProducts(ctx context.Context) (TopProductsReport, error)
	FetchSearchAnalytics(ctx context.Context) (SearchAnalyticsReport, error)
	FetchRevenueByState(ctx context.Context) (StateRevenueReport, error)
}

// Seller is a marketplace merchant. IDs are unique within a sellers collection.
type Seller struct {
	ID     string  `json:"seller_id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating,omitempty"`
}

// FallbackSeller is selected when the sellers list cannot be loaded.
var FallbackSeller = Seller{
	ID:   "df5141f4-c445-42da-bbd6-8d7ec647bedf",
	Name: "TechGear Pro",
}

// SellerSummary is the aggregate returned by the seller analytics endpoint.
type SellerSummary struct {
	SellerName    string
	Period        string
	Revenue       float64
	Orders        int
	ItemsSold     int
	AvgOrderValue float64
}

// SalesPerformance breaks seller revenue down by category and product.
type SalesPerformance struct {
	SellerName        string
	Period            string
	RevenueByCategory []CategoryRevenue
	RevenueByProduct  []ProductRevenue
	QuantityByProduct []ProductQuantity
}

// CategoryRevenue is revenue attributed to a single category.
type CategoryRevenue struct {
	Category string
	Revenue  float64
}

// ProductRevenue is revenue attributed to a single product.
type ProductRevenue struct {
	ProductID string
	Name      string
	Revenue   float64
}

// ProductQuantity is units sold for a single product.
type ProductQuantity struct {
	ProductID    string
	Name         string
	QuantitySold int
}

// MarketShareReport is the seller's share of each category it sells in.
type MarketShareReport struct {
	SellerName    string
	PlatformShare float64
	Categories    []CategoryShare
}

// CategoryShare is a seller share percentage for one category.
type CategoryShare struct {
	Category        string
	SharePercentage float64
}

// CategoryShareReport is the platform revenue split across categories.
type CategoryShareReport struct {
	TotalRevenue float64
	Categories   []PlatformCategory
}

// PlatformCategory is one row of the platform category breakdown.
type PlatformCategory struct {
	Category   string
	Revenue    float64
	Percentage float64
	Orders     int
	ItemsSold  int
}

// TopProductsReport lists the best selling products on the platform.
type TopProductsReport struct {
	Products []PlatformProduct
}

// PlatformProduct is a product ranked by platform revenue.
type PlatformProduct struct {
	ProductID    string
	Name         string
	Category     string
	Revenue      float64
	QuantitySold int
	Orders       int
}

// SearchAnalyticsReport summarizes what shoppers search for.
type SearchAnalyticsReport struct {
	TotalSearches int
	Products      []SearchedProduct
}

// SearchedProduct is a product with its search volume.
type SearchedProduct struct {
	ProductID   string
	Name        string
	Category    string
	SearchCount int
	Percentage  float64
}

// StateRevenueReport is the platform revenue split by shipping state.
type StateRevenueReport struct {
	TotalRevenue float64
	States       []StateRevenue
}

// StateRevenue is one row of the revenue by state breakdown.
type StateRevenue struct {
	State      string
	Revenue    float64
	Orders     int
	Percentage float64
}

// WidgetStatus is the observable state of a widget.
type WidgetStatus string

const (
	WidgetLoading WidgetStatus = "loading"
	WidgetEmpty   WidgetStatus = "empty"
	WidgetReady   WidgetStatus = "ready"
	WidgetError   WidgetStatus = "error"
)

// WidgetState is what an adapter publishes after every transition.
type WidgetState struct {
	Status    WidgetStatus
	ViewModel *ViewModel
	Err       error
	SellerID  string
	Seq       uint64
	UpdatedAt time.Time
}

// ErrorMessage returns the error text or an empty string.
func (s WidgetState) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
