package analytics

import dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"

type sellerDTO struct {
	SellerID string  `json:"seller_id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
}

type sellersResponse struct {
	Sellers []sellerDTO `json:"sellers"`
}

func (r sellersResponse) toSellers() []dashboard.Seller {
	out := make([]dashboard.Seller, len(r.Sellers))
	for i, s := range r.Sellers {
		out[i] = dashboard.Seller{ID: s.SellerID, Name: s.Name, Rating: s.Rating}
	}
	return out
}

type sellerAnalyticsResponse struct {
	SellerName    string  `json:"seller_name"`
	Period        string  `json:"period"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	ItemsSold     int     `json:"items_sold"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

func (r sellerAnalyticsResponse) toSummary() dashboard.SellerSummary {
	return dashboard.SellerSummary{
		SellerName:    r.SellerName,
		Period:        r.Period,
		Revenue:       r.Revenue,
		Orders:        r.Orders,
		ItemsSold:     r.ItemsSold,
		AvgOrderValue: r.AvgOrderValue,
	}
}

type categoryRevenueDTO struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type productRevenueDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
}

type productQuantityDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
}

type salesPerformanceResponse struct {
	SellerName        string               `json:"seller_name"`
	Period            string               `json:"period"`
	RevenueByCategory []categoryRevenueDTO `json:"revenue_by_category"`
	RevenueByProduct  []productRevenueDTO  `json:"revenue_by_product"`
	QuantityByProduct []productQuantityDTO `json:"quantity_by_product"`
}

func (r salesPerformanceResponse) toPerformance() dashboard.SalesPerformance {
	perf := dashboard.SalesPerformance{
		SellerName:        r.SellerName,
		Period:            r.Period,
		RevenueByCategory: make([]dashboard.CategoryRevenue, len(r.RevenueByCategory)),
		RevenueByProduct:  make([]dashboard.ProductRevenue, len(r.RevenueByProduct)),
		QuantityByProduct: make([]dashboard.ProductQuantity, len(r.QuantityByProduct)),
	}
	for i, row := range r.RevenueByCategory {
		perf.RevenueByCategory[i] = dashboard.CategoryRevenue{Category: row.Category, Revenue: row.Revenue}
	}
	for i, row := range r.RevenueByProduct {
		perf.RevenueByProduct[i] = dashboard.ProductRevenue{ProductID: row.ProductID, Name: row.Name, Revenue: row.Revenue}
	}
	for i, row := range r.QuantityByProduct {
		perf.QuantityByProduct[i] = dashboard.ProductQuantity{ProductID: row.ProductID, Name: row.Name, QuantitySold: row.QuantitySold}
	}
	return perf
}

type categoryShareDTO struct {
	Category        string  `json:"category"`
	SharePercentage float64 `json:"share_percentage"`
}

type marketShareResponse struct {
	SellerName          string             `json:"seller_name"`
	PlatformMarketShare float64            `json:"platform_market_share"`
	CategoryMarketShare []categoryShareDTO `json:"category_market_share"`
}

func (r marketShareResponse) toReport() dashboard.MarketShareReport {
	report := dashboard.MarketShareReport{
		SellerName:    r.SellerName,
		PlatformShare: r.PlatformMarketShare,
		Categories:    make([]dashboard.CategoryShare, len(r.CategoryMarketShare)),
	}
	for i, row := range r.CategoryMarketShare {
		report.Categories[i] = dashboard.CategoryShare{Category: row.Category, SharePercentage: row.SharePercentage}
	}
	return report
}

type platformCategoryDTO struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
	Orders     int     `json:"orders"`
	ItemsSold  int     `json:"items_sold"`
}

type categoryShareResponse struct {
	TotalPlatformRevenue float64               `json:"total_platform_revenue"`
	Categories           []platformCategoryDTO `json:"categories"`
}

func (r categoryShareResponse) toReport() dashboard.CategoryShareReport {
	report := dashboard.CategoryShareReport{
		TotalRevenue: r.TotalPlatformRevenue,
		Categories:   make([]dashboard.PlatformCategory, len(r.Categories)),
	}
	for i, row := range r.Categories {
		report.Categories[i] = dashboard.PlatformCategory{
			Category:   row.Category,
			Revenue:    row.Revenue,
			Percentage: row.Percentage,
			Orders:     row.Orders,
			ItemsSold:  row.ItemsSold,
		}
	}
	return report
}

type platformProductDTO struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	QuantitySold int     `json:"quantity_sold"`
	Orders       int     `json:"orders"`
}

type topProductsResponse struct {
	TopProducts []platformProductDTO `json:"top_products"`
}

func (r topProductsResponse) toReport() dashboard.TopProductsReport {
	report := dashboard.TopProductsReport{Products: make([]dashboard.PlatformProduct, len(r.TopProducts))}
	for i, row := range r.TopProducts {
		report.Products[i] = dashboard.PlatformProduct{
			ProductID:    row.ProductID,
			Name:         row.Name,
			Category:     row.Category,
			Revenue:      row.Revenue,
			QuantitySold: row.QuantitySold,
			Orders:       row.Orders,
		}
	}
	return report
}

type searchedProductDTO struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SearchCount int     `json:"search_count"`
	Percentage  float64 `json:"percentage"`
}

type searchAnalyticsResponse struct {
	TotalSearches        int                  `json:"total_searches"`
	MostSearchedProducts []searchedProductDTO `json:"most_searched_products"`
}

func (r searchAnalyticsResponse) toReport() dashboard.SearchAnalyticsReport {
	report := dashboard.SearchAnalyticsReport{
		TotalSearches: r.TotalSearches,
		Products:      make([]dashboard.SearchedProduct, len(r.MostSearchedProducts)),
	}
	for i, row := range r.MostSearchedProducts {
		report.Products[i] = dashboard.SearchedProduct{
			ProductID:   row.ProductID,
			Name:        row.Name,
			Category:    row.Category,
			SearchCount: row.SearchCount,
			Percentage:  row.Percentage,
		}
	}
	return report
}

type stateRevenueDTO struct {
	State      string  `json:"state"`
	Revenue    float64 `json:"revenue"`
	Orders     int     `json:"orders"`
	Percentage float64 `json:"percentage"`
}

type stateRevenueResponse struct {
	TotalPlatformRevenue float64           `json:"total_platform_revenue"`
	States               []stateRevenueDTO `json:"states"`
}

func (r stateRevenueResponse) toReport() dashboard.StateRevenueReport {
	report := dashboard.StateRevenueReport{
		TotalRevenue: r.TotalPlatformRevenue,
		States:       make([]dashboard.StateRevenue, len(r.States)),
	}
	for i, row := range r.States {
		report.States[i] = dashboard.StateRevenue{
			State:      row.State,
			Revenue:    row.Revenue,
			Orders:     row.Orders,
			Percentage: row.Percentage,
		}
	}
	return report
}
