package analytics

import (
	"cmp"
	"fmt"
	"slices"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

const demoPeriod = "last_30_days"

type demoProduct struct {
	name     string
	category string
	price    float64
	sold     int
	seller   int
}

var demoSellers = []dashboard.Seller{
	dashboard.FallbackSeller,
	{ID: "3b7c9d2e-8f41-4a6b-9c0d-5e2f1a7b8c93", Name: "SportZone"},
	{ID: "7e1a4c8b-2d5f-4e9a-b3c6-0f8d2a5e7b14", Name: "BookWorm Central"},
	{ID: "a92f6e3d-5b1c-4d7e-8a0f-3c6b9e2d4f75", Name: "HomeComfort"},
	{ID: "c4d8b2a6-9e3f-4c1d-a7b5-6e0f3d9c2a86", Name: "StyleHub"},
}

var demoRatings = []float64{4.8, 4.6, 4.7, 4.4, 4.3}

var demoCatalog = []demoProduct{
	{"Gaming Laptop RTX 4070", "Electronics", 1899.99, 9, 0},
	{"Wireless Gaming Mouse", "Electronics", 79.99, 31, 0},
	{"4K Monitor 27 inch", "Electronics", 349.99, 14, 0},
	{"Bluetooth Earbuds Pro", "Electronics", 159.99, 22, 0},
	{"Smart Thermostat", "Home & Garden", 249.99, 11, 0},
	{"History of Technology", "Books", 39.99, 18, 0},
	{"Professional Tennis Racket", "Sports", 189.99, 8, 1},
	{"Running Shoes Air Max", "Sports", 119.99, 19, 1},
	{"Yoga Mat Premium", "Sports", 39.99, 37, 1},
	{"Fitness Tracker Watch", "Sports", 199.99, 15, 1},
	{"Running Shorts", "Clothing", 24.99, 29, 1},
	{"Air Purifier HEPA", "Home & Garden", 179.99, 6, 1},
	{"Python Programming Guide", "Books", 44.99, 41, 2},
	{"Science Fiction Collection", "Books", 24.99, 63, 2},
	{"Business Strategy Book", "Books", 34.99, 27, 2},
	{"Learn JavaScript", "Books", 42.99, 33, 2},
	{"USB-C Hub 7-in-1", "Electronics", 49.99, 24, 2},
	{"LED Desk Lamp Adjustable", "Home & Garden", 69.99, 12, 2},
	{"Coffee Machine Espresso", "Home & Garden", 299.99, 10, 3},
	{"Indoor Plant Monstera", "Home & Garden", 49.99, 17, 3},
	{"Kitchen Knife Set", "Home & Garden", 89.99, 13, 3},
	{"Cookbook Mediterranean", "Books", 28.99, 21, 3},
	{"Mechanical Keyboard RGB", "Electronics", 129.99, 16, 3},
	{"Casual T-Shirt Pack", "Clothing", 34.99, 26, 3},
	{"Winter Jacket Waterproof", "Clothing", 149.99, 14, 4},
	{"Designer Jeans", "Clothing", 89.99, 23, 4},
	{"Business Suit", "Clothing", 399.99, 5, 4},
	{"Leather Boots", "Clothing", 179.99, 9, 4},
	{"Basketball Official Size", "Sports", 29.99, 20, 4},
	{"Protein Powder 2kg", "Sports", 59.99, 25, 4},
}

// state share of platform revenue, in percent
var demoStates = []struct {
	code  string
	share float64
}{
	{"CA", 28}, {"NY", 22}, {"TX", 19}, {"IL", 16}, {"WA", 15},
}

// DemoData builds a consistent marketplace of five sellers and thirty
// products. Every figure is derived from the catalog so platform totals
// match the sum of the seller reports.
func DemoData() MockData {
	data := MockData{
		Summaries:        make(map[string]dashboard.SellerSummary, len(demoSellers)),
		SalesPerformance: make(map[string]dashboard.SalesPerformance, len(demoSellers)),
		MarketShare:      make(map[string]dashboard.MarketShareReport, len(demoSellers)),
	}
	for i, seller := range demoSellers {
		seller.Rating = demoRatings[i]
		data.Sellers = append(data.Sellers, seller)
	}

	categoryRevenue := map[string]float64{}
	categoryOrders := map[string]int{}
	categoryItems := map[string]int{}
	sellerCategory := make([]map[string]float64, len(demoSellers))
	var platformRevenue float64
	var products []dashboard.PlatformProduct
	var searches []dashboard.SearchedProduct
	totalSearches := 0

	for i := range sellerCategory {
		sellerCategory[i] = map[string]float64{}
	}
	for idx, p := range demoCatalog {
		id := fmt.Sprintf("prod-%03d", idx+1)
		revenue := dashboard.Round(p.price*float64(p.sold), 2)
		orders := p.sold*2/3 + 1
		platformRevenue += revenue
		categoryRevenue[p.category] += revenue
		categoryOrders[p.category] += orders
		categoryItems[p.category] += p.sold
		sellerCategory[p.seller][p.category] += revenue

		products = append(products, dashboard.PlatformProduct{
			ProductID:    id,
			Name:         p.name,
			Category:     p.category,
			Revenue:      revenue,
			QuantitySold: p.sold,
			Orders:       orders,
		})
		count := p.sold*4 + (idx*37)%53
		totalSearches += count
		searches = append(searches, dashboard.SearchedProduct{
			ProductID:   id,
			Name:        p.name,
			Category:    p.category,
			SearchCount: count,
		})

		seller := demoSellers[p.seller]
		perf := data.SalesPerformance[seller.ID]
		perf.SellerName = seller.Name
		perf.Period = demoPeriod
		perf.RevenueByProduct = append(perf.RevenueByProduct, dashboard.ProductRevenue{ProductID: id, Name: p.name, Revenue: revenue})
		perf.QuantityByProduct = append(perf.QuantityByProduct, dashboard.ProductQuantity{ProductID: id, Name: p.name, QuantitySold: p.sold})
		data.SalesPerformance[seller.ID] = perf

		summary := data.Summaries[seller.ID]
		summary.SellerName = seller.Name
		summary.Period = demoPeriod
		summary.Revenue = dashboard.Round(summary.Revenue+revenue, 2)
		summary.Orders += orders
		summary.ItemsSold += p.sold
		data.Summaries[seller.ID] = summary
	}

	for i, seller := range demoSellers {
		summary := data.Summaries[seller.ID]
		if summary.Orders > 0 {
			summary.AvgOrderValue = dashboard.Round(summary.Revenue/float64(summary.Orders), 2)
		}
		data.Summaries[seller.ID] = summary

		perf := data.SalesPerformance[seller.ID]
		share := dashboard.MarketShareReport{
			SellerName:    seller.Name,
			PlatformShare: dashboard.PercentOf(summary.Revenue, platformRevenue),
		}
		for _, category := range sortedKeys(sellerCategory[i]) {
			revenue := dashboard.Round(sellerCategory[i][category], 2)
			perf.RevenueByCategory = append(perf.RevenueByCategory, dashboard.CategoryRevenue{Category: category, Revenue: revenue})
			share.Categories = append(share.Categories, dashboard.CategoryShare{
				Category:        category,
				SharePercentage: dashboard.PercentOf(revenue, categoryRevenue[category]),
			})
		}
		slices.SortFunc(perf.RevenueByProduct, func(a, b dashboard.ProductRevenue) int { return cmp.Compare(b.Revenue, a.Revenue) })
		slices.SortFunc(perf.QuantityByProduct, func(a, b dashboard.ProductQuantity) int {
			return cmp.Compare(b.QuantitySold, a.QuantitySold)
		})
		data.SalesPerformance[seller.ID] = perf
		data.MarketShare[seller.ID] = share
	}

	platformRevenue = dashboard.Round(platformRevenue, 2)
	data.CategoryShare.TotalRevenue = platformRevenue
	for _, category := range sortedKeys(categoryRevenue) {
		data.CategoryShare.Categories = append(data.CategoryShare.Categories, dashboard.PlatformCategory{
			Category:   category,
			Revenue:    dashboard.Round(categoryRevenue[category], 2),
			Percentage: dashboard.PercentOf(categoryRevenue[category], platformRevenue),
			Orders:     categoryOrders[category],
			ItemsSold:  categoryItems[category],
		})
	}
	slices.SortStableFunc(data.CategoryShare.Categories, func(a, b dashboard.PlatformCategory) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})

	slices.SortStableFunc(products, func(a, b dashboard.PlatformProduct) int { return cmp.Compare(b.Revenue, a.Revenue) })
	data.TopProducts.Products = products

	for i := range searches {
		searches[i].Percentage = dashboard.PercentOf(float64(searches[i].SearchCount), float64(totalSearches))
	}
	slices.SortStableFunc(searches, func(a, b dashboard.SearchedProduct) int {
		return cmp.Compare(b.SearchCount, a.SearchCount)
	})
	data.Searches = dashboard.SearchAnalyticsReport{TotalSearches: totalSearches, Products: searches}

	totalOrders := 0
	for _, orders := range categoryOrders {
		totalOrders += orders
	}
	data.RevenueByState.TotalRevenue = platformRevenue
	for _, st := range demoStates {
		data.RevenueByState.States = append(data.RevenueByState.States, dashboard.StateRevenue{
			State:      st.code,
			Revenue:    dashboard.Round(platformRevenue*st.share/100, 2),
			Orders:     int(float64(totalOrders) * st.share / 100),
			Percentage: st.share,
		})
	}
	return data
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
