package dashboard

import (
	"context"
	"fmt"
	"strings"
)

var categoryPalette = []string{
	"rgba(255, 99, 132, 0.8)",
	"rgba(54, 162, 235, 0.8)",
	"rgba(255, 205, 86, 0.8)",
	"rgba(75, 192, 192, 0.8)",
	"rgba(153, 102, 255, 0.8)",
	"rgba(255, 159, 64, 0.8)",
}

const (
	colorTeal = "rgba(75, 192, 192, 0.8)"
	colorBlue = "rgba(54, 162, 235, 0.8)"
)

// RevenueSummaryView renders the seller aggregate as headline figures.
// The endpoint carries no time series, so none is invented here.
func RevenueSummaryView(summary SellerSummary, cfg WidgetConfig) *ViewModel {
	return &ViewModel{
		Title:    titleWithSeller(cfg.Title, summary.SellerName),
		Subtitle: humanizePeriod(summary.Period),
		Kind:     ViewStat,
		Format:   ValueCurrency,
		Stats: []Stat{
			{Label: "Revenue", Value: FormatCurrency(summary.Revenue, false)},
			{Label: "Orders", Value: FormatCount(summary.Orders)},
			{Label: "Items Sold", Value: FormatCount(summary.ItemsSold)},
			{Label: "Avg Order Value", Value: FormatCurrency(summary.AvgOrderValue, true)},
		},
	}
}

// CategoryRevenueView renders revenue by category as a pie with one decimal
// percentage labels.
func CategoryRevenueView(perf SalesPerformance, cfg WidgetConfig) *ViewModel {
	rows := perf.RevenueByCategory
	if cfg.Limit > 0 {
		rows = TopN(rows, cfg.Limit, func(r CategoryRevenue) float64 { return r.Revenue })
	}
	total := 0.0
	for _, row := range rows {
		total += row.Revenue
	}
	vm := &ViewModel{
		Title:  titleWithSeller(cfg.Title, perf.SellerName),
		Kind:   ViewPie,
		Format: ValueCurrency,
	}
	series := Series{Name: "Revenue by Category"}
	for _, row := range rows {
		vm.Labels = append(vm.Labels, TruncateLabel(row.Category, cfg.LabelWidth))
		series.Values = append(series.Values, row.Revenue)
		pct := PercentLabel(row.Revenue, total)
		series.ValueLabels = append(series.ValueLabels, pct)
		vm.Details = append(vm.Details, []string{FormatCurrency(row.Revenue, false)})
	}
	if len(rows) > 0 {
		vm.Series = []Series{series}
	}
	return vm
}

// MarketShareView renders the seller share per category as horizontal bars.
func MarketShareView(report MarketShareReport, cfg WidgetConfig) *ViewModel {
	rows := report.Categories
	if cfg.Limit > 0 {
		rows = TopN(rows, cfg.Limit, func(r CategoryShare) float64 { return r.SharePercentage })
	}
	vm := &ViewModel{
		Title:   titleWithSeller(cfg.Title, report.SellerName),
		Kind:    ViewHBar,
		Format:  ValuePercent,
		AxisMax: 100,
	}
	if report.PlatformShare > 0 {
		vm.Subtitle = "Platform share " + FormatPercentValue(report.PlatformShare)
	}
	series := Series{Name: "Market Share (%)", Color: colorBlue}
	for _, row := range rows {
		value := Round(row.SharePercentage, 1)
		vm.Labels = append(vm.Labels, TruncateLabel(row.Category, cfg.LabelWidth))
		series.Values = append(series.Values, value)
		series.ValueLabels = append(series.ValueLabels, FormatPercentValue(value))
	}
	if len(rows) > 0 {
		vm.Series = []Series{series}
	}
	return vm
}

// TopProductsView keeps the best products by revenue, sorted descending,
// with long names truncated.
func TopProductsView(perf SalesPerformance, cfg WidgetConfig) *ViewModel {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	top := TopN(perf.RevenueByProduct, limit, func(p ProductRevenue) float64 { return p.Revenue })
	kind := cfg.Kind
	if kind != ViewHBar {
		kind = ViewBar
	}
	vm := &ViewModel{
		Title:  titleWithSeller(strings.ReplaceAll(cfg.Title, "{limit}", fmt.Sprint(limit)), perf.SellerName),
		Kind:   kind,
		Format: ValueCurrency,
	}
	series := Series{Name: "Revenue", Color: colorTeal}
	for _, product := range top {
		vm.Labels = append(vm.Labels, TruncateLabel(product.Name, cfg.LabelWidth))
		series.Values = append(series.Values, product.Revenue)
		series.ValueLabels = append(series.ValueLabels, FormatCurrency(product.Revenue, false))
		vm.Details = append(vm.Details, []string{product.Name})
	}
	if len(top) > 0 {
		vm.Series = []Series{series}
	}
	return vm
}

func newRevenueSummaryFetch(repo SellerMetricsRepository, cfg WidgetConfig) FetchFunc {
	return func(ctx context.Context, sellerID string) (*ViewModel, error) {
		summary, err := repo.FetchSellerSummary(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		return RevenueSummaryView(summary, cfg), nil
	}
}

func newSalesPerformanceFetch(repo SellerMetricsRepository, cfg WidgetConfig, view func(SalesPerformance, WidgetConfig) *ViewModel) FetchFunc {
	return func(ctx context.Context, sellerID string) (*ViewModel, error) {
		perf, err := repo.FetchSalesPerformance(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		return view(perf, cfg), nil
	}
}

func newMarketShareFetch(repo SellerMetricsRepository, cfg WidgetConfig) FetchFunc {
	return func(ctx context.Context, sellerID string) (*ViewModel, error) {
		report, err := repo.FetchMarketShare(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		return MarketShareView(report, cfg), nil
	}
}

func humanizePeriod(period string) string {
	if period == "" {
		return ""
	}
	return strings.ReplaceAll(period, "_", " ")
}
