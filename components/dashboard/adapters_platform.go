package dashboard

import (
	"context"
	"fmt"
	"strings"
)

// CategoryShareView renders the platform revenue share per category.
func CategoryShareView(report CategoryShareReport, cfg WidgetConfig) *ViewModel {
	rows := TopN(report.Categories, cfg.Limit, func(c PlatformCategory) float64 { return c.Percentage })
	vm := &ViewModel{
		Title:  cfg.Title,
		Kind:   ViewBar,
		Format: ValuePercent,
	}
	if report.TotalRevenue > 0 {
		vm.Subtitle = FormatCurrency(report.TotalRevenue, false) + " total revenue"
	}
	series := Series{Name: "Market Share (%)", Color: colorBlue}
	for _, row := range rows {
		value := Round(row.Percentage, 1)
		vm.Labels = append(vm.Labels, TruncateLabel(row.Category, cfg.LabelWidth))
		series.Values = append(series.Values, value)
		series.ValueLabels = append(series.ValueLabels, FormatPercentValue(value))
		vm.Details = append(vm.Details, []string{
			"Revenue: " + FormatCurrency(row.Revenue, false),
			"Orders: " + FormatCount(row.Orders),
		})
	}
	if len(rows) > 0 {
		vm.Series = []Series{series}
	}
	return vm
}

// PlatformTopProductsView renders the best selling products as a ranked table.
func PlatformTopProductsView(report TopProductsReport, cfg WidgetConfig) *ViewModel {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	top := TopN(report.Products, limit, func(p PlatformProduct) float64 { return p.Revenue })
	vm := &ViewModel{
		Title:   strings.ReplaceAll(cfg.Title, "{limit}", fmt.Sprint(limit)),
		Kind:    ViewTable,
		Format:  ValueCurrency,
		Columns: []string{"#", "Product Name", "Category", "Revenue", "Sold"},
	}
	for i, product := range top {
		vm.Rows = append(vm.Rows, []string{
			fmt.Sprint(i + 1),
			product.Name,
			product.Category,
			FormatCurrency(product.Revenue, true),
			FormatCount(product.QuantitySold),
		})
	}
	return vm
}

// RevenueByStateView renders the top states by revenue.
func RevenueByStateView(report StateRevenueReport, cfg WidgetConfig) *ViewModel {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	top := TopN(report.States, limit, func(s StateRevenue) float64 { return s.Revenue })
	vm := &ViewModel{
		Title:  strings.ReplaceAll(cfg.Title, "{limit}", fmt.Sprint(limit)),
		Kind:   ViewBar,
		Format: ValueCurrency,
	}
	series := Series{Name: "Revenue ($)", Color: colorTeal}
	for _, state := range top {
		vm.Labels = append(vm.Labels, TruncateLabel(state.State, cfg.LabelWidth))
		series.Values = append(series.Values, state.Revenue)
		series.ValueLabels = append(series.ValueLabels, FormatCurrency(state.Revenue, false))
		vm.Details = append(vm.Details, []string{
			"Revenue: " + FormatCurrency(state.Revenue, false),
			"Orders: " + FormatCount(state.Orders),
			"Percentage: " + FormatPercentValue(state.Percentage),
		})
	}
	if len(top) > 0 {
		vm.Series = []Series{series}
	}
	return vm
}

// SearchAnalyticsView renders the most searched products.
func SearchAnalyticsView(report SearchAnalyticsReport, cfg WidgetConfig) *ViewModel {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	top := TopN(report.Products, limit, func(p SearchedProduct) float64 { return float64(p.SearchCount) })
	kind := cfg.Kind
	if kind != ViewBar {
		kind = ViewHBar
	}
	vm := &ViewModel{
		Title:  cfg.Title,
		Kind:   kind,
		Format: ValueCount,
	}
	if report.TotalSearches > 0 {
		vm.Subtitle = FormatCount(report.TotalSearches) + " total searches"
	}
	series := Series{Name: "Searches", Color: colorBlue}
	for _, product := range top {
		vm.Labels = append(vm.Labels, TruncateLabel(product.Name, cfg.LabelWidth))
		series.Values = append(series.Values, float64(product.SearchCount))
		series.ValueLabels = append(series.ValueLabels, FormatCount(product.SearchCount))
		vm.Details = append(vm.Details, []string{product.Category, FormatPercentValue(product.Percentage)})
	}
	if len(top) > 0 {
		vm.Series = []Series{series}
	}
	return vm
}

func newPlatformFetch[R any](load func(context.Context) (R, error), view func(R, WidgetConfig) *ViewModel, cfg WidgetConfig) FetchFunc {
	return func(ctx context.Context, _ string) (*ViewModel, error) {
		report, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return view(report, cfg), nil
	}
}
