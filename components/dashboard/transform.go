package dashboard

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultLabelWidth is the longest label rendered before truncation.
	DefaultLabelWidth = 20
	labelEllipsis     = "..."
)

// TruncateLabel shortens labels longer than width runes and appends an ellipsis.
func TruncateLabel(label string, width int) string {
	if width <= 0 {
		width = DefaultLabelWidth
	}
	if utf8.RuneCountInString(label) <= width {
		return label
	}
	runes := []rune(label)
	return string(runes[:width]) + labelEllipsis
}

// TopN returns up to n items sorted descending by metric. The input slice is
// left untouched; ties keep their upstream order. n <= 0 keeps every item.
func TopN[T any](items []T, n int, metric func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return metric(out[i]) > metric(out[j])
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	out, _ := decimal.NewFromFloat(v).Round(int32(places)).Float64()
	return out
}

// PercentOf returns value/total*100 rounded to one decimal. A non-positive
// total yields zero.
func PercentOf(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	share, _ := decimal.NewFromFloat(value).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		Float64()
	return share
}

// PercentLabel formats value as a one decimal share of total.
func PercentLabel(value, total float64) string {
	return FormatPercentValue(PercentOf(value, total))
}

// FormatPercentValue renders an already computed percentage with one decimal.
func FormatPercentValue(pct float64) string {
	return fmt.Sprintf("%.1f%%", Round(pct, 1))
}

// FormatCurrency renders v as US dollars with thousands separators.
func FormatCurrency(v float64, cents bool) string {
	p := message.NewPrinter(language.English)
	if cents {
		return p.Sprintf("$%.2f", v)
	}
	return p.Sprintf("$%.0f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatValue labels v according to format.
func FormatValue(v float64, format ValueFormat) string {
	switch format {
	case ValueCurrency:
		return FormatCurrency(v, false)
	case ValuePercent:
		return FormatPercentValue(v)
	default:
		return FormatCount(int(math.Round(v)))
	}
}

func formatValues(values []float64, format ValueFormat) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatValue(v, format)
	}
	return out
}
