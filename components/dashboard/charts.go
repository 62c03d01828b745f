package dashboard

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// ChartRenderer turns chart view-models into go-echarts markup.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache. A nil cache disables memoization.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost points the ECharts script tags at another host.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		host = strings.TrimSpace(host)
		if host != "" && !strings.HasSuffix(host, "/") {
			host += "/"
		}
		r.assetsHost = host
	}
}

// WithChartHeight overrides the chart canvas height.
func WithChartHeight(height string) ChartOption {
	return func(r *ChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewChartRenderer builds a renderer with the Westeros theme and no cache.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		theme:  types.ThemeWesteros,
		height: defaultChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Theme returns the configured theme name.
func (r *ChartRenderer) Theme() string { return r.theme }

// Render returns the chart HTML for vm. Identical view-models under the same
// key render once while the cache entry lives.
func (r *ChartRenderer) Render(key string, vm *ViewModel) (string, error) {
	if vm == nil {
		return "", fmt.Errorf("dashboard: chart %s has no view model", key)
	}
	render := func() (string, error) {
		return r.render(vm)
	}
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(fmt.Sprintf("%s:%s:%s", key, r.theme, viewModelHash(vm)), render)
}

func (r *ChartRenderer) render(vm *ViewModel) (string, error) {
	switch vm.Kind {
	case ViewBar:
		return r.renderBar(vm, false)
	case ViewHBar:
		return r.renderBar(vm, true)
	case ViewLine:
		return r.renderLine(vm)
	case ViewPie:
		return r.renderPie(vm)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart kind %q", vm.Kind)
	}
}

func (r *ChartRenderer) renderBar(vm *ViewModel, horizontal bool) (string, error) {
	bar := charts.NewBar()
	global := r.globalOptions(vm)
	if vm.AxisMax > 0 {
		global = append(global, charts.WithXAxisOpts(opts.XAxis{Max: vm.AxisMax}))
	}
	bar.SetGlobalOptions(global...)
	bar.SetXAxis(vm.Labels)
	position := "top"
	if horizontal {
		position = "right"
	}
	for _, s := range vm.Series {
		series := []charts.SeriesOpts{
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: position}),
		}
		if s.Color != "" {
			series = append(series, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}
		bar.AddSeries(s.Name, toBarData(vm.Labels, s.Values), series...)
	}
	if horizontal {
		bar.XYReversal()
	}
	return renderChart(bar)
}

func (r *ChartRenderer) renderLine(vm *ViewModel) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOptions(vm)...)
	line.SetXAxis(vm.Labels)
	for _, s := range vm.Series {
		line.AddSeries(s.Name, toLineData(vm.Labels, s.Values))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) renderPie(vm *ViewModel) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalOptions(vm)...)
	for _, s := range vm.Series {
		pie.AddSeries(s.Name, toPieData(vm.Labels, s.Values),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
		)
	}
	return renderChart(pie)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(vm *ViewModel) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: vm.Title, Subtitle: vm.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(vm.Kind == ViewPie)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(false)}),
	}
}

func toBarData(labels []string, values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, value := range values {
		data[i] = opts.BarData{Name: labelAt(labels, i), Value: value}
	}
	return data
}

func toLineData(labels []string, values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, value := range values {
		data[i] = opts.LineData{Name: labelAt(labels, i), Value: value}
	}
	return data
}

func toPieData(labels []string, values []float64) []opts.PieData {
	data := make([]opts.PieData, len(values))
	for i, value := range values {
		data[i] = opts.PieData{Name: labelAt(labels, i), Value: value}
	}
	return data
}

func labelAt(labels []string, i int) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("Item %d", i+1)
}

// viewModelHash returns a deterministic digest of a view-model.
func viewModelHash(vm *ViewModel) string {
	b, err := json.Marshal(vm)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
