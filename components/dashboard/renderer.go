package dashboard

import (
	"fmt"
	"io"

	"github.com/ettle/strcase"
)

// Renderer describes the template renderer contract used for widgets and pages.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

const widgetTemplate = "widgets/widget"

// UnavailableMessage is what viewers see for a failed widget.
const UnavailableMessage = "Data unavailable"

// WidgetView is everything needed to draw one widget.
type WidgetView struct {
	Code  string
	Name  string
	State WidgetState
}

// DOMID returns the element id used for the widget container.
func (v WidgetView) DOMID() string {
	return strcase.ToKebab(v.Code)
}

// WidgetRenderer draws widgets from their state. It performs no I/O besides
// template and chart rendering and never mutates the state it is given.
type WidgetRenderer struct {
	templates Renderer
	charts    *ChartRenderer
}

// NewWidgetRenderer wires templates and charts. A nil chart renderer uses
// the defaults.
func NewWidgetRenderer(templates Renderer, charts *ChartRenderer) *WidgetRenderer {
	if charts == nil {
		charts = NewChartRenderer()
	}
	return &WidgetRenderer{templates: templates, charts: charts}
}

// Render returns the widget HTML fragment.
func (r *WidgetRenderer) Render(view WidgetView) (string, error) {
	data, err := r.widgetData(view)
	if err != nil {
		return "", err
	}
	html, err := r.templates.Render(widgetTemplate, data)
	if err != nil {
		return "", fmt.Errorf("dashboard: render widget %s: %w", view.Code, err)
	}
	return html, nil
}

func (r *WidgetRenderer) widgetData(view WidgetView) (map[string]any, error) {
	state := view.State
	data := map[string]any{
		"id":     view.DOMID(),
		"code":   view.Code,
		"title":  view.Name,
		"status": string(state.Status),
	}
	switch state.Status {
	case WidgetError:
		// The cause is logged by the adapter; it may carry upstream paths
		// and response bodies.
		data["message"] = UnavailableMessage
		return data, nil
	case WidgetEmpty:
		data["message"] = "No data available"
		return data, nil
	case WidgetReady:
	default:
		data["status"] = string(WidgetLoading)
		data["message"] = "Loading..."
		return data, nil
	}

	vm := state.ViewModel
	if vm.IsEmpty() {
		data["status"] = string(WidgetEmpty)
		data["message"] = "No data available"
		return data, nil
	}
	if vm.Title != "" {
		data["title"] = vm.Title
	}
	data["subtitle"] = vm.Subtitle
	data["kind"] = string(vm.Kind)

	switch vm.Kind {
	case ViewTable:
		data["columns"] = vm.Columns
		data["rows"] = vm.Rows
	case ViewStat:
		stats := make([]map[string]any, len(vm.Stats))
		for i, stat := range vm.Stats {
			stats[i] = map[string]any{"label": stat.Label, "value": stat.Value}
		}
		data["stats"] = stats
	default:
		html, err := r.charts.Render(view.Code, vm)
		if err != nil {
			return nil, fmt.Errorf("dashboard: render chart %s: %w", view.Code, err)
		}
		data["chart_html"] = html
		data["legend"] = legendEntries(vm)
	}
	return data, nil
}

// legendEntries pairs each label with its value label and detail lines.
func legendEntries(vm *ViewModel) []map[string]any {
	if len(vm.Series) == 0 {
		return nil
	}
	first := vm.Series[0]
	values := first.ValueLabels
	if len(values) != len(first.Values) {
		values = formatValues(first.Values, vm.Format)
	}
	out := make([]map[string]any, 0, len(values))
	for i, value := range values {
		entry := map[string]any{
			"label": labelAt(vm.Labels, i),
			"value": value,
		}
		if i < len(vm.Details) {
			entry["details"] = vm.Details[i]
		}
		out = append(out, entry)
	}
	return out
}
