package dashboard

// LayoutVersion is the current layout manifest format version.
const LayoutVersion = "1"

// Layout lists the dashboard pages and the widgets placed on each.
type Layout struct {
	Version string       `json:"version" yaml:"version"`
	Pages   []PageLayout `json:"pages" yaml:"pages"`
	Source  string       `json:"-" yaml:"-"`
}

// PageLayout is one dashboard page.
type PageLayout struct {
	Code    string            `json:"code" yaml:"code"`
	Title   string            `json:"title" yaml:"title"`
	Widgets []WidgetPlacement `json:"widgets" yaml:"widgets"`
}

// WidgetPlacement puts a widget definition on a page with its configuration.
type WidgetPlacement struct {
	Code          string         `json:"code" yaml:"code"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}

// Page looks a page up by code.
func (l *Layout) Page(code string) (PageLayout, bool) {
	if l == nil {
		return PageLayout{}, false
	}
	for _, page := range l.Pages {
		if page.Code == code {
			return page, true
		}
	}
	return PageLayout{}, false
}

// SellerScoped reports whether any widget on the page follows the selection.
func (p PageLayout) SellerScoped(reg *Registry) bool {
	for _, placement := range p.Widgets {
		if def, ok := reg.Definition(placement.Code); ok && def.Scope == ScopeSeller {
			return true
		}
	}
	return false
}
