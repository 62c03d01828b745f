package dashboard

import (
	"fmt"
	"time"
)

const (
	pageTemplate          = "dashboard"
	defaultRefreshSeconds = 2
)

// Controller turns page snapshots into full HTML documents.
type Controller struct {
	templates Renderer
	widgets   *WidgetRenderer
	pages     []PageLayout
	refresh   time.Duration
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithRefreshInterval sets the meta refresh delay used while widgets load.
func WithRefreshInterval(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// NewController wires page and widget rendering for a layout.
func NewController(templates Renderer, widgets *WidgetRenderer, layout *Layout, opts ...ControllerOption) *Controller {
	c := &Controller{
		templates: templates,
		widgets:   widgets,
		refresh:   defaultRefreshSeconds * time.Second,
	}
	if layout != nil {
		c.pages = layout.Pages
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderPage renders view as an HTML document. While anything is still
// loading the document asks the browser to reload itself.
func (c *Controller) RenderPage(view PageView) (string, error) {
	widgets := make([]string, 0, len(view.Widgets))
	for _, w := range view.Widgets {
		html, err := c.widgets.Render(w)
		if err != nil {
			return "", err
		}
		widgets = append(widgets, html)
	}
	html, err := c.templates.Render(pageTemplate, c.pageData(view, widgets))
	if err != nil {
		return "", fmt.Errorf("dashboard: render page %s: %w", view.Page.Code, err)
	}
	return html, nil
}

func (c *Controller) pageData(view PageView, widgets []string) map[string]any {
	pages := make([]map[string]any, 0, len(c.pages))
	for _, page := range c.pages {
		pages = append(pages, map[string]any{"code": page.Code, "title": page.Title})
	}
	sel := view.Selection
	sellers := make([]map[string]any, 0, len(sel.Sellers))
	for _, seller := range sel.Sellers {
		sellers = append(sellers, map[string]any{"id": seller.ID, "name": seller.Name})
	}
	data := map[string]any{
		"page_code":         view.Page.Code,
		"page_title":        view.Page.Title,
		"pages":             pages,
		"seller_scoped":     view.SellerScoped,
		"sellers":           sellers,
		"selected_id":       sel.Selected.ID,
		"selected_name":     sel.Selected.Name,
		"selection_loading": !sel.Settled(),
		"widgets":           widgets,
		"loading":           view.Loading(),
		"refresh_seconds":   int(c.refresh.Seconds()),
	}
	if sel.Err != nil {
		data["selection_error"] = sel.Err.Error()
	}
	return data
}
