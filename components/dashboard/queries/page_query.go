package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

// PageInput identifies a page for a session.
type PageInput struct {
	SessionID string
	Page      string
}

// PageResult carries the snapshot and, for render queries, its HTML.
type PageResult struct {
	View dashboard.PageView
	HTML string
}

type pageService interface {
	PageView(ctx context.Context, sessionID, page string) (dashboard.PageView, error)
}

type pageRenderer interface {
	RenderPage(view dashboard.PageView) (string, error)
}

// PageViewQuery snapshots a page without rendering it.
type PageViewQuery struct {
	service pageService
}

// NewPageViewQuery builds the query.
func NewPageViewQuery(service pageService) *PageViewQuery {
	return &PageViewQuery{service: service}
}

var _ gocommand.Querier[PageInput, PageResult] = (*PageViewQuery)(nil)

// Query opens the page and returns its view.
func (q *PageViewQuery) Query(ctx context.Context, input PageInput) (PageResult, error) {
	view, err := q.service.PageView(ctx, input.SessionID, input.Page)
	if err != nil {
		return PageResult{}, err
	}
	return PageResult{View: view}, nil
}

// RenderPageQuery snapshots a page and renders it to HTML.
type RenderPageQuery struct {
	service  pageService
	renderer pageRenderer
}

// NewRenderPageQuery builds the query.
func NewRenderPageQuery(service pageService, renderer pageRenderer) *RenderPageQuery {
	return &RenderPageQuery{service: service, renderer: renderer}
}

var _ gocommand.Querier[PageInput, PageResult] = (*RenderPageQuery)(nil)

// Query returns the page view together with its HTML document.
func (q *RenderPageQuery) Query(ctx context.Context, input PageInput) (PageResult, error) {
	view, err := q.service.PageView(ctx, input.SessionID, input.Page)
	if err != nil {
		return PageResult{}, err
	}
	html, err := q.renderer.RenderPage(view)
	if err != nil {
		return PageResult{}, err
	}
	return PageResult{View: view, HTML: html}, nil
}
