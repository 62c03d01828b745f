package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

// SellersInput identifies the session whose sellers list is requested.
type SellersInput struct {
	SessionID string
}

type sellersService interface {
	Sellers(ctx context.Context, sessionID string) (dashboard.SelectionState, error)
}

// SellersQuery returns the sellers collection and the current selection.
type SellersQuery struct {
	service sellersService
}

// NewSellersQuery builds the query.
func NewSellersQuery(service sellersService) *SellersQuery {
	return &SellersQuery{service: service}
}

var _ gocommand.Querier[SellersInput, dashboard.SelectionState] = (*SellersQuery)(nil)

// Query resolves the selection snapshot for the session.
func (q *SellersQuery) Query(ctx context.Context, input SellersInput) (dashboard.SelectionState, error) {
	return q.service.Sellers(ctx, input.SessionID)
}
