package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshPageInput asks a session to re-fetch every widget on a page.
type RefreshPageInput struct {
	SessionID string `json:"session_id"`
	Page      string `json:"page"`
}

type pageRefresher interface {
	RefreshPage(sessionID, page string) error
}

// RefreshPageCommand re-runs the fetches of an open page.
type RefreshPageCommand struct {
	service   pageRefresher
	telemetry Telemetry
}

// NewRefreshPageCommand creates the command.
func NewRefreshPageCommand(service pageRefresher, telemetry Telemetry) *RefreshPageCommand {
	return &RefreshPageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshPageInput] = (*RefreshPageCommand)(nil)

// Execute triggers the refresh; results arrive asynchronously.
func (c *RefreshPageCommand) Execute(ctx context.Context, msg RefreshPageInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.Page == "" {
		return errors.New("page is required")
	}
	if err := c.service.RefreshPage(msg.SessionID, msg.Page); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventRefreshPage, map[string]any{
		"session_id": msg.SessionID,
		"page":       msg.Page,
	})
	return nil
}
