package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
)

// SelectSellerInput changes the seller shown to a session.
type SelectSellerInput struct {
	SessionID string `json:"session_id"`
	SellerID  string `json:"seller_id"`
}

type sellerSelector interface {
	ChangeSeller(ctx context.Context, sessionID, sellerID string) error
}

// SelectSellerCommand routes seller changes to the session selection.
type SelectSellerCommand struct {
	service   sellerSelector
	telemetry Telemetry
}

// NewSelectSellerCommand creates the command.
func NewSelectSellerCommand(service sellerSelector, telemetry Telemetry) *SelectSellerCommand {
	return &SelectSellerCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectSellerInput] = (*SelectSellerCommand)(nil)

// Execute changes the selection. Unknown seller ids surface as
// dashboard.ErrSellerNotFound.
func (c *SelectSellerCommand) Execute(ctx context.Context, msg SelectSellerInput) error {
	if c.service == nil {
		return errors.New("select seller command requires service")
	}
	sellerID := strings.TrimSpace(msg.SellerID)
	if sellerID == "" {
		return errors.New("seller id is required")
	}
	if err := c.service.ChangeSeller(ctx, msg.SessionID, sellerID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventSelectSeller, map[string]any{
		"session_id": msg.SessionID,
		"seller_id":  sellerID,
	})
	return nil
}
