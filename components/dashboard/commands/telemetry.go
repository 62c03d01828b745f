package commands

import "context"

// Events emitted after a command succeeds. Both carry session_id; select
// adds seller_id and refresh adds page. dashboard.MultiTelemetry and its
// zerolog and prometheus sinks satisfy Telemetry.
const (
	EventSelectSeller = "dashboard.command.select_seller"
	EventRefreshPage  = "dashboard.command.refresh"
)

// Telemetry receives command events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}
