package commands

import (
	"context"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
)

// Telemetry allows commands to emit structured events. It is the dashboard contract so
// hosts can share one sink between the controller and the commands.
type Telemetry = dashboard.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
