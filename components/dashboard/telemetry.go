package dashboard

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// ZapTelemetry writes events as debug log entries.
type ZapTelemetry struct {
	Log *zap.Logger
}

// NewZapTelemetry wraps logger. A nil logger discards events.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTelemetry{Log: logger}
}

// Record logs event with one field per payload key, sorted by key.
func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	t.Log.Debug(event, fields...)
}
