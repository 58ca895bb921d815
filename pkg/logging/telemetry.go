package logging

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Telemetry records console events as debug log entries. It satisfies the
// Telemetry interfaces of the console core and its commands.
type Telemetry struct {
	logger *zap.Logger
}

// NewTelemetry adapts a zap logger.
func NewTelemetry(logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telemetry{logger: logger.Named("telemetry")}
}

// Record logs event with its payload as structured fields.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, payload[k]))
	}
	t.logger.Debug(event, fields...)
}
