package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshSectionInput reloads the active section. With Wait set, Execute
// blocks until the reload has been applied or discarded.
type RefreshSectionInput struct {
	Wait bool `json:"wait"`
}

type refreshService interface {
	Refresh(ctx context.Context) <-chan struct{}
}

// RefreshSectionCommand starts a new fetch generation for the active section.
type RefreshSectionCommand struct {
	service   refreshService
	telemetry Telemetry
}

// NewRefreshSectionCommand creates a command instance.
func NewRefreshSectionCommand(service refreshService, telemetry Telemetry) *RefreshSectionCommand {
	return &RefreshSectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshSectionInput] = (*RefreshSectionCommand)(nil)

// Execute triggers the refresh.
func (c *RefreshSectionCommand) Execute(ctx context.Context, msg RefreshSectionInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	done := c.service.Refresh(ctx)
	c.telemetry.Record(ctx, "console.command.refresh", map[string]any{"wait": msg.Wait})
	if !msg.Wait {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
