package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// SelectSectionInput names the section to activate.
type SelectSectionInput struct {
	Section console.SectionID `json:"section"`
}

type selectService interface {
	SelectSection(ctx context.Context, id console.SectionID) (console.NavigationState, error)
}

// SelectSectionCommand switches the active section.
type SelectSectionCommand struct {
	service   selectService
	telemetry Telemetry
}

// NewSelectSectionCommand creates a command instance.
func NewSelectSectionCommand(service selectService, telemetry Telemetry) *SelectSectionCommand {
	return &SelectSectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectSectionInput] = (*SelectSectionCommand)(nil)

// Execute parses the id before handing it to the shell.
func (c *SelectSectionCommand) Execute(ctx context.Context, msg SelectSectionInput) error {
	if c.service == nil {
		return errors.New("select section command requires service")
	}
	id, err := console.ParseSectionID(string(msg.Section))
	if err != nil {
		return err
	}
	state, err := c.service.SelectSection(ctx, id)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.select_section", map[string]any{
		"section": string(id),
		"mode":    string(state.Mode()),
	})
	return nil
}

// ToggleSidebarInput carries no fields.
type ToggleSidebarInput struct{}

type toggleService interface {
	ToggleSidebar(ctx context.Context) console.NavigationState
}

// ToggleSidebarCommand collapses/expands the desktop sidebar or opens/closes
// the mobile drawer.
type ToggleSidebarCommand struct {
	service   toggleService
	telemetry Telemetry
}

// NewToggleSidebarCommand creates a command instance.
func NewToggleSidebarCommand(service toggleService, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSidebarInput] = (*ToggleSidebarCommand)(nil)

// Execute toggles the sidebar.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, _ ToggleSidebarInput) error {
	if c.service == nil {
		return errors.New("toggle sidebar command requires service")
	}
	state := c.service.ToggleSidebar(ctx)
	c.telemetry.Record(ctx, "console.command.toggle_sidebar", map[string]any{"mode": string(state.Mode())})
	return nil
}

// ResizeViewportInput reports the new viewport width in pixels (or columns
// for terminal front-ends).
type ResizeViewportInput struct {
	Width int `json:"width"`
}

type resizeService interface {
	Resize(ctx context.Context, width int) console.NavigationState
}

// ResizeViewportCommand applies a viewport width change.
type ResizeViewportCommand struct {
	service   resizeService
	telemetry Telemetry
}

// NewResizeViewportCommand creates a command instance.
func NewResizeViewportCommand(service resizeService, telemetry Telemetry) *ResizeViewportCommand {
	return &ResizeViewportCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeViewportInput] = (*ResizeViewportCommand)(nil)

// Execute rejects non-positive widths.
func (c *ResizeViewportCommand) Execute(ctx context.Context, msg ResizeViewportInput) error {
	if c.service == nil {
		return errors.New("resize viewport command requires service")
	}
	if msg.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidInput, msg.Width)
	}
	state := c.service.Resize(ctx, msg.Width)
	c.telemetry.Record(ctx, "console.command.resize", map[string]any{
		"width": msg.Width,
		"mode":  string(state.Mode()),
	})
	return nil
}

// CloseDrawerInput carries no fields.
type CloseDrawerInput struct{}

type closeDrawerService interface {
	CloseDrawer(ctx context.Context) console.NavigationState
}

// CloseDrawerCommand dismisses the mobile drawer (backdrop tap).
type CloseDrawerCommand struct {
	service closeDrawerService
}

// NewCloseDrawerCommand creates a command instance.
func NewCloseDrawerCommand(service closeDrawerService) *CloseDrawerCommand {
	return &CloseDrawerCommand{service: service}
}

var _ gocommand.Commander[CloseDrawerInput] = (*CloseDrawerCommand)(nil)

// Execute closes the drawer.
func (c *CloseDrawerCommand) Execute(ctx context.Context, _ CloseDrawerInput) error {
	if c.service == nil {
		return errors.New("close drawer command requires service")
	}
	c.service.CloseDrawer(ctx)
	return nil
}
