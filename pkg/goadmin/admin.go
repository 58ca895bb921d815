package goadmin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// MenuBuilder ensures console entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Group    string
	Badge    string
	Position int
}

// Config wires the console shell and feature flags into an admin host.
type Config struct {
	EnableConsole bool
	MenuCode      string
	// RoutePrefix is prepended to each section id to build menu routes.
	RoutePrefix string
	MenuBuilder MenuBuilder
	Shell       *console.Shell
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed console menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableConsole && cfg.Shell == nil {
		return nil, errors.New("goadmin: console shell is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.RoutePrefix == "" {
		cfg.RoutePrefix = "admin.console."
	}
	return &Admin{cfg: cfg}, nil
}

// Console exposes the configured shell when enabled.
func (a *Admin) Console() *console.Shell {
	if !a.cfg.EnableConsole {
		return nil
	}
	return a.cfg.Shell
}

// MenuItems maps the shell's sections to menu entries in sidebar order.
func (a *Admin) MenuItems() []MenuItem {
	if a.Console() == nil {
		return nil
	}
	defs := a.cfg.Shell.Sections()
	items := make([]MenuItem, 0, len(defs))
	for idx, def := range defs {
		items = append(items, MenuItem{
			Label:    def.Label,
			Route:    a.cfg.RoutePrefix + string(def.ID),
			Icon:     def.Icon,
			Group:    string(def.Group),
			Badge:    def.Badge,
			Position: idx,
		})
	}
	return items
}

// Bootstrap seeds one menu entry per section when console support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableConsole || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure menu item %s: %w", item.Route, err)
		}
	}
	return nil
}

// LoggingMenuBuilder records menu entries instead of persisting them.
type LoggingMenuBuilder struct {
	Logger *zap.Logger
}

// EnsureMenuItem implements MenuBuilder.
func (b LoggingMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item MenuItem) error {
	logger := b.Logger
	if logger == nil {
		return nil
	}
	logger.Info("menu item ensured",
		zap.String("menu", menuCode),
		zap.String("route", item.Route),
		zap.String("label", item.Label),
		zap.Int("position", item.Position),
	)
	return nil
}
