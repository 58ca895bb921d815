package goadmin_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/denstack"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	if s.err != nil {
		return s.err
	}
	s.items = append(s.items, item)
	return nil
}

func newShell(t *testing.T) *console.Shell {
	t.Helper()
	client := denstack.NewMockClient(denstack.DemoData())
	session, err := console.NewSessionStore(context.Background(), console.SessionOptions{Auth: client})
	if err != nil {
		t.Fatalf("NewSessionStore returned error: %v", err)
	}
	shell, err := console.NewShell(console.Options{Session: session, Source: client})
	if err != nil {
		t.Fatalf("NewShell returned error: %v", err)
	}
	t.Cleanup(shell.Close)
	return shell
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	shell := newShell(t)
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: true,
		Shell:         shell,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != len(shell.Sections()) {
		t.Fatalf("expected %d items, got %d", len(shell.Sections()), len(builder.items))
	}
	clinics := builder.items[1]
	if clinics.Route != "admin.console.clinics" || clinics.Position != 1 {
		t.Fatalf("unexpected clinics item %+v", clinics)
	}
	if admin.Console() == nil {
		t.Fatalf("expected console shell")
	}
}

func TestAdminBootstrapPropagatesBuilderErrors(t *testing.T) {
	boom := errors.New("menu store down")
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: true,
		Shell:         newShell(t),
		MenuBuilder:   &stubMenuBuilder{err: boom},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected builder error, got %v", err)
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: false,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Console() != nil {
		t.Fatalf("expected nil console when disabled")
	}
}

func TestNewRequiresShellWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableConsole: true}); err == nil {
		t.Fatalf("expected error without shell")
	}
}

func TestLoggingMenuBuilder(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	builder := goadmin.LoggingMenuBuilder{Logger: zap.New(core)}
	if err := builder.EnsureMenuItem(context.Background(), "admin.main", goadmin.MenuItem{Label: "Orders", Route: "admin.console.orders"}); err != nil {
		t.Fatalf("EnsureMenuItem returned error: %v", err)
	}
	entries := logs.FilterField(zap.String("route", "admin.console.orders")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
}
