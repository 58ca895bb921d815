package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/adharshSciPy/DenStack-Superadmin/pkg/config"
	consolepkg "github.com/adharshSciPy/DenStack-Superadmin/pkg/console"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/logging"
)

// stdout is swapped in tests.
var stdout io.Writer = color.Output

var errNotSignedIn = errors.New("denstackctl: not signed in (run `denstackctl login`)")

type cli struct {
	Globals

	Login    loginCmd    `cmd:"" help:"Sign in as a superadmin and persist the session."`
	Logout   logoutCmd   `cmd:"" help:"Clear the persisted session."`
	Whoami   whoamiCmd   `cmd:"" help:"Show the signed-in superadmin."`
	Sections sectionsCmd `cmd:"" help:"List the console sections in sidebar order."`
	List     listCmd     `cmd:"" help:"Fetch a section and print its (filtered) records."`
	Serve    serveCmd    `cmd:"" help:"Serve the console JSON API and event stream."`
	UI       uiCmd       `cmd:"" name:"ui" help:"Open the interactive terminal console."`
	Manifest manifestCmd `cmd:"" help:"Export or validate section manifests."`
}

// Globals are flags shared by every command.
type Globals struct {
	Config       string `type:"path" help:"Config file (defaults to ./denstack.yaml or ~/.denstack/denstack.yaml)."`
	Demo         bool   `help:"Use built-in demo data instead of the live services."`
	AuthURL      string `name:"auth-url" help:"Auth service base URL."`
	InventoryURL string `name:"inventory-url" help:"Inventory service base URL."`
	LogLevel     string `name:"log-level" help:"Log level (debug, info, warn, error)."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var c cli
	parser := kong.Parse(&c,
		kong.Name("denstackctl"),
		kong.Description("DenStack superadmin console."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&c.Globals),
	)
	err := parser.Run()
	parser.FatalIfErrorf(err)
}

func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Demo {
		cfg.Demo = true
	}
	if g.AuthURL != "" {
		cfg.Auth.BaseURL = g.AuthURL
	}
	if g.InventoryURL != "" {
		cfg.Inventory.BaseURL = g.InventoryURL
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

// runtime loads configuration and wires a console. logOutput, when set,
// replaces the configured log destination.
func (g *Globals) runtime(ctx context.Context, logOutput string) (*consolepkg.Runtime, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	if logOutput != "" && isStream(cfg.Log.Output) {
		cfg.Log.Output = logOutput
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	rt, err := consolepkg.NewRuntime(ctx, consolepkg.RuntimeOptions{Config: cfg, Logger: logger})
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Debug("console ready", zap.Bool("demo", cfg.Demo), zap.String("session", cfg.Session.Path))
	return rt, nil
}

func isStream(output string) bool {
	switch strings.ToLower(output) {
	case "", "stdout", "stderr":
		return true
	}
	return false
}

func closeRuntime(rt *consolepkg.Runtime) {
	rt.Close()
	_ = rt.Logger.Sync()
}

func success(format string, args ...any) {
	_, _ = fmt.Fprintln(stdout, color.New(color.FgGreen).Sprint("✓ ")+fmt.Sprintf(format, args...))
}

func warn(format string, args ...any) {
	_, _ = fmt.Fprintln(stdout, color.New(color.FgYellow).Sprint("! ")+fmt.Sprintf(format, args...))
}
