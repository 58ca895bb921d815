package console

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	core "github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/activity"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/config"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/denstack"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/logging"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/sessionstore"
)

// RuntimeOptions assembles a console from configuration. Storage and Client
// override the configured collaborators.
type RuntimeOptions struct {
	Config        *config.Config
	Logger        *zap.Logger
	ActivityHooks activity.Hooks
	Storage       core.SessionStorage
	Client        denstack.Client
}

// Runtime owns a fully wired console.
type Runtime struct {
	Config     *config.Config
	Shell      *Shell
	Session    *core.SessionStore
	Navigation *core.NavigationController
	Registry   *core.Registry
	Broadcast  *core.BroadcastHook
	Client     denstack.Client
	Telemetry  *logging.Telemetry
	Logger     *zap.Logger
}

// NewRuntime builds the session store, navigation controller, registry and
// shell described by opts.Config.
func NewRuntime(ctx context.Context, opts RuntimeOptions) (*Runtime, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("console: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	telemetry := logging.NewTelemetry(logger)

	client := opts.Client
	if client == nil {
		var err error
		client, err = newClient(cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	storage := opts.Storage
	if storage == nil {
		disk, err := sessionstore.New(sessionstore.Config{BasePath: cfg.Session.Path})
		if err != nil {
			return nil, err
		}
		storage = disk
	}

	registry := core.NewRegistry()
	if cfg.Manifest.Path != "" {
		if _, err := registry.LoadManifestFile(cfg.Manifest.Path); err != nil {
			return nil, err
		}
	}
	if cfg.FallbackFixtures && !cfg.Demo {
		fallback := denstack.NewFallbackSource(client, denstack.NewMockClient(denstack.DemoData()).Fixtures())
		if err := denstack.RegisterSources(registry, fallback, core.SectionIDs()...); err != nil {
			return nil, err
		}
	}

	hooks := append(activity.Hooks{activity.LogHook(logger)}, opts.ActivityHooks...)
	emitter := activity.NewEmitter(hooks, activity.Config{Enabled: true})
	session, err := core.NewSessionStore(ctx, core.SessionOptions{
		Auth:      client,
		Storage:   storage,
		Hook:      activity.SessionHook{Emitter: emitter},
		Telemetry: telemetry,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	navigation := core.NewNavigationController(cfg.Navigation.Width,
		core.WithBreakpoint(cfg.Navigation.Breakpoint),
		core.WithNavigationLogger(logger),
	)
	broadcast := core.NewBroadcastHook()
	shell, err := core.NewShell(core.Options{
		Session:    session,
		Navigation: navigation,
		Registry:   registry,
		Source:     client,
		EventHook:  broadcast,
		Telemetry:  telemetry,
		Logger:     logger,
	})
	if err != nil {
		session.Dispose()
		return nil, err
	}
	return &Runtime{
		Config:     cfg,
		Shell:      shell,
		Session:    session,
		Navigation: navigation,
		Registry:   registry,
		Broadcast:  broadcast,
		Client:     client,
		Telemetry:  telemetry,
		Logger:     logger,
	}, nil
}

// Close stops background fetches and releases the session store.
func (r *Runtime) Close() {
	r.Shell.Close()
	r.Session.Dispose()
}

func newClient(cfg *config.Config, logger *zap.Logger) (denstack.Client, error) {
	if cfg.Demo {
		return denstack.NewMockClient(denstack.DemoData()), nil
	}
	client, err := denstack.NewHTTPClient(denstack.HTTPConfig{
		AuthBaseURL:      cfg.Auth.BaseURL,
		InventoryBaseURL: cfg.Inventory.BaseURL,
		HTTPClient:       &http.Client{Timeout: cfg.HTTP.Timeout},
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
