package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/adharshSciPy/DenStack-Superadmin/pkg/logging"
)

// EnvPrefix prefixes every environment override, e.g. DENSTACK_AUTH_BASE_URL.
const EnvPrefix = "DENSTACK"

// Config holds the console configuration.
type Config struct {
	Auth       ServiceConfig
	Inventory  ServiceConfig
	HTTP       HTTPConfig
	Session    SessionConfig
	Navigation NavigationConfig
	Manifest   ManifestConfig
	Log        logging.Config
	Server     ServerConfig
	// Demo serves built-in fixtures instead of calling the collaborators.
	Demo bool
	// FallbackFixtures serves built-in fixtures for endpoints the live
	// services answer with 404.
	FallbackFixtures bool
}

// ServiceConfig points at one collaborator service.
type ServiceConfig struct {
	BaseURL string
}

// HTTPConfig tunes the outbound client.
type HTTPConfig struct {
	Timeout time.Duration
}

// SessionConfig locates the durable session store.
type SessionConfig struct {
	Path string
}

// NavigationConfig seeds the navigation controller.
type NavigationConfig struct {
	Breakpoint int
	Width      int
}

// ManifestConfig optionally overrides section definitions.
type ManifestConfig struct {
	Path string
}

// ServerConfig configures `denstackctl serve`.
type ServerConfig struct {
	Addr string
}

// Load reads configuration with the following priority (highest first):
//  1. environment variables with the DENSTACK_ prefix (a .env file in the
//     working directory is loaded into the environment first)
//  2. the config file at path, or denstack.yaml in . and ~/.denstack
//  3. built-in defaults
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("denstack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".denstack"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Auth:      ServiceConfig{BaseURL: v.GetString("auth.base_url")},
		Inventory: ServiceConfig{BaseURL: v.GetString("inventory.base_url")},
		HTTP:      HTTPConfig{Timeout: v.GetDuration("http.timeout")},
		Session:   SessionConfig{Path: expandHome(v.GetString("session.path"))},
		Navigation: NavigationConfig{
			Breakpoint: v.GetInt("navigation.breakpoint"),
			Width:      v.GetInt("navigation.width"),
		},
		Manifest: ManifestConfig{Path: v.GetString("manifest.path")},
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Server: ServerConfig{Addr: v.GetString("server.addr")},
		Demo:   v.GetBool("demo"),

		FallbackFixtures: v.GetBool("fallback_fixtures"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the console unusable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.BaseURL) == "" && !c.Demo {
		errs = append(errs, fmt.Errorf("auth.base_url is required"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout))
	}
	if c.Navigation.Breakpoint <= 0 {
		errs = append(errs, fmt.Errorf("navigation.breakpoint must be positive, got %d", c.Navigation.Breakpoint))
	}
	if c.Session.Path == "" {
		errs = append(errs, fmt.Errorf("session.path is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("auth.base_url", "http://localhost:8001/")
	v.SetDefault("inventory.base_url", "http://localhost:8002/")
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("session.path", "~/.denstack/session")
	v.SetDefault("navigation.breakpoint", 1024)
	v.SetDefault("navigation.width", 1280)
	v.SetDefault("manifest.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("server.addr", ":9876")
	v.SetDefault("demo", false)
	v.SetDefault("fallback_fixtures", false)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
