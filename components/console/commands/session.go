package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

type loginService interface {
	Login(ctx context.Context, creds console.Credentials) (console.Session, error)
}

// LoginCommand exchanges credentials for a session.
type LoginCommand struct {
	service   loginService
	telemetry Telemetry
}

// NewLoginCommand creates a command instance.
func NewLoginCommand(service loginService, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[console.Credentials] = (*LoginCommand)(nil)

// Execute logs in. AuthFailure errors are returned untouched so transports
// can show their message.
func (c *LoginCommand) Execute(ctx context.Context, msg console.Credentials) error {
	if c.service == nil {
		return errors.New("login command requires service")
	}
	session, err := c.service.Login(ctx, msg)
	if err != nil {
		return err
	}
	payload := map[string]any{"email": msg.Email}
	if session.User != nil {
		payload["user_id"] = session.User.ID
	}
	c.telemetry.Record(ctx, "console.session.login", payload)
	return nil
}

// LogoutInput carries no fields; logout always targets the current session.
type LogoutInput struct{}

type logoutService interface {
	Logout(ctx context.Context) error
}

// LogoutCommand clears the session.
type LogoutCommand struct {
	service   logoutService
	telemetry Telemetry
}

// NewLogoutCommand creates a command instance.
func NewLogoutCommand(service logoutService, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute logs out. Logging out twice is not an error.
func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutInput) error {
	if c.service == nil {
		return errors.New("logout command requires service")
	}
	if err := c.service.Logout(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.session.logout", nil)
	return nil
}
