package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

type loginCmd struct {
	Email    string `required:"" help:"Superadmin email."`
	Password string `required:"" env:"DENSTACK_PASSWORD" help:"Superadmin password (or DENSTACK_PASSWORD)."`
}

func (cmd *loginCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	session, err := rt.Shell.Login(ctx, console.Credentials{Email: cmd.Email, Password: cmd.Password})
	if err != nil {
		var failure *console.AuthFailure
		if errors.As(err, &failure) {
			return fmt.Errorf("denstackctl: %s", failure.UserMessage())
		}
		return err
	}
	name := cmd.Email
	if session.User != nil && session.User.Name != "" {
		name = session.User.Name
	}
	success("Signed in as %s", name)
	return nil
}

type logoutCmd struct{}

func (cmd *logoutCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	if err := rt.Shell.Logout(ctx); err != nil {
		return err
	}
	success("Signed out")
	return nil
}

type whoamiCmd struct{}

func (cmd *whoamiCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	session := rt.Shell.Session()
	if !session.IsAuthenticated {
		return errNotSignedIn
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	if user := session.User; user != nil {
		tbl.AddRow(bold.Sprint("Name"), user.Name)
		tbl.AddRow(bold.Sprint("Email"), user.Email)
		tbl.AddRow(bold.Sprint("Role"), user.Role)
		tbl.AddRow(bold.Sprint("ID"), user.ID)
	}
	if !session.ExpiresAt.IsZero() {
		tbl.AddRow(bold.Sprint("Expires"), session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(stdout, strings.TrimRight(tbl.String(), "\n"))
	return nil
}
