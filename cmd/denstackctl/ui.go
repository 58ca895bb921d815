package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adharshSciPy/DenStack-Superadmin/pkg/tui"
)

type uiCmd struct{}

func (cmd *uiCmd) Run(ctx context.Context, g *Globals) error {
	// The alternate screen owns the terminal, so stream logs are dropped.
	rt, err := g.runtime(ctx, "discard")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	model, err := tui.New(tui.Options{Shell: rt.Shell, Broadcast: rt.Broadcast, Logger: rt.Logger})
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
