package httpapi

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/commands"
	"github.com/adharshSciPy/DenStack-Superadmin/components/console/queries"
)

// Executor is the transport-neutral surface used by router adapters.
type Executor interface {
	Login(ctx context.Context, creds console.Credentials) error
	Logout(ctx context.Context) error
	SelectSection(ctx context.Context, input commands.SelectSectionInput) error
	ToggleSidebar(ctx context.Context) error
	Resize(ctx context.Context, input commands.ResizeViewportInput) error
	CloseDrawer(ctx context.Context) error
	UpdateCriteria(ctx context.Context, input commands.UpdateCriteriaInput) error
	Refresh(ctx context.Context, input commands.RefreshSectionInput) error
	Session(ctx context.Context) (console.Session, error)
	Navigation(ctx context.Context) (queries.NavigationResult, error)
	Sections(ctx context.Context) ([]console.SectionDefinition, error)
	View(ctx context.Context, input queries.SectionViewInput) (console.SectionView, error)
}

// CommandExecutor implements Executor on top of go-command commanders and
// queriers. Unset fields fail with ErrNotConfigured.
type CommandExecutor struct {
	LoginCommander          gocommand.Commander[console.Credentials]
	LogoutCommander         gocommand.Commander[commands.LogoutInput]
	SelectSectionCommander  gocommand.Commander[commands.SelectSectionInput]
	ToggleSidebarCommander  gocommand.Commander[commands.ToggleSidebarInput]
	ResizeCommander         gocommand.Commander[commands.ResizeViewportInput]
	CloseDrawerCommander    gocommand.Commander[commands.CloseDrawerInput]
	UpdateCriteriaCommander gocommand.Commander[commands.UpdateCriteriaInput]
	RefreshCommander        gocommand.Commander[commands.RefreshSectionInput]

	SessionQuerier    gocommand.Querier[queries.SessionInput, console.Session]
	NavigationQuerier gocommand.Querier[queries.NavigationInput, queries.NavigationResult]
	SectionsQuerier   gocommand.Querier[queries.SectionsInput, []console.SectionDefinition]
	ViewQuerier       gocommand.Querier[queries.SectionViewInput, console.SectionView]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires every command and query to shell.
func NewCommandExecutor(shell *console.Shell, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		LoginCommander:          commands.NewLoginCommand(shell, telemetry),
		LogoutCommander:         commands.NewLogoutCommand(shell, telemetry),
		SelectSectionCommander:  commands.NewSelectSectionCommand(shell, telemetry),
		ToggleSidebarCommander:  commands.NewToggleSidebarCommand(shell, telemetry),
		ResizeCommander:         commands.NewResizeViewportCommand(shell, telemetry),
		CloseDrawerCommander:    commands.NewCloseDrawerCommand(shell),
		UpdateCriteriaCommander: commands.NewUpdateCriteriaCommand(shell, telemetry),
		RefreshCommander:        commands.NewRefreshSectionCommand(shell, telemetry),
		SessionQuerier:          queries.NewSessionQuery(shell),
		NavigationQuerier:       queries.NewNavigationQuery(shell),
		SectionsQuerier:         queries.NewSectionsQuery(shell),
		ViewQuerier:             queries.NewSectionViewQuery(shell),
	}
}

func (e *CommandExecutor) Login(ctx context.Context, creds console.Credentials) error {
	return execute(ctx, e.LoginCommander, creds, "login")
}

func (e *CommandExecutor) Logout(ctx context.Context) error {
	return execute(ctx, e.LogoutCommander, commands.LogoutInput{}, "logout")
}

func (e *CommandExecutor) SelectSection(ctx context.Context, input commands.SelectSectionInput) error {
	return execute(ctx, e.SelectSectionCommander, input, "select section")
}

func (e *CommandExecutor) ToggleSidebar(ctx context.Context) error {
	return execute(ctx, e.ToggleSidebarCommander, commands.ToggleSidebarInput{}, "toggle sidebar")
}

func (e *CommandExecutor) Resize(ctx context.Context, input commands.ResizeViewportInput) error {
	return execute(ctx, e.ResizeCommander, input, "resize")
}

func (e *CommandExecutor) CloseDrawer(ctx context.Context) error {
	return execute(ctx, e.CloseDrawerCommander, commands.CloseDrawerInput{}, "close drawer")
}

func (e *CommandExecutor) UpdateCriteria(ctx context.Context, input commands.UpdateCriteriaInput) error {
	return execute(ctx, e.UpdateCriteriaCommander, input, "update criteria")
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshSectionInput) error {
	return execute(ctx, e.RefreshCommander, input, "refresh")
}

func (e *CommandExecutor) Session(ctx context.Context) (console.Session, error) {
	return query(ctx, e.SessionQuerier, queries.SessionInput{}, "session")
}

func (e *CommandExecutor) Navigation(ctx context.Context) (queries.NavigationResult, error) {
	return query(ctx, e.NavigationQuerier, queries.NavigationInput{}, "navigation")
}

func (e *CommandExecutor) Sections(ctx context.Context) ([]console.SectionDefinition, error) {
	return query(ctx, e.SectionsQuerier, queries.SectionsInput{}, "sections")
}

func (e *CommandExecutor) View(ctx context.Context, input queries.SectionViewInput) (console.SectionView, error) {
	return query(ctx, e.ViewQuerier, input, "view")
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T, name string) error {
	if cmd == nil {
		return fmt.Errorf("%w: %s", ErrNotConfigured, name)
	}
	return cmd.Execute(ctx, msg)
}

func query[T, R any](ctx context.Context, q gocommand.Querier[T, R], msg T, name string) (R, error) {
	if q == nil {
		var zero R
		return zero, fmt.Errorf("%w: %s", ErrNotConfigured, name)
	}
	return q.Query(ctx, msg)
}
