package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// CellWidth converts terminal columns into the viewport units the
// navigation breakpoint is expressed in.
const CellWidth = 8

// Options configures the terminal front-end.
type Options struct {
	Shell     *console.Shell
	Broadcast *console.BroadcastHook
	Logger    *zap.Logger
	Styles    *Styles
}

type focus int

const (
	focusSidebar focus = iota
	focusSearch
	focusEmail
	focusPassword
)

type eventMsg console.Event

type loginResultMsg struct{ err error }

// Model is the bubbletea model driving a console shell.
type Model struct {
	shell  *console.Shell
	events <-chan console.Event
	cancel func()
	logger *zap.Logger
	styles Styles

	width  int
	height int

	sections []console.SectionDefinition
	cursor   int
	focus    focus
	filterAt int

	email    textinput.Model
	password textinput.Model
	search   textinput.Model

	status string
	err    string
}

var _ tea.Model = (*Model)(nil)

// New builds the model. Close releases the event subscription.
func New(opts Options) (*Model, error) {
	if opts.Shell == nil {
		return nil, errors.New("tui: shell is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	email := textinput.New()
	email.Placeholder = "superadmin@denstack.com"
	email.Prompt = "Email    "
	password := textinput.New()
	password.Prompt = "Password "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	m := &Model{
		shell:    opts.Shell,
		logger:   logger.Named("tui"),
		styles:   styles,
		sections: opts.Shell.Sections(),
		email:    email,
		password: password,
		search:   search,
	}
	if opts.Broadcast != nil {
		m.events, m.cancel = opts.Broadcast.Subscribe()
	}
	if !m.authenticated() {
		m.focusField(focusEmail)
	}
	m.syncCursor()
	return m, nil
}

// Close unsubscribes from console events.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Init starts listening for console events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// Update handles bubbletea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case eventMsg:
		m.onEvent(console.Event(msg))
		return m, m.waitForEvent()
	case loginResultMsg:
		m.onLogin(msg.err)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.authenticated() {
			return m.updateLogin(msg)
		}
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		return m.updateSidebar(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.shell.Resize(context.Background(), width*CellWidth)
}

func (m *Model) onEvent(evt console.Event) {
	if evt.Kind == console.EventSession && !evt.Authenticated && m.focus != focusEmail && m.focus != focusPassword {
		m.status = ""
		m.err = "Session ended, please sign in again"
		m.password.SetValue("")
		m.focusField(focusEmail)
	}
	m.syncCursor()
}

func (m *Model) onLogin(err error) {
	if err != nil {
		var failure *console.AuthFailure
		if errors.As(err, &failure) {
			m.err = failure.UserMessage()
		} else {
			m.err = err.Error()
		}
		m.logger.Debug("login failed", zap.Error(err))
		return
	}
	m.err = ""
	m.password.SetValue("")
	m.status = "Signed in"
	m.focusField(focusSidebar)
	m.syncCursor()
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.focus == focusEmail {
			m.focusField(focusPassword)
		} else {
			m.focusField(focusEmail)
		}
		return m, nil
	case tea.KeyEnter:
		if m.focus == focusEmail {
			m.focusField(focusPassword)
			return m, nil
		}
		return m, m.loginCmd()
	}
	var cmd tea.Cmd
	if m.focus == focusPassword {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.applyCriteria()
		m.focusField(focusSidebar)
		return m, nil
	case tea.KeyEnter:
		m.focusField(focusSidebar)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyCriteria()
	return m, cmd
}

func (m *Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sections)-1 {
			m.cursor++
		}
	case "enter":
		m.selectSection(ctx, m.sections[m.cursor].ID)
	case "b", "ctrl+b":
		m.shell.ToggleSidebar(ctx)
	case "esc":
		m.shell.CloseDrawer(ctx)
	case "/":
		m.focusField(focusSearch)
		return m, textinput.Blink
	case "tab":
		if fields := m.activeDefinition().Filters; len(fields) > 0 {
			m.filterAt = (m.filterAt + 1) % len(fields)
		}
	case "f":
		m.cycleFilter()
	case "r":
		m.shell.Refresh(ctx)
		m.status = "Refreshing…"
	case "L":
		if err := m.shell.Logout(ctx); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.status = ""
		m.focusField(focusEmail)
	}
	return m, nil
}

func (m *Model) selectSection(ctx context.Context, id console.SectionID) {
	if _, err := m.shell.SelectSection(ctx, id); err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.status = ""
	m.filterAt = 0
	m.search.SetValue("")
}

func (m *Model) cycleFilter() {
	def := m.activeDefinition()
	if len(def.Filters) == 0 {
		return
	}
	field := def.Filters[m.filterAt%len(def.Filters)]
	options := append([]string{console.AllValue}, field.Values...)
	criteria := m.shell.Criteria()
	current := console.AllValue
	if v, ok := criteria.Fields[field.Name]; ok && !console.IsAll(v) {
		current = v
	}
	next := options[0]
	for i, option := range options {
		if option == current {
			next = options[(i+1)%len(options)]
			break
		}
	}
	if criteria.Fields == nil {
		criteria.Fields = map[string]string{}
	}
	criteria.Fields[field.Name] = next
	if err := m.shell.SetCriteria(context.Background(), criteria); err != nil {
		m.err = err.Error()
	}
}

func (m *Model) applyCriteria() {
	criteria := m.shell.Criteria()
	criteria.SearchTerm = m.search.Value()
	if err := m.shell.SetCriteria(context.Background(), criteria); err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
}

func (m *Model) loginCmd() tea.Cmd {
	creds := console.Credentials{Email: m.email.Value(), Password: m.password.Value()}
	shell := m.shell
	m.status = "Signing in…"
	return func() tea.Msg {
		_, err := shell.Login(context.Background(), creds)
		return loginResultMsg{err: err}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(evt)
	}
}

func (m *Model) focusField(f focus) {
	m.focus = f
	m.email.Blur()
	m.password.Blur()
	m.search.Blur()
	switch f {
	case focusEmail:
		m.email.Focus()
	case focusPassword:
		m.password.Focus()
	case focusSearch:
		m.search.Focus()
	}
}

func (m *Model) syncCursor() {
	active := m.shell.Navigation().ActiveSection
	for i, def := range m.sections {
		if def.ID == active {
			m.cursor = i
			return
		}
	}
}

func (m *Model) authenticated() bool {
	return m.shell.Session().IsAuthenticated
}

func (m *Model) activeDefinition() console.SectionDefinition {
	return m.shell.View().Definition
}
