package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/denstack"
)

func newTestModel(t *testing.T) (*Model, *console.Shell) {
	t.Helper()
	client := denstack.NewMockClient(denstack.DemoData())
	store, err := console.NewSessionStore(context.Background(), console.SessionOptions{Auth: client})
	require.NoError(t, err)
	broadcast := console.NewBroadcastHook()
	shell, err := console.NewShell(console.Options{
		Session:    store,
		Navigation: console.NewNavigationController(1280),
		Source:     client,
		EventHook:  broadcast,
	})
	require.NoError(t, err)
	t.Cleanup(shell.Close)

	model, err := New(Options{Shell: shell, Broadcast: broadcast})
	require.NoError(t, err)
	t.Cleanup(model.Close)
	return model, shell
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func login(t *testing.T, m *Model, password string) {
	t.Helper()
	typeText(m, denstack.DemoEmail)
	press(m, tea.KeyTab)
	typeText(m, password)
	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestNewRequiresShell(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestLoginFormShowsAuthFailure(t *testing.T) {
	m, shell := newTestModel(t)
	assert.Contains(t, m.View(), "Password")

	login(t, m, "wrong")

	assert.False(t, shell.Session().IsAuthenticated)
	assert.Contains(t, m.View(), "Invalid email or password")
}

func TestLoginThenBrowseClinics(t *testing.T) {
	m, shell := newTestModel(t)
	login(t, m, denstack.DemoPassword)
	require.True(t, shell.Session().IsAuthenticated)

	// Move the cursor from dashboard to clinics and open it.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	press(m, tea.KeyEnter)
	assert.Equal(t, console.SectionClinics, shell.Navigation().ActiveSection)
	<-shell.Wait()

	out := m.View()
	assert.Contains(t, out, "SmileCare Dental Center")
	assert.Contains(t, out, "Family Orthodontics")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	typeText(m, "dental")
	assert.Equal(t, "dental", shell.Criteria().SearchTerm)
	out = m.View()
	assert.Contains(t, out, "Dental Care Plus")
	assert.NotContains(t, out, "Family Orthodontics")

	press(m, tea.KeyEsc)
	assert.Empty(t, shell.Criteria().SearchTerm)
}

func TestFilterCycling(t *testing.T) {
	m, shell := newTestModel(t)
	login(t, m, denstack.DemoPassword)
	_, err := shell.SelectSection(context.Background(), console.SectionClinics)
	require.NoError(t, err)
	<-shell.Wait()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	status := shell.Criteria().Fields["status"]
	require.NotEmpty(t, status)
	assert.NotEqual(t, console.AllValue, status)
	for _, record := range shell.View().Records {
		assert.True(t, strings.EqualFold(record.Text("status"), status))
	}
}

func TestWindowSizeDrivesLayout(t *testing.T) {
	m, shell := newTestModel(t)
	login(t, m, denstack.DemoPassword)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.True(t, shell.Navigation().IsMobile)
	assert.NotContains(t, m.View(), "ECOMMERCE")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Equal(t, console.ModeMobileOpen, shell.Navigation().Mode())
	assert.Contains(t, m.View(), "ECOMMERCE")

	press(m, tea.KeyEsc)
	assert.Equal(t, console.ModeMobileClosed, shell.Navigation().Mode())

	m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
	assert.True(t, shell.Navigation().IsMobile, "zero sizes are ignored")

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Equal(t, console.ModeDesktopExpanded, shell.Navigation().Mode())
}

func TestLogoutReturnsToLoginForm(t *testing.T) {
	m, shell := newTestModel(t)
	login(t, m, denstack.DemoPassword)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	assert.False(t, shell.Session().IsAuthenticated)
	assert.Contains(t, m.View(), "Password")
}
