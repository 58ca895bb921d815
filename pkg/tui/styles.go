package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the console view.
type Styles struct {
	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	SidebarCursor lipgloss.Style
	GroupTitle    lipgloss.Style
	Badge         lipgloss.Style
	Header        lipgloss.Style
	Muted         lipgloss.Style
	Error         lipgloss.Style
	Stat          lipgloss.Style
	TableHeader   lipgloss.Style
	Form          lipgloss.Style
}

// DefaultStyles returns the console palette.
func DefaultStyles() Styles {
	return Styles{
		Sidebar:       lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).PaddingRight(1),
		SidebarItem:   lipgloss.NewStyle().PaddingLeft(1),
		SidebarActive: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("39")),
		SidebarCursor: lipgloss.NewStyle().PaddingLeft(1).Reverse(true),
		GroupTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Stat:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		TableHeader:   lipgloss.NewStyle().Bold(true).Underline(true),
		Form:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}
