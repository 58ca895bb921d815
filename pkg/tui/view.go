package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

const maxColumns = 4

// View renders the login form or the console layout.
func (m *Model) View() string {
	if !m.authenticated() {
		return m.loginView()
	}
	view := m.shell.View()
	main := m.mainView(view)
	switch view.Navigation.Mode() {
	case console.ModeMobileClosed:
		return main
	case console.ModeMobileOpen:
		return m.sidebarView(view, false)
	case console.ModeDesktopCollapsed:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(view, true), main)
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(view, false), main)
	}
}

func (m *Model) loginView() string {
	lines := []string{
		m.styles.Header.Render("DenStack Superadmin"),
		m.email.View(),
		m.password.View(),
	}
	if m.err != "" {
		lines = append(lines, "", m.styles.Error.Render(m.err))
	} else if m.status != "" {
		lines = append(lines, "", m.styles.Muted.Render(m.status))
	}
	lines = append(lines, "", m.styles.Muted.Render("tab switch field • enter sign in • ctrl+c quit"))
	return m.styles.Form.Render(strings.Join(lines, "\n"))
}

func (m *Model) sidebarView(view console.SectionView, collapsed bool) string {
	var b strings.Builder
	var group console.SectionGroup
	for i, def := range m.sections {
		if def.Group != group && !collapsed {
			group = def.Group
			b.WriteString(m.styles.GroupTitle.Render(strings.ToUpper(string(group))))
			b.WriteByte('\n')
		}
		label := def.Label
		if collapsed {
			label = shortLabel(def)
		} else if def.Badge != "" {
			label += " " + m.styles.Badge.Render(def.Badge)
		}
		style := m.styles.SidebarItem
		switch {
		case i == m.cursor && m.focus == focusSidebar:
			style = m.styles.SidebarCursor
		case def.ID == view.Section:
			style = m.styles.SidebarActive
		}
		b.WriteString(style.Render(label))
		b.WriteByte('\n')
	}
	return m.styles.Sidebar.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) mainView(view console.SectionView) string {
	lines := []string{m.styles.Header.Render(view.Definition.Label)}
	if user := view.Session.User; user != nil {
		lines[0] += m.styles.Muted.Render("  " + user.Email)
	}
	if stats := m.statsView(view.Data); stats != "" {
		lines = append(lines, stats)
	}
	if view.Definition.PrimarySlice != "" {
		lines = append(lines, m.criteriaView(view), m.tableView(view))
	} else if len(view.Definition.Slices) == 0 {
		lines = append(lines, m.styles.Muted.Render("Nothing to show here yet."))
	}
	if view.Data.Loading {
		lines = append(lines, m.styles.Muted.Render("Loading…"))
	}
	if m.err != "" {
		lines = append(lines, m.styles.Error.Render(m.err))
	} else if m.status != "" && !view.Data.Loading {
		lines = append(lines, m.styles.Muted.Render(m.status))
	}
	lines = append(lines, m.styles.Muted.Render("j/k move • enter open • / search • tab/f filter • b sidebar • r refresh • L logout • q quit"))
	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(lines, "\n"))
}

func (m *Model) statsView(data console.SectionData) string {
	names := make([]string, 0, len(data.Aggregates))
	for name := range data.Aggregates {
		names = append(names, name)
	}
	sort.Strings(names)
	var boxes []string
	for _, name := range names {
		agg := data.Aggregates[name]
		keys := make([]string, 0, len(agg))
		for k, v := range agg {
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		rows := make([]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, fmt.Sprintf("%s: %s", k, agg.String(k)))
		}
		boxes = append(boxes, m.styles.Stat.Render(strings.Join(rows, "\n")))
	}
	if len(boxes) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) criteriaView(view console.SectionView) string {
	parts := []string{m.search.View()}
	for i, field := range view.Definition.Filters {
		value := view.Criteria.Fields[field.Name]
		if console.IsAll(value) {
			value = console.AllValue
		}
		entry := fmt.Sprintf("%s=%s", field.Name, value)
		if i == m.filterAt {
			entry = "[" + entry + "]"
		}
		parts = append(parts, entry)
	}
	parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("%d of %d", len(view.Records), view.Total)))
	return strings.Join(parts, "  ")
}

func (m *Model) tableView(view console.SectionView) string {
	columns := tableColumns(view.Definition)
	if len(columns) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(view.Records)+1)
	rows = append(rows, columns)
	for _, record := range view.Records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = record.Text(col)
		}
		rows = append(rows, row)
	}
	widths := make([]int, len(columns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		line := strings.Join(cells, "  ")
		if r == 0 {
			line = m.styles.TableHeader.Render(line)
		}
		lines = append(lines, line)
	}
	if len(view.Records) == 0 {
		lines = append(lines, m.styles.Muted.Render("No matching records."))
	}
	return strings.Join(lines, "\n")
}

// tableColumns shows the searchable fields first, then filter fields.
func tableColumns(def console.SectionDefinition) []string {
	seen := map[string]bool{}
	var columns []string
	add := func(path string) {
		if path == "" || seen[path] || len(columns) >= maxColumns {
			return
		}
		seen[path] = true
		columns = append(columns, path)
	}
	for _, path := range def.Search {
		add(path)
	}
	for _, field := range def.Filters {
		if field.Path != "" {
			add(field.Path)
		} else {
			add(field.Name)
		}
	}
	return columns
}

func shortLabel(def console.SectionDefinition) string {
	r := []rune(def.Label)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
