package console

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultBreakpoint is the viewport width below which the layout is mobile.
const DefaultBreakpoint = 1024

// NavigationOption customizes a NavigationController.
type NavigationOption func(*NavigationController)

// WithBreakpoint overrides the mobile breakpoint.
func WithBreakpoint(width int) NavigationOption {
	return func(n *NavigationController) {
		if width > 0 {
			n.breakpoint = width
		}
	}
}

// WithInitialSection selects the section shown first.
func WithInitialSection(id SectionID) NavigationOption {
	return func(n *NavigationController) {
		if id.Valid() {
			n.state.ActiveSection = id
		}
	}
}

// WithNavigationLogger attaches a logger.
func WithNavigationLogger(logger *zap.Logger) NavigationOption {
	return func(n *NavigationController) {
		n.logger = normalizeLogger(logger, "navigation")
	}
}

// NavigationController owns the active section and sidebar state. Desktop
// layouts never report SidebarOpen; mobile layouts never report
// SidebarCollapsed. The desktop collapse preference survives mobile stints.
type NavigationController struct {
	mu               sync.RWMutex
	state            NavigationState
	breakpoint       int
	desktopCollapsed bool
	logger           *zap.Logger
}

// NewNavigationController builds a controller for the initial viewport width.
func NewNavigationController(width int, opts ...NavigationOption) *NavigationController {
	n := &NavigationController{
		state:      NavigationState{ActiveSection: DefaultSection},
		breakpoint: DefaultBreakpoint,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.state.IsMobile = width < n.breakpoint
	return n
}

// State returns the current navigation state.
func (n *NavigationController) State() NavigationState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// Mode returns the derived layout mode.
func (n *NavigationController) Mode() LayoutMode {
	return n.State().Mode()
}

// Breakpoint returns the configured mobile breakpoint.
func (n *NavigationController) Breakpoint() int {
	return n.breakpoint
}

// Resize applies a viewport width change. Widths on the same side of the
// breakpoint leave the state untouched.
func (n *NavigationController) Resize(width int) NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	mobile := width < n.breakpoint
	if mobile == n.state.IsMobile {
		return n.state
	}
	if mobile {
		n.desktopCollapsed = n.state.SidebarCollapsed
		n.state.IsMobile = true
		n.state.SidebarOpen = false
		n.state.SidebarCollapsed = false
	} else {
		n.state.IsMobile = false
		n.state.SidebarOpen = false
		n.state.SidebarCollapsed = n.desktopCollapsed
	}
	n.logger.Debug("layout mode changed", zap.Int("width", width), zap.String("mode", string(n.state.Mode())))
	return n.state
}

// Toggle collapses or expands the desktop sidebar, or opens or closes the
// mobile drawer.
func (n *NavigationController) Toggle() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state.IsMobile {
		n.state.SidebarOpen = !n.state.SidebarOpen
	} else {
		n.state.SidebarCollapsed = !n.state.SidebarCollapsed
		n.desktopCollapsed = n.state.SidebarCollapsed
	}
	return n.state
}

// CloseDrawer dismisses the mobile drawer (overlay tap).
func (n *NavigationController) CloseDrawer() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.SidebarOpen = false
	return n.state
}

// SelectSection activates a section. On mobile the drawer closes.
func (n *NavigationController) SelectSection(id SectionID) (NavigationState, error) {
	if !id.Valid() {
		return n.State(), ErrUnknownSection
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.ActiveSection = id
	if n.state.IsMobile {
		n.state.SidebarOpen = false
	}
	return n.state, nil
}
