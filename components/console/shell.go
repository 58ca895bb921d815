package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var errMissingSession = errors.New("console: session store not configured")

// Options configures the Shell. Collaborators are interfaces or concrete core
// components so hosts can swap storage, transport and hooks.
type Options struct {
	Session     *SessionStore
	Navigation  *NavigationController
	Registry    *Registry
	Source      DataSource
	Validator   CriteriaValidator
	EventHook   EventHook
	Telemetry   Telemetry
	Logger      *zap.Logger
	Coordinator *Coordinator
}

// SectionView is everything a section renderer needs.
type SectionView struct {
	Section    SectionID         `json:"section"`
	Definition SectionDefinition `json:"definition"`
	Navigation NavigationState   `json:"navigation"`
	Session    Session           `json:"session"`
	Criteria   FilterCriteria    `json:"criteria"`
	Data       SectionData       `json:"data"`
	// Records is the primary slice after filtering.
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

// Shell is the composition root: it wires the session, navigation, filter
// and fetch components and keeps the coordinator keyed on the active
// (section, token) pair.
type Shell struct {
	mu       sync.RWMutex
	criteria FilterCriteria

	// syncMu orders reads of the (section, token) key with coordinator
	// syncs so a revoked token can never be re-keyed after logout.
	syncMu sync.Mutex

	session     *SessionStore
	navigation  *NavigationController
	registry    *Registry
	coordinator *Coordinator
	validator   CriteriaValidator
	hook        EventHook
	telemetry   Telemetry
	logger      *zap.Logger
	unsubscribe func()
}

// NewShell builds a Shell and starts the initial sync.
func NewShell(opts Options) (*Shell, error) {
	if opts.Session == nil {
		return nil, errMissingSession
	}
	if opts.Navigation == nil {
		opts.Navigation = NewNavigationController(DefaultBreakpoint)
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.EventHook == nil {
		opts.EventHook = noopEventHook{}
	}
	s := &Shell{
		session:    opts.Session,
		navigation: opts.Navigation,
		registry:   opts.Registry,
		validator:  opts.Validator,
		hook:       opts.EventHook,
		telemetry:  normalizeTelemetry(opts.Telemetry),
		logger:     normalizeLogger(opts.Logger, "shell"),
	}
	s.coordinator = opts.Coordinator
	if s.coordinator == nil {
		s.coordinator = NewCoordinator(CoordinatorOptions{
			Registry:       opts.Registry,
			Source:         opts.Source,
			OnUnauthorized: opts.Session.HandleUnauthorized,
			Hook:           opts.EventHook,
			Telemetry:      opts.Telemetry,
			Logger:         opts.Logger,
		})
	}
	s.unsubscribe = opts.Session.Subscribe(s.sessionChanged)
	s.sync()
	return s, nil
}

// Close detaches from the session store and stops the coordinator.
func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.coordinator.Close()
}

// Login authenticates and starts loading the active section.
func (s *Shell) Login(ctx context.Context, creds Credentials) (Session, error) {
	return s.session.Login(ctx, creds)
}

// Logout clears the session and every cached section.
func (s *Shell) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

// Session returns the current session.
func (s *Shell) Session() Session {
	return s.session.Session()
}

// Navigation returns the navigation state.
func (s *Shell) Navigation() NavigationState {
	return s.navigation.State()
}

// Sections lists the sidebar catalog.
func (s *Shell) Sections() []SectionDefinition {
	return s.registry.Definitions()
}

// Criteria returns the active section's criteria.
func (s *Shell) Criteria() FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone()
}

// SelectSection activates a section, resetting its criteria.
func (s *Shell) SelectSection(ctx context.Context, id SectionID) (NavigationState, error) {
	previous := s.navigation.State()
	state, err := s.navigation.SelectSection(id)
	if err != nil {
		return state, fmt.Errorf("select section %q: %w", id, err)
	}
	if previous.ActiveSection != id {
		s.mu.Lock()
		s.criteria = DefaultCriteria()
		s.mu.Unlock()
	}
	s.sync()
	s.publish(ctx, EventNavigation, "select")
	s.telemetry.Record(ctx, "console.navigation.select", map[string]any{"section": string(id)})
	return state, nil
}

// ToggleSidebar flips the sidebar for the current layout mode.
func (s *Shell) ToggleSidebar(ctx context.Context) NavigationState {
	state := s.navigation.Toggle()
	s.publish(ctx, EventNavigation, "toggle")
	return state
}

// CloseDrawer dismisses the mobile drawer.
func (s *Shell) CloseDrawer(ctx context.Context) NavigationState {
	state := s.navigation.CloseDrawer()
	s.publish(ctx, EventNavigation, "close")
	return state
}

// Resize applies a viewport width change.
func (s *Shell) Resize(ctx context.Context, width int) NavigationState {
	before := s.navigation.State()
	state := s.navigation.Resize(width)
	if state != before {
		s.publish(ctx, EventNavigation, "resize")
	}
	return state
}

// SetCriteria validates and stores criteria for the active section.
func (s *Shell) SetCriteria(ctx context.Context, criteria FilterCriteria) error {
	section := s.navigation.State().ActiveSection
	def, ok := s.registry.Definition(section)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if err := s.validator.Validate(def, criteria); err != nil {
		return err
	}
	s.mu.Lock()
	s.criteria = criteria.Clone()
	s.mu.Unlock()
	s.publish(ctx, EventCriteria, "update")
	return nil
}

// Refresh reloads the active section.
func (s *Shell) Refresh(ctx context.Context) <-chan struct{} {
	s.telemetry.Record(ctx, "console.section.refresh", map[string]any{
		"section": string(s.navigation.State().ActiveSection),
	})
	return s.coordinator.Refresh()
}

// Wait returns a channel closed once the current key's fetch is done.
func (s *Shell) Wait() <-chan struct{} {
	return s.sync()
}

// View composes the active section's state.
func (s *Shell) View() SectionView {
	nav := s.navigation.State()
	def, ok := s.registry.Definition(nav.ActiveSection)
	if !ok {
		def, _ = s.registry.Definition(DefaultSection)
	}
	criteria := s.Criteria()
	data := s.coordinator.Snapshot(def.ID)
	view := SectionView{
		Section:    def.ID,
		Definition: def,
		Navigation: nav,
		Session:    s.session.Session().Redacted(),
		Criteria:   criteria,
		Data:       data,
	}
	if def.PrimarySlice != "" {
		all := data.Records[def.PrimarySlice]
		view.Records = Filter(all, def.FilterSpec(), criteria)
		view.Total = len(all)
	}
	return view
}

func (s *Shell) sync() <-chan struct{} {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	return s.coordinator.Sync(s.navigation.State().ActiveSection, s.session.Token())
}

// sessionChanged re-reads the token instead of trusting the notification,
// which may be delivered after a newer change.
func (s *Shell) sessionChanged(Session) {
	s.sync()
	s.publish(context.Background(), EventSession, "token")
}

func (s *Shell) publish(ctx context.Context, kind EventKind, reason string) {
	nav := s.navigation.State()
	event := Event{
		Kind:          kind,
		Section:       nav.ActiveSection,
		Navigation:    nav,
		Authenticated: s.session.Session().IsAuthenticated,
		Generation:    s.coordinator.Generation(),
		Reason:        reason,
	}
	if err := s.hook.ConsoleUpdated(ctx, event); err != nil {
		s.logger.Warn("event hook failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}
