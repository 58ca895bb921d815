package console

import (
	"context"
	"time"
)

// SectionID identifies a console section.
type SectionID string

const (
	SectionDashboard      SectionID = "dashboard"
	SectionClinics        SectionID = "clinics"
	SectionDoctors        SectionID = "doctors"
	SectionSubscriptions  SectionID = "subscriptions"
	SectionAnalytics      SectionID = "analytics"
	SectionMarketplace    SectionID = "marketplace"
	SectionProducts       SectionID = "products"
	SectionOrders         SectionID = "orders"
	SectionVendors        SectionID = "vendors"
	SectionSales          SectionID = "sales"
	SectionCommunications SectionID = "communications"
	SectionAudit          SectionID = "audit"
	SectionNotifications  SectionID = "notifications"
	SectionActivity       SectionID = "activity"
	SectionSettings       SectionID = "settings"
)

// SectionGroup is the sidebar group a section is listed under.
type SectionGroup string

const (
	GroupMain      SectionGroup = "main"
	GroupEcommerce SectionGroup = "ecommerce"
	GroupSystem    SectionGroup = "system"
)

// UserRecord is the authenticated superadmin identity.
type UserRecord struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Email      string         `json:"email,omitempty"`
	Role       string         `json:"role,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Session is the persisted authentication state. An empty Token means null.
type Session struct {
	Token           string      `json:"token,omitempty"`
	User            *UserRecord `json:"user,omitempty"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	IssuedAt        time.Time   `json:"issuedAt,omitzero"`
	ExpiresAt       time.Time   `json:"expiresAt,omitzero"`
}

func (s Session) normalize() Session {
	s.IsAuthenticated = s.Token != ""
	if !s.IsAuthenticated {
		return Session{}
	}
	return s
}

// Redacted drops the bearer token but keeps the authentication flag, for
// surfaces that leave the process.
func (s Session) Redacted() Session {
	s = s.clone()
	s.Token = ""
	return s
}

func (s Session) clone() Session {
	if s.User != nil {
		user := *s.User
		user.Attributes = cloneMap(user.Attributes)
		s.User = &user
	}
	return s
}

// Credentials are submitted by the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by the auth collaborator on success.
type LoginResult struct {
	Token string
	User  *UserRecord
}

// AuthClient exchanges credentials for a token.
type AuthClient interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
}

// SessionStorage persists the session across restarts.
type SessionStorage interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

// LayoutMode is the derived sidebar layout.
type LayoutMode string

const (
	ModeDesktopExpanded  LayoutMode = "desktop-expanded"
	ModeDesktopCollapsed LayoutMode = "desktop-collapsed"
	ModeMobileClosed     LayoutMode = "mobile-closed"
	ModeMobileOpen       LayoutMode = "mobile-open"
)

// NavigationState captures the active section and sidebar visibility.
type NavigationState struct {
	ActiveSection    SectionID `json:"activeSection"`
	SidebarCollapsed bool      `json:"sidebarCollapsed"`
	SidebarOpen      bool      `json:"sidebarOpen"`
	IsMobile         bool      `json:"isMobile"`
}

// Mode derives the layout mode from the flags.
func (s NavigationState) Mode() LayoutMode {
	switch {
	case s.IsMobile && s.SidebarOpen:
		return ModeMobileOpen
	case s.IsMobile:
		return ModeMobileClosed
	case s.SidebarCollapsed:
		return ModeDesktopCollapsed
	default:
		return ModeDesktopExpanded
	}
}

// SliceKind distinguishes list slices from aggregate stats.
type SliceKind string

const (
	SliceRecords   SliceKind = "records"
	SliceAggregate SliceKind = "aggregate"
)

// Service names the collaborator base URL an endpoint is served from.
type Service string

const (
	ServiceAuth      Service = "auth"
	ServiceInventory Service = "inventory"
)

// Endpoint locates a slice on a collaborator service.
type Endpoint struct {
	Service  Service `json:"service" yaml:"service"`
	Path     string  `json:"path" yaml:"path"`
	Envelope string  `json:"envelope,omitempty" yaml:"envelope,omitempty"`
}

// SliceDefinition describes one independently fetched piece of a section.
type SliceDefinition struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     SliceKind `json:"kind" yaml:"kind"`
	Endpoint Endpoint  `json:"endpoint" yaml:"endpoint"`
	SortBy   string    `json:"sortBy,omitempty" yaml:"sort_by,omitempty"`
}

// SectionDefinition is the catalog entry for a section.
type SectionDefinition struct {
	ID           SectionID         `json:"id" yaml:"id"`
	Label        string            `json:"label" yaml:"label"`
	Group        SectionGroup      `json:"group" yaml:"group"`
	Badge        string            `json:"badge,omitempty" yaml:"badge,omitempty"`
	Icon         string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Search       []string          `json:"search,omitempty" yaml:"search,omitempty"`
	Filters      []FilterField     `json:"filters,omitempty" yaml:"filters,omitempty"`
	PrimarySlice string            `json:"primarySlice,omitempty" yaml:"primary_slice,omitempty"`
	Slices       []SliceDefinition `json:"slices,omitempty" yaml:"slices,omitempty"`
}

// FilterSpec returns the filter configuration for the section's primary list.
func (d SectionDefinition) FilterSpec() FilterSpec {
	return FilterSpec{Search: d.Search, Fields: d.Filters}
}

// Slice looks up a slice definition by name.
func (d SectionDefinition) Slice(name string) (SliceDefinition, bool) {
	for _, slice := range d.Slices {
		if slice.Name == name {
			return slice, true
		}
	}
	return SliceDefinition{}, false
}

// SliceData is the decoded payload of one slice.
type SliceData struct {
	Records   []Record  `json:"records,omitempty"`
	Aggregate Aggregate `json:"aggregate,omitempty"`
}

// FetchRequest asks a DataSource for one slice.
type FetchRequest struct {
	Section SectionID
	Slice   SliceDefinition
	Token   string
}

// DataSource fetches section slices from collaborator services.
type DataSource interface {
	Fetch(ctx context.Context, req FetchRequest) (SliceData, error)
}

// DataSourceFunc adapts a function to DataSource.
type DataSourceFunc func(ctx context.Context, req FetchRequest) (SliceData, error)

func (f DataSourceFunc) Fetch(ctx context.Context, req FetchRequest) (SliceData, error) {
	return f(ctx, req)
}

// SectionData is the applied state of a section's slices.
type SectionData struct {
	Section    SectionID            `json:"section"`
	Generation uint64               `json:"generation"`
	Loading    bool                 `json:"loading"`
	Records    map[string][]Record  `json:"records"`
	Aggregates map[string]Aggregate `json:"aggregates"`
	Errors     map[string]string    `json:"errors,omitempty"`
	UpdatedAt  time.Time            `json:"updatedAt,omitzero"`
}

// EventKind labels console events.
type EventKind string

const (
	EventSession    EventKind = "session"
	EventNavigation EventKind = "navigation"
	EventCriteria   EventKind = "criteria"
	EventData       EventKind = "data"
)

// Event is published whenever shell-visible state changes.
type Event struct {
	Kind          EventKind       `json:"kind"`
	Section       SectionID       `json:"section,omitempty"`
	Navigation    NavigationState `json:"navigation"`
	Authenticated bool            `json:"authenticated"`
	Generation    uint64          `json:"generation,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

// EventHook receives console events.
type EventHook interface {
	ConsoleUpdated(ctx context.Context, event Event) error
}

type noopEventHook struct{}

func (noopEventHook) ConsoleUpdated(context.Context, Event) error { return nil }

// SessionChange labels what happened to the session.
type SessionChange string

const (
	SessionLogin        SessionChange = "login"
	SessionLogout       SessionChange = "logout"
	SessionExpired      SessionChange = "expired"
	SessionUnauthorized SessionChange = "unauthorized"
	SessionLoginFailed  SessionChange = "login_failed"
)

// SessionEvent is delivered to SessionHooks.
type SessionEvent struct {
	Change     SessionChange
	User       *UserRecord
	Email      string
	Reason     string
	OccurredAt time.Time
}

// SessionHook observes session lifecycle changes (audit trails, activity feeds).
type SessionHook interface {
	SessionChanged(ctx context.Context, event SessionEvent) error
}

type noopSessionHook struct{}

func (noopSessionHook) SessionChanged(context.Context, SessionEvent) error { return nil }
