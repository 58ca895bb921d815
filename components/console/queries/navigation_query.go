package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// NavigationInput carries no fields.
type NavigationInput struct{}

// NavigationResult pairs the raw state with its derived layout mode.
type NavigationResult struct {
	State console.NavigationState `json:"state"`
	Mode  console.LayoutMode      `json:"mode"`
}

type navigationService interface {
	Navigation() console.NavigationState
}

// NavigationQuery reads the navigation state.
type NavigationQuery struct {
	service navigationService
}

// NewNavigationQuery builds the query.
func NewNavigationQuery(service navigationService) *NavigationQuery {
	return &NavigationQuery{service: service}
}

var _ gocommand.Querier[NavigationInput, NavigationResult] = (*NavigationQuery)(nil)

// Query returns the navigation state.
func (q *NavigationQuery) Query(_ context.Context, _ NavigationInput) (NavigationResult, error) {
	state := q.service.Navigation()
	return NavigationResult{State: state, Mode: state.Mode()}, nil
}

// SectionsInput carries no fields.
type SectionsInput struct{}

type sectionsService interface {
	Sections() []console.SectionDefinition
}

// SectionsQuery lists the sidebar catalog.
type SectionsQuery struct {
	service sectionsService
}

// NewSectionsQuery builds the query.
func NewSectionsQuery(service sectionsService) *SectionsQuery {
	return &SectionsQuery{service: service}
}

var _ gocommand.Querier[SectionsInput, []console.SectionDefinition] = (*SectionsQuery)(nil)

// Query returns every section in sidebar order.
func (q *SectionsQuery) Query(_ context.Context, _ SectionsInput) ([]console.SectionDefinition, error) {
	return q.service.Sections(), nil
}
