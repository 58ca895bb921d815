package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// SectionViewInput optionally waits for the active section's in-flight
// fetch before composing the view.
type SectionViewInput struct {
	Wait bool
}

type viewService interface {
	View() console.SectionView
	Wait() <-chan struct{}
}

// SectionViewQuery composes the active section's filtered view.
type SectionViewQuery struct {
	service viewService
}

// NewSectionViewQuery builds the query.
func NewSectionViewQuery(service viewService) *SectionViewQuery {
	return &SectionViewQuery{service: service}
}

var _ gocommand.Querier[SectionViewInput, console.SectionView] = (*SectionViewQuery)(nil)

// Query returns the view. Slices still loading are reported through
// SectionData.Loading.
func (q *SectionViewQuery) Query(ctx context.Context, input SectionViewInput) (console.SectionView, error) {
	if input.Wait {
		select {
		case <-q.service.Wait():
		case <-ctx.Done():
			return console.SectionView{}, ctx.Err()
		}
	}
	return q.service.View(), nil
}
