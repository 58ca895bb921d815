package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// SessionInput carries no fields; the console has a single session.
type SessionInput struct{}

type sessionService interface {
	Session() console.Session
}

// SessionQuery reads the current session with the token redacted.
type SessionQuery struct {
	service sessionService
}

// NewSessionQuery builds the query.
func NewSessionQuery(service sessionService) *SessionQuery {
	return &SessionQuery{service: service}
}

var _ gocommand.Querier[SessionInput, console.Session] = (*SessionQuery)(nil)

// Query returns the session.
func (q *SessionQuery) Query(_ context.Context, _ SessionInput) (console.Session, error) {
	return q.service.Session().Redacted(), nil
}
