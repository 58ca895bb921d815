package activity

import (
	"context"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// ObjectTypeSession is the object type of session activity.
const ObjectTypeSession = "console.session"

// SessionHook records login, logout and expiry as activity events.
type SessionHook struct {
	Emitter *Emitter
}

var _ console.SessionHook = SessionHook{}

// SessionChanged emits one event per change.
func (h SessionHook) SessionChanged(ctx context.Context, evt console.SessionEvent) error {
	if !h.Emitter.Enabled() {
		return nil
	}
	out := Event{
		Verb:           string(evt.Change),
		ObjectType:     ObjectTypeSession,
		ObjectID:       evt.Email,
		DefinitionCode: "session:" + string(evt.Change),
		OccurredAt:     evt.OccurredAt,
	}
	if evt.User != nil {
		out.ActorID = evt.User.ID
		out.UserID = evt.User.ID
		if out.ObjectID == "" {
			out.ObjectID = evt.User.Email
		}
	}
	if evt.Reason != "" {
		out.Metadata = map[string]any{"reason": evt.Reason}
	}
	return h.Emitter.Emit(ctx, out)
}
