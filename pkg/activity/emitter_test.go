package activity

import (
	"context"
	"testing"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	if err := em.Emit(context.Background(), Event{Verb: "verb", ObjectType: "object", ObjectID: "id"}); err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected event emitted, got %d", len(hook.events))
	}
	if hook.events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel %q, got %q", DefaultChannel, hook.events[0].Channel)
	}
}

func TestEmitterDisabledWithoutHooks(t *testing.T) {
	em := NewEmitter(nil, Config{Enabled: true})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled without hooks")
	}
	var nilEmitter *Emitter
	if err := nilEmitter.Emit(context.Background(), Event{Verb: "x", ObjectType: "y"}); err != nil {
		t.Fatalf("nil emitter should be a no-op, got %v", err)
	}
}

func TestSessionHookMapsChanges(t *testing.T) {
	hook := &recordingHook{}
	sessionHook := SessionHook{Emitter: NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "cli"})}

	err := sessionHook.SessionChanged(context.Background(), console.SessionEvent{
		Change: console.SessionExpired,
		Email:  "root@denstack.io",
		Reason: "token expired",
	})
	if err != nil {
		t.Fatalf("session changed: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected one event, got %d", len(hook.events))
	}
	evt := hook.events[0]
	if evt.Verb != "expired" || evt.ObjectType != ObjectTypeSession || evt.ObjectID != "root@denstack.io" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.Channel != "cli" || evt.DefinitionCode != "session:expired" || evt.Metadata["reason"] != "token expired" {
		t.Fatalf("unexpected event details %+v", evt)
	}
}
