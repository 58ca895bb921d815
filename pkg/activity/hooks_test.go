package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHooksNotifyNormalizesAndSkipsInvalid(t *testing.T) {
	var called int
	hooks := Hooks{
		nil,
		HookFunc(func(ctx context.Context, evt Event) error {
			called++
			if evt.Verb != "logout" {
				t.Fatalf("unexpected verb %q", evt.Verb)
			}
			if evt.ObjectType != ObjectTypeSession || evt.ObjectID != "root@denstack.io" {
				t.Fatalf("unexpected object %s %s", evt.ObjectType, evt.ObjectID)
			}
			return nil
		}),
	}

	_ = hooks.Notify(context.Background(), Event{})
	if called != 0 {
		t.Fatalf("expected no calls for invalid event")
	}

	_ = hooks.Notify(context.Background(), Event{
		Verb:       " logout ",
		ObjectType: " console.session ",
		ObjectID:   " root@denstack.io ",
	})
	if called != 1 {
		t.Fatalf("expected hook to be called once, got %d", called)
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return first }),
		HookFunc(func(context.Context, Event) error { return second }),
	}
	err := hooks.Notify(context.Background(), Event{Verb: "login", ObjectType: ObjectTypeSession})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestNormalizeEventClones(t *testing.T) {
	meta := map[string]any{"k": "v"}
	recipients := []string{"a@denstack.com"}
	now := time.Now()

	evt := Event{
		Verb:       "verb",
		ObjectType: "obj",
		ObjectID:   "id",
		Metadata:   meta,
		Recipients: recipients,
		OccurredAt: now,
	}
	n := NormalizeEvent(evt)

	n.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("original metadata mutated")
	}
	n.Recipients[0] = "b@denstack.com"
	if recipients[0] != "a@denstack.com" {
		t.Fatalf("original recipients mutated")
	}
	if !n.OccurredAt.Equal(now) {
		t.Fatalf("occurred_at should be preserved when set")
	}
	if NormalizeEvent(Event{}).OccurredAt.IsZero() {
		t.Fatalf("occurred_at should default to now")
	}
}

func TestLogHookWritesEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	hooks := Hooks{LogHook(zap.New(core))}
	if err := hooks.Notify(context.Background(), Event{Verb: "login", ObjectType: ObjectTypeSession, ObjectID: "root@denstack.io"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	entries := logs.FilterMessage("login").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["object_id"] != "root@denstack.io" {
		t.Fatalf("unexpected fields %v", entries[0].ContextMap())
	}
}
