package activity

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:       " store.commit ",
		ActorID:    " actor ",
		UserID:     " user ",
		TenantID:   " tenant ",
		ObjectType: " store.mutation ",
		ObjectID:   " counter/increment ",
		StoreID:    " store-1 ",
		Channel:    " store ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != "store.commit" || got.ObjectType != "store.mutation" || got.ObjectID != "counter/increment" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.UserID != "user" || got.TenantID != "tenant" || got.Channel != "store" || got.StoreID != "store-1" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.EventID == "" {
		t.Fatalf("expected EventID to be assigned")
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyShortCircuitsMissingRequired(t *testing.T) {
	hooks := Hooks{&CaptureHook{}}
	if err := hooks.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	capture := hooks[0].(*CaptureHook)
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	boom := errors.New("boom")
	hooks := Hooks{
		capture,
		HookFunc(func(ctx context.Context, event Event) error {
			return boom
		}),
		nil,
	}

	err := hooks.Notify(nil, Event{Verb: "store.commit", ObjectType: "store.mutation", ObjectID: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to include boom, got %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one captured event, got %d", len(capture.Events))
	}
	if capture.Events[0].EventID == "" {
		t.Fatalf("expected captured event to be normalized")
	}
}

func TestBuildCommitEventCarriesNamespace(t *testing.T) {
	evt := BuildCommitEvent(StoreEventInput{
		StoreID:   "store-1",
		Type:      "a/b/increment",
		Namespace: "a/b/",
		Metadata:  map[string]any{"step": 2},
	})

	if evt.Verb != "store.commit" || evt.ObjectType != "store.mutation" {
		t.Fatalf("unexpected event identity: %+v", evt)
	}
	if evt.ObjectID != "a/b/increment" {
		t.Fatalf("expected object id from type, got %q", evt.ObjectID)
	}
	if evt.Metadata["namespace"] != "a/b/" || evt.Metadata["step"] != 2 {
		t.Fatalf("unexpected metadata: %+v", evt.Metadata)
	}
}

func TestBuildInstallEventFallsBackToStoreID(t *testing.T) {
	evt := BuildInstallEvent(StoreEventInput{StoreID: "store-9"})
	if evt.ObjectID != "store-9" {
		t.Fatalf("expected store id fallback, got %q", evt.ObjectID)
	}
	if evt.ObjectType != "store" {
		t.Fatalf("expected store object type, got %q", evt.ObjectType)
	}
}
