package statemod

import (
	"errors"
	"testing"

	"github.com/goliatone/go-statemod/store"
)

func TestChildrenAreAlwaysNamespaced(t *testing.T) {
	child := newCounterModule()
	root := New(
		WithState(func() *counterState { return &counterState{} }),
		WithModule[*counterState]("child", child),
	)

	cfg := Build(root)
	built, ok := cfg.Modules["child"]
	if !ok {
		t.Fatal("expected child configuration to be present")
	}
	if !built.Namespaced {
		t.Fatal("expected child configuration to be marked namespaced")
	}

	st := store.New(cfg)
	if err := st.Commit("child/increment", 1, nil); err != nil {
		t.Fatalf("expected qualified mutation to exist, got %v", err)
	}
	if err := st.Commit("increment", 1, nil); !errors.Is(err, store.ErrUnknownMutation) {
		t.Fatalf("expected unqualified name to be unknown, got %v", err)
	}
}

func TestBuildInstallRunsBindingWalk(t *testing.T) {
	root := newCounterModule()
	cfg := Build(root)

	if root.Bound() {
		t.Fatal("expected module to stay unbound until installation")
	}
	store.New(cfg)
	if !root.Bound() {
		t.Fatal("expected installation to bind the module")
	}
}

func TestEmptyStateSynthesis(t *testing.T) {
	t.Run("map state", func(t *testing.T) {
		m := New[map[string]any]()
		NewStore(m)
		state, err := m.State()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state == nil {
			t.Fatal("expected synthesized map state to be non-nil")
		}
		state["key"] = "value"
	})

	t.Run("pointer state", func(t *testing.T) {
		m := New[*counterState]()
		NewStore(m)
		state, err := m.State()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state == nil {
			t.Fatal("expected synthesized pointer state to be non-nil")
		}
		if state.Count != 0 {
			t.Fatalf("expected zero count, got %d", state.Count)
		}
	})

	t.Run("value state", func(t *testing.T) {
		m := New[int]()
		NewStore(m)
		state, err := m.State()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != 0 {
			t.Fatalf("expected zero value state, got %d", state)
		}
	})
}

func TestLaterGetterRegistrationWins(t *testing.T) {
	root := New(
		WithState(func() *counterState { return &counterState{} }),
		WithGetters(NewGetters[*counterState]().
			Register("value", func(_ GetterContext[*counterState]) any { return "first" }).
			Register("value", func(_ GetterContext[*counterState]) any { return "second" })),
	)
	NewStore(root)

	view, _ := root.Getters()
	if got := view.Get("value"); got != "second" {
		t.Fatalf("expected later registration to win, got %v", got)
	}
}

func TestNilHandlersAreSkipped(t *testing.T) {
	root := New(
		WithState(func() *counterState { return &counterState{} }),
		WithGetters(NewGetters[*counterState]().Register("ghost", nil)),
		WithMutations(NewMutations[*counterState]().Register("ghost", nil)),
		WithActions(NewActions[*counterState]().Register("ghost", nil)),
	)
	st := NewStore(root)

	view, _ := root.Getters()
	if view.Has("ghost") {
		t.Fatal("expected nil getter handler to be skipped")
	}
	if err := st.Commit("ghost", nil, nil); !errors.Is(err, store.ErrUnknownMutation) {
		t.Fatalf("expected nil mutation handler to be skipped, got %v", err)
	}
}

func TestWithModuleIgnoresInvalidMounts(t *testing.T) {
	root := New(
		WithState(func() *counterState { return &counterState{} }),
		WithModule[*counterState]("", newCounterModule()),
		WithModule[*counterState]("child", nil),
	)
	cfg := Build(root)
	if len(cfg.Modules) != 0 {
		t.Fatalf("expected no mounted children, got %d", len(cfg.Modules))
	}
}
