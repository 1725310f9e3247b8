package statemod

import (
	"errors"
	"sync"
	"testing"
)

type tableState = map[string]any

func newExprModule(extra ...Option[tableState]) *Module[tableState] {
	opts := []Option[tableState]{
		WithState(func() tableState { return tableState{"count": 3} }),
		WithGetters(NewGetters[tableState]().
			RegisterExpr("doubled", "count * 2")),
		WithMutations(NewMutations[tableState]().
			Register("set", MutationFor(func(ctx MutationContext[tableState], value int) {
				ctx.State["count"] = value
			}))),
	}
	opts = append(opts, extra...)
	return New(opts...)
}

// newPlainModule has no expression getters, so filling the getter map during
// EvaluateWith triggers no additional evaluations.
func newPlainModule(extra ...Option[tableState]) *Module[tableState] {
	opts := []Option[tableState]{
		WithState(func() tableState { return tableState{"count": 3} }),
	}
	opts = append(opts, extra...)
	return New(opts...)
}

type testProgramCache struct {
	mu      sync.Mutex
	entries map[string]any
	hits    int
}

func (c *testProgramCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return value, ok
}

func (c *testProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]any{}
	}
	c.entries[key] = value
}

func TestExpressionGetterReadsLiveState(t *testing.T) {
	m := newExprModule()
	NewStore(m)

	view, err := m.Getters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := view.Get("doubled"); got != 6 {
		t.Fatalf("expected doubled 6, got %v", got)
	}

	if err := m.Commit("set", 5, nil); err != nil {
		t.Fatalf("unexpected commit error: %v", err)
	}
	if got := view.Get("doubled"); got != 10 {
		t.Fatalf("expected doubled 10 after commit, got %v", got)
	}
}

func TestExpressionGetterFailureYieldsNil(t *testing.T) {
	var events []EvaluatorLogEvent
	m := New(
		WithState(func() tableState { return tableState{} }),
		WithGetters(NewGetters[tableState]().
			RegisterExpr("broken", "1 +")),
		WithEvaluatorLogger[tableState](EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
			events = append(events, event)
		})),
	)
	NewStore(m)

	view, _ := m.Getters()
	if got := view.Get("broken"); got != nil {
		t.Fatalf("expected nil for failing expression, got %v", got)
	}
	if len(events) == 0 {
		t.Fatal("expected a logged evaluation event")
	}
	last := events[len(events)-1]
	if last.Getter != "broken" {
		t.Fatalf("expected getter name broken, got %q", last.Getter)
	}
	if last.Err == nil {
		t.Fatal("expected logged error")
	}
	var evalErr *EvaluationError
	if !errors.As(last.Err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", last.Err)
	}
}

func TestEvaluateAgainstModule(t *testing.T) {
	m := newExprModule()
	NewStore(m)

	resp, err := m.Evaluate("count * 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != 6 {
		t.Fatalf("expected 6, got %v", resp.Value)
	}

	resp, err = m.Evaluate("getters.doubled + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != 7 {
		t.Fatalf("expected 7, got %v", resp.Value)
	}
}

func TestEvaluateWithSuppliedContext(t *testing.T) {
	m := newExprModule()
	// Supplying state, getters and path avoids the bound-module reads, so
	// even an unbound module can evaluate.
	resp, err := m.EvaluateWith(RuleContext{
		State:   tableState{"count": 10},
		Getters: map[string]any{},
		Path:    Path{"sandbox"},
	}, "count + len(namespace)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != 18 {
		t.Fatalf("expected 18, got %v", resp.Value)
	}
}

func TestEvaluateEmptyExpression(t *testing.T) {
	m := newExprModule()
	NewStore(m)
	if _, err := m.Evaluate(""); err == nil {
		t.Fatal("expected error for empty expression")
	}
}

func TestCustomFunctionsInExpressions(t *testing.T) {
	m := newExprModule(
		WithCustomFunction[tableState]("triple", func(args ...any) (any, error) {
			if len(args) != 1 {
				return nil, errors.New("triple expects one argument")
			}
			value, _ := args[0].(int)
			return value * 3, nil
		}),
	)
	NewStore(m)

	resp, err := m.Evaluate(`triple(count)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != 9 {
		t.Fatalf("expected 9, got %v", resp.Value)
	}

	resp, err = m.Evaluate(`call("triple", 4)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != 12 {
		t.Fatalf("expected 12, got %v", resp.Value)
	}
}

func TestProgramCacheIsReused(t *testing.T) {
	cache := &testProgramCache{}
	m := newPlainModule(WithProgramCache[tableState](cache))
	NewStore(m)

	if _, err := m.Evaluate("count + 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Evaluate("count + 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if len(cache.entries) != 1 {
		t.Fatalf("expected one cached program, got %d", len(cache.entries))
	}
	if cache.hits == 0 {
		t.Fatal("expected at least one cache hit")
	}
}

func TestEvaluatorLoggerObservesAdHocCalls(t *testing.T) {
	var events []EvaluatorLogEvent
	m := newPlainModule(
		WithEvaluatorLogger[tableState](EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
			events = append(events, event)
		})),
	)
	NewStore(m)

	if _, err := m.Evaluate("count"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", events[0].Engine)
	}
	if events[0].Getter != "" {
		t.Fatalf("expected empty getter for ad-hoc call, got %q", events[0].Getter)
	}
	if events[0].Expr != "count" {
		t.Fatalf("expected expression count, got %q", events[0].Expr)
	}
}

type stubEvaluator struct {
	value any
	err   error
}

func (s stubEvaluator) Evaluate(_ RuleContext, _ string) (any, error) {
	return s.value, s.err
}

func (s stubEvaluator) Compile(_ string, _ ...CompileOption) (CompiledRule, error) {
	return nil, errors.New("not supported")
}

func TestWithEvaluatorOverride(t *testing.T) {
	var events []EvaluatorLogEvent
	m := newPlainModule(
		WithEvaluator[tableState](stubEvaluator{value: "stubbed"}),
		WithEvaluatorLogger[tableState](EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
			events = append(events, event)
		})),
	)
	NewStore(m)

	resp, err := m.Evaluate("anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != "stubbed" {
		t.Fatalf("expected stubbed value, got %v", resp.Value)
	}
	if len(events) != 1 || events[0].Engine != "custom" {
		t.Fatalf("expected custom engine event, got %v", events)
	}
}
