package statemod

import (
	"context"

	"github.com/goliatone/go-statemod/store"
)

// GetterContext is the view a getter handler computes from: the module's
// local state and its namespace-local getter projection, both live at the
// time of invocation.
type GetterContext[S any] struct {
	State   S
	Getters *View
}

// MutationContext hands a mutation handler the module's local state. State
// types are expected to be pointers or maps so transitions apply in place.
type MutationContext[S any] struct {
	State S
}

// ActionContext hands an action handler its owning module so the body can
// commit and dispatch namespace-locally. The module handle is an explicit
// parameter, never a hidden field.
type ActionContext[S any] struct {
	Module *Module[S]
}

// State reads the module's current local state.
func (c ActionContext[S]) State() (S, error) {
	return c.Module.State()
}

// Getters builds the module's current getter projection.
func (c ActionContext[S]) Getters() (*View, error) {
	return c.Module.Getters()
}

// Commit forwards a namespace-local commit through the owning module.
func (c ActionContext[S]) Commit(name string, payload any, opts *store.CommitOptions) error {
	return c.Module.Commit(name, payload, opts)
}

// Dispatch forwards a namespace-local dispatch through the owning module.
func (c ActionContext[S]) Dispatch(ctx context.Context, name string, payload any, opts *store.DispatchOptions) (*store.Pending, error) {
	return c.Module.Dispatch(ctx, name, payload, opts)
}

// GetterHandler computes a derived value. It is re-invoked on every read of
// the registered getter; caching is the handler's own concern.
type GetterHandler[S any] func(ctx GetterContext[S]) any

// MutationHandler applies a synchronous state transition.
type MutationHandler[S any] func(ctx MutationContext[S], payload any)

// ActionHandler runs an effectful, possibly asynchronous operation.
type ActionHandler[S any] func(ctx context.Context, op ActionContext[S], payload any) (any, error)

type getterEntry[S any] struct {
	name       string
	handler    GetterHandler[S]
	expression string
}

// Getters is an ordered registration table of getter declarations. Entries
// registered later under the same name win; nil handlers are skipped.
type Getters[S any] struct {
	entries []getterEntry[S]
}

// NewGetters constructs an empty getter table.
func NewGetters[S any]() *Getters[S] {
	return &Getters[S]{}
}

// Register appends a getter handler under name.
func (g *Getters[S]) Register(name string, handler GetterHandler[S]) *Getters[S] {
	g.entries = append(g.entries, getterEntry[S]{name: name, handler: handler})
	return g
}

// RegisterExpr appends an expression-backed getter under name. The expression
// is evaluated against the module's live state by the module's configured
// evaluator; evaluation failures yield a nil value and a logged event.
func (g *Getters[S]) RegisterExpr(name, expression string) *Getters[S] {
	g.entries = append(g.entries, getterEntry[S]{name: name, expression: expression})
	return g
}

// Len returns the number of registered entries, collisions included.
func (g *Getters[S]) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

type mutationEntry[S any] struct {
	name    string
	handler MutationHandler[S]
}

// Mutations is an ordered registration table of mutation declarations.
type Mutations[S any] struct {
	entries []mutationEntry[S]
}

// NewMutations constructs an empty mutation table.
func NewMutations[S any]() *Mutations[S] {
	return &Mutations[S]{}
}

// Register appends a mutation handler under name.
func (m *Mutations[S]) Register(name string, handler MutationHandler[S]) *Mutations[S] {
	m.entries = append(m.entries, mutationEntry[S]{name: name, handler: handler})
	return m
}

// Len returns the number of registered entries, collisions included.
func (m *Mutations[S]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

type actionEntry[S any] struct {
	name    string
	handler ActionHandler[S]
}

// Actions is an ordered registration table of action declarations.
type Actions[S any] struct {
	entries []actionEntry[S]
}

// NewActions constructs an empty action table.
func NewActions[S any]() *Actions[S] {
	return &Actions[S]{}
}

// Register appends an action handler under name.
func (a *Actions[S]) Register(name string, handler ActionHandler[S]) *Actions[S] {
	a.entries = append(a.entries, actionEntry[S]{name: name, handler: handler})
	return a
}

// Len returns the number of registered entries, collisions included.
func (a *Actions[S]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// MutationFor adapts a payload-typed mutation handler to the registry
// convention. A payload of the wrong dynamic type yields the zero P; payload
// shape is never validated.
func MutationFor[S any, P any](fn func(ctx MutationContext[S], payload P)) MutationHandler[S] {
	return func(ctx MutationContext[S], payload any) {
		typed, _ := payload.(P)
		fn(ctx, typed)
	}
}

// ActionFor adapts a payload-typed action handler to the registry convention.
func ActionFor[S any, P any](fn func(ctx context.Context, op ActionContext[S], payload P) (any, error)) ActionHandler[S] {
	return func(ctx context.Context, op ActionContext[S], payload any) (any, error) {
		typed, _ := payload.(P)
		return fn(ctx, op, typed)
	}
}
