package statemod

import (
	"context"

	"github.com/goliatone/go-statemod/store"
)

// AnyModule is a node in a module definition tree. Module[S] is the only
// implementation; the interface exists so trees can hold children with
// heterogeneous state types.
type AnyModule interface {
	buildConfig() store.Config
	bindTree(path Path, st *store.Store)
}

// Option configures a module definition.
type Option[S any] func(*moduleConfig[S])

type moduleConfig[S any] struct {
	state        func() S
	getters      *Getters[S]
	mutations    *Mutations[S]
	actions      *Actions[S]
	children     map[string]AnyModule
	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
	logger       EvaluatorLogger
}

// WithState declares the module's state factory. Modules without a factory
// get an empty state value.
func WithState[S any](factory func() S) Option[S] {
	return func(cfg *moduleConfig[S]) {
		cfg.state = factory
	}
}

// WithGetters declares the module's getter table.
func WithGetters[S any](getters *Getters[S]) Option[S] {
	return func(cfg *moduleConfig[S]) {
		cfg.getters = getters
	}
}

// WithMutations declares the module's mutation table.
func WithMutations[S any](mutations *Mutations[S]) Option[S] {
	return func(cfg *moduleConfig[S]) {
		cfg.mutations = mutations
	}
}

// WithActions declares the module's action table.
func WithActions[S any](actions *Actions[S]) Option[S] {
	return func(cfg *moduleConfig[S]) {
		cfg.actions = actions
	}
}

// WithModule mounts child under key. The key becomes exactly one path segment
// of the child's bound path; children are always namespaced when built.
func WithModule[S any](key string, child AnyModule) Option[S] {
	return func(cfg *moduleConfig[S]) {
		if key == "" || child == nil {
			return
		}
		if cfg.children == nil {
			cfg.children = map[string]AnyModule{}
		}
		cfg.children[key] = child
	}
}

// WithEvaluator configures the evaluator used for expression getters and
// ad-hoc Evaluate calls on this module.
func WithEvaluator[S any](evaluator Evaluator) Option[S] {
	return func(cfg *moduleConfig[S]) {
		cfg.evaluator = evaluator
	}
}

// Module is a composable unit of state, getters, mutations and actions. A
// freshly constructed module is unbound; installing its tree into a store
// runs the binding walk, which assigns the module its path and store exactly
// once. The transition is one-way: there is no unbind.
type Module[S any] struct {
	cfg     moduleConfig[S]
	binding *binding
}

type binding struct {
	path  Path
	store *store.Store
}

// New constructs a module definition. The definition is immutable once
// constructed; it owns its children by value.
func New[S any](opts ...Option[S]) *Module[S] {
	cfg := moduleConfig[S]{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Module[S]{cfg: cfg}
}

// Bound reports whether the binding walk has assigned this module a store.
func (m *Module[S]) Bound() bool {
	return m.binding != nil
}

// Path returns the module's position in the bound tree, or nil while
// unbound. The root module's path is empty.
func (m *Module[S]) Path() Path {
	if m.binding == nil {
		return nil
	}
	return m.binding.path.clone()
}

// Namespace returns the module's derived namespace prefix. Both the root
// module and an unbound module report the empty string.
func (m *Module[S]) Namespace() string {
	if m.binding == nil {
		return ""
	}
	return m.binding.path.Namespace()
}

// Store returns the store this module is bound to.
func (m *Module[S]) Store() (*store.Store, error) {
	if m.binding == nil {
		return nil, ErrNotBound
	}
	return m.binding.store, nil
}

// State reads the module's local state from the store's state tree.
func (m *Module[S]) State() (S, error) {
	var zero S
	if m.binding == nil {
		return zero, ErrNotBound
	}
	value, ok := m.binding.store.Get(m.binding.path)
	if !ok {
		return zero, nil
	}
	state, _ := value.(S)
	return state, nil
}

// Getters builds the namespace-local projection of the store's global getter
// table. The view is rebuilt on every call; value reads inside it are live.
func (m *Module[S]) Getters() (*View, error) {
	if m.binding == nil {
		return nil, ErrNotBound
	}
	return newView(m.binding.store, m.binding.path.Namespace()), nil
}

// Commit applies a namespace-local mutation: name is qualified with the
// module's namespace and payload and opts forward unchanged. At the root the
// qualification is a no-op.
func (m *Module[S]) Commit(name string, payload any, opts *store.CommitOptions) error {
	if m.binding == nil {
		return ErrNotBound
	}
	return m.binding.store.Commit(m.binding.path.Qualified(name), payload, opts)
}

// CommitEnvelope applies a mutation named by the envelope's Type field. The
// envelope is shallow-copied with only Type qualified; the remaining fields
// pass through untouched. The opts argument is not forwarded in this calling
// shape.
func (m *Module[S]) CommitEnvelope(env Envelope, opts *store.CommitOptions) error {
	if m.binding == nil {
		return ErrNotBound
	}
	_ = opts
	qualified := env.qualify(m.binding.path)
	return m.binding.store.Commit(qualified.Type, qualified, nil)
}

// Dispatch starts a namespace-local action and returns its pending result.
func (m *Module[S]) Dispatch(ctx context.Context, name string, payload any, opts *store.DispatchOptions) (*store.Pending, error) {
	if m.binding == nil {
		return nil, ErrNotBound
	}
	return m.binding.store.Dispatch(ctx, m.binding.path.Qualified(name), payload, opts)
}

// DispatchEnvelope starts an action named by the envelope's Type field. As
// with CommitEnvelope, the opts argument is not forwarded in this shape.
func (m *Module[S]) DispatchEnvelope(ctx context.Context, env Envelope, opts *store.DispatchOptions) (*store.Pending, error) {
	if m.binding == nil {
		return nil, ErrNotBound
	}
	_ = opts
	qualified := env.qualify(m.binding.path)
	return m.binding.store.Dispatch(ctx, qualified.Type, qualified, nil)
}

// Envelope is the object calling shape for commits and dispatches: the
// operation type travels together with its payload fields.
type Envelope struct {
	Type   string
	Fields map[string]any
}

// qualify shallow-copies the envelope, replacing only Type with its
// namespace-qualified form.
func (e Envelope) qualify(p Path) Envelope {
	out := Envelope{Type: p.Qualified(e.Type)}
	if len(e.Fields) > 0 {
		out.Fields = make(map[string]any, len(e.Fields))
		for key, value := range e.Fields {
			out.Fields[key] = value
		}
	}
	return out
}
