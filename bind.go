package statemod

import (
	"context"

	"github.com/goliatone/go-statemod/store"
)

// bindTree is the binding walk: a one-shot, synchronous, depth-first
// pre-order traversal that assigns each module its path and store. Binding an
// already bound module into a second store overwrites these fields; the
// result is undefined and unsupported.
func (m *Module[S]) bindTree(path Path, st *store.Store) {
	m.binding = &binding{path: path.clone(), store: st}
	for key, child := range m.cfg.children {
		child.bindTree(path.Child(key), st)
	}
}

// bindGetters produces the store-facing getter table: one zero-argument
// accessor per registered entry, re-invoking the handler on every read. Later
// entries under the same name overwrite earlier ones; nil handlers are
// skipped.
func bindGetters[S any](m *Module[S]) map[string]store.GetterFunc {
	table := map[string]store.GetterFunc{}
	if m.cfg.getters == nil {
		return table
	}
	for _, entry := range m.cfg.getters.entries {
		switch {
		case entry.expression != "":
			table[entry.name] = exprGetterFunc(m, entry.name, entry.expression)
		case entry.handler != nil:
			handler := entry.handler
			table[entry.name] = func() any {
				state, err := m.State()
				if err != nil {
					return nil
				}
				view, err := m.Getters()
				if err != nil {
					return nil
				}
				return handler(GetterContext[S]{State: state, Getters: view})
			}
		}
	}
	return table
}

// bindMutations produces the store-facing mutation table. The ambient store
// context is ignored; only the payload reaches the handler.
func bindMutations[S any](m *Module[S]) map[string]store.MutationFunc {
	table := map[string]store.MutationFunc{}
	if m.cfg.mutations == nil {
		return table
	}
	for _, entry := range m.cfg.mutations.entries {
		if entry.handler == nil {
			continue
		}
		handler := entry.handler
		table[entry.name] = func(_ store.Ambient, payload any) {
			state, err := m.State()
			if err != nil {
				return
			}
			handler(MutationContext[S]{State: state}, payload)
		}
	}
	return table
}

// bindActions produces the store-facing action table. The handler receives
// the owning module through its ActionContext so action bodies can commit and
// dispatch namespace-locally.
func bindActions[S any](m *Module[S]) map[string]store.ActionFunc {
	table := map[string]store.ActionFunc{}
	if m.cfg.actions == nil {
		return table
	}
	for _, entry := range m.cfg.actions.entries {
		if entry.handler == nil {
			continue
		}
		handler := entry.handler
		table[entry.name] = func(ctx context.Context, _ store.Ambient, payload any) (any, error) {
			return handler(ctx, ActionContext[S]{Module: m}, payload)
		}
	}
	return table
}
