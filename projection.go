package statemod

import (
	"sort"
	"strings"

	"github.com/goliatone/go-statemod/store"
)

// View is a namespace-local projection of the store's global getter table.
// The key set is fixed when the view is built; every value read dereferences
// the live table, so values always reflect the current store state.
//
// A key is retained when it carries the view's namespace prefix, or when
// stripping the prefix length leaves nothing. For the root namespace this
// retains every key under its full original name, `/`-qualified descendant
// entries included.
type View struct {
	store *store.Store
	keys  map[string]string
}

func newView(st *store.Store, namespace string) *View {
	view := &View{store: st, keys: map[string]string{}}
	for _, key := range st.GetterNames() {
		matches := strings.HasPrefix(key, namespace)
		stripped := ""
		if len(key) >= len(namespace) {
			stripped = key[len(namespace):]
		}
		if !matches && stripped != "" {
			continue
		}
		view.keys[stripped] = key
	}
	return view
}

// Has reports whether the view exposes name.
func (v *View) Has(name string) bool {
	if v == nil {
		return false
	}
	_, ok := v.keys[name]
	return ok
}

// Value evaluates the getter exposed under name, reporting whether the view
// carries it.
func (v *View) Value(name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	qualified, ok := v.keys[name]
	if !ok {
		return nil, false
	}
	return v.store.Getter(qualified)
}

// Get evaluates the getter exposed under name, returning nil when absent.
func (v *View) Get(name string) any {
	value, _ := v.Value(name)
	return value
}

// Names returns the view's exposed getter names, sorted.
func (v *View) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, 0, len(v.keys))
	for name := range v.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of exposed getters.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Values evaluates every exposed getter and returns the results keyed by
// stripped name. Each call re-evaluates.
func (v *View) Values() map[string]any {
	if v == nil {
		return nil
	}
	out := make(map[string]any, len(v.keys))
	for name, qualified := range v.keys {
		value, _ := v.store.Getter(qualified)
		out[name] = value
	}
	return out
}

// As reads a typed value out of a view, reporting whether the getter exists
// and carries the requested type.
func As[T any](v *View, name string) (T, bool) {
	var zero T
	value, ok := v.Value(name)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
