package statemod

import (
	"reflect"

	"github.com/goliatone/go-statemod/store"
)

// Build turns a module definition tree into the store's nested configuration
// format. The returned root config carries the installation hook that runs
// the binding walk from the empty path once the store is constructed.
func Build(root AnyModule) store.Config {
	cfg := root.buildConfig()
	cfg.Install = func(st *store.Store) {
		root.bindTree(Path{}, st)
	}
	return cfg
}

// NewStore builds the definition tree and constructs a store from it. By the
// time NewStore returns, every module in the tree is bound.
func NewStore(root AnyModule, opts ...store.Option) *store.Store {
	return store.New(Build(root), opts...)
}

// buildConfig recursively produces the store configuration for this module.
// Every child configuration is marked namespaced regardless of the child's
// own declaration; composition always implies namespacing below the root.
func (m *Module[S]) buildConfig() store.Config {
	cfg := store.Config{
		State:     m.initialState(),
		Getters:   bindGetters(m),
		Mutations: bindMutations(m),
		Actions:   bindActions(m),
		Modules:   map[string]store.Config{},
	}
	for key, child := range m.cfg.children {
		built := child.buildConfig()
		built.Namespaced = true
		cfg.Modules[key] = built
	}
	return cfg
}

// initialState invokes the state factory, or synthesizes an empty state when
// none was declared: map states get an empty map, pointer states a zeroed
// allocation, everything else its zero value.
func (m *Module[S]) initialState() any {
	if m.cfg.state != nil {
		return m.cfg.state()
	}
	t := reflect.TypeOf((*S)(nil)).Elem()
	switch t.Kind() {
	case reflect.Map:
		return reflect.MakeMap(t).Interface()
	case reflect.Pointer:
		return reflect.New(t.Elem()).Interface()
	default:
		var zero S
		return zero
	}
}
