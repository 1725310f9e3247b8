package store

import "context"

// GetterFunc is a zero-argument accessor registered for a getter. It is
// re-invoked on every read.
type GetterFunc func() any

// MutationFunc applies a synchronous state transition. The ambient context
// identifies the store and the qualified mutation name; registered handlers
// are free to ignore it.
type MutationFunc func(ambient Ambient, payload any)

// ActionFunc runs a possibly asynchronous, effectful operation. Its result
// resolves the Pending handle returned by Dispatch.
type ActionFunc func(ctx context.Context, ambient Ambient, payload any) (any, error)

// Ambient is the store-side context handed to mutation and action handlers.
type Ambient struct {
	Store *Store
	Type  string
}

// InstallHook runs once with the concrete store instance after construction.
type InstallHook func(*Store)

// Plugin is an installation hook supplied by the store consumer rather than
// by a module configuration.
type Plugin func(*Store)

// Config is the nested configuration format a store is constructed from.
// Operation names are local; the store qualifies them with the namespace
// prefix accumulated from Namespaced ancestors.
type Config struct {
	State      any
	Getters    map[string]GetterFunc
	Mutations  map[string]MutationFunc
	Actions    map[string]ActionFunc
	Modules    map[string]Config
	Namespaced bool
	Install    InstallHook
}

// CommitOptions tune a single commit. Silent suppresses subscriber and
// activity notification; Metadata is carried into the emitted activity event.
type CommitOptions struct {
	Silent   bool
	Metadata map[string]any
}

// DispatchOptions tune a single dispatch.
type DispatchOptions struct {
	Metadata map[string]any
}
