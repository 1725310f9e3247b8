// Package store implements the centralized state container that module trees
// are installed into: a nested, path-addressable state tree plus flat tables
// of fully qualified getters, mutations and actions.
//
// Responsibilities:
//   - Store flattens a Config tree into qualified operation tables, applying
//     the per-child Namespaced marker while mounting child state by key.
//   - Commit serializes mutation application and notifies subscribers and
//     activity hooks; Dispatch runs actions asynchronously and returns a
//     Pending handle.
//   - Getters are re-evaluated on every read; the engine performs no
//     memoization, so getter values always reflect the current state.
//   - Install hooks and plugins run exactly once, after construction, before
//     the store is handed back to the caller.
//
// The composition layer in the root statemod package emits Config values and
// never touches store internals beyond this surface.
package store
