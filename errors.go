package statemod

import "errors"

// ErrNotBound indicates a module accessor was invoked before the binding walk
// assigned the module its path and store. State, Getters, Commit and Dispatch
// (and their envelope forms) all fail with this error until the module's tree
// is installed into a store.
var ErrNotBound = errors.New("statemod: module is not bound to a store")
