package statemod

import "strings"

// Separator joins path segments into namespace prefixes.
const Separator = "/"

// Path locates a module inside a store's module tree. The root module has an
// empty path. Paths are assigned once, by the binding walk, and never change
// for the lifetime of the binding.
type Path []string

// Namespace derives the namespace prefix for the path: segments joined by the
// separator with a trailing separator, or the empty string for the root.
func (p Path) Namespace() string {
	if len(p) == 0 {
		return ""
	}
	return strings.Join(p, Separator) + Separator
}

// Qualified returns name prefixed with the path's namespace. For the root
// path this is a no-op.
func (p Path) Qualified(name string) string {
	return p.Namespace() + name
}

// Child returns a new path extended with key. The receiver is copied so
// sibling paths never alias each other's backing arrays.
func (p Path) Child(key string) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = key
	return child
}

// String renders the path for diagnostics.
func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	return strings.Join(p, Separator)
}

func (p Path) clone() Path {
	if len(p) == 0 {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}
