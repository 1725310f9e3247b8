package statemod

// ProgramCache stores compiled expression programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache used by the module's default
// evaluator.
func WithProgramCache[S any](cache ProgramCache) Option[S] {
	return func(cfg *moduleConfig[S]) {
		cfg.programCache = cache
	}
}
