package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-statemod/pkg/activity"
	"github.com/google/uuid"
)

var (
	// ErrUnknownMutation indicates a commit named a mutation no module
	// registered.
	ErrUnknownMutation = errors.New("store: unknown mutation type")
	// ErrUnknownAction indicates a dispatch named an action no module
	// registered.
	ErrUnknownAction = errors.New("store: unknown action type")
)

// Store is the process-wide shared state container. All mutation flows
// through Commit, which serializes application; getters and state reads are
// live views over the current tree.
type Store struct {
	id      string
	root    *stateNode
	getters map[string]GetterFunc

	mu                sync.Mutex
	mutations         map[string]MutationFunc
	actions           map[string]ActionFunc
	version           uint64
	subscribers       map[string]SubscribeFunc
	actionSubscribers map[string]SubscribeActionFunc

	emitter *activity.Emitter
	logger  Logger
}

// Option configures store construction.
type Option func(*storeConfig)

type storeConfig struct {
	plugins  []Plugin
	hooks    activity.Hooks
	activity activity.Config
	logger   Logger
}

// WithPlugin appends an installation plugin invoked once after construction,
// after per-config install hooks.
func WithPlugin(plugin Plugin) Option {
	return func(cfg *storeConfig) {
		if plugin != nil {
			cfg.plugins = append(cfg.plugins, plugin)
		}
	}
}

// WithActivityHooks attaches activity hooks notified on commits, dispatches
// and installation.
func WithActivityHooks(hooks activity.Hooks) Option {
	return func(cfg *storeConfig) {
		cfg.hooks = hooks
		cfg.activity.Enabled = len(hooks) > 0
	}
}

// WithActivityConfig overrides activity emission defaults such as the
// channel name.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *storeConfig) {
		cfg.activity = config
	}
}

// New constructs a store from the nested configuration, flattening operation
// tables, mounting child state, and running install hooks and plugins.
func New(cfg Config, opts ...Option) *Store {
	sc := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&sc)
		}
	}
	if sc.logger == nil {
		sc.logger = noopLogger{}
	}

	s := &Store{
		id:                uuid.NewString(),
		getters:           map[string]GetterFunc{},
		mutations:         map[string]MutationFunc{},
		actions:           map[string]ActionFunc{},
		subscribers:       map[string]SubscribeFunc{},
		actionSubscribers: map[string]SubscribeActionFunc{},
		emitter:           activity.NewEmitter(sc.hooks, sc.activity),
		logger:            sc.logger,
	}

	var installs []InstallHook
	s.root = s.register(cfg, "", &installs)

	for _, install := range installs {
		install(s)
	}
	for _, plugin := range sc.plugins {
		plugin(s)
	}

	s.emit(activity.BuildInstallEvent(activity.StoreEventInput{StoreID: s.id}))
	s.logger.LogStoreEvent(LogEvent{Kind: "install", Type: s.id})
	return s
}

// register walks the config tree collecting install hooks in pre-order and
// returns the mounted state node for cfg.
func (s *Store) register(cfg Config, prefix string, installs *[]InstallHook) *stateNode {
	state := cfg.State
	if state == nil {
		state = map[string]any{}
	}
	node := newStateNode(state)

	for name, fn := range cfg.Getters {
		if fn != nil {
			s.getters[prefix+name] = fn
		}
	}
	for name, fn := range cfg.Mutations {
		if fn != nil {
			s.mutations[prefix+name] = fn
		}
	}
	for name, fn := range cfg.Actions {
		if fn != nil {
			s.actions[prefix+name] = fn
		}
	}
	if cfg.Install != nil {
		*installs = append(*installs, cfg.Install)
	}

	for key, child := range cfg.Modules {
		childPrefix := prefix
		if child.Namespaced {
			childPrefix = prefix + key + "/"
		}
		node.children[key] = s.register(child, childPrefix, installs)
	}
	return node
}

// ID returns the store's unique identifier.
func (s *Store) ID() string {
	return s.id
}

// State returns the root state value.
func (s *Store) State() any {
	return s.root.value
}

// Get reads the state value mounted at path. The root state has the empty
// path.
func (s *Store) Get(path []string) (any, bool) {
	node, ok := s.root.get(path)
	if !ok {
		return nil, false
	}
	return node.value, true
}

// Snapshot returns a deep-cloned copy of the entire state tree.
func (s *Store) Snapshot() StateTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.snapshot()
}

// Version returns the number of commits applied so far.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Getter evaluates the fully qualified getter and reports whether it exists.
// Every call re-invokes the registered accessor.
func (s *Store) Getter(name string) (any, bool) {
	fn, ok := s.getters[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// GetterNames returns every fully qualified getter name, sorted.
func (s *Store) GetterNames() []string {
	names := make([]string, 0, len(s.getters))
	for name := range s.getters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commit applies the named mutation with payload. Application is serialized;
// subscribers and activity hooks observe the commit unless opts.Silent.
func (s *Store) Commit(name string, payload any, opts *CommitOptions) error {
	start := time.Now()
	s.mu.Lock()
	fn, ok := s.mutations[name]
	if !ok {
		s.mu.Unlock()
		err := fmt.Errorf("%w: %s", ErrUnknownMutation, name)
		s.logger.LogStoreEvent(LogEvent{Kind: "commit", Type: name, Duration: time.Since(start), Err: err})
		return err
	}
	fn(Ambient{Store: s, Type: name}, payload)
	s.version++
	version := s.version
	s.mu.Unlock()

	silent := opts != nil && opts.Silent
	if !silent {
		event := MutationEvent{
			ID:         uuid.NewString(),
			Type:       name,
			Payload:    payload,
			Version:    version,
			OccurredAt: time.Now(),
		}
		for _, sub := range s.mutationSubscribers() {
			sub(event)
		}
		s.emit(activity.BuildCommitEvent(activity.StoreEventInput{
			StoreID:  s.id,
			Type:     name,
			Metadata: commitMetadata(opts),
		}))
	}
	s.logger.LogStoreEvent(LogEvent{Kind: "commit", Type: name, Silent: silent, Duration: time.Since(start)})
	return nil
}

// Dispatch starts the named action with payload on its own goroutine and
// returns a Pending handle resolved by the action's result. Ordering, retry
// and cancellation beyond ctx are the action body's concern.
func (s *Store) Dispatch(ctx context.Context, name string, payload any, opts *DispatchOptions) (*Pending, error) {
	s.mu.Lock()
	fn, ok := s.actions[name]
	s.mu.Unlock()
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownAction, name)
		s.logger.LogStoreEvent(LogEvent{Kind: "dispatch", Type: name, Err: err})
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	event := ActionEvent{
		ID:         uuid.NewString(),
		Type:       name,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
	for _, sub := range s.dispatchSubscribers() {
		sub(event)
	}
	s.emit(activity.BuildDispatchEvent(activity.StoreEventInput{
		StoreID:  s.id,
		Type:     name,
		Metadata: dispatchMetadata(opts),
	}))

	pending := newPending()
	start := time.Now()
	go func() {
		value, err := fn(ctx, Ambient{Store: s, Type: name}, payload)
		s.logger.LogStoreEvent(LogEvent{Kind: "dispatch", Type: name, Duration: time.Since(start), Err: err})
		pending.resolve(value, err)
	}()
	return pending, nil
}

func (s *Store) emit(event activity.Event) {
	if !s.emitter.Enabled() {
		return
	}
	_ = s.emitter.Emit(context.Background(), event)
}

func commitMetadata(opts *CommitOptions) map[string]any {
	if opts == nil {
		return nil
	}
	return opts.Metadata
}

func dispatchMetadata(opts *DispatchOptions) map[string]any {
	if opts == nil {
		return nil
	}
	return opts.Metadata
}
