package store

import (
	"time"

	"github.com/google/uuid"
)

// MutationEvent is delivered to mutation subscribers after a commit applies.
type MutationEvent struct {
	ID         string
	Type       string
	Payload    any
	Version    uint64
	OccurredAt time.Time
}

// ActionEvent is delivered to action subscribers when a dispatch starts.
type ActionEvent struct {
	ID         string
	Type       string
	Payload    any
	OccurredAt time.Time
}

// SubscribeFunc observes committed mutations.
type SubscribeFunc func(event MutationEvent)

// SubscribeActionFunc observes dispatched actions.
type SubscribeActionFunc func(event ActionEvent)

// Subscribe registers fn for every non-silent commit and returns an
// unsubscribe closure. Subscribers run synchronously, after the mutation has
// applied, in unspecified order.
func (s *Store) Subscribe(fn SubscribeFunc) func() {
	if fn == nil {
		return func() {}
	}
	key := uuid.NewString()
	s.mu.Lock()
	s.subscribers[key] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, key)
		s.mu.Unlock()
	}
}

// SubscribeAction registers fn for every dispatch and returns an unsubscribe
// closure. Subscribers run before the action body starts.
func (s *Store) SubscribeAction(fn SubscribeActionFunc) func() {
	if fn == nil {
		return func() {}
	}
	key := uuid.NewString()
	s.mu.Lock()
	s.actionSubscribers[key] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.actionSubscribers, key)
		s.mu.Unlock()
	}
}

func (s *Store) mutationSubscribers() []SubscribeFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SubscribeFunc, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		out = append(out, fn)
	}
	return out
}

func (s *Store) dispatchSubscribers() []SubscribeActionFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SubscribeActionFunc, 0, len(s.actionSubscribers))
	for _, fn := range s.actionSubscribers {
		out = append(out, fn)
	}
	return out
}
