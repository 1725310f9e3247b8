package store

import (
	"context"
	"sync"
)

// Pending is the handle returned by Dispatch. It resolves when the action
// body returns; resolution or rejection is entirely determined by the action.
type Pending struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(value any, err error) {
	p.once.Do(func() {
		p.value = value
		p.err = err
		close(p.done)
	})
}

// Done returns a channel closed when the action has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the action finishes or ctx is cancelled, returning the
// action's result.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
