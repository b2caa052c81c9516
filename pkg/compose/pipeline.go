package compose

import (
	"context"
	"sync"
)

// Pipeline runs units in order, each unit's next stepping to the following one. After the last unit,
// next is the continuation the pipeline itself was given.
type Pipeline[S any] struct {
	mu    sync.RWMutex
	units []Unit[S]
}

// NewPipeline creates a pipeline of units.
func NewPipeline[S any](units ...Unit[S]) *Pipeline[S] {
	return &Pipeline[S]{
		units: append([]Unit[S](nil), units...),
	}
}

// Use appends u. Invocations already running keep the units they started with.
func (p *Pipeline[S]) Use(u Unit[S]) *Pipeline[S] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.units = append(p.units, u)

	return p
}

// Units returns a copy of the units.
func (p *Pipeline[S]) Units() []Unit[S] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]Unit[S](nil), p.units...)
}

// Run starts the chain with args. It returns whatever the first unit returns, which is the result of
// the innermost unit reached unless a unit on the way back replaced it.
// A unit calling its next more than once gets ErrMultipleInvocation.
func (p *Pipeline[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	return newCursor(p.Units(), scope, next).advance(ctx, 0, args...)
}
