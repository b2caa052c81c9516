package compose

import (
	"context"
	"sync"
)

// Circuit chains stages like a Pipeline, but treats the chain as one condition. When every stage
// called its next the circuit passed and returns the first stage's result. As soon as a stage
// returns without calling next, the circuit fails over: the outer next is resumed with the circuit's
// original arguments. Used as the condition of a Branch, And or Or, that outer next is the selector,
// so a circuit always counts as passing there.
type Circuit[S any] struct {
	mu     sync.RWMutex
	stages []Unit[S]
}

// NewCircuit creates a circuit of stages.
func NewCircuit[S any](stages ...Unit[S]) *Circuit[S] {
	return &Circuit[S]{
		stages: append([]Unit[S](nil), stages...),
	}
}

// Use appends a stage.
func (c *Circuit[S]) Use(u Unit[S]) *Circuit[S] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stages = append(c.stages, u)

	return c
}

// Stages returns a copy of the stages.
func (c *Circuit[S]) Stages() []Unit[S] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]Unit[S](nil), c.stages...)
}

func (c *Circuit[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	cur := newCursor(c.Stages(), scope, next)

	ret, err := cur.advance(ctx, 0, args...)
	if err != nil {
		return nil, err
	}

	if cur.reached() {
		return ret, nil
	}

	return resume(ctx, next, args...)
}
