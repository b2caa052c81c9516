package compose

import (
	"context"
	"sync"
)

type gateState int

const (
	pending gateState = iota
	passed
	failed
)

// gate tracks the pass/fail signal of one condition run:
// pending -> passed when its continuation is called, pending -> failed when it returns without.
type gate struct {
	mu    sync.Mutex
	state gateState
}

func (g *gate) open() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != pending {
		return ErrMultipleInvocation
	}

	g.state = passed

	return nil
}

// settle closes a gate that is still pending and reports whether it passed.
func (g *gate) settle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == pending {
		g.state = failed
	}

	return g.state == passed
}

// selector returns a single-use continuation that opens g then runs then.
func (g *gate) selector(then Next) Next {
	return func(ctx context.Context, args ...any) (any, error) {
		err := g.open()
		if err != nil {
			return nil, err
		}

		return then(ctx, args...)
	}
}

// outcome keeps the value a continuation returned, for the composite to surface it. Its error goes
// back to the caller of the continuation only, which decides whether to return it.
type outcome struct {
	ret any
}

func (o *outcome) record(next Next) Next {
	return func(ctx context.Context, args ...any) (any, error) {
		ret, err := next(ctx, args...)
		o.ret = ret

		return ret, err
	}
}

// cursor is the per-invocation token of a sequence of units.
// last is the highest index entered so far; entering it again, or anything below, is a misuse.
type cursor[S any] struct {
	mu    sync.Mutex
	units []Unit[S]
	scope S
	outer Next
	last  int
}

func newCursor[S any](units []Unit[S], scope S, outer Next) *cursor[S] {
	return &cursor[S]{
		units: units,
		scope: scope,
		outer: outer,
		last:  -1,
	}
}

func (c *cursor[S]) enter(idx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last >= idx {
		return ErrMultipleInvocation
	}

	c.last = idx

	return nil
}

// reached reports whether the chain got through to the outer continuation.
func (c *cursor[S]) reached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last >= len(c.units)
}

func (c *cursor[S]) step(idx int) Next {
	return func(ctx context.Context, args ...any) (any, error) {
		return c.advance(ctx, idx, args...)
	}
}

func (c *cursor[S]) advance(ctx context.Context, idx int, args ...any) (any, error) {
	err := c.enter(idx)
	if err != nil {
		return nil, err
	}

	if idx == len(c.units) {
		return resume(ctx, c.outer, args...)
	}

	return run(ctx, c.units[idx], c.scope, c.step(idx+1), args...)
}
