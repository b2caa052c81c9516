package compose

import (
	"context"
	"sync"
)

// pair holds the two operands of And and Or.
type pair[S any] struct {
	mu     sync.RWMutex
	first  Unit[S]
	second Unit[S]
}

func (p *pair[S]) setFirst(u Unit[S]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.first = u
}

func (p *pair[S]) setSecond(u Unit[S]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.second = u
}

// Parts returns both operands.
func (p *pair[S]) Parts() (first, second Unit[S]) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.first, p.second
}

// And passes only when both operands pass. The second operand runs from inside the first one's
// continuation, with the arguments the first forwarded, and the outer next runs with the arguments
// the second forwarded. If the first operand fails, the second never runs.
//
// When both pass, And returns what the outer next returned. Otherwise it returns what the failing
// operand returned. Errors are those returned by the operands: an operand that recovers from an error
// of its continuation hides it from And's caller.
type And[S any] struct {
	pair[S]
}

// NewAnd creates the conjunction of first and second.
func NewAnd[S any](first, second Unit[S]) *And[S] {
	return &And[S]{pair: pair[S]{first: first, second: second}}
}

// First replaces the first operand.
func (a *And[S]) First(u Unit[S]) *And[S] {
	a.setFirst(u)

	return a
}

// Second replaces the second operand.
func (a *And[S]) Second(u Unit[S]) *And[S] {
	a.setSecond(u)

	return a
}

func (a *And[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	first, second := a.Parts()

	var out, inner outcome

	gateA, gateB := &gate{}, &gate{}
	selectorB := gateB.selector(out.record(func(ctx context.Context, fwd ...any) (any, error) {
		return resume(ctx, next, fwd...)
	}))
	selectorA := gateA.selector(inner.record(func(ctx context.Context, fwd ...any) (any, error) {
		return run(ctx, second, scope, selectorB, fwd...)
	}))

	ret, err := run(ctx, first, scope, selectorA, args...)
	if err != nil {
		return nil, err
	}

	switch {
	case !gateA.settle():
		return ret, nil
	case !gateB.settle():
		return inner.ret, nil
	}

	return out.ret, nil
}

// Or passes when either operand passes, trying them in order. When the first operand passes, the
// outer next runs with its forwarded arguments and the second operand is skipped. Otherwise the
// second operand runs with the original arguments and decides alone.
//
// When either passes, Or returns what the outer next returned. Otherwise it returns what the second
// operand returned. As with And, only errors returned by the operands leave Or.
type Or[S any] struct {
	pair[S]
}

// NewOr creates the disjunction of first and second.
func NewOr[S any](first, second Unit[S]) *Or[S] {
	return &Or[S]{pair: pair[S]{first: first, second: second}}
}

// First replaces the first operand.
func (o *Or[S]) First(u Unit[S]) *Or[S] {
	o.setFirst(u)

	return o
}

// Second replaces the second operand.
func (o *Or[S]) Second(u Unit[S]) *Or[S] {
	o.setSecond(u)

	return o
}

func (o *Or[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	first, second := o.Parts()

	var out outcome

	toNext := out.record(func(ctx context.Context, fwd ...any) (any, error) {
		return resume(ctx, next, fwd...)
	})

	gateA := &gate{}

	_, err := run(ctx, first, scope, gateA.selector(toNext), args...)
	if err != nil {
		return nil, err
	}

	if gateA.settle() {
		return out.ret, nil
	}

	gateB := &gate{}

	ret, err := run(ctx, second, scope, gateB.selector(toNext), args...)
	if err != nil {
		return nil, err
	}

	if gateB.settle() {
		return out.ret, nil
	}

	return ret, nil
}
