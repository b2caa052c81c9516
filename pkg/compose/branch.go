package compose

import (
	"context"
	"sync"
)

// Branch lets a condition pick between an action and the outer continuation.
//
// The condition runs with a selector as its next. Calling the selector opens the branch: the action
// runs with the selector's arguments and Noop as its next, and whatever it returns is the branch
// result. The selector also hands that result back to the condition, whose own return value is
// dropped. An error only leaves the branch if the condition returns it, so a condition may recover
// from a failing action. If the condition returns without calling the selector, the branch resumes its own next with
// its own arguments and returns what that call returns.
//
// A nil condition always fails; a nil action does nothing.
type Branch[S any] struct {
	mu        sync.RWMutex
	condition Unit[S]
	action    Unit[S]
}

// NewBranch creates a branch. Both units can be set later with Cond and Action.
func NewBranch[S any](condition, action Unit[S]) *Branch[S] {
	return &Branch[S]{
		condition: condition,
		action:    action,
	}
}

// Cond replaces the condition.
func (b *Branch[S]) Cond(u Unit[S]) *Branch[S] {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.condition = u

	return b
}

// Action replaces the action.
func (b *Branch[S]) Action(u Unit[S]) *Branch[S] {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.action = u

	return b
}

// Parts returns the condition and the action.
func (b *Branch[S]) Parts() (condition, action Unit[S]) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.condition, b.action
}

func (b *Branch[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	condition, action := b.Parts()

	var act outcome

	gt := &gate{}
	selector := gt.selector(act.record(func(ctx context.Context, selArgs ...any) (any, error) {
		return run(ctx, action, scope, Noop, selArgs...)
	}))

	_, err := run(ctx, condition, scope, selector, args...)
	if err != nil {
		return nil, err
	}

	if gt.settle() {
		return act.ret, nil
	}

	return resume(ctx, next, args...)
}
