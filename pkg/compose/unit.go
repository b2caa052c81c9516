package compose

import (
	"context"
)

// Next is the continuation handed to a unit. Calling it resumes downstream execution with args and
// returns what downstream returned.
type Next func(ctx context.Context, args ...any) (any, error)

// Unit is the composable element.
type Unit[S any] interface {
	Run(ctx context.Context, scope S, next Next, args ...any) (any, error)
}

// Func adapts an ordinary function to a Unit.
type Func[S any] func(ctx context.Context, scope S, next Next, args ...any) (any, error)

// Run calls f.
func (f Func[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	return f(ctx, scope, next, args...)
}

// F is Func with the scope type inferred from fn.
func F[S any](fn func(ctx context.Context, scope S, next Next, args ...any) (any, error)) Unit[S] {
	return Func[S](fn)
}

// Noop is a continuation that does nothing.
func Noop(context.Context, ...any) (any, error) {
	return nil, nil
}

// Thunk builds a continuation that takes no arguments: whatever it is called with is dropped.
func Thunk(fn func(ctx context.Context) (any, error)) Next {
	return func(ctx context.Context, _ ...any) (any, error) {
		return fn(ctx)
	}
}

// Terminal lifts u into a continuation bound to scope. u runs with Noop as its own next, so it ends
// the chain it is appended to.
func Terminal[S any](scope S, u Unit[S]) Next {
	return func(ctx context.Context, args ...any) (any, error) {
		return run(ctx, u, scope, Noop, args...)
	}
}

// run treats a nil unit as one that returns without calling next.
func run[S any](ctx context.Context, u Unit[S], scope S, next Next, args ...any) (any, error) {
	if u == nil {
		return nil, nil
	}

	return u.Run(ctx, scope, next, args...)
}

// resume calls next unless there is none.
func resume(ctx context.Context, next Next, args ...any) (any, error) {
	if next == nil {
		return nil, nil
	}

	return next(ctx, args...)
}
