package compose

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// observed wraps a unit with a name and reports each of its runs.
type observed[S any] struct {
	info     model.UnitInfo
	unit     Unit[S]
	observer model.Observer
}

// Observe names u and reports every run of it to observers. The outcome is Passed when u called its
// continuation, Stopped when it returned without, and Failed when it returned an error. Results and
// errors are passed through untouched.
func Observe[S any](name string, u Unit[S], observers ...model.Observer) Unit[S] {
	return &observed[S]{
		info:     model.UnitInfo{Name: name, Kind: kindOf(u)},
		unit:     u,
		observer: model.NewCompositeObserver(observers...),
	}
}

func (o *observed[S]) Run(ctx context.Context, scope S, next Next, args ...any) (any, error) {
	ctx = o.observer.OnUnitStart(ctx, o.info)
	start := time.Now()

	gt := &gate{}
	ret, err := run(ctx, o.unit, scope, gt.selector(func(ctx context.Context, fwd ...any) (any, error) {
		return resume(ctx, next, fwd...)
	}), args...)

	report := model.Report{Elapsed: time.Since(start), Err: err}

	switch {
	case err != nil:
		report.Outcome = model.Failed
	case gt.settle():
		report.Outcome = model.Passed
	default:
		report.Outcome = model.Stopped
	}

	o.observer.OnUnitDone(ctx, o.info, report)

	return ret, err
}

// Invoke runs u as the root of an invocation. ctx gets a fresh run id unless it already carries one.
func Invoke[S any](ctx context.Context, u Unit[S], scope S, next Next, args ...any) (any, error) {
	if _, ok := model.RunIDFrom(ctx); !ok {
		ctx = model.WithRunID(ctx, uuid.New())
	}

	return run(ctx, u, scope, next, args...)
}
