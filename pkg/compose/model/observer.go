package model

import (
	"context"

	"github.com/google/uuid"
)

// Observer defines the hooks called around every run of an observed unit.
//
// Implementations must not block: they run inline with the composition.
type Observer interface {
	// OnUnitStart runs before the unit. The returned context is handed to the unit and to OnUnitDone.
	OnUnitStart(ctx context.Context, info UnitInfo) context.Context
	// OnUnitDone runs after the unit returned.
	OnUnitDone(ctx context.Context, info UnitInfo, report Report)
}

// NoopObserver does nothing.
type NoopObserver struct{}

func (NoopObserver) OnUnitStart(ctx context.Context, _ UnitInfo) context.Context { return ctx }
func (NoopObserver) OnUnitDone(context.Context, UnitInfo, Report)                {}

type compositeObserver struct {
	observers []Observer
}

// NewCompositeObserver fans out to every non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}

	switch len(filtered) {
	case 0:
		return NoopObserver{}
	case 1:
		return filtered[0]
	}

	return &compositeObserver{observers: filtered}
}

func (c *compositeObserver) OnUnitStart(ctx context.Context, info UnitInfo) context.Context {
	for _, o := range c.observers {
		ctx = o.OnUnitStart(ctx, info)
	}

	return ctx
}

// OnUnitDone notifies in reverse order so that observers nest like the units they watch.
func (c *compositeObserver) OnUnitDone(ctx context.Context, info UnitInfo, report Report) {
	for i := len(c.observers) - 1; i >= 0; i-- {
		c.observers[i].OnUnitDone(ctx, info, report)
	}
}

type runIDKey struct{}

// WithRunID stores the id of the top-level invocation in ctx.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom returns the invocation id stored in ctx, if any.
func RunIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey{}).(uuid.UUID)
	return id, ok
}
