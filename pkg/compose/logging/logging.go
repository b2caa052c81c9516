// Package logging reports observed unit runs to a zap logger.
package logging

import (
	"context"

	"go.uber.org/zap"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type observer struct {
	logger *zap.Logger
}

// NewObserver logs the start and completion of every observed run at debug level, and failures at
// error level. A nil logger means the global zap logger.
func NewObserver(logger *zap.Logger) model.Observer {
	if logger == nil {
		logger = zap.L()
	}

	return &observer{logger: logger}
}

func (o *observer) OnUnitStart(ctx context.Context, info model.UnitInfo) context.Context {
	o.logger.Debug("Starting unit", fields(ctx, info)...)

	return ctx
}

func (o *observer) OnUnitDone(ctx context.Context, info model.UnitInfo, report model.Report) {
	fs := append(fields(ctx, info),
		zap.String("outcome", string(report.Outcome)),
		zap.Duration("duration", report.Elapsed))

	if report.Err != nil {
		o.logger.Error("Unit failed", append(fs, zap.Error(report.Err))...)
		return
	}

	o.logger.Debug("Unit completed", fs...)
}

func fields(ctx context.Context, info model.UnitInfo) []zap.Field {
	fs := []zap.Field{
		zap.String("unit", info.Name),
		zap.String("kind", string(info.Kind)),
	}

	if id, ok := model.RunIDFrom(ctx); ok {
		fs = append(fs, zap.Stringer("run_id", id))
	}

	return fs
}
