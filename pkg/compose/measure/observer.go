package measure

import (
	"context"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type unitMeasure struct {
	model.NoopObserver
	m Measure
}

func (um *unitMeasure) OnUnitDone(_ context.Context, info model.UnitInfo, report model.Report) {
	um.m.AddMetric(info.Name).AddRun(report.Outcome, report.Elapsed)
}

// Observer records every reported run into m.
func Observer(m Measure) model.Observer {
	return &unitMeasure{m: m}
}
