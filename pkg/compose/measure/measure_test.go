package measure_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-compose/pkg/compose/measure"
	"github.com/askiada/go-compose/pkg/compose/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		runs      []time.Duration
		outcomes  []model.Outcome
		expAvg    time.Duration
		expTotal  time.Duration
		expPassed int64
	}{
		"no run": {},
		"single run": {
			runs:      []time.Duration{2 * time.Millisecond},
			outcomes:  []model.Outcome{model.Passed},
			expAvg:    2 * time.Millisecond,
			expTotal:  2 * time.Millisecond,
			expPassed: 1,
		},
		"mixed outcomes": {
			runs:      []time.Duration{time.Second, 3 * time.Second},
			outcomes:  []model.Outcome{model.Passed, model.Stopped},
			expAvg:    2 * time.Second,
			expTotal:  4 * time.Second,
			expPassed: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			msr := measure.NewDefaultMeasure()
			mt := msr.AddMetric("unit")

			for i, elapsed := range tc.runs {
				mt.AddRun(tc.outcomes[i], elapsed)
			}

			assert.Equal(t, int64(len(tc.runs)), mt.Runs())
			assert.Equal(t, tc.expAvg, mt.AVGDuration())
			assert.Equal(t, tc.expTotal, mt.TotalDuration())
			assert.Equal(t, tc.expPassed, mt.Count(model.Passed))
			assert.Same(t, mt, msr.GetMetric("unit"))
		})
	}
}

func TestObserverConcurrentRuns(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	obs := measure.Observer(msr)
	info := model.UnitInfo{Name: "check", Kind: model.FuncKind}

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			runCtx := obs.OnUnitStart(ctx, info)
			outcome := model.Passed
			if i%2 == 0 {
				outcome = model.Stopped
			}
			obs.OnUnitDone(runCtx, info, model.Report{Outcome: outcome, Elapsed: time.Millisecond})
			return nil
		})
	}

	require.NoError(t, g.Wait())

	mt := msr.GetMetric("check")
	require.NotNil(t, mt)
	assert.Equal(t, int64(50), mt.Runs())
	assert.Equal(t, int64(25), mt.Count(model.Passed))
	assert.Equal(t, int64(25), mt.Count(model.Stopped))
	assert.Zero(t, mt.Count(model.Failed))
	assert.Len(t, msr.AllMetrics(), 1)
	assert.Nil(t, msr.GetMetric("missing"))
}
