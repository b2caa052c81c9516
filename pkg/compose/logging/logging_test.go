package logging_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/logging"
	"github.com/askiada/go-compose/pkg/compose/model"
)

type scope = struct{}

func TestObserverLogsRuns(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tcs := map[string]struct {
		unit       compose.Unit[scope]
		expErr     error
		expLevel   zapcore.Level
		expMessage string
		expOutcome string
	}{
		"passed": {
			unit: compose.F(func(ctx context.Context, _ scope, next compose.Next, args ...any) (any, error) {
				return next(ctx, args...)
			}),
			expLevel:   zapcore.DebugLevel,
			expMessage: "Unit completed",
			expOutcome: string(model.Passed),
		},
		"stopped": {
			unit: compose.F(func(context.Context, scope, compose.Next, ...any) (any, error) {
				return "done", nil
			}),
			expLevel:   zapcore.DebugLevel,
			expMessage: "Unit completed",
			expOutcome: string(model.Stopped),
		},
		"failed": {
			unit: compose.F(func(context.Context, scope, compose.Next, ...any) (any, error) {
				return nil, errBoom
			}),
			expErr:     errBoom,
			expLevel:   zapcore.ErrorLevel,
			expMessage: "Unit failed",
			expOutcome: string(model.Failed),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			unit := compose.Observe("checker", tc.unit, logging.NewObserver(zap.New(core)))

			runID := uuid.New()
			ctx := model.WithRunID(context.Background(), runID)

			_, err := compose.Invoke(ctx, unit, scope{}, compose.Noop)
			require.ErrorIs(t, err, tc.expErr)

			entries := logs.AllUntimed()
			require.Len(t, entries, 2)
			assert.Equal(t, "Starting unit", entries[0].Message)

			done := entries[1]
			assert.Equal(t, tc.expLevel, done.Level)
			assert.Equal(t, tc.expMessage, done.Message)

			fields := done.ContextMap()
			assert.Equal(t, "checker", fields["unit"])
			assert.Equal(t, string(model.FuncKind), fields["kind"])
			assert.Equal(t, runID.String(), fields["run_id"])
			assert.Equal(t, tc.expOutcome, fields["outcome"])
			assert.Contains(t, fields, "duration")
		})
	}
}

func TestObserverDefaultsToGlobalLogger(t *testing.T) {
	t.Parallel()

	obs := logging.NewObserver(nil)
	require.NotNil(t, obs)

	ctx := obs.OnUnitStart(context.Background(), model.UnitInfo{Name: "x", Kind: model.FuncKind})
	assert.NotNil(t, ctx)
	obs.OnUnitDone(ctx, model.UnitInfo{Name: "x"}, model.Report{Outcome: model.Passed})
}
