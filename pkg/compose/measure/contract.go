package measure

import (
	"time"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Measure collects one Metric per observed unit name.
type Measure interface {
	// AddMetric returns the metric of name, creating it if needed.
	AddMetric(name string) Metric
	// GetMetric returns the metric of name, or nil.
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the runs of one unit.
type Metric interface {
	AddRun(outcome model.Outcome, elapsed time.Duration)
	Runs() int64
	Count(outcome model.Outcome) int64
	AVGDuration() time.Duration
	TotalDuration() time.Duration
}
