package measure

import (
	"sync"
	"time"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type DefaultMetric struct {
	mu       sync.Mutex
	outcomes map[model.Outcome]int64
	elapsed  time.Duration
	total    int64
}

func (mt *DefaultMetric) AddRun(outcome model.Outcome, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.elapsed += elapsed
	mt.outcomes[outcome]++
}

func (mt *DefaultMetric) Runs() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) Count(outcome model.Outcome) int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.outcomes[outcome]
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.elapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) TotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.elapsed)
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
