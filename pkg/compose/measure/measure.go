package measure

import (
	"maps"
	"sync"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type DefaultMeasure struct {
	mu    sync.RWMutex
	units map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		units: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.units[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		outcomes: make(map[model.Outcome]int64),
	}
	m.units[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.units[name]
}

// AllMetrics returns a copy of the metrics keyed by unit name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.units)
}

var _ Measure = (*DefaultMeasure)(nil)
