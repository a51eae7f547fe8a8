package siblings

import (
	"sync/atomic"
	"time"

	"github.com/wys-platform/project-service/internal/projects/domain"
)

type kindCounters struct {
	calls          atomic.Int64
	found          atomic.Int64
	notFound       atomic.Int64
	upstreamErrors atomic.Int64
	latencyNs      atomic.Int64
}

// Metrics tracks sibling call counters per kind.
type Metrics struct {
	kinds map[domain.Kind]*kindCounters
}

// KindStats is a point-in-time copy of one kind's counters.
type KindStats struct {
	Calls            int64   `json:"calls"`
	Found            int64   `json:"found"`
	NotFound         int64   `json:"not_found"`
	UpstreamErrors   int64   `json:"upstream_errors"`
	AverageLatencyMs float64 `json:"avg_latency_ms"`
}

func NewMetrics() *Metrics {
	m := &Metrics{kinds: make(map[domain.Kind]*kindCounters, len(domain.Kinds))}
	for _, k := range domain.Kinds {
		m.kinds[k] = &kindCounters{}
	}
	return m
}

func (m *Metrics) record(kind domain.Kind, status Status, d time.Duration) {
	c, ok := m.kinds[kind]
	if !ok {
		return
	}
	c.calls.Add(1)
	c.latencyNs.Add(d.Nanoseconds())
	switch status {
	case StatusFound:
		c.found.Add(1)
	case StatusUpstreamError:
		c.upstreamErrors.Add(1)
	default:
		c.notFound.Add(1)
	}
}

// Snapshot returns the counters keyed by kind name.
func (m *Metrics) Snapshot() map[string]KindStats {
	out := make(map[string]KindStats, len(m.kinds))
	for kind, c := range m.kinds {
		s := KindStats{
			Calls:          c.calls.Load(),
			Found:          c.found.Load(),
			NotFound:       c.notFound.Load(),
			UpstreamErrors: c.upstreamErrors.Load(),
		}
		if s.Calls > 0 {
			s.AverageLatencyMs = float64(c.latencyNs.Load()) / float64(s.Calls) / 1e6
		}
		out[string(kind)] = s
	}
	return out
}
