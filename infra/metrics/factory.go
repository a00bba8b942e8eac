package metrics

import (
	"fmt"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
)

// NewSink builds the plan sink described by cfg: a NopSink when nothing is
// enabled, the single enabled sink, or a MultiSink over all of them.
func NewSink(cfg coremetrics.Config) (coremetrics.PlanSink, error) {
	var sinks []coremetrics.PlanSink
	if cfg.PrometheusEnabled {
		sink, err := NewPromSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
