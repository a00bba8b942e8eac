package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
)

// PromSink records production plans in Prometheus metrics.
type PromSink struct {
	plans      *prometheus.CounterVec
	setpoints  *prometheus.GaugeVec
	cost       prometheus.Gauge
	rejections *prometheus.CounterVec
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "production_plans_total",
		Help: "Total number of production plans recorded",
	}, []string{"balanced"})
	setpoints := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "plant_setpoint_mw",
		Help: "Power dispatched to each plant in the last plan",
	}, []string{"plant", "category"})
	cost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "production_plan_hourly_cost",
		Help: "Hourly cost of the last plan",
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "production_plan_rejections_total",
		Help: "Requests that could not be planned",
	}, []string{"reason"})

	var err error
	if plans, err = register(reg, plans); err != nil {
		return nil, err
	}
	if setpoints, err = register(reg, setpoints); err != nil {
		return nil, err
	}
	if cost, err = register(reg, cost); err != nil {
		return nil, err
	}
	if rejections, err = register(reg, rejections); err != nil {
		return nil, err
	}
	return &PromSink{plans: plans, setpoints: setpoints, cost: cost, rejections: rejections}, nil
}

// register returns the already registered collector when c was registered
// before, so that several sinks can share the default registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan updates the plan counter and the per-plant setpoints.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.WithLabelValues(strconv.FormatBool(ev.Balanced)).Inc()
	s.cost.Set(ev.HourlyCost)
	for _, e := range ev.Entries {
		s.setpoints.WithLabelValues(e.Name, e.Category.String()).Set(float64(e.Power) / 10)
	}
	return nil
}

// RecordRejection counts rejected requests by reason.
func (s *PromSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	s.rejections.WithLabelValues(ev.Reason).Inc()
	return nil
}
