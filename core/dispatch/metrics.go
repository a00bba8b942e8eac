package dispatch

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	planLatency      *prometheus.HistogramVec
	plansComputed    *prometheus.CounterVec
	plantsDispatched *prometheus.CounterVec
	regimePower      *prometheus.GaugeVec
	planImbalance    prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.GaugeVec, prometheus.Gauge) {
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plan_compute_latency_seconds",
			Help:    "Time spent ranking plants and assembling a production plan",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"balanced"},
	)
	plans := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plans_computed_total",
			Help: "Number of production plans computed",
		},
		[]string{"balanced"},
	)
	plants := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plants_dispatched_total",
			Help: "Number of plants given a non-zero setpoint",
		},
		[]string{"category"},
	)
	regime := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "regime_dispatched_power",
			Help: "Power dispatched by each regime in the last plan (0.1 MW)",
		},
		[]string{"category"},
	)
	imbalance := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plan_imbalance_power",
			Help: "Requested minus dispatched power of the last plan (0.1 MW)",
		},
	)
	return lat, plans, plants, regime, imbalance
}

func init() {
	planLatency, plansComputed, plantsDispatched, regimePower, planImbalance = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(planLatency, plansComputed, plantsDispatched, regimePower, planImbalance)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	planLatency, plansComputed, plantsDispatched, regimePower, planImbalance = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

// ObservePlan records the regime results of a plan for the requested load
// in MW and the time it took to compute.
func ObservePlan(results []RegimeResult, load int, elapsed time.Duration) {
	dispatched := 0
	for _, res := range results {
		dispatched += res.Dispatched
		if res.Category == "" {
			continue
		}
		regimePower.WithLabelValues(res.Category.String()).Set(float64(res.Dispatched))
		for _, p := range res.Plants {
			if p.DispatchedPower > 0 {
				plantsDispatched.WithLabelValues(res.Category.String()).Inc()
			}
		}
	}
	imbalance := load*PowerScale - dispatched
	balanced := strconv.FormatBool(imbalance == 0)
	planImbalance.Set(float64(imbalance))
	plansComputed.WithLabelValues(balanced).Inc()
	planLatency.WithLabelValues(balanced).Observe(elapsed.Seconds())
}
