// Package metrics provides the concrete metrics sinks: Prometheus, InfluxDB
// and a fan-out multi sink, plus the event-bus collector feeding them.
package metrics

import (
	coremetrics "github.com/betsim/betroute/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records staging results in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	stops    *prometheus.CounterVec
	legs     prometheus.Histogram
	fleet    prometheus.Gauge
}

// NewPromSink registers staging metrics on the default Prometheus
// registerer. The scrape endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "staging_requests_total",
		Help: "Total number of staging requests by outcome",
	}, []string{"outcome"})
	stops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planned_stops_total",
		Help: "Total number of planned stops by reason",
	}, []string{"reason"})
	legs := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "staged_plan_legs",
		Help:    "Number of drive legs per staged plan",
		Buckets: []float64{1, 2, 3, 4, 5},
	})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_vehicles_total",
		Help: "Number of vehicles in the fleet specification",
	})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stops); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stops = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(legs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			legs = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fleet); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fleet = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, stops: stops, legs: legs, fleet: fleet}, nil
}

// RecordStaging increments the request counter and, for staged plans, the
// per-reason stop counters and the leg histogram.
func (s *PromSink) RecordStaging(res coremetrics.StagingResult) error {
	s.requests.WithLabelValues(string(res.Outcome)).Inc()
	for _, r := range res.StopReasons {
		s.stops.WithLabelValues(r.String()).Inc()
	}
	if res.Outcome == coremetrics.OutcomeStaged {
		s.legs.Observe(float64(res.Legs))
	}
	return nil
}

// RecordFleetSize sets the fleet gauge.
func (s *PromSink) RecordFleetSize(size int) error {
	s.fleet.Set(float64(size))
	return nil
}
