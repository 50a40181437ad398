package metrics

import (
	"errors"

	coremetrics "github.com/betsim/betroute/core/metrics"
)

// MultiSink fans records out to several sinks, collecting all errors.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink wraps the given sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordStaging forwards the record to every sink.
func (m *MultiSink) RecordStaging(res coremetrics.StagingResult) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordStaging(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordFleetSize forwards the size to every sink that tracks it.
func (m *MultiSink) RecordFleetSize(size int) error {
	var errs []error
	for _, s := range m.sinks {
		if r, ok := s.(coremetrics.FleetSizeRecorder); ok {
			if err := r.RecordFleetSize(size); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
