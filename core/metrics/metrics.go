// Package metrics defines the sink interface staging observers implement.
// The staging core itself never records metrics; the application layer
// publishes results to the event bus and collectors forward them to sinks.
package metrics

import (
	"time"

	"github.com/betsim/betroute/core/model"
)

// Outcome classifies how a staging request ended.
type Outcome string

const (
	OutcomeStaged   Outcome = "staged"
	OutcomeBaseline Outcome = "baseline"
	OutcomeNoEV     Outcome = "no_ev"
	OutcomeError    Outcome = "error"
)

// StagingResult is the record emitted once per routing request.
type StagingResult struct {
	PlanID      string
	PersonID    string
	VehicleID   string
	Outcome     Outcome
	StopReasons []model.StopReason
	Legs        int
	ArrivalTime float64 // s
	Error       string
	Time        time.Time
}

// MetricsSink records staging observations. Implementations must be safe
// for concurrent use.
type MetricsSink interface {
	RecordStaging(StagingResult) error
}

// FleetSizeRecorder is implemented by sinks that track fleet size.
type FleetSizeRecorder interface {
	RecordFleetSize(size int) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordStaging(StagingResult) error { return nil }
func (NopSink) RecordFleetSize(int) error         { return nil }
