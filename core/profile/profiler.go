// Package profile converts a baseline route into parallel per-segment energy
// and travel-time series, the input of the threshold scanner.
package profile

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/betsim/betroute/core/consumption"
	"github.com/betsim/betroute/core/model"
)

// MaxVehicleSpeed caps the assumed travel speed regardless of the road's
// freespeed: 18.056 m/s (65 km/h).
const MaxVehicleSpeed = 18.056

// ErrNoModel indicates a missing consumption strategy. This is a
// configuration error and fatal for the request.
var ErrNoModel = errors.New("profile: missing consumption model")

// Estimate holds the per-segment series of a route in travel order. The
// slices are parallel to Segments.
type Estimate struct {
	Segments   []model.RouteSegment
	Energy     []float64 // J per segment
	TravelTime []float64 // s per segment
}

// CumulativeEnergy returns the running sum of the energy series.
func (e *Estimate) CumulativeEnergy() []float64 {
	return floats.CumSum(make([]float64, len(e.Energy)), e.Energy)
}

// CumulativeTime returns the running sum of the travel-time series.
func (e *Estimate) CumulativeTime() []float64 {
	return floats.CumSum(make([]float64, len(e.TravelTime)), e.TravelTime)
}

// TotalEnergy returns the energy demand of the whole route in Joules.
func (e *Estimate) TotalEnergy() float64 { return floats.Sum(e.Energy) }

// TotalTime returns the travel time of the whole route in seconds.
func (e *Estimate) TotalTime() float64 { return floats.Sum(e.TravelTime) }

// Profiler estimates energy and travel time segment by segment using the
// injected strategy pair. It has no state of its own and is safe for
// concurrent use.
type Profiler struct {
	Drive consumption.DriveEnergy
	Aux   consumption.AuxEnergy
}

// Estimate profiles the given segments for a departure at departureTime.
// Travel time per segment uses the capped vehicle speed; the segment enter
// time passed to the drive model accumulates over prior segments.
func (p Profiler) Estimate(segments []model.RouteSegment, departureTime float64) (*Estimate, error) {
	if p.Drive == nil || p.Aux == nil {
		return nil, ErrNoModel
	}
	est := &Estimate{
		Segments:   segments,
		Energy:     make([]float64, len(segments)),
		TravelTime: make([]float64, len(segments)),
	}
	enterTime := departureTime
	for i, seg := range segments {
		tt := seg.Length / math.Min(MaxVehicleSpeed, seg.Freespeed)
		est.TravelTime[i] = tt
		est.Energy[i] = p.Drive.Consumption(seg, tt, enterTime) +
			p.Aux.Consumption(departureTime, tt, seg.ID)
		enterTime += tt
	}
	return est, nil
}
