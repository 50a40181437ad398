// Package consumption defines the pluggable energy-model strategies used to
// estimate per-segment battery drain during route staging. Strategies must be
// pure functions of their arguments so estimates are reproducible across
// concurrent requests.
package consumption

import "github.com/betsim/betroute/core/model"

// DriveEnergy estimates traction energy for one segment traversal.
type DriveEnergy interface {
	// Consumption returns the energy in Joules drawn while traversing seg.
	// enterTime is the running sum of travel times of prior segments.
	Consumption(seg model.RouteSegment, travelTime, enterTime float64) float64
}

// AuxEnergy estimates auxiliary (non-traction) energy for one traversal.
type AuxEnergy interface {
	// Consumption returns the auxiliary energy in Joules for the traversal of
	// the identified segment.
	Consumption(departureTime, travelTime float64, segmentID string) float64
}
