// Package router defines the delegate point-to-point router contract and a
// simple freespeed implementation for scenarios and tests.
package router

import (
	"errors"
	"fmt"
	"math"

	"github.com/betsim/betroute/core/model"
)

// ErrNoRoute indicates the delegate could not produce a leg.
var ErrNoRoute = errors.New("router: no route")

// Router is the delegate point-to-point router. Implementations must be
// synchronous and deterministic for a given network state.
type Router interface {
	Route(from, to model.Coord, departureTime float64, personID string) (model.Leg, error)
}

// FreespeedRouter produces a direct leg between two coordinates, split into
// fixed-length segments traversed at a constant freespeed. It stands in for
// a full network router in scenarios and tests.
type FreespeedRouter struct {
	Mode          string
	SegmentLength float64 // m
	Freespeed     float64 // m/s
}

// Route implements Router.
func (r FreespeedRouter) Route(from, to model.Coord, departureTime float64, personID string) (model.Leg, error) {
	if r.SegmentLength <= 0 || r.Freespeed <= 0 {
		return model.Leg{}, fmt.Errorf("%w: freespeed router misconfigured", ErrNoRoute)
	}
	dist := from.DistanceTo(to)
	if dist == 0 {
		return model.Leg{Mode: r.Mode, DepartureTime: departureTime}, nil
	}
	n := int(math.Ceil(dist / r.SegmentLength))
	if n < 1 {
		n = 1
	}
	segs := make([]model.RouteSegment, n)
	travelTime := 0.0
	for i := 0; i < n; i++ {
		length := r.SegmentLength
		if i == n-1 {
			length = dist - float64(n-1)*r.SegmentLength
			if length <= 0 {
				length = r.SegmentLength
			}
		}
		frac := (float64(i) + 0.5) / float64(n)
		segs[i] = model.RouteSegment{
			ID:        fmt.Sprintf("%s:%d", personID, i),
			Length:    length,
			Freespeed: r.Freespeed,
			Coord: model.Coord{
				X: from.X + (to.X-from.X)*frac,
				Y: from.Y + (to.Y-from.Y)*frac,
			},
		}
		travelTime += length / r.Freespeed
	}
	return model.Leg{
		Mode:          r.Mode,
		Segments:      segs,
		DepartureTime: departureTime,
		TravelTime:    travelTime,
	}, nil
}
