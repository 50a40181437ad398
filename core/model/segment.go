package model

import "math"

// Coord is a planar network coordinate in meters.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the straight-line distance to o in meters.
func (c Coord) DistanceTo(o Coord) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// RouteSegment is one traversed unit of the road network. Segments are
// immutable and supplied by the delegate router in travel order.
type RouteSegment struct {
	ID        string
	Length    float64 // m
	Freespeed float64 // m/s
	Coord     Coord
}
