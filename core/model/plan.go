package model

// StopReason identifies which budget forced a stop.
type StopReason int

const (
	// ReasonEnergy marks a stop where usable battery capacity would run out.
	ReasonEnergy StopReason = iota
	// ReasonBreak4h5 marks the mandatory break after 4.5 h of driving.
	ReasonBreak4h5
	// ReasonBreak6h marks the mandatory break after 6 h of continuous driving.
	ReasonBreak6h
	// ReasonDayLimit marks the 9 h per-day driving limit. It maps to a long
	// rest and terminates stop planning for the route.
	ReasonDayLimit
)

// String returns a human-readable representation of the reason.
func (r StopReason) String() string {
	switch r {
	case ReasonEnergy:
		return "energy"
	case ReasonBreak4h5:
		return "break_4h30"
	case ReasonBreak6h:
		return "break_6h"
	case ReasonDayLimit:
		return "day_limit"
	default:
		return "unknown"
	}
}

// PlannedStop is one staging point chosen during the threshold scan.
type PlannedStop struct {
	Segment RouteSegment
	Count   int // segments traversed in the leg up to and including Segment
	Reason  StopReason
}

// ActivityType distinguishes charging stops from long rests.
type ActivityType int

const (
	ActivityCharging ActivityType = iota
	ActivityResting
)

func (t ActivityType) String() string {
	if t == ActivityResting {
		return "resting"
	}
	return "charging"
}

// Leg is a drive between two staging points.
type Leg struct {
	Mode          string
	Segments      []RouteSegment
	DepartureTime float64 // s
	TravelTime    float64 // s
}

// ArrivalTime returns the time the leg completes.
func (l Leg) ArrivalTime() float64 { return l.DepartureTime + l.TravelTime }

func (Leg) planElement() {}

// Activity is a charge or rest inserted between legs.
type Activity struct {
	Type       ActivityType
	Reason     StopReason // budget that forced the stop
	LocationID string     // charger or segment identifier
	Coord      Coord
	StartTime  float64 // s
	Duration   float64 // s, maximum duration of the activity
}

// EndTime returns the time the activity completes.
func (a Activity) EndTime() float64 { return a.StartTime + a.Duration }

func (Activity) planElement() {}

// PlanElement is either a Leg or an Activity.
type PlanElement interface{ planElement() }

// StagedPlan is the final interleaved leg/activity sequence for one trip.
type StagedPlan struct {
	PersonID      string
	VehicleID     string
	Elements      []PlanElement
	DepartureTime float64
	ArrivalTime   float64
}

// Staged reports whether any stop was inserted; false means the plan is the
// unmodified baseline route.
func (p StagedPlan) Staged() bool { return len(p.Elements) > 1 }

// Activities returns the inserted stop activities in order.
func (p StagedPlan) Activities() []Activity {
	var acts []Activity
	for _, e := range p.Elements {
		if a, ok := e.(Activity); ok {
			acts = append(acts, a)
		}
	}
	return acts
}

// Legs returns the drive legs in order.
func (p StagedPlan) Legs() []Leg {
	var legs []Leg
	for _, e := range p.Elements {
		if l, ok := e.(Leg); ok {
			legs = append(legs, l)
		}
	}
	return legs
}
