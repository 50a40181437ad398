// Package scan implements the threshold scanner: a pure pass over the
// per-segment energy and travel-time series that finds the earliest segment
// where a budget is exhausted.
package scan

import "github.com/betsim/betroute/core/model"

// Budgets configures one leg scan. Energy is always enforced; a zero time
// budget disables the corresponding check.
type Budgets struct {
	Energy     float64          // J consumable before a charge is mandatory
	TripTime   float64          // s of continuous driving allowed in this leg
	TripReason model.StopReason // reason reported when TripTime triggers
	DayTime    float64          // s of driving allowed since route departure
}

// Trigger reports the first segment at which a budget was reached.
type Trigger struct {
	Index  int // segment index in the full route
	Count  int // segments scanned in this leg, including the trigger segment
	Reason model.StopReason
}

// Scan walks the series from start (inclusive, the segment of the previous
// stop) and returns the first trigger, if any. Energy and time are scanned
// independently over the remaining route; the candidate with the smaller
// segment count wins, ties favoring the earlier-registered reason (energy
// before time, trip limit before day limit). The day accumulator counts
// travel time from the beginning of the route and never resets.
func Scan(energy, travelTime []float64, start int, b Budgets) (Trigger, bool) {
	var candidates []Trigger

	consumed := 0.0
	for i, n := start, 0; i < len(energy); i++ {
		consumed += energy[i]
		n++
		if consumed >= b.Energy {
			candidates = append(candidates, Trigger{Index: i, Count: n, Reason: model.ReasonEnergy})
			break
		}
	}

	if b.TripTime > 0 || b.DayTime > 0 {
		dayTime := 0.0
		for i := 0; i < start; i++ {
			dayTime += travelTime[i]
		}
		tripTime := 0.0
		for i, n := start, 0; i < len(travelTime); i++ {
			tripTime += travelTime[i]
			dayTime += travelTime[i]
			n++
			if b.TripTime > 0 && tripTime >= b.TripTime {
				candidates = append(candidates, Trigger{Index: i, Count: n, Reason: b.TripReason})
				break
			}
			if b.DayTime > 0 && dayTime >= b.DayTime {
				candidates = append(candidates, Trigger{Index: i, Count: n, Reason: model.ReasonDayLimit})
				break
			}
		}
	}

	if len(candidates) == 0 {
		return Trigger{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Count < best.Count {
			best = c
		}
	}
	return best, true
}
