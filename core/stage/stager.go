// Package stage implements the route-staging orchestrator: it augments a
// baseline route with charging stops and regulatory rest breaks and
// recomputes arrival times.
package stage

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/betsim/betroute/core/charger"
	"github.com/betsim/betroute/core/consumption"
	"github.com/betsim/betroute/core/fleet"
	"github.com/betsim/betroute/core/logger"
	"github.com/betsim/betroute/core/model"
	"github.com/betsim/betroute/core/profile"
	"github.com/betsim/betroute/core/router"
	"github.com/betsim/betroute/core/scan"
)

// Regulatory driving limits and fixed staging parameters.
const (
	MinSoC                   = 0.2        // default SoC floor; profiles may carry their own
	MaxDriveTimeWithoutBreak = 4.5 * 3600 // s, before the first break
	MaxDriveTimePerTrip      = 6 * 3600   // s, continuous driving per leg
	MaxDriveTimePerDay       = 9 * 3600   // s, accumulated per day
	BreakDuration            = 45 * 60    // s, one charge stop
	RestDuration             = 11 * 3600  // s, overnight rest
	ChargerPower             = 640e3      // W, nominal charge rating
	MaxStops                 = 3
)

// ErrEmptyRoute indicates the delegate produced a route without segments.
var ErrEmptyRoute = errors.New("stage: empty route")

// Stager plans charging and rest stops along baseline routes. It only reads
// request-scoped inputs and the shared read-only directories, so one Stager
// serves concurrent requests; the random source for charger draws is passed
// per request.
type Stager struct {
	delegate router.Router
	fleet    *fleet.Directory
	chargers *charger.Directory
	profiler profile.Profiler
	nearest  int
	log      logger.Logger
}

// NewStager creates a stager. nearest controls how many nearest chargers a
// stop draws from; zero uses the default of two.
func NewStager(delegate router.Router, fleetDir *fleet.Directory, chargerDir *charger.Directory,
	drive consumption.DriveEnergy, aux consumption.AuxEnergy, nearest int, log logger.Logger) (*Stager, error) {
	if delegate == nil || fleetDir == nil || chargerDir == nil {
		return nil, fmt.Errorf("stage: nil parameter provided to NewStager")
	}
	if drive == nil || aux == nil {
		return nil, profile.ErrNoModel
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Stager{
		delegate: delegate,
		fleet:    fleetDir,
		chargers: chargerDir,
		profiler: profile.Profiler{Drive: drive, Aux: aux},
		nearest:  nearest,
		log:      log,
	}, nil
}

// StageRoute computes the staged plan for one trip. Trips of persons without
// a registered electric vehicle, and routes that exhaust no budget, return
// the baseline route unchanged. Any configuration error (no compatible
// charger, malformed route) aborts the single request.
func (s *Stager) StageRoute(trip model.Trip, rng *rand.Rand) (model.StagedPlan, error) {
	baseline, err := s.delegate.Route(trip.From, trip.To, trip.DepartureTime, trip.PersonID)
	if err != nil {
		return model.StagedPlan{}, fmt.Errorf("stage: baseline route: %w", err)
	}
	if len(baseline.Segments) == 0 {
		return model.StagedPlan{}, ErrEmptyRoute
	}

	vid := fleet.VehicleID(trip.PersonID, trip.Mode)
	ev, ok := s.fleet.Vehicle(vid)
	if !ok {
		s.log.Debugf("person %s has no electric vehicle for mode %s", trip.PersonID, trip.Mode)
		return baselinePlan(trip, vid, baseline), nil
	}

	est, err := s.profiler.Estimate(baseline.Segments, trip.DepartureTime)
	if err != nil {
		return model.StagedPlan{}, err
	}

	stops := planStops(ev, est)
	if len(stops) == 0 {
		s.log.Debugw("no stop needed", map[string]any{
			"person": trip.PersonID,
			"energy": est.TotalEnergy(),
			"time":   est.TotalTime(),
		})
		return baselinePlan(trip, vid, baseline), nil
	}

	return s.assemble(trip, vid, ev, stops, rng)
}

func baselinePlan(trip model.Trip, vehicleID string, leg model.Leg) model.StagedPlan {
	return model.StagedPlan{
		PersonID:      trip.PersonID,
		VehicleID:     vehicleID,
		Elements:      []model.PlanElement{leg},
		DepartureTime: trip.DepartureTime,
		ArrivalTime:   leg.ArrivalTime(),
	}
}

// planStops runs the threshold scan over successive legs. The first leg is
// bounded by usable capacity and the 4.5 h no-break limit; later legs by the
// post-charge capacity, the 6 h continuous limit and the 9 h day limit. A
// day-limit stop terminates planning: the horizon is a single driving day
// and the budget does not reset after the overnight rest.
func planStops(ev model.VehicleEnergyProfile, est *profile.Estimate) []model.PlannedStop {
	floor := ev.MinSoC * ev.BatteryCapacity
	usable := ev.UsableCapacity()
	base := ev.InitialCharge()
	start := 0
	var stops []model.PlannedStop
	for len(stops) < MaxStops {
		budgets := scan.Budgets{Energy: usable}
		if len(stops) == 0 {
			budgets.TripTime = MaxDriveTimeWithoutBreak
			budgets.TripReason = model.ReasonBreak4h5
		} else {
			budgets.TripTime = MaxDriveTimePerTrip
			budgets.TripReason = model.ReasonBreak6h
			budgets.DayTime = MaxDriveTimePerDay
		}
		trig, ok := scan.Scan(est.Energy, est.TravelTime, start, budgets)
		if !ok {
			break
		}
		stops = append(stops, model.PlannedStop{
			Segment: est.Segments[trig.Index],
			Count:   trig.Count,
			Reason:  trig.Reason,
		})
		if trig.Reason == model.ReasonDayLimit {
			break
		}
		// Recovery during the charge: the battery gains 45 min at nominal
		// charger power but never exceeds capacity, and the profile's
		// MinSoC floor stays reserved.
		consumed := floats.Sum(est.Energy[start : trig.Index+1])
		usable = math.Min(base-consumed+BreakDuration*ChargerPower, ev.BatteryCapacity) - floor
		base = usable
		start = trig.Index
	}
	return stops
}

// assemble selects a charger per stop and interleaves delegate-routed legs
// with charge or rest activities, advancing the arrival clock.
func (s *Stager) assemble(trip model.Trip, vehicleID string, ev model.VehicleEnergyProfile,
	stops []model.PlannedStop, rng *rand.Rand) (model.StagedPlan, error) {
	selector := charger.NewSelector(s.chargers, s.nearest, rng)

	var elements []model.PlanElement
	lastFrom := trip.From
	arrival := trip.DepartureTime
	for _, stop := range stops {
		ch, err := selector.Select(stop.Segment.Coord, ev.ChargerTypes)
		if err != nil {
			return model.StagedPlan{}, fmt.Errorf("stage: stop at %s (%s): %w", stop.Segment.ID, stop.Reason, err)
		}
		if ch.Coord != lastFrom {
			leg, err := s.delegate.Route(lastFrom, ch.Coord, arrival, trip.PersonID)
			if err != nil {
				return model.StagedPlan{}, fmt.Errorf("stage: detour to charger %s: %w", ch.ID, err)
			}
			arrival = leg.ArrivalTime()
			elements = append(elements, leg)
		}
		act := model.Activity{
			Type:       model.ActivityCharging,
			Reason:     stop.Reason,
			LocationID: ch.ID,
			Coord:      ch.Coord,
			StartTime:  arrival,
			Duration:   BreakDuration,
		}
		if stop.Reason == model.ReasonDayLimit {
			act.Type = model.ActivityResting
			act.LocationID = stop.Segment.ID
			act.Duration = RestDuration
		}
		arrival = act.EndTime()
		elements = append(elements, act)
		lastFrom = ch.Coord
	}

	final, err := s.delegate.Route(lastFrom, trip.To, arrival, trip.PersonID)
	if err != nil {
		return model.StagedPlan{}, fmt.Errorf("stage: final leg: %w", err)
	}
	elements = append(elements, final)
	return model.StagedPlan{
		PersonID:      trip.PersonID,
		VehicleID:     vehicleID,
		Elements:      elements,
		DepartureTime: trip.DepartureTime,
		ArrivalTime:   final.ArrivalTime(),
	}, nil
}
