// Package simulator generates synthetic corridor scenarios for load tests
// and demos: a fleet of trucks departing from one end of a corridor, chargers
// spread along it and long-haul trips of varying length.
package simulator

import (
	"fmt"
	"math/rand"

	"github.com/betsim/betroute/core/fleet"
	"github.com/betsim/betroute/scenario"
)

// Config holds parameters for bulk scenario generation.
type Config struct {
	Trips        int
	EVShare      float64 // share of trips driven by an electric vehicle
	CorridorKm   float64
	Chargers     int
	ChargerTypes []string
	ChargerKW    float64
	CapacityKWh  float64
	Mode         string
	Seed         int64
}

// SetDefaults fills unset fields with corridor defaults.
func (c *Config) SetDefaults() {
	if c.Trips <= 0 {
		c.Trips = 10
	}
	if c.EVShare <= 0 || c.EVShare > 1 {
		c.EVShare = 1
	}
	if c.CorridorKm <= 0 {
		c.CorridorKm = 600
	}
	if c.Chargers <= 0 {
		c.Chargers = 8
	}
	if len(c.ChargerTypes) == 0 {
		c.ChargerTypes = []string{"mcs"}
	}
	if c.ChargerKW <= 0 {
		c.ChargerKW = 640
	}
	if c.CapacityKWh <= 0 {
		c.CapacityKWh = 300
	}
	if c.Mode == "" {
		c.Mode = "truck"
	}
}

// Generate creates a scenario with Trips trips along a straight west-east
// corridor. Person IDs are per0001..perNNNN; electric vehicles follow the
// personID_mode naming the fleet directory resolves during staging.
func Generate(cfg Config) *scenario.Scenario {
	cfg.SetDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	corridorM := cfg.CorridorKm * 1e3

	s := &scenario.Scenario{}
	spacing := corridorM / float64(cfg.Chargers+1)
	for i := 0; i < cfg.Chargers; i++ {
		jitter := (rng.Float64() - 0.5) * spacing / 4
		s.Chargers = append(s.Chargers, scenario.ChargerSpec{
			ID:      fmt.Sprintf("chg%04d", i+1),
			Type:    cfg.ChargerTypes[i%len(cfg.ChargerTypes)],
			PowerKW: cfg.ChargerKW,
			X:       spacing*float64(i+1) + jitter,
		})
	}

	for i := 0; i < cfg.Trips; i++ {
		personID := fmt.Sprintf("per%04d", i+1)
		// 30% to 100% of the corridor, departures spread over the morning
		dist := corridorM * (0.3 + 0.7*rng.Float64())
		departure := 5*3600 + rng.Float64()*4*3600
		s.Trips = append(s.Trips, scenario.TripSpec{
			PersonID:      personID,
			Mode:          cfg.Mode,
			ToX:           dist,
			DepartureTime: departure,
		})
		if rng.Float64() < cfg.EVShare {
			s.Fleet = append(s.Fleet, scenario.VehicleSpec{
				ID:           fleet.VehicleID(personID, cfg.Mode),
				CapacityKWh:  cfg.CapacityKWh * (0.9 + 0.2*rng.Float64()),
				InitialSoC:   0.8 + 0.2*rng.Float64(),
				MinSoC:       0.2,
				ChargerTypes: cfg.ChargerTypes,
			})
		}
	}
	return s
}
