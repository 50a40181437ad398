// Package scenario loads the fleet, charging infrastructure and trip demand
// of one staging run. Files use kWh, kW and km/h; values are converted to SI
// units when the specs are turned into model types.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/betsim/betroute/core/model"
)

// Scenario is the full input of one run.
type Scenario struct {
	Fleet    []VehicleSpec `json:"fleet"`
	Chargers []ChargerSpec `json:"chargers"`
	Trips    []TripSpec    `json:"trips"`
}

// VehicleSpec describes one electric vehicle.
type VehicleSpec struct {
	ID           string   `json:"id"`
	CapacityKWh  float64  `json:"capacity_kwh"`
	InitialSoC   float64  `json:"initial_soc"`
	MinSoC       float64  `json:"min_soc"`
	ChargerTypes []string `json:"charger_types"`
}

// Profile converts the spec to a model profile. A zero MinSoC falls back to
// the regulatory floor of 0.2.
func (v VehicleSpec) Profile() model.VehicleEnergyProfile {
	minSoC := v.MinSoC
	if minSoC == 0 {
		minSoC = 0.2
	}
	return model.VehicleEnergyProfile{
		ID:              v.ID,
		BatteryCapacity: v.CapacityKWh * 3.6e6,
		InitialSoC:      v.InitialSoC,
		MinSoC:          minSoC,
		ChargerTypes:    v.ChargerTypes,
	}
}

// ChargerSpec describes one charging location.
type ChargerSpec struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	PowerKW float64 `json:"power_kw"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Charger converts the spec to a model charger.
func (c ChargerSpec) Charger() model.Charger {
	return model.Charger{
		ID:    c.ID,
		Type:  c.Type,
		Power: c.PowerKW * 1e3,
		Coord: model.Coord{X: c.X, Y: c.Y},
	}
}

// TripSpec describes one routing request.
type TripSpec struct {
	PersonID      string  `json:"person_id"`
	Mode          string  `json:"mode"`
	FromX         float64 `json:"from_x"`
	FromY         float64 `json:"from_y"`
	ToX           float64 `json:"to_x"`
	ToY           float64 `json:"to_y"`
	DepartureTime float64 `json:"departure_time"`
}

// Trip converts the spec to a model trip. An empty mode defaults to car.
func (t TripSpec) Trip() model.Trip {
	mode := t.Mode
	if mode == "" {
		mode = "car"
	}
	return model.Trip{
		PersonID:      t.PersonID,
		Mode:          mode,
		From:          model.Coord{X: t.FromX, Y: t.FromY},
		To:            model.Coord{X: t.ToX, Y: t.ToY},
		DepartureTime: t.DepartureTime,
	}
}

// Validate checks the scenario for obvious configuration errors.
func (s *Scenario) Validate() error {
	for i, v := range s.Fleet {
		if v.ID == "" {
			return fmt.Errorf("scenario: vehicle %d without id", i)
		}
		if err := v.Profile().Validate(); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	for _, c := range s.Chargers {
		if err := c.Charger().Validate(); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	for i, t := range s.Trips {
		if t.PersonID == "" {
			return fmt.Errorf("scenario: trip %d without person", i)
		}
	}
	return nil
}

// Load reads a scenario from a JSON or YAML file.
func Load(path string) (*Scenario, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = kyaml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		return nil, fmt.Errorf("scenario: unsupported format: %s", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	var s Scenario
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the scenario as indented JSON.
func Save(path string, s *Scenario) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

// Profiles returns the fleet as model profiles.
func (s *Scenario) Profiles() []model.VehicleEnergyProfile {
	out := make([]model.VehicleEnergyProfile, len(s.Fleet))
	for i, v := range s.Fleet {
		out[i] = v.Profile()
	}
	return out
}

// ChargerRecords returns the infrastructure as model chargers.
func (s *Scenario) ChargerRecords() []model.Charger {
	out := make([]model.Charger, len(s.Chargers))
	for i, c := range s.Chargers {
		out[i] = c.Charger()
	}
	return out
}
