package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/betsim/betroute/config"
	"github.com/betsim/betroute/core/factory"
	"github.com/betsim/betroute/pkg/export"
	"github.com/betsim/betroute/scenario"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Scenario: "unused",
		Run:      config.RunConfig{Seed: 1, Workers: 2, NearestChargers: 2},
		Router:   config.RouterConfig{Mode: "truck", SegmentLengthM: 1000, FreespeedKmh: 90},
		Energy:   config.EnergyConfig{DriveWhPerKm: 1200},
		Output: config.OutputConfig{
			Path:   filepath.Join(t.TempDir(), "plans.json"),
			Format: "json",
		},
	}
}

// corridorScenario builds a west-east corridor with chargers every 25 km,
// one 300 km EV trip and one trip without a vehicle.
func corridorScenario() *scenario.Scenario {
	s := &scenario.Scenario{
		Fleet: []scenario.VehicleSpec{{
			ID:           "p1_truck",
			CapacityKWh:  300,
			InitialSoC:   1,
			MinSoC:       0.2,
			ChargerTypes: []string{"mcs"},
		}},
		Trips: []scenario.TripSpec{
			{PersonID: "p1", Mode: "truck", ToX: 300e3, DepartureTime: 21600},
			{PersonID: "p2", Mode: "truck", ToX: 100e3, DepartureTime: 21600},
		},
	}
	for i := 1; i <= 16; i++ {
		s.Chargers = append(s.Chargers, scenario.ChargerSpec{
			ID:      fmt.Sprintf("chg%02d", i),
			Type:    "mcs",
			PowerKW: 640,
			X:       float64(i) * 25e3,
		})
	}
	return s
}

func TestServiceRunWritesPlans(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewWithScenario(cfg, corridorScenario())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	raw, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var recs []export.PlanRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	perPerson := map[string][]export.PlanRecord{}
	for _, r := range recs {
		perPerson[r.PersonID] = append(perPerson[r.PersonID], r)
	}
	// 300 km at 1200 Wh/km drains 360 kWh against 240 kWh usable, so the
	// EV trip must contain at least one charging stop.
	var charges int
	for _, r := range perPerson["p1"] {
		if r.Kind == "charging" {
			charges++
			if r.Duration != 2700 {
				t.Errorf("unexpected charge duration %v", r.Duration)
			}
		}
	}
	if charges == 0 {
		t.Errorf("expected charging stops for p1, got %+v", perPerson["p1"])
	}
	if len(perPerson["p2"]) != 1 || perPerson["p2"][0].Kind != "leg" {
		t.Errorf("expected bare baseline leg for p2, got %+v", perPerson["p2"])
	}
}

func TestServicePlansKeepsTripOrder(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewWithScenario(cfg, corridorScenario())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	plans := svc.Plans(context.Background())
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans got %d", len(plans))
	}
	if plans[0].PersonID != "p1" || plans[1].PersonID != "p2" {
		t.Fatalf("plans out of trip order: %s, %s", plans[0].PersonID, plans[1].PersonID)
	}
	if !plans[0].Staged() {
		t.Errorf("expected p1 plan to be staged")
	}
	if plans[1].Staged() {
		t.Errorf("expected p2 plan to stay baseline")
	}
}

func TestServiceRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewWithScenario(cfg, corridorScenario())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Run(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestServiceFailFast(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.FailFast = true
	scen := corridorScenario()
	// zero-length trip routes to an empty leg, which is a staging error
	scen.Trips = append(scen.Trips, scenario.TripSpec{PersonID: "p3", Mode: "truck"})
	svc, err := NewWithScenario(cfg, scen)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Run(context.Background()); err == nil {
		t.Fatalf("expected fail-fast error")
	}
}

func TestUnsupportedVehicles(t *testing.T) {
	scen := corridorScenario()
	scen.Fleet = append(scen.Fleet, scenario.VehicleSpec{
		ID:           "p9_truck",
		CapacityKWh:  300,
		InitialSoC:   1,
		ChargerTypes: []string{"ccs"},
	})
	ids := unsupportedVehicles(scen.Profiles(), scen.ChargerRecords())
	if len(ids) != 1 || ids[0] != "p9_truck" {
		t.Fatalf("expected only the ccs vehicle to be flagged, got %v", ids)
	}
}

func TestServiceUnknownSink(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "does-not-exist"}}
	if _, err := NewWithScenario(cfg, corridorScenario()); err == nil {
		t.Fatalf("expected error for unknown sink type")
	}
}
