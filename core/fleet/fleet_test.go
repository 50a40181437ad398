package fleet

import (
	"testing"

	"github.com/betsim/betroute/core/model"
)

func TestDirectoryLookup(t *testing.T) {
	d, err := NewDirectory([]model.VehicleEnergyProfile{
		{ID: "bet1", BatteryCapacity: 1e9, InitialSoC: 1, MinSoC: 0.2},
		{ID: "bet2_truck", BatteryCapacity: 1e9, InitialSoC: 0.9, MinSoC: 0.2},
	})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 vehicles got %d", d.Len())
	}
	if _, ok := d.Vehicle("bet1"); !ok {
		t.Fatalf("bet1 missing")
	}
	if _, ok := d.Vehicle("bet3"); ok {
		t.Fatalf("unexpected bet3")
	}
}

func TestDirectoryRejectsDuplicates(t *testing.T) {
	_, err := NewDirectory([]model.VehicleEnergyProfile{
		{ID: "bet1", BatteryCapacity: 1e9, InitialSoC: 1, MinSoC: 0.2},
		{ID: "bet1", BatteryCapacity: 2e9, InitialSoC: 1, MinSoC: 0.2},
	})
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestVehicleID(t *testing.T) {
	if got := VehicleID("p1", "car"); got != "p1" {
		t.Fatalf("expected p1 got %s", got)
	}
	if got := VehicleID("p1", "truck"); got != "p1_truck" {
		t.Fatalf("expected p1_truck got %s", got)
	}
}
