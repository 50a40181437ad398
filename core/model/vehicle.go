package model

import "fmt"

// VehicleEnergyProfile describes the battery and charging capabilities of a
// single electric vehicle. Profiles are owned by the fleet specification and
// read-only during route staging.
type VehicleEnergyProfile struct {
	ID              string
	BatteryCapacity float64  // J
	InitialSoC      float64  // state of charge between 0 and 1
	MinSoC          float64  // floor below which the battery must not drain
	ChargerTypes    []string // charger type tags the vehicle can use
}

// Validate checks that the profile is sound.
func (v VehicleEnergyProfile) Validate() error {
	if v.BatteryCapacity <= 0 {
		return fmt.Errorf("vehicle %s: battery capacity must be positive", v.ID)
	}
	if v.InitialSoC < 0 || v.InitialSoC > 1 {
		return fmt.Errorf("vehicle %s: initial SoC %v out of range", v.ID, v.InitialSoC)
	}
	if v.MinSoC < 0 || v.MinSoC >= 1 {
		return fmt.Errorf("vehicle %s: min SoC %v out of range", v.ID, v.MinSoC)
	}
	return nil
}

// InitialCharge returns the absolute energy stored at departure in Joules.
func (v VehicleEnergyProfile) InitialCharge() float64 {
	return v.InitialSoC * v.BatteryCapacity
}

// UsableCapacity returns the energy consumable before the MinSoC floor is
// reached, assuming the battery starts at InitialSoC.
func (v VehicleEnergyProfile) UsableCapacity() float64 {
	return v.BatteryCapacity * (v.InitialSoC - v.MinSoC)
}

// SupportsCharger reports whether the vehicle can use the given charger type.
func (v VehicleEnergyProfile) SupportsCharger(chargerType string) bool {
	for _, t := range v.ChargerTypes {
		if t == chargerType {
			return true
		}
	}
	return false
}
