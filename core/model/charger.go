package model

import "fmt"

// Charger is one entry of the charging-infrastructure specification.
type Charger struct {
	ID    string
	Type  string  // compatibility tag matched against VehicleEnergyProfile.ChargerTypes
	Power float64 // W
	Coord Coord
}

// Validate checks that the charger record is sound.
func (c Charger) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("charger without id")
	}
	if c.Type == "" {
		return fmt.Errorf("charger %s: missing type", c.ID)
	}
	if c.Power <= 0 {
		return fmt.Errorf("charger %s: power must be positive", c.ID)
	}
	return nil
}
