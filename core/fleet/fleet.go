// Package fleet holds the read-only fleet specification mapping vehicle IDs
// to energy profiles.
package fleet

import (
	"fmt"

	"github.com/betsim/betroute/core/model"
)

// Directory is populated once before the planning phase and only read
// afterwards, so concurrent lookups need no locking.
type Directory struct {
	vehicles map[string]model.VehicleEnergyProfile
	ids      []string
}

// NewDirectory validates the profiles and indexes them by vehicle ID.
func NewDirectory(profiles []model.VehicleEnergyProfile) (*Directory, error) {
	d := &Directory{vehicles: make(map[string]model.VehicleEnergyProfile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("fleet directory: %w", err)
		}
		if _, dup := d.vehicles[p.ID]; dup {
			return nil, fmt.Errorf("fleet directory: duplicate vehicle %s", p.ID)
		}
		d.vehicles[p.ID] = p
		d.ids = append(d.ids, p.ID)
	}
	return d, nil
}

// Vehicle looks up the profile for the given vehicle ID.
func (d *Directory) Vehicle(id string) (model.VehicleEnergyProfile, bool) {
	p, ok := d.vehicles[id]
	return p, ok
}

// Len returns the number of registered vehicles.
func (d *Directory) Len() int { return len(d.vehicles) }

// Profiles returns all profiles in registration order.
func (d *Directory) Profiles() []model.VehicleEnergyProfile {
	out := make([]model.VehicleEnergyProfile, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, d.vehicles[id])
	}
	return out
}

// VehicleID derives the vehicle identifier registered for a person and
// transport mode. The car mode uses the bare person ID; other modes append
// a mode suffix.
func VehicleID(personID, mode string) string {
	if mode == "" || mode == "car" {
		return personID
	}
	return personID + "_" + mode
}
