package consumption

import "github.com/betsim/betroute/core/model"

// BetConsumptionPerMeter is the default heavy-truck drive consumption:
// 1200 Wh/km expressed in J/m.
const BetConsumptionPerMeter = 1200 * 3.6

// BetDrive is the default drive-energy model for battery-electric trucks.
// Consumption scales with segment length only.
type BetDrive struct {
	PerMeter float64 // J/m
}

// NewBetDrive returns the default BET drive model.
func NewBetDrive() BetDrive {
	return BetDrive{PerMeter: BetConsumptionPerMeter}
}

// Consumption implements DriveEnergy. A zero travel time means the segment is
// not actually traversed and costs nothing.
func (d BetDrive) Consumption(seg model.RouteSegment, travelTime, enterTime float64) float64 {
	if travelTime == 0 {
		return 0
	}
	return d.PerMeter * seg.Length
}

// ConstantAux draws a fixed auxiliary power for the whole traversal.
type ConstantAux struct {
	Power float64 // W
}

// Consumption implements AuxEnergy.
func (a ConstantAux) Consumption(departureTime, travelTime float64, segmentID string) float64 {
	return a.Power * travelTime
}
