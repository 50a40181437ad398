// Package export writes staged plans to JSON or CSV. Plans are flattened to
// one record per plan element so both formats share the same shape.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/betsim/betroute/core/model"
)

// PlanRecord is one element of a staged plan in export form.
type PlanRecord struct {
	PersonID   string  `json:"person_id"`
	VehicleID  string  `json:"vehicle_id"`
	Element    int     `json:"element"`
	Kind       string  `json:"kind"` // leg, charging or resting
	Reason     string  `json:"reason,omitempty"`
	Mode       string  `json:"mode,omitempty"`
	LocationID string  `json:"location_id,omitempty"`
	Start      float64 `json:"start"`
	Duration   float64 `json:"duration"`
	DistanceM  float64 `json:"distance_m,omitempty"`
}

// Flatten turns staged plans into export records, preserving element order.
func Flatten(plans []model.StagedPlan) []PlanRecord {
	var out []PlanRecord
	for _, p := range plans {
		for i, el := range p.Elements {
			rec := PlanRecord{PersonID: p.PersonID, VehicleID: p.VehicleID, Element: i}
			switch e := el.(type) {
			case model.Leg:
				rec.Kind = "leg"
				rec.Mode = e.Mode
				rec.Start = e.DepartureTime
				rec.Duration = e.TravelTime
				for _, seg := range e.Segments {
					rec.DistanceM += seg.Length
				}
			case model.Activity:
				rec.Kind = e.Type.String()
				rec.Reason = e.Reason.String()
				rec.LocationID = e.LocationID
				rec.Start = e.StartTime
				rec.Duration = e.Duration
			default:
				continue
			}
			out = append(out, rec)
		}
	}
	return out
}

// WriteJSON writes the staged plans to w in JSON format.
func WriteJSON(w io.Writer, plans []model.StagedPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Flatten(plans))
}

// WriteCSV writes the staged plans to w in CSV format.
func WriteCSV(w io.Writer, plans []model.StagedPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"person_id", "vehicle_id", "element", "kind", "reason", "mode", "location_id", "start", "duration", "distance_m"}); err != nil {
		return err
	}
	for _, r := range Flatten(plans) {
		rec := []string{
			r.PersonID,
			r.VehicleID,
			strconv.Itoa(r.Element),
			r.Kind,
			r.Reason,
			r.Mode,
			r.LocationID,
			strconv.FormatFloat(r.Start, 'f', -1, 64),
			strconv.FormatFloat(r.Duration, 'f', -1, 64),
			strconv.FormatFloat(r.DistanceM, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches on the format name.
func Write(w io.Writer, format string, plans []model.StagedPlan) error {
	switch format {
	case "json":
		return WriteJSON(w, plans)
	case "csv":
		return WriteCSV(w, plans)
	default:
		return fmt.Errorf("export: unsupported format: %s", format)
	}
}
