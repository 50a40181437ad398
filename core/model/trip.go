package model

// Trip is one point-to-point routing request.
type Trip struct {
	PersonID      string
	Mode          string
	From          Coord
	To            Coord
	DepartureTime float64 // s since simulation start
}
