package domain

import "fmt"

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
}

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int

	// Filled on reads that join airports.
	Source      *Airport
	Destination *Airport
}

// CitiesRoute renders the route as "<source city> - <destination city>".
func (r Route) CitiesRoute() string {
	if r.Source == nil || r.Destination == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s", r.Source.ClosestBigCity, r.Destination.ClosestBigCity)
}

// AirportDetail is an airport with the routes departing from it.
type AirportDetail struct {
	Airport
	Routes []Route
}
