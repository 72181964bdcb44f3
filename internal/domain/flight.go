package domain

import "time"

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FlightSummary is the list projection of a flight with its availability.
type FlightSummary struct {
	ID               int64
	CitiesRoute      string
	AirplaneName     string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TicketsAvailable int
}

type Seat struct {
	Row  int
	Seat int
}

// FlightDetail is a fully expanded flight.
type FlightDetail struct {
	Flight
	Route            Route
	Airplane         Airplane
	Crew             []Crew
	TakenPlaces      []Seat
	TicketsAvailable int
}

// FlightFilter narrows flight lists. Empty fields do not filter.
type FlightFilter struct {
	// SourceCity and DestinationCity come from the "route" parameter.
	SourceCity      string
	DestinationCity string
	// AirportCity comes from the "airport" parameter and also matches the source.
	AirportCity   string
	DepartureDate *time.Time
}

type Page struct {
	Limit  int
	Offset int
}
