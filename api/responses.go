package api

import (
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
)

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func newCrewResponse(c domain.Crew) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

type airportResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func newAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity}
}

type airportRouteResponse struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
	CitiesRoute string `json:"cities_route"`
}

type airportDetailResponse struct {
	airportResponse
	Routes []airportRouteResponse `json:"routes"`
}

func newAirportDetailResponse(d domain.AirportDetail) airportDetailResponse {
	resp := airportDetailResponse{airportResponse: newAirportResponse(d.Airport), Routes: make([]airportRouteResponse, 0, len(d.Routes))}
	for _, r := range d.Routes {
		route := airportRouteResponse{Distance: r.Distance, CitiesRoute: r.CitiesRoute()}
		if r.Source != nil {
			route.Source = r.Source.Name
		}
		if r.Destination != nil {
			route.Destination = r.Destination.Name
		}
		resp.Routes = append(resp.Routes, route)
	}
	return resp
}

// routeResponse is the write shape with airport ids.
type routeResponse struct {
	ID          int64 `json:"id"`
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

func newRouteResponse(r domain.Route) routeResponse {
	return routeResponse{ID: r.ID, Source: r.SourceID, Destination: r.DestinationID, Distance: r.Distance}
}

// routeListResponse names airports by their closest big city.
type routeListResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

func newRouteListResponse(r domain.Route) routeListResponse {
	resp := routeListResponse{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		resp.Source = r.Source.ClosestBigCity
	}
	if r.Destination != nil {
		resp.Destination = r.Destination.ClosestBigCity
	}
	return resp
}

type routeDetailResponse struct {
	ID          int64            `json:"id"`
	Source      *airportResponse `json:"source"`
	Destination *airportResponse `json:"destination"`
	Distance    int              `json:"distance"`
}

func newRouteDetailResponse(r domain.Route) routeDetailResponse {
	resp := routeDetailResponse{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		a := newAirportResponse(*r.Source)
		resp.Source = &a
	}
	if r.Destination != nil {
		a := newAirportResponse(*r.Destination)
		resp.Destination = &a
	}
	return resp
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newAirplaneTypeResponse(t domain.AirplaneType) airplaneTypeResponse {
	return airplaneTypeResponse{ID: t.ID, Name: t.Name}
}

// airplaneResponse is the write shape with the type id.
type airplaneResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType int64  `json:"airplane_type"`
}

func newAirplaneResponse(a domain.Airplane) airplaneResponse {
	return airplaneResponse{ID: a.ID, Name: a.Name, Rows: a.Rows, SeatsInRow: a.SeatsInRow, Capacity: a.Capacity(), AirplaneType: a.AirplaneTypeID}
}

type airplaneListResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Rows         int     `json:"rows"`
	SeatsInRow   int     `json:"seats_in_row"`
	Capacity     int     `json:"capacity"`
	AirplaneType string  `json:"airplane_type"`
	Image        *string `json:"image"`
}

func imageURL(image string) *string {
	if image == "" {
		return nil
	}
	return &image
}

func newAirplaneListResponse(a domain.Airplane) airplaneListResponse {
	resp := airplaneListResponse{ID: a.ID, Name: a.Name, Rows: a.Rows, SeatsInRow: a.SeatsInRow, Capacity: a.Capacity(), Image: imageURL(a.Image)}
	if a.AirplaneType != nil {
		resp.AirplaneType = a.AirplaneType.Name
	}
	return resp
}

type airplaneDetailResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Rows         int                   `json:"rows"`
	SeatsInRow   int                   `json:"seats_in_row"`
	Capacity     int                   `json:"capacity"`
	AirplaneType *airplaneTypeResponse `json:"airplane_type"`
	Image        *string               `json:"image"`
}

func newAirplaneDetailResponse(a domain.Airplane) airplaneDetailResponse {
	resp := airplaneDetailResponse{ID: a.ID, Name: a.Name, Rows: a.Rows, SeatsInRow: a.SeatsInRow, Capacity: a.Capacity(), Image: imageURL(a.Image)}
	if a.AirplaneType != nil {
		t := newAirplaneTypeResponse(*a.AirplaneType)
		resp.AirplaneType = &t
	}
	return resp
}

type airplaneImageResponse struct {
	ID    int64   `json:"id"`
	Image *string `json:"image"`
}

type flightResponse struct {
	ID            int64     `json:"id"`
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func newFlightResponse(f domain.Flight) flightResponse {
	crew := f.CrewIDs
	if crew == nil {
		crew = []int64{}
	}
	return flightResponse{ID: f.ID, Route: f.RouteID, Airplane: f.AirplaneID, DepartureTime: f.DepartureTime, ArrivalTime: f.ArrivalTime, Crew: crew}
}

type flightListResponse struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	Airplane         string    `json:"airplane"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable int       `json:"tickets_available"`
}

func newFlightListResponse(f domain.FlightSummary) flightListResponse {
	return flightListResponse{
		ID:               f.ID,
		Route:            f.CitiesRoute,
		Airplane:         f.AirplaneName,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		TicketsAvailable: f.TicketsAvailable,
	}
}

type seatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type flightDetailResponse struct {
	ID               int64                  `json:"id"`
	Route            routeDetailResponse    `json:"route"`
	Airplane         airplaneDetailResponse `json:"airplane"`
	DepartureTime    time.Time              `json:"departure_time"`
	ArrivalTime      time.Time              `json:"arrival_time"`
	Crew             []string               `json:"crew"`
	TakenPlaces      []seatResponse         `json:"taken_places"`
	TicketsAvailable int                    `json:"tickets_available"`
}

func newFlightDetailResponse(d domain.FlightDetail) flightDetailResponse {
	resp := flightDetailResponse{
		ID:               d.ID,
		Route:            newRouteDetailResponse(d.Route),
		Airplane:         newAirplaneDetailResponse(d.Airplane),
		DepartureTime:    d.DepartureTime,
		ArrivalTime:      d.ArrivalTime,
		Crew:             make([]string, 0, len(d.Crew)),
		TakenPlaces:      make([]seatResponse, 0, len(d.TakenPlaces)),
		TicketsAvailable: d.TicketsAvailable,
	}
	for _, c := range d.Crew {
		resp.Crew = append(resp.Crew, c.FullName())
	}
	for _, s := range d.TakenPlaces {
		resp.TakenPlaces = append(resp.TakenPlaces, seatResponse{Row: s.Row, Seat: s.Seat})
	}
	return resp
}

type ticketResponse struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Tickets   []ticketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

func newOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: make([]ticketResponse, 0, len(o.Tickets))}
	for _, t := range o.Tickets {
		resp.Tickets = append(resp.Tickets, ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID})
	}
	return resp
}

type ticketDetailResponse struct {
	ID     int64               `json:"id"`
	Row    int                 `json:"row"`
	Seat   int                 `json:"seat"`
	Flight *flightListResponse `json:"flight"`
}

type orderDetailResponse struct {
	ID        int64                  `json:"id"`
	Tickets   []ticketDetailResponse `json:"tickets"`
	CreatedAt time.Time              `json:"created_at"`
}

func newOrderDetailResponse(o domain.Order) orderDetailResponse {
	resp := orderDetailResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: make([]ticketDetailResponse, 0, len(o.Tickets))}
	for _, t := range o.Tickets {
		ticket := ticketDetailResponse{ID: t.ID, Row: t.Row, Seat: t.Seat}
		if t.Flight != nil {
			f := newFlightListResponse(*t.Flight)
			ticket.Flight = &f
		}
		resp.Tickets = append(resp.Tickets, ticket)
	}
	return resp
}

type userResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, IsStaff: u.IsStaff}
}
