package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter, page domain.Page) (*FlightPage, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

// Cache stores serialized flight list pages. GetFlights resolves query to a versioned key once;
// SetFlights must be given that key so a page read before an invalidation is never stored after it.
type Cache interface {
	GetFlights(ctx context.Context, query string) (data []byte, key string, err error)
	SetFlights(ctx context.Context, key string, payload []byte) error
	CacheInvalidator
}

// CacheInvalidator is implemented by caches whose flight entries go stale on writes.
type CacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type FlightPage struct {
	Flights []domain.FlightSummary
	Total   int
}

type FlightInput struct {
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
}

func (in FlightInput) validate() error {
	verr := &domain.ValidationError{}
	if in.RouteID <= 0 {
		verr.Add("route", "This field is required.")
	}
	if in.AirplaneID <= 0 {
		verr.Add("airplane", "This field is required.")
	}
	if in.DepartureTime.IsZero() {
		verr.Add("departure_time", "This field is required.")
	}
	if in.ArrivalTime.IsZero() {
		verr.Add("arrival_time", "This field is required.")
	}
	if !in.DepartureTime.IsZero() && !in.ArrivalTime.IsZero() && !in.ArrivalTime.After(in.DepartureTime) {
		verr.Add("arrival_time", "Arrival time must be after departure time.")
	}
	for _, id := range in.CrewIDs {
		if id <= 0 {
			verr.Add("crew", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(id)))
		}
	}
	return verr.OrNil()
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

// ParseFilter builds a filter from the "route", "airport" and "date" query values.
// route is split on its first hyphen, so a source city containing a hyphen cannot be expressed.
func ParseFilter(route, airport, date string) (domain.FlightFilter, error) {
	var (
		filter domain.FlightFilter
		verr   = &domain.ValidationError{}
	)
	if route != "" {
		source, destination, ok := strings.Cut(route, "-")
		if !ok || source == "" || destination == "" {
			verr.Add("route", "Expected format 'Source-Destination', e.g. 'Paris-Kyiv'.")
		} else {
			filter.SourceCity, filter.DestinationCity = source, destination
		}
	}
	filter.AirportCity = airport
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			verr.Add("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		} else {
			filter.DepartureDate = &d
		}
	}
	return filter, verr.OrNil()
}

func cacheKey(filter domain.FlightFilter, page domain.Page) string {
	date := ""
	if filter.DepartureDate != nil {
		date = filter.DepartureDate.Format("2006-01-02")
	}
	return fmt.Sprintf("src=%s&dst=%s&airport=%s&date=%s&limit=%d&offset=%d",
		strings.ToLower(filter.SourceCity), strings.ToLower(filter.DestinationCity), strings.ToLower(filter.AirportCity),
		date, page.Limit, page.Offset)
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter, page domain.Page) (*FlightPage, error) {
	var storeKey string
	if s.cache != nil {
		cached, key, err := s.cache.GetFlights(ctx, cacheKey(filter, page))
		if err != nil {
			log.Printf("flights cache read: %v", err)
		} else {
			if cached != nil {
				var p FlightPage
				if err := json.Unmarshal(cached, &p); err == nil {
					return &p, nil
				}
			}
			storeKey = key
		}
	}

	flights, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	result := &FlightPage{Flights: flights, Total: total}

	if storeKey != "" {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.SetFlights(ctx, storeKey, payload); err != nil {
				log.Printf("flights cache write: %v", err)
			}
		}
	}
	return result, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	flight := input.toFlight()
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	flight := input.toFlight()
	flight.ID = id
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

// Delete removes the flight with its tickets; orders stay.
func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	Invalidate(ctx, s.cache)
}

// Invalidate drops cached flight lists, logging failures. A nil cache is a no-op.
func Invalidate(ctx context.Context, cache CacheInvalidator) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateFlights(ctx); err != nil {
		log.Printf("flights cache invalidate: %v", err)
	}
}

func (in FlightInput) toFlight() *domain.Flight {
	crew := in.CrewIDs
	if crew == nil {
		crew = []int64{}
	}
	return &domain.Flight{
		RouteID:       in.RouteID,
		AirplaneID:    in.AirplaneID,
		DepartureTime: in.DepartureTime,
		ArrivalTime:   in.ArrivalTime,
		CrewIDs:       crew,
	}
}

var _ FlightUseCase = (*FlightService)(nil)
