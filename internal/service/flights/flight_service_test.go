package flights

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.FlightSummary, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.FlightSummary), args.Int(1), args.Error(2)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightRepository) SeatGrids(ctx context.Context, ids []int64) (map[int64]domain.Airplane, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Airplane), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context, query string) ([]byte, string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockCache) SetFlights(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleSummaries() []domain.FlightSummary {
	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return []domain.FlightSummary{
		{ID: 4, CitiesRoute: "Paris - Kyiv", AirplaneName: "Boeing", DepartureTime: dep, ArrivalTime: dep.Add(3 * time.Hour), TicketsAvailable: 149},
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	filter := domain.FlightFilter{SourceCity: "Paris", DestinationCity: "Kyiv"}
	page := domain.Page{Limit: 10}
	flights := sampleSummaries()

	mockCache.On("GetFlights", ctx, mock.AnythingOfType("string")).Return(nil, "cache:flights:3:q", nil).Once()
	mockRepo.On("List", ctx, filter, page).Return(flights, 1, nil).Once()
	mockCache.On("SetFlights", ctx, "cache:flights:3:q", mock.Anything).Return(nil).Once()

	result, err := service.List(ctx, filter, page)

	require.NoError(t, err)
	assert.Equal(t, flights, result.Flights)
	assert.Equal(t, 1, result.Total)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	cached, err := json.Marshal(FlightPage{Flights: sampleSummaries(), Total: 1})
	require.NoError(t, err)

	mockCache.On("GetFlights", ctx, mock.AnythingOfType("string")).Return(cached, "cache:flights:0:q", nil).Once()

	result, err := service.List(ctx, domain.FlightFilter{}, domain.Page{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, int64(4), result.Flights[0].ID)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_List_CacheError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	flights := sampleSummaries()

	mockCache.On("GetFlights", ctx, mock.AnythingOfType("string")).Return(nil, "", errors.New("redis down")).Once()
	mockRepo.On("List", ctx, domain.FlightFilter{}, domain.Page{}).Return(flights, 1, nil).Once()

	result, err := service.List(ctx, domain.FlightFilter{}, domain.Page{})

	require.NoError(t, err)
	assert.Equal(t, flights, result.Flights)
	mockCache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_List_WithoutCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("List", ctx, domain.FlightFilter{}, domain.Page{}).Return([]domain.FlightSummary{}, 0, nil).Once()

	result, err := service.List(ctx, domain.FlightFilter{}, domain.Page{})

	require.NoError(t, err)
	assert.Empty(t, result.Flights)
}

func TestFlightService_List_RepoError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("List", ctx, domain.FlightFilter{}, domain.Page{}).Return(nil, 0, errors.New("db error")).Once()

	result, err := service.List(ctx, domain.FlightFilter{}, domain.Page{})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCacheKey_DistinguishesQueries(t *testing.T) {
	d := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := cacheKey(domain.FlightFilter{SourceCity: "Paris"}, domain.Page{Limit: 10})
	b := cacheKey(domain.FlightFilter{SourceCity: "paris"}, domain.Page{Limit: 10})
	c := cacheKey(domain.FlightFilter{SourceCity: "Paris", DepartureDate: &d}, domain.Page{Limit: 10})
	e := cacheKey(domain.FlightFilter{SourceCity: "Paris"}, domain.Page{Limit: 10, Offset: 10})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, e)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name     string
		route    string
		airport  string
		date     string
		want     domain.FlightFilter
		errField string
	}{
		{name: "empty"},
		{name: "route", route: "Paris-Kyiv", want: domain.FlightFilter{SourceCity: "Paris", DestinationCity: "Kyiv"}},
		{name: "route splits on first hyphen", route: "Paris-Ivano-Frankivsk", want: domain.FlightFilter{SourceCity: "Paris", DestinationCity: "Ivano-Frankivsk"}},
		{name: "route without hyphen", route: "Paris", errField: "route"},
		{name: "route with empty side", route: "-Kyiv", errField: "route"},
		{name: "airport", airport: "Lviv", want: domain.FlightFilter{AirportCity: "Lviv"}},
		{name: "bad date", date: "01.05.2026", errField: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.route, tt.airport, tt.date)
			if tt.errField != "" {
				verr, ok := domain.AsValidation(err)
				require.True(t, ok)
				assert.Contains(t, verr.Fields, tt.errField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilter_Date(t *testing.T) {
	got, err := ParseFilter("", "", "2026-05-01")

	require.NoError(t, err)
	require.NotNil(t, got.DepartureDate)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *got.DepartureDate)
}

func TestFlightService_Create_Success(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	input := FlightInput{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour), CrewIDs: []int64{3}}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Flight).ID = 7
	}).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(7), flight.ID)
	assert.Equal(t, []int64{3}, flight.CrewIDs)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_ArrivalBeforeDeparture(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	input := FlightInput{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep}

	_, err := service.Create(context.Background(), input)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "arrival_time")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestFlightService_Create_MissingFields(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)

	_, err := service.Create(context.Background(), FlightInput{})

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	for _, field := range []string{"route", "airplane", "departure_time", "arrival_time"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestFlightService_Update_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	input := FlightInput{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep.Add(time.Hour)}

	mockRepo.On("Update", ctx, mock.MatchedBy(func(f *domain.Flight) bool { return f.ID == 9 })).Return(domain.ErrNotFound).Once()

	_, err := service.Update(ctx, 9, input)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestFlightService_Delete_InvalidatesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, int64(5)).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	err := service.Delete(ctx, 5)

	require.NoError(t, err)
	mockCache.AssertExpectations(t)
}
