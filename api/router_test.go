package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/auth"
	"github.com/Domenick1991/skybook/internal/authz"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	router  *gin.Engine
	tokens  *auth.TokenManager
	catalog *MockCatalogUseCase
	orders  *MockOrderUseCase
	users   *MockUserUseCase
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policy, err := authz.New(context.Background())
	require.NoError(t, err)

	f := &routerFixture{
		tokens:  auth.NewTokenManager("router-secret", time.Minute, time.Hour),
		catalog: &MockCatalogUseCase{},
		orders:  &MockOrderUseCase{},
		users:   &MockUserUseCase{},
	}
	f.router = NewRouter(config.HTTPConfig{PageSize: 10}, Services{
		Flights: &MockFlightUseCase{},
		Orders:  f.orders,
		Catalog: f.catalog,
		Users:   f.users,
		Tokens:  f.tokens,
		Policy:  policy,
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, body string, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		pair, err := f.tokens.Issue(*user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

var (
	regular = &domain.User{ID: 3, Email: "user@example.com"}
	staff   = &domain.User{ID: 1, Email: "admin@example.com", IsStaff: true}
)

func TestRouter_RequiresAuthentication(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/airports/", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_RejectsInvalidToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/airports/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ReadAllowedForAnyUser(t *testing.T) {
	f := newRouterFixture(t)
	f.catalog.On("ListAirports", mock.Anything).Return([]domain.Airport{{ID: 1, Name: "CDG", ClosestBigCity: "Paris"}}, nil)

	w := f.do(t, http.MethodGet, "/api/airports/", "", regular)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id": 1, "name": "CDG", "closest_big_city": "Paris"}]`, w.Body.String())
}

func TestRouter_WriteForbiddenForRegularUser(t *testing.T) {
	f := newRouterFixture(t)

	for _, path := range []string{"/api/airports/", "/api/routs/", "/api/crew/", "/api/airplane_types/", "/api/airplanes/", "/api/flights/"} {
		w := f.do(t, http.MethodPost, path, `{}`, regular)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
	f.catalog.AssertNotCalled(t, "SaveAirport", mock.Anything, mock.Anything)
}

func TestRouter_WriteAllowedForStaff(t *testing.T) {
	f := newRouterFixture(t)
	f.catalog.On("SaveCrew", mock.Anything, mock.AnythingOfType("*domain.Crew")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Crew).ID = 5
	}).Return(nil)

	w := f.do(t, http.MethodPost, "/api/crew/", `{"first_name": "Ann", "last_name": "Lee"}`, staff)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id": 5, "first_name": "Ann", "last_name": "Lee", "full_name": "Ann Lee"}`, w.Body.String())
}

func TestRouter_OrdersOpenToRegularUser(t *testing.T) {
	f := newRouterFixture(t)
	identity := domain.Identity{UserID: regular.ID, Email: regular.Email}
	f.orders.On("Create", mock.Anything, identity, []domain.TicketInput{{Row: 1, Seat: 1, FlightID: 2}}).
		Return(&domain.Order{ID: 9, UserID: regular.ID}, nil)

	w := f.do(t, http.MethodPost, "/api/orders/", `{"tickets": [{"row": 1, "seat": 1, "flight": 2}]}`, regular)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.orders.AssertExpectations(t)
}

func TestRouter_OrderUpdateNotAllowed(t *testing.T) {
	f := newRouterFixture(t)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		w := f.do(t, method, "/api/orders/9/", `{}`, regular)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
	}
}

func TestRouter_MePostNotAllowed(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/user/me/", `{}`, regular)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_RegisterIsPublic(t *testing.T) {
	f := newRouterFixture(t)
	f.users.On("Register", mock.Anything, "new@example.com", "secret").Return(&domain.User{ID: 8, Email: "new@example.com"}, nil)

	w := f.do(t, http.MethodPost, "/api/user/register/", `{"email": "new@example.com", "password": "secret"}`, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id": 8, "email": "new@example.com", "is_staff": false}`, w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/nothing/", "", regular)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
