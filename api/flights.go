package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service   flights.FlightUseCase
	paginator Paginator
}

type flightRequest struct {
	Route         int64     `json:"route" binding:"required,gt=0"`
	Airplane      int64     `json:"airplane" binding:"required,gt=0"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Crew          []int64   `json:"crew" binding:"omitempty,dive,gt=0"`
}

func (r flightRequest) input() flights.FlightInput {
	return flights.FlightInput{
		RouteID:       r.Route,
		AirplaneID:    r.Airplane,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		CrewIDs:       r.Crew,
	}
}

func NewFlightHandler(service flights.FlightUseCase, paginator Paginator) *FlightHandler {
	return &FlightHandler{service: service, paginator: paginator}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id/", h.get)
	router.PUT("/:id/", h.update)
	router.PATCH("/:id/", h.update)
	router.DELETE("/:id/", h.delete)
}

// list accepts "route" (Source-Destination), "airport" and "date" (YYYY-MM-DD).
func (h *FlightHandler) list(c *gin.Context) {
	filter, err := flights.ParseFilter(c.Query("route"), c.Query("airport"), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	page, number, err := h.paginator.page(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]flightListResponse, 0, len(result.Flights))
	for _, f := range result.Flights {
		items = append(items, newFlightListResponse(f))
	}
	resp, err := h.paginator.response(c, number, result.Total, items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightDetailResponse(*flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	flight, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newFlightResponse(*flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req flightRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		req = flightRequest{
			Route:         current.RouteID,
			Airplane:      current.AirplaneID,
			DepartureTime: current.DepartureTime,
			ArrivalTime:   current.ArrivalTime,
			Crew:          current.CrewIDs,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(*flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
