package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves airports, routes, crew, airplane types and airplanes.
type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type airportRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	ClosestBigCity string `json:"closest_big_city" binding:"required,max=255"`
}

func (h *CatalogHandler) RegisterAirports(router *gin.RouterGroup) {
	router.GET("/", h.listAirports)
	router.POST("/", h.createAirport)
	router.GET("/:id/", h.getAirport)
	router.PUT("/:id/", h.updateAirport)
	router.PATCH("/:id/", h.updateAirport)
	router.DELETE("/:id/", h.deleteAirport)
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]airportResponse, 0, len(airports))
	for _, a := range airports {
		resp = append(resp, newAirportResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getAirport(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirportDetailResponse(*airport))
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	airport := &domain.Airport{Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.SaveAirport(c.Request.Context(), airport); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAirportResponse(*airport))
}

// updateAirport serves PUT and PATCH. PATCH binds onto the current values.
func (h *CatalogHandler) updateAirport(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req airportRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetAirport(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		req = airportRequest{Name: current.Name, ClosestBigCity: current.ClosestBigCity}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	airport := &domain.Airport{ID: id, Name: req.Name, ClosestBigCity: req.ClosestBigCity}
	if err := h.service.SaveAirport(c.Request.Context(), airport); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirportResponse(*airport))
}

func (h *CatalogHandler) deleteAirport(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.DeleteAirport(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
