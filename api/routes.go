package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

type routeRequest struct {
	Source      int64 `json:"source" binding:"required,gt=0"`
	Destination int64 `json:"destination" binding:"required,gt=0"`
	Distance    int   `json:"distance" binding:"required,gt=0"`
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.listRoutes)
	router.POST("/", h.createRoute)
	router.GET("/:id/", h.getRoute)
	router.PUT("/:id/", h.updateRoute)
	router.PATCH("/:id/", h.updateRoute)
	router.DELETE("/:id/", h.deleteRoute)
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]routeListResponse, 0, len(routes))
	for _, r := range routes {
		resp = append(resp, newRouteListResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getRoute(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRouteDetailResponse(*route))
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	route := &domain.Route{SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.SaveRoute(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRouteResponse(*route))
}

func (h *CatalogHandler) updateRoute(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req routeRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetRoute(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		req = routeRequest{Source: current.SourceID, Destination: current.DestinationID, Distance: current.Distance}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	route := &domain.Route{ID: id, SourceID: req.Source, DestinationID: req.Destination, Distance: req.Distance}
	if err := h.service.SaveRoute(c.Request.Context(), route); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRouteResponse(*route))
}

func (h *CatalogHandler) deleteRoute(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
