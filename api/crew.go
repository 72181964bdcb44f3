package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
}

func (h *CatalogHandler) RegisterCrew(router *gin.RouterGroup) {
	router.GET("/", h.listCrew)
	router.POST("/", h.createCrew)
	router.GET("/:id/", h.getCrew)
	router.PUT("/:id/", h.updateCrew)
	router.PATCH("/:id/", h.updateCrew)
	router.DELETE("/:id/", h.deleteCrew)
}

func (h *CatalogHandler) listCrew(c *gin.Context) {
	crew, err := h.service.ListCrew(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]crewResponse, 0, len(crew))
	for _, m := range crew {
		resp = append(resp, newCrewResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getCrew(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	crew, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCrewResponse(*crew))
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	crew := &domain.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.SaveCrew(c.Request.Context(), crew); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCrewResponse(*crew))
}

func (h *CatalogHandler) updateCrew(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req crewRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetCrew(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		req = crewRequest{FirstName: current.FirstName, LastName: current.LastName}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	crew := &domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.SaveCrew(c.Request.Context(), crew); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCrewResponse(*crew))
}

func (h *CatalogHandler) deleteCrew(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.DeleteCrew(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
