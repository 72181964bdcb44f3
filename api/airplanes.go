package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
)

type airplaneTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type airplaneRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Rows         int    `json:"rows" binding:"required,gt=0"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required,gt=0"`
	AirplaneType int64  `json:"airplane_type" binding:"required,gt=0"`
}

func (h *CatalogHandler) RegisterAirplaneTypes(router *gin.RouterGroup) {
	router.GET("/", h.listAirplaneTypes)
	router.POST("/", h.createAirplaneType)
	router.GET("/:id/", h.getAirplaneType)
	router.PUT("/:id/", h.updateAirplaneType)
	router.PATCH("/:id/", h.updateAirplaneType)
	router.DELETE("/:id/", h.deleteAirplaneType)
}

func (h *CatalogHandler) RegisterAirplanes(router *gin.RouterGroup) {
	router.GET("/", h.listAirplanes)
	router.POST("/", h.createAirplane)
	router.GET("/:id/", h.getAirplane)
	router.PUT("/:id/", h.updateAirplane)
	router.PATCH("/:id/", h.updateAirplane)
	router.DELETE("/:id/", h.deleteAirplane)
	router.POST("/:id/upload-image/", h.uploadAirplaneImage)
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, newAirplaneTypeResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getAirplaneType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneTypeResponse(*t))
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var req airplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	t := &domain.AirplaneType{Name: req.Name}
	if err := h.service.SaveAirplaneType(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAirplaneTypeResponse(*t))
}

func (h *CatalogHandler) updateAirplaneType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req airplaneTypeRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetAirplaneType(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		req.Name = current.Name
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	t := &domain.AirplaneType{ID: id, Name: req.Name}
	if err := h.service.SaveAirplaneType(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneTypeResponse(*t))
}

func (h *CatalogHandler) deleteAirplaneType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]airplaneListResponse, 0, len(airplanes))
	for _, a := range airplanes {
		resp = append(resp, newAirplaneListResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneDetailResponse(*airplane))
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	airplane := &domain.Airplane{Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow, AirplaneTypeID: req.AirplaneType}
	if err := h.service.SaveAirplane(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAirplaneResponse(*airplane))
}

func (h *CatalogHandler) updateAirplane(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req airplaneRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.GetAirplane(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		req = airplaneRequest{Name: current.Name, Rows: current.Rows, SeatsInRow: current.SeatsInRow, AirplaneType: current.AirplaneTypeID}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	airplane := &domain.Airplane{ID: id, Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow, AirplaneTypeID: req.AirplaneType}
	if err := h.service.SaveAirplane(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAirplaneResponse(*airplane))
}

func (h *CatalogHandler) deleteAirplane(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadAirplaneImage expects a multipart form with an "image" file.
func (h *CatalogHandler) uploadAirplaneImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		writeError(c, domain.NewValidationError("image", "No file was submitted."))
		return
	}
	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	airplane, err := h.service.UploadAirplaneImage(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneImageResponse{ID: airplane.ID, Image: imageURL(airplane.Image)})
}
