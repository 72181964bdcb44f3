package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service   orders.OrderUseCase
	paginator Paginator
}

type createOrderRequest struct {
	Tickets []domain.TicketInput `json:"tickets" binding:"required"`
}

func NewOrderHandler(service orders.OrderUseCase, paginator Paginator) *OrderHandler {
	return &OrderHandler{service: service, paginator: paginator}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id/", h.get)
	router.PUT("/:id/", h.methodNotAllowed)
	router.PATCH("/:id/", h.methodNotAllowed)
	router.DELETE("/:id/", h.delete)
	router.GET("/:id/eticket/", h.eticket)
}

func (h *OrderHandler) list(c *gin.Context) {
	identity, _ := identityFrom(c)
	page, number, err := h.paginator.page(c)
	if err != nil {
		writeError(c, err)
		return
	}

	list, total, err := h.service.List(c.Request.Context(), identity, page)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]orderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, newOrderResponse(o))
	}
	resp, err := h.paginator.response(c, number, total, items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) create(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	order, err := h.service.Create(c.Request.Context(), identity, req.Tickets)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

func (h *OrderHandler) get(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	order, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderDetailResponse(*order))
}

func (h *OrderHandler) delete(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Orders are immutable once placed.
func (h *OrderHandler) methodNotAllowed(c *gin.Context) {
	writeError(c, domain.ErrMethodNotAllowed)
}

func (h *OrderHandler) eticket(c *gin.Context) {
	identity, _ := identityFrom(c)
	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	pdf, err := h.service.ETicket(c.Request.Context(), identity, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="order-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
