package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type updateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPublic mounts the endpoints that need no token.
func (h *UserHandler) RegisterPublic(router *gin.RouterGroup) {
	router.POST("/register/", h.register)
	router.POST("/token/", h.token)
	router.POST("/token/refresh/", h.refresh)
	router.POST("/token/verify/", h.verify)
}

// RegisterMe mounts the profile endpoints; they require authentication.
func (h *UserHandler) RegisterMe(router *gin.RouterGroup) {
	router.GET("/", h.me)
	router.PUT("/", h.updateMe)
	router.PATCH("/", h.updateMe)
	router.POST("/", func(c *gin.Context) { writeError(c, domain.ErrMethodNotAllowed) })
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(*user))
}

func (h *UserHandler) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	pair, err := h.service.Token(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *UserHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	access, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *UserHandler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	if err := h.service.Verify(c.Request.Context(), req.Token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *UserHandler) me(c *gin.Context) {
	identity, _ := identityFrom(c)
	user, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}

// updateMe serves PUT, which needs every field, and PATCH.
func (h *UserHandler) updateMe(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	if c.Request.Method == http.MethodPut {
		verr := &domain.ValidationError{}
		if req.Email == nil {
			verr.Add("email", "This field is required.")
		}
		if req.Password == nil {
			verr.Add("password", "This field is required.")
		}
		if err := verr.OrNil(); err != nil {
			writeError(c, err)
			return
		}
	}

	user, err := h.service.UpdateMe(c.Request.Context(), identity, users.UpdateInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}
