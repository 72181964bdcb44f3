package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/skybook/config"
	_ "github.com/Domenick1991/skybook/docs"
	"github.com/Domenick1991/skybook/internal/service/catalog"
	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/Domenick1991/skybook/internal/service/orders"
	"github.com/Domenick1991/skybook/internal/service/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Flights flights.FlightUseCase
	Orders  orders.OrderUseCase
	Catalog catalog.CatalogUseCase
	Users   users.UserUseCase
	Tokens  TokenParser
	Policy  Policy
}

func NewRouter(cfg config.HTTPConfig, s Services) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), RequestID(), Logger(), corsMiddleware(cfg.AllowedOrigins))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, detailResponse{Detail: "Method \"" + c.Request.Method + "\" not allowed."})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, detailResponse{Detail: "Not found."})
	})

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.Swagger {
		r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}
	if cfg.MediaDir != "" && cfg.MediaURL != "" {
		r.Static(cfg.MediaURL, cfg.MediaDir)
	}

	paginator := NewPaginator(cfg.PageSize)
	catalogHandler := NewCatalogHandler(s.Catalog)
	userHandler := NewUserHandler(s.Users)

	api := r.Group("/api")
	userHandler.RegisterPublic(api.Group("/user"))

	authenticated := api.Group("", Authenticate(s.Tokens))
	guarded := func(path, resource string) *gin.RouterGroup {
		return authenticated.Group(path, Authorize(s.Policy, resource))
	}

	userHandler.RegisterMe(guarded("/user/me", "me"))
	catalogHandler.RegisterCrew(guarded("/crew", "crew"))
	catalogHandler.RegisterAirports(guarded("/airports", "airports"))
	catalogHandler.RegisterRoutes(guarded("/routs", "routes"))
	catalogHandler.RegisterAirplaneTypes(guarded("/airplane_types", "airplane_types"))
	catalogHandler.RegisterAirplanes(guarded("/airplanes", "airplanes"))
	NewFlightHandler(s.Flights, paginator).Register(guarded("/flights", "flights"))
	NewOrderHandler(s.Orders, paginator).Register(guarded("/orders", "orders"))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
