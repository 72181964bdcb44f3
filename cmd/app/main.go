package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skybook/api"
	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/auth"
	"github.com/Domenick1991/skybook/internal/authz"
	"github.com/Domenick1991/skybook/internal/bootstrap"
	"github.com/Domenick1991/skybook/internal/cache"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/internal/media"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/internal/service/catalog"
	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/Domenick1991/skybook/internal/service/orders"
	"github.com/Domenick1991/skybook/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	policy, err := authz.New(ctx)
	if err != nil {
		log.Fatalf("load policy: %v", err)
	}
	tokens := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLMinutes)*time.Minute,
	)

	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	orderService := orders.NewOrderService(
		repository.NewOrderRepository(pool),
		flightRepo,
		producer,
		cfg.Kafka.OrderEventsTopic,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		orders.WithCache(redisCache),
	)
	catalogService := catalog.NewCatalogService(
		repository.NewAirportRepository(pool),
		repository.NewRouteRepository(pool),
		repository.NewCrewRepository(pool),
		repository.NewAirplaneRepository(pool),
		media.NewStore(cfg.HTTP.MediaDir, cfg.HTTP.MediaURL),
		redisCache,
	)
	userService := users.NewUserService(repository.NewUserRepository(pool), tokens)

	router := api.NewRouter(cfg.HTTP, api.Services{
		Flights: flightService,
		Orders:  orderService,
		Catalog: catalogService,
		Users:   userService,
		Tokens:  tokens,
		Policy:  policy,
	})

	checks := map[string]bootstrap.Checker{
		"postgres": pool.Ping,
		"redis":    redisCache.Ping,
		"kafka":    producer.CheckConnection,
	}
	if err := bootstrap.Run(ctx, cfg, router, checks); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
