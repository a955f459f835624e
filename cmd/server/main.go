package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/database"
	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	reservations := repository.NewReservationRepo(db)
	tables := repository.NewTableRepo(db)

	rh := handler.NewReservationHandler(reservations)
	rh.Publish = queue_publisher.PublishStatusChanged
	th := handler.NewTableHandler(tables)
	th.Publish = queue_publisher.PublishStatusChanged

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	readCache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, rh, th, readCache, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
