// Command server wires up and runs the seat reservation API.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/showtime-booking/internal/booking"
	"github.com/iliyamo/showtime-booking/internal/clock"
	"github.com/iliyamo/showtime-booking/internal/config"
	"github.com/iliyamo/showtime-booking/internal/database"
	"github.com/iliyamo/showtime-booking/internal/handler"
	"github.com/iliyamo/showtime-booking/internal/queue"
	"github.com/iliyamo/showtime-booking/internal/repository"
	"github.com/iliyamo/showtime-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	svc := booking.NewService(store, clock.NewSystem(), booking.WithHoldWindow(cfg.HoldWindow))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background reclamation of lapsed holds. Correctness does not
	// depend on the cadence; the conflict checker already ignores
	// expired holds.
	sweeper := booking.NewSweeper(store, clock.NewSystem(), cfg.SweepInterval)
	go sweeper.Run(ctx)

	// Consumer that appends confirmed reservations to logs/booking.log.
	// It reconnects on its own and never brings the server down.
	go func() {
		if err := queue.StartConfirmedConsumer(); err != nil {
			log.Printf("confirmed-consumer: %v", err)
		}
	}()

	// Redis is optional: with no client the rate limiter and response
	// cache pass requests straight through.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	h := router.Handlers{
		Reservation:  handler.NewReservationHandler(svc, store),
		Availability: handler.NewAvailabilityHandler(svc),
		Catalog:      handler.NewCatalogHandler(store),
		Reporting:    handler.NewReportingHandler(store),
	}
	router.Register(e, h, cfg.JWTSecret, rdb, config.LoadRateLimitConfig(), config.LoadCacheConfig())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
