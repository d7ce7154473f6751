// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/showtime-booking/internal/config"
	"github.com/iliyamo/showtime-booking/internal/handler"
	"github.com/iliyamo/showtime-booking/internal/middleware"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Reservation  *handler.ReservationHandler
	Availability *handler.AvailabilityHandler
	Catalog      *handler.CatalogHandler
	Reporting    *handler.ReportingHandler
}

// Register attaches every route to the Echo instance.
//
// Three surfaces are registered:
//
//   - /v1/healthz plus the public catalog and availability reads, with
//     a short-TTL response cache on availability when Redis is up.
//   - the reservation lifecycle under /v1, behind the identity
//     middleware and rate limiting so one caller cannot hammer the
//     claim path.
//   - catalog writes and reports under /v1, also behind identity.
//
// rdb may be nil; the Redis-backed middleware then degrades to no-ops.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {
	e.GET("/v1/healthz", handler.Health)

	// Public reads. Availability changes every time a hold is taken or
	// lapses, so the cache TTL must stay short.
	pub := e.Group("/v1")
	pub.GET("/screens", h.Catalog.ListScreens)
	pub.GET("/screens/:id/seats", h.Catalog.ScreenSeats)
	pub.GET("/screens/:id/shows", h.Catalog.ListScreenShows)
	pub.GET("/shows/:id", h.Catalog.GetShow)
	pub.GET("/shows/:id/seats", h.Availability.ShowSeats, middleware.ResponseCache(cacheCfg, rdb))

	// Reservation lifecycle. Identity first so the rate limiter can
	// key on the caller rather than the source IP.
	res := e.Group("/v1", middleware.Identity(jwtSecret), middleware.RateLimit(rlCfg, rdb))
	res.POST("/reservations", h.Reservation.CreateReservation)
	res.POST("/reservations/:id/confirm", h.Reservation.ConfirmReservation)
	res.DELETE("/reservations/:id", h.Reservation.ReleaseReservation)
	res.GET("/my-reservations", h.Reservation.ListMyReservations)

	// Catalog writes and reporting.
	admin := e.Group("/v1", middleware.Identity(jwtSecret))
	admin.POST("/screens", h.Catalog.CreateScreen)
	admin.POST("/shows", h.Catalog.CreateShow)
	admin.GET("/reports/shows", h.Reporting.ShowSales)
}
