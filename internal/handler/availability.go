package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showtime-booking/internal/booking"
)

// AvailabilityHandler serves the public seat-availability view of a
// show.  The endpoint needs no identity and is a good fit for the
// short-TTL response cache.
type AvailabilityHandler struct {
	Service *booking.Service
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc *booking.Service) *AvailabilityHandler {
	if svc == nil {
		panic("nil service passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Service: svc}
}

// ShowSeats handles GET /v1/shows/:id/seats.  Every seat of the show's
// screen is returned tagged AVAILABLE or RESERVED.  A hold past its
// deadline already counts as AVAILABLE even if the sweeper has not
// removed it yet.
func (h *AvailabilityHandler) ShowSeats(c echo.Context) error {
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	show, seats, err := h.Service.Availability(c.Request().Context(), showID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show":  show,
		"seats": seats,
	})
}
