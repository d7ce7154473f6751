// Package handler contains the Echo HTTP handlers.  Handlers parse and
// validate input, call into the booking service or the store, and map
// domain errors onto HTTP status codes.  They hold no business rules
// of their own.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showtime-booking/internal/booking"
)

// errNoIdentity is returned by holderID when no caller identity was
// attached to the context by the identity middleware.
var errNoIdentity = errors.New("no caller identity in context")

// holderID extracts the caller identity placed in the context by the
// identity middleware.
func holderID(c echo.Context) (string, error) {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v, nil
	}
	return "", errNoIdentity
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// writeBookingError maps the booking error taxonomy onto HTTP
// responses.  Missing resources are 404, seat contention and wrong
// lifecycle states are 409, anything else is a 500 with a generic
// body so internals do not leak.
func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrShowNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	case errors.Is(err, booking.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "one or more seat ids invalid"})
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats already reserved"})
	case errors.Is(err, booking.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is no longer a hold"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
