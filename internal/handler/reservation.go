package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showtime-booking/internal/booking"
	"github.com/iliyamo/showtime-booking/internal/model"
	"github.com/iliyamo/showtime-booking/internal/queue"
	queue_publisher "github.com/iliyamo/showtime-booking/internal/service"
)

// CatalogReader is the read-only slice of the store the reservation
// handler needs to enrich the confirmed event with seat labels and
// screen info.  *repository.Store satisfies it.
type CatalogReader interface {
	GetShow(ctx context.Context, showID uint64) (*model.Show, error)
	GetScreen(ctx context.Context, screenID uint64) (*model.Screen, error)
	ReservationSeats(ctx context.Context, reservationID uint64) ([]model.ReservedSeat, error)
	GetSeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error)
}

// ReservationHandler exposes the reservation lifecycle over HTTP: hold
// seats, confirm, release, and list the caller's reservations.  The
// service layer owns the transactions; the handler only translates
// between HTTP and the domain.
type ReservationHandler struct {
	Service *booking.Service
	Catalog CatalogReader

	// publish sends the confirmed event; tests swap it out.
	publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// NewReservationHandler constructs a ReservationHandler.  Both
// dependencies must be non-nil.
func NewReservationHandler(svc *booking.Service, catalog CatalogReader) *ReservationHandler {
	if svc == nil || catalog == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Service: svc,
		Catalog: catalog,
		publish: queue_publisher.PublishReservationConfirmed,
	}
}

// CreateReservation handles POST /v1/reservations.  The body carries a
// show id and a list of seat ids; on success all seats are held for
// the caller atomically and a 201 with the reservation, its priced
// seats and a hold deadline is returned.  A contended seat yields 409
// with no partial claim left behind.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	holder, err := holderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ShowID  uint64   `json:"show_id"`
		SeatIDs []uint64 `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ShowID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_id is required"})
	}
	if len(body.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	}

	detail, err := h.Service.Create(c.Request().Context(), holder, body.ShowID, body.SeatIDs)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// ConfirmReservation handles POST /v1/reservations/:id/confirm.  Only
// a reservation still in HOLD can be confirmed; an expired (and swept)
// hold is a 404, a confirmed or otherwise unconfirmable one a 409.
// After a successful confirm a reservation.confirmed event is
// published in the background; a broker outage never fails the
// request.
func (h *ReservationHandler) ConfirmReservation(c echo.Context) error {
	if _, err := holderID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	res, err := h.Service.Confirm(c.Request().Context(), id)
	if err != nil {
		return writeBookingError(c, err)
	}

	go h.publishConfirmed(*res)

	return c.JSON(http.StatusOK, res)
}

// ReleaseReservation handles DELETE /v1/reservations/:id.  Only the
// holder can release, and only while the reservation is a HOLD; the
// seats become claimable again immediately.  A wrong holder gets the
// same 404 as a missing id.
func (h *ReservationHandler) ReleaseReservation(c echo.Context) error {
	holder, err := holderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	if err := h.Service.Release(c.Request().Context(), id, holder); err != nil {
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMyReservations handles GET /v1/my-reservations and returns the
// caller's reservations with their seats, newest first.
func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	holder, err := holderID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Service.ListForHolder(c.Request().Context(), holder)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}

// publishConfirmed assembles and publishes the reservation.confirmed
// event.  It runs outside the request, with its own deadline, and
// treats every failure as log-and-drop.
func (h *ReservationHandler) publishConfirmed(res model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	show, err := h.Catalog.GetShow(ctx, res.ShowID)
	if err != nil {
		log.Printf("confirmed-event: load show %d: %v", res.ShowID, err)
		return
	}
	screen, err := h.Catalog.GetScreen(ctx, show.ScreenID)
	if err != nil {
		log.Printf("confirmed-event: load screen %d: %v", show.ScreenID, err)
		return
	}
	lines, err := h.Catalog.ReservationSeats(ctx, res.ID)
	if err != nil {
		log.Printf("confirmed-event: load seats of %d: %v", res.ID, err)
		return
	}
	seatIDs := make([]uint64, 0, len(lines))
	for _, l := range lines {
		seatIDs = append(seatIDs, l.SeatID)
	}
	seats, err := h.Catalog.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		log.Printf("confirmed-event: resolve seat labels of %d: %v", res.ID, err)
		return
	}
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, fmt.Sprintf("%s%d", s.RowLabel, s.SeatNumber))
	}

	ev := queue.ReservationConfirmedEvent{
		ReservationID:    res.ID,
		UserID:           res.UserID,
		ShowID:           show.ID,
		ShowTitle:        show.Title,
		ScreenID:         screen.ID,
		ScreenName:       screen.Name,
		StartsAt:         show.StartsAt.UTC().Format(time.RFC3339),
		SeatLabels:       labels,
		TotalAmountCents: res.TotalAmountCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	_ = h.publish(ctx, ev)
}
