package booking

import (
	"context"
	"time"

	"github.com/iliyamo/showtime-booking/internal/model"
)

// Store is the durable claim store as seen by the engine.  The MySQL
// implementation lives in internal/repository; tests substitute an
// in-memory fake.  WithTx runs fn inside one transaction; every
// method called with the context it passes participates in that
// transaction.  The implementation must use an isolation level (or an
// equivalent per-show lock, which GetShowForUpdate provides) that
// prevents two overlapping creates from both committing.
type Store interface {
	// WithTx executes fn within a single serializable transaction.
	// fn returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// GetShow returns the show or ErrShowNotFound.
	GetShow(ctx context.Context, showID uint64) (*model.Show, error)

	// GetShowForUpdate is GetShow with an exclusive lock on the show
	// row, serializing concurrent creates for the same show.
	GetShowForUpdate(ctx context.Context, showID uint64) (*model.Show, error)

	// GetSeatsByIDs returns the seats matching the given IDs.  Missing
	// IDs are simply absent from the result; the caller compares
	// counts.
	GetSeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error)

	// SeatsByScreen returns every seat of a screen ordered by row and
	// number.
	SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error)

	// LiveReservedSeatIDs is the conflict checker: the subset of
	// seatIDs covered for the show by a live reservation (CONFIRMED,
	// or HOLD with a deadline after now).  A nil seatIDs slice means
	// "all seats of the show".
	LiveReservedSeatIDs(ctx context.Context, showID uint64, seatIDs []uint64, now time.Time) ([]uint64, error)

	// CreateReservation inserts the reservation and populates its ID.
	CreateReservation(ctx context.Context, r *model.Reservation) error

	// CreateReservedSeats bulk-inserts the line items of a reservation.
	CreateReservedSeats(ctx context.Context, seats []model.ReservedSeat) error

	// GetReservationForUpdate loads a reservation with an exclusive
	// row lock, or ErrReservationNotFound.
	GetReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error)

	// GetReservationForHolder loads a reservation only when both id
	// and holder match; anything else is ErrReservationNotFound.
	GetReservationForHolder(ctx context.Context, id uint64, holder string) (*model.Reservation, error)

	// ConfirmReservation sets status CONFIRMED and clears the deadline.
	ConfirmReservation(ctx context.Context, id uint64) error

	// DeleteReservation removes the reservation and its seats.
	DeleteReservation(ctx context.Context, id uint64) error

	// DeleteExpiredHolds removes every HOLD whose deadline has passed,
	// together with its seats, and reports how many reservations were
	// reclaimed.
	DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error)

	// ReservationSeats returns the line items of a reservation.
	ReservationSeats(ctx context.Context, reservationID uint64) ([]model.ReservedSeat, error)

	// ReservationsByHolder lists a holder's reservations newest first.
	ReservationsByHolder(ctx context.Context, holder string) ([]model.Reservation, error)
}
