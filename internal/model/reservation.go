package model

import "time"

// Reservation statuses.  A released or expired reservation is deleted
// outright rather than marked with a terminal status, so these two
// values are the only ones that ever appear in the table.
const (
	ReservationStatusHold      = "HOLD"
	ReservationStatusConfirmed = "CONFIRMED"
)

// Reservation is a user's claim on one or more seats of a show.  A
// reservation starts as a HOLD with a deadline; confirming it clears
// the deadline and makes the claim permanent.  ExpiresAt is set if and
// only if the status is HOLD.
//
// Fields:
//
//	ID               – primary key identifier.
//	UserID           – opaque caller identity supplied by the boundary.
//	ShowID           – show being reserved.
//	Status           – HOLD or CONFIRMED.
//	TotalAmountCents – sum of the seat prices, fixed at creation.
//	ExpiresAt        – hold deadline; nil once confirmed.
//	CreatedAt        – creation timestamp.
type Reservation struct {
	ID               uint64     `json:"id"`                   // reservations.id
	UserID           string     `json:"user_id"`              // reservations.user_id
	ShowID           uint64     `json:"show_id"`              // reservations.show_id
	Status           string     `json:"status"`               // reservations.status
	TotalAmountCents uint32     `json:"total_amount_cents"`   // reservations.total_amount_cents
	ExpiresAt        *time.Time `json:"expires_at,omitempty"` // reservations.expires_at (nullable)
	CreatedAt        time.Time  `json:"created_at"`           // reservations.created_at
}

// Live reports whether the reservation still covers its seats at the
// given instant: CONFIRMED always does, a HOLD only until its deadline.
// An unswept expired HOLD is therefore not live even while its row
// still exists.
func (r Reservation) Live(now time.Time) bool {
	if r.Status == ReservationStatusConfirmed {
		return true
	}
	return r.Status == ReservationStatusHold && r.ExpiresAt != nil && r.ExpiresAt.After(now)
}

// ReservedSeat is one seat claimed under a reservation.  PriceCents is
// frozen at claim time and does not follow later catalog price changes.
//
// Fields:
//
//	ID            – primary key identifier.
//	ReservationID – owning reservation; rows cascade on delete.
//	SeatID        – seat that has been claimed.
//	PriceCents    – price for this seat in cents, frozen at creation.
type ReservedSeat struct {
	ID            uint64 `json:"id"`             // reservation_seats.id
	ReservationID uint64 `json:"reservation_id"` // reservation_seats.reservation_id
	SeatID        uint64 `json:"seat_id"`        // reservation_seats.seat_id
	PriceCents    uint32 `json:"price_cents"`    // reservation_seats.price_cents
}
