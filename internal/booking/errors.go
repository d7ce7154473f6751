// Package booking implements the reservation concurrency engine: the
// atomic claim of seats for a show, the hold/confirm/release lifecycle
// and the periodic reclamation of expired holds.  These sentinel values
// are the whole client-facing error taxonomy; handlers translate them
// into HTTP status codes and anything else surfaces as a generic
// database error.
package booking

import "errors"

// ErrShowNotFound is returned when the referenced show does not exist.
var ErrShowNotFound = errors.New("show not found")

// ErrSeatNotFound is returned when one or more requested seat IDs do
// not exist or do not belong to the show's screen.  A count mismatch
// after the catalog lookup is reported the same way rather than as a
// distinct internal error, keeping the taxonomy small.
var ErrSeatNotFound = errors.New("one or more seat ids invalid")

// ErrReservationNotFound is returned when no reservation matches the
// given ID, or, on release, when the reservation belongs to a
// different holder.  The two cases are indistinguishable on purpose so
// non-owners cannot probe for existence.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrSeatConflict is returned when any requested seat is already
// covered by a live reservation.  No partial claim is created.
var ErrSeatConflict = errors.New("one or more seats are already reserved")

// ErrInvalidState is returned when a lifecycle operation targets a
// reservation that is not in the required state, e.g. confirming or
// releasing a reservation that is no longer a HOLD.
var ErrInvalidState = errors.New("reservation is not in HOLD state")
