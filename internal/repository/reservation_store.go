package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/showtime-booking/internal/booking"
	"github.com/iliyamo/showtime-booking/internal/model"
)

const reservationColumns = `id, user_id, show_id, status, total_amount_cents, expires_at, created_at`

func scanReservation(row *sql.Row) (*model.Reservation, error) {
	var r model.Reservation
	var expiresAt sql.NullTime
	err := row.Scan(&r.ID, &r.UserID, &r.ShowID, &r.Status, &r.TotalAmountCents, &expiresAt, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		r.ExpiresAt = &t
	}
	return &r, nil
}

// LiveReservedSeatIDs returns the subset of seatIDs covered for the
// show by a live reservation: CONFIRMED, or HOLD with expires_at after
// now.  A nil or empty seatIDs slice checks all seats of the show.
// Holds past their deadline are excluded even when the sweeper has not
// removed them yet.
func (s *Store) LiveReservedSeatIDs(ctx context.Context, showID uint64, seatIDs []uint64, now time.Time) ([]uint64, error) {
	q := `SELECT DISTINCT rs.seat_id
          FROM reservation_seats rs
          JOIN reservations r ON r.id = rs.reservation_id
          WHERE r.show_id = ?
            AND (r.status = 'CONFIRMED' OR (r.status = 'HOLD' AND r.expires_at > ?))`
	args := []any{showID, now.UTC()}
	if len(seatIDs) > 0 {
		placeholders := make([]string, len(seatIDs))
		for i, id := range seatIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		q += ` AND rs.seat_id IN (` + strings.Join(placeholders, ",") + `)`
	}
	rows, err := s.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var taken []uint64
	for rows.Next() {
		var sid uint64
		if err := rows.Scan(&sid); err != nil {
			return nil, err
		}
		taken = append(taken, sid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// CreateReservation inserts a reservation and populates its generated
// ID and created_at timestamp.
func (s *Store) CreateReservation(ctx context.Context, r *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, show_id, status, total_amount_cents, expires_at) VALUES (?, ?, ?, ?, ?)`
	var expiresAt any
	if r.ExpiresAt != nil {
		expiresAt = r.ExpiresAt.UTC()
	}
	res, err := s.conn(ctx).ExecContext(ctx, q, r.UserID, r.ShowID, r.Status, r.TotalAmountCents, expiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return s.conn(ctx).QueryRowContext(ctx, sel, r.ID).Scan(&r.CreatedAt)
}

// CreateReservedSeats inserts multiple reservation_seats rows in a
// single statement.  Passing an empty slice has no effect.
func (s *Store) CreateReservedSeats(ctx context.Context, seats []model.ReservedSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO reservation_seats (reservation_id, seat_id, price_cents) VALUES `
	args := make([]any, 0, len(seats)*3)
	for i, rs := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, rs.ReservationID, rs.SeatID, rs.PriceCents)
	}
	_, err := s.conn(ctx).ExecContext(ctx, query, args...)
	return err
}

// GetReservationForUpdate loads a reservation with an exclusive row
// lock.  Must be called inside WithTx; a concurrent confirm, release
// or sweep of the same row blocks until this transaction finishes.
func (s *Store) GetReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	return scanReservation(s.conn(ctx).QueryRowContext(ctx, q, id))
}

// GetReservationForHolder loads a reservation only when both the id
// and the holder match.  The ownership check doubles as the existence
// check so a wrong-holder request is indistinguishable from a missing
// reservation.
func (s *Store) GetReservationForHolder(ctx context.Context, id uint64, holder string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? AND user_id = ? FOR UPDATE`
	return scanReservation(s.conn(ctx).QueryRowContext(ctx, q, id, holder))
}

// ConfirmReservation flips a reservation to CONFIRMED and clears its
// deadline.
func (s *Store) ConfirmReservation(ctx context.Context, id uint64) error {
	const q = `UPDATE reservations SET status = 'CONFIRMED', expires_at = NULL WHERE id = ?`
	res, err := s.conn(ctx).ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrReservationNotFound
	}
	return nil
}

// DeleteReservation removes a reservation's seats and then the
// reservation itself.
func (s *Store) DeleteReservation(ctx context.Context, id uint64) error {
	if _, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM reservation_seats WHERE reservation_id = ?`, id); err != nil {
		return err
	}
	_, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// DeleteExpiredHolds removes every HOLD whose deadline is strictly
// before now, together with its seats, and returns the number of
// reclaimed reservations.  Both deletes are set-based; running the
// pair twice in a row deletes nothing the second time.
func (s *Store) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	const delSeats = `DELETE rs FROM reservation_seats rs
                      JOIN reservations r ON r.id = rs.reservation_id
                      WHERE r.status = 'HOLD' AND r.expires_at < ?`
	if _, err := s.conn(ctx).ExecContext(ctx, delSeats, now.UTC()); err != nil {
		return 0, err
	}
	const delRes = `DELETE FROM reservations WHERE status = 'HOLD' AND expires_at < ?`
	res, err := s.conn(ctx).ExecContext(ctx, delRes, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ReservationSeats returns the line items of a reservation ordered by
// seat id.
func (s *Store) ReservationSeats(ctx context.Context, reservationID uint64) ([]model.ReservedSeat, error) {
	const q = `SELECT id, reservation_id, seat_id, price_cents
               FROM reservation_seats
               WHERE reservation_id = ?
               ORDER BY seat_id`
	rows, err := s.conn(ctx).QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.ReservedSeat
	for rows.Next() {
		var rs model.ReservedSeat
		if err := rows.Scan(&rs.ID, &rs.ReservationID, &rs.SeatID, &rs.PriceCents); err != nil {
			return nil, err
		}
		seats = append(seats, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// ReservationsByHolder lists a holder's reservations newest first.
func (s *Store) ReservationsByHolder(ctx context.Context, holder string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
               FROM reservations
               WHERE user_id = ?
               ORDER BY created_at DESC, id DESC`
	rows, err := s.conn(ctx).QueryContext(ctx, q, holder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Reservation, 0)
	for rows.Next() {
		var r model.Reservation
		var expiresAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.UserID, &r.ShowID, &r.Status, &r.TotalAmountCents, &expiresAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			r.ExpiresAt = &t
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
