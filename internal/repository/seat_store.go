package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/showtime-booking/internal/model"
)

const seatColumns = `id, screen_id, row_label, seat_number, seat_type`

// GetSeatsByIDs returns the seats matching the given IDs.  IDs without
// a row are simply absent from the result; callers that must treat a
// missing seat as an error compare the counts.  Passing an empty slice
// returns an empty result.
func (s *Store) GetSeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error) {
	if len(seatIDs) == 0 {
		return []model.Seat{}, nil
	}
	placeholders := make([]string, len(seatIDs))
	args := make([]any, len(seatIDs))
	for i, id := range seatIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	q := `SELECT ` + seatColumns + ` FROM seats WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := s.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var seat model.Seat
		if err := rows.Scan(&seat.ID, &seat.ScreenID, &seat.RowLabel, &seat.SeatNumber, &seat.SeatType); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatsByScreen retrieves all seats of a screen ordered by row_label
// then seat_number for deterministic output.
func (s *Store) SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + `
               FROM seats
               WHERE screen_id = ?
               ORDER BY row_label, seat_number`
	rows, err := s.conn(ctx).QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var seat model.Seat
		if err := rows.Scan(&seat.ID, &seat.ScreenID, &seat.RowLabel, &seat.SeatNumber, &seat.SeatType); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}
