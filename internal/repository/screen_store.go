package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/showtime-booking/internal/model"
)

// ErrScreenNotFound is returned when a screen lookup yields no rows.
var ErrScreenNotFound = errors.New("screen not found")

// ErrScreenExists is returned when a screen with the same name already
// exists.
var ErrScreenExists = errors.New("screen already exists")

// GetScreen retrieves a screen by its ID.
func (s *Store) GetScreen(ctx context.Context, screenID uint64) (*model.Screen, error) {
	const q = `SELECT id, name, created_at FROM screens WHERE id = ?`
	var sc model.Screen
	err := s.conn(ctx).QueryRowContext(ctx, q, screenID).Scan(&sc.ID, &sc.Name, &sc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}
	return &sc, nil
}

// ListScreens returns all screens ordered by name.
func (s *Store) ListScreens(ctx context.Context) ([]model.Screen, error) {
	const q = `SELECT id, name, created_at FROM screens ORDER BY name`
	rows, err := s.conn(ctx).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Screen
	for rows.Next() {
		var sc model.Screen
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateScreenWithSeats inserts a screen together with its seat layout
// in one transaction.  The generated IDs are populated on the passed
// models.  A duplicate name yields ErrScreenExists.
func (s *Store) CreateScreenWithSeats(ctx context.Context, sc *model.Screen, seats []model.Seat) error {
	return s.WithTx(ctx, func(txCtx context.Context) error {
		var exists int
		err := s.conn(txCtx).QueryRowContext(txCtx, `SELECT 1 FROM screens WHERE name = ? LIMIT 1`, sc.Name).Scan(&exists)
		if err == nil {
			return ErrScreenExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		res, err := s.conn(txCtx).ExecContext(txCtx, `INSERT INTO screens (name) VALUES (?)`, sc.Name)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		sc.ID = uint64(id)
		if err := s.conn(txCtx).QueryRowContext(txCtx, `SELECT created_at FROM screens WHERE id = ?`, sc.ID).Scan(&sc.CreatedAt); err != nil {
			return err
		}
		for i := range seats {
			seats[i].ScreenID = sc.ID
		}
		return s.createSeatsBulk(txCtx, seats)
	})
}

// createSeatsBulk inserts multiple seats in one statement.  Passing an
// empty slice has no effect.
func (s *Store) createSeatsBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (screen_id, row_label, seat_number, seat_type) VALUES `
	args := make([]any, 0, len(seats)*4)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, seat.ScreenID, seat.RowLabel, seat.SeatNumber, seat.SeatType)
	}
	_, err := s.conn(ctx).ExecContext(ctx, query, args...)
	return err
}
