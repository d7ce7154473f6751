package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/showtime-booking/internal/booking"
	"github.com/iliyamo/showtime-booking/internal/model"
)

const showColumns = `id, screen_id, title, starts_at, duration_min, base_price_cents, created_at`

func scanShow(row *sql.Row) (*model.Show, error) {
	var sh model.Show
	err := row.Scan(&sh.ID, &sh.ScreenID, &sh.Title, &sh.StartsAt, &sh.DurationMin, &sh.BasePriceCents, &sh.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrShowNotFound
		}
		return nil, err
	}
	return &sh, nil
}

// GetShow retrieves a show by its ID.
func (s *Store) GetShow(ctx context.Context, showID uint64) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE id = ?`
	return scanShow(s.conn(ctx).QueryRowContext(ctx, q, showID))
}

// GetShowForUpdate retrieves a show while taking an exclusive lock on
// its row.  Must be called inside WithTx; concurrent creates for the
// same show block here until the earlier transaction commits.
func (s *Store) GetShowForUpdate(ctx context.Context, showID uint64) (*model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE id = ? FOR UPDATE`
	return scanShow(s.conn(ctx).QueryRowContext(ctx, q, showID))
}

// CreateShow inserts a show and populates the generated ID.
func (s *Store) CreateShow(ctx context.Context, sh *model.Show) error {
	const q = `INSERT INTO shows (screen_id, title, starts_at, duration_min, base_price_cents) VALUES (?, ?, ?, ?, ?)`
	res, err := s.conn(ctx).ExecContext(ctx, q, sh.ScreenID, sh.Title, sh.StartsAt.UTC(), sh.DurationMin, sh.BasePriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sh.ID = uint64(id)
	const sel = `SELECT created_at FROM shows WHERE id = ?`
	return s.conn(ctx).QueryRowContext(ctx, sel, sh.ID).Scan(&sh.CreatedAt)
}

// ListShowsByScreen returns all shows of a screen ordered by start
// time ascending.
func (s *Store) ListShowsByScreen(ctx context.Context, screenID uint64) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE screen_id = ? ORDER BY starts_at ASC`
	rows, err := s.conn(ctx).QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var sh model.Show
		if err := rows.Scan(&sh.ID, &sh.ScreenID, &sh.Title, &sh.StartsAt, &sh.DurationMin, &sh.BasePriceCents, &sh.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindOverlappingShows returns shows on the screen whose scheduled
// interval overlaps [start, end).  A show overlaps when it starts
// before the proposed end and its own end falls after the proposed
// start.  Used as a precondition when creating shows; booking never
// calls it.
func (s *Store) FindOverlappingShows(ctx context.Context, screenID uint64, start, end time.Time) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + `
               FROM shows
               WHERE screen_id = ?
                 AND starts_at < ?
                 AND DATE_ADD(starts_at, INTERVAL duration_min MINUTE) > ?`
	rows, err := s.conn(ctx).QueryContext(ctx, q, screenID, end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var overlaps []model.Show
	for rows.Next() {
		var sh model.Show
		if err := rows.Scan(&sh.ID, &sh.ScreenID, &sh.Title, &sh.StartsAt, &sh.DurationMin, &sh.BasePriceCents, &sh.CreatedAt); err != nil {
			return nil, err
		}
		overlaps = append(overlaps, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return overlaps, nil
}
