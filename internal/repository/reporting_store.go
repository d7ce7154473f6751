package repository

import (
	"context"
	"time"
)

// ShowSalesReport summarizes confirmed ticket sales for one show.  It
// is a pure read-side aggregation over historical claims; only
// CONFIRMED reservations count as sold.
type ShowSalesReport struct {
	ShowID         uint64    `json:"show_id"`
	Title          string    `json:"title"`
	ScreenID       uint64    `json:"screen_id"`
	ScreenName     string    `json:"screen_name"`
	StartsAt       time.Time `json:"starts_at"`
	TotalSeats     uint32    `json:"total_seats"`
	SoldTickets    uint32    `json:"sold_tickets"`
	RemainingSeats uint32    `json:"remaining_seats"`
	RevenueCents   uint64    `json:"revenue_cents"`
}

// ShowSalesReports returns per-show sales figures for every show that
// has at least one confirmed ticket, ordered by start time.
func (s *Store) ShowSalesReports(ctx context.Context) ([]ShowSalesReport, error) {
	const q = `SELECT sh.id, sh.title, sc.id, sc.name, sh.starts_at,
                      (SELECT COUNT(*) FROM seats se WHERE se.screen_id = sc.id),
                      COUNT(rs.id),
                      COALESCE(SUM(rs.price_cents), 0)
               FROM shows sh
               JOIN screens sc ON sc.id = sh.screen_id
               JOIN reservations r ON r.show_id = sh.id AND r.status = 'CONFIRMED'
               JOIN reservation_seats rs ON rs.reservation_id = r.id
               GROUP BY sh.id, sh.title, sc.id, sc.name, sh.starts_at
               ORDER BY sh.starts_at ASC`
	rows, err := s.conn(ctx).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reports := make([]ShowSalesReport, 0)
	for rows.Next() {
		var rep ShowSalesReport
		if err := rows.Scan(&rep.ShowID, &rep.Title, &rep.ScreenID, &rep.ScreenName, &rep.StartsAt,
			&rep.TotalSeats, &rep.SoldTickets, &rep.RevenueCents); err != nil {
			return nil, err
		}
		rep.RemainingSeats = rep.TotalSeats - rep.SoldTickets
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
