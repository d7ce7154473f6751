package model

import "time"

// Show is a scheduled screening on a particular screen.  StartsAt and
// DurationMin define the schedule; BasePriceCents is the price of a
// STANDARD seat before the per-seat multiplier is applied.
// All timestamps are UTC.
//
// Fields:
//
//	ID             – primary key identifier.
//	ScreenID       – screen the show runs on.
//	Title          – movie or event title.
//	StartsAt       – when the show begins (UTC).
//	DurationMin    – running time in minutes.
//	BasePriceCents – base seat price in cents.
//	CreatedAt      – creation timestamp.
type Show struct {
	ID             uint64    `json:"id"`               // shows.id
	ScreenID       uint64    `json:"screen_id"`        // shows.screen_id
	Title          string    `json:"title"`            // shows.title
	StartsAt       time.Time `json:"starts_at"`        // shows.starts_at
	DurationMin    uint32    `json:"duration_min"`     // shows.duration_min
	BasePriceCents uint32    `json:"base_price_cents"` // shows.base_price_cents
	CreatedAt      time.Time `json:"created_at"`       // shows.created_at
}

// EndsAt derives the end of the show from its start and duration.
func (s Show) EndsAt() time.Time {
	return s.StartsAt.Add(time.Duration(s.DurationMin) * time.Minute)
}
