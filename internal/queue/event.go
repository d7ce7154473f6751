// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a hold is successfully
// confirmed. It carries enough detail for downstream consumers to log,
// notify or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID    uint64   `json:"reservation_id"`
	UserID           string   `json:"user_id"`
	ShowID           uint64   `json:"show_id"`
	ShowTitle        string   `json:"show_title"`
	ScreenID         uint64   `json:"screen_id"`
	ScreenName       string   `json:"screen_name"`
	StartsAt         string   `json:"starts_at"`
	SeatLabels       []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
