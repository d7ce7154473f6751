package model

// Seat type categories.  The category determines the price multiplier
// applied to a show's base price when the seat is reserved.
const (
	SeatTypeStandard   = "STANDARD"
	SeatTypePremium    = "PREMIUM"
	SeatTypeAccessible = "ACCESSIBLE"
)

// Seat is an individually claimable unit belonging to a screen.
// RowLabel and SeatNumber identify the seat's position; SeatType
// indicates its class.
//
// Fields:
//
//	ID         – primary key identifier.
//	ScreenID   – screen the seat belongs to.
//	RowLabel   – e.g. A, B, AA.
//	SeatNumber – position in the row (1-based).
//	SeatType   – STANDARD | PREMIUM | ACCESSIBLE.
type Seat struct {
	ID         uint64 `json:"id"`          // seats.id
	ScreenID   uint64 `json:"screen_id"`   // seats.screen_id
	RowLabel   string `json:"row_label"`   // seats.row_label
	SeatNumber uint32 `json:"seat_number"` // seats.seat_number
	SeatType   string `json:"seat_type"`   // seats.seat_type
}
