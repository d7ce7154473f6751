package booking

import (
	"math"

	"github.com/iliyamo/showtime-booking/internal/model"
)

// seatPriceMultipliers maps a seat category to the factor applied to a
// show's base price.  The table is static configuration; changing it
// never touches prices already frozen on reservation_seats rows.
var seatPriceMultipliers = map[string]float64{
	model.SeatTypeStandard:   1.0,
	model.SeatTypePremium:    1.5,
	model.SeatTypeAccessible: 1.2,
}

// SeatPriceCents computes the price of a single seat for a show: the
// show's base price times the seat category multiplier, rounded to the
// nearest cent.  It is pure and deterministic; Create uses it to
// freeze per-seat prices at claim time so later catalog price changes
// do not affect existing reservations.  Unknown categories price as
// STANDARD.  A product past the uint32 range saturates at the maximum
// rather than wrapping.
func SeatPriceCents(basePriceCents uint32, seatType string) uint32 {
	m, ok := seatPriceMultipliers[seatType]
	if !ok {
		m = 1.0
	}
	v := math.Round(float64(basePriceCents) * m)
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
