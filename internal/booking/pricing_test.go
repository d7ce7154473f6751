package booking

import (
	"math"
	"testing"

	"github.com/iliyamo/showtime-booking/internal/model"
)

func TestSeatPriceCents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		base     uint32
		seatType string
		want     uint32
	}{
		{"standard is base price", 1000, model.SeatTypeStandard, 1000},
		{"premium is 1.5x", 1000, model.SeatTypePremium, 1500},
		{"accessible is 1.2x", 1000, model.SeatTypeAccessible, 1200},
		{"rounds to nearest cent", 999, model.SeatTypePremium, 1499},
		{"accessible rounding", 1005, model.SeatTypeAccessible, 1206},
		{"unknown type prices as standard", 1000, "BALCONY", 1000},
		{"zero base", 0, model.SeatTypePremium, 0},
		{"saturates instead of wrapping", math.MaxUint32, model.SeatTypePremium, math.MaxUint32},
		{"max base standard is unchanged", math.MaxUint32, model.SeatTypeStandard, math.MaxUint32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SeatPriceCents(tc.base, tc.seatType); got != tc.want {
				t.Fatalf("SeatPriceCents(%d, %q) = %d, want %d", tc.base, tc.seatType, got, tc.want)
			}
		})
	}
}
