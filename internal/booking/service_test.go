package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/showtime-booking/internal/clock"
	"github.com/iliyamo/showtime-booking/internal/model"
)

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

// fixture returns a store with one screen of four seats plus a seat on
// another screen, and a show at base price 1000 cents.
func fixture() *fakeStore {
	shows := []model.Show{
		{ID: 1, ScreenID: 1, Title: "Solaris", StartsAt: testNow.Add(2 * time.Hour), DurationMin: 120, BasePriceCents: 1000},
	}
	seats := []model.Seat{
		{ID: 1, ScreenID: 1, RowLabel: "A", SeatNumber: 1, SeatType: model.SeatTypeStandard},
		{ID: 2, ScreenID: 1, RowLabel: "A", SeatNumber: 2, SeatType: model.SeatTypeStandard},
		{ID: 3, ScreenID: 1, RowLabel: "B", SeatNumber: 1, SeatType: model.SeatTypePremium},
		{ID: 4, ScreenID: 1, RowLabel: "B", SeatNumber: 2, SeatType: model.SeatTypeAccessible},
		{ID: 99, ScreenID: 2, RowLabel: "A", SeatNumber: 1, SeatType: model.SeatTypeStandard},
	}
	return newFakeStore(shows, seats)
}

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("claims seats atomically with frozen prices", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, err := svc.Create(ctx, "user-1", 1, []uint64{1, 3, 4})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		res := detail.Reservation
		if res.Status != model.ReservationStatusHold {
			t.Fatalf("expected status HOLD, got %s", res.Status)
		}
		if res.TotalAmountCents != 1000+1500+1200 {
			t.Fatalf("expected total 3700, got %d", res.TotalAmountCents)
		}
		if res.ExpiresAt == nil || !res.ExpiresAt.Equal(testNow.Add(DefaultHoldWindow)) {
			t.Fatalf("expected deadline %v, got %v", testNow.Add(DefaultHoldWindow), res.ExpiresAt)
		}
		if len(detail.Seats) != 3 {
			t.Fatalf("expected 3 seat lines, got %d", len(detail.Seats))
		}
		for _, line := range detail.Seats {
			if line.SeatID == 3 && line.PriceCents != 1500 {
				t.Fatalf("expected premium seat frozen at 1500, got %d", line.PriceCents)
			}
		}
	})

	t.Run("deduplicates repeated seat ids", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, err := svc.Create(ctx, "user-1", 1, []uint64{2, 2, 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(detail.Seats) != 1 {
			t.Fatalf("expected 1 seat line, got %d", len(detail.Seats))
		}
		if detail.Reservation.TotalAmountCents != 1000 {
			t.Fatalf("expected total 1000, got %d", detail.Reservation.TotalAmountCents)
		}
	})

	t.Run("unknown show", func(t *testing.T) {
		svc := NewService(fixture(), clock.NewFixed(testNow))
		if _, err := svc.Create(ctx, "user-1", 42, []uint64{1}); !errors.Is(err, ErrShowNotFound) {
			t.Fatalf("expected ErrShowNotFound, got %v", err)
		}
	})

	t.Run("unknown seat id", func(t *testing.T) {
		svc := NewService(fixture(), clock.NewFixed(testNow))
		if _, err := svc.Create(ctx, "user-1", 1, []uint64{1, 1234}); !errors.Is(err, ErrSeatNotFound) {
			t.Fatalf("expected ErrSeatNotFound, got %v", err)
		}
	})

	t.Run("zero seat id among valid ones", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))
		if _, err := svc.Create(ctx, "user-1", 1, []uint64{1, 0}); !errors.Is(err, ErrSeatNotFound) {
			t.Fatalf("expected ErrSeatNotFound, got %v", err)
		}
		// the valid seat must not have been claimed on the side
		if len(store.reservations) != 0 {
			t.Fatalf("expected no reservation rows, got %d", len(store.reservations))
		}
	})

	t.Run("seat of another screen", func(t *testing.T) {
		svc := NewService(fixture(), clock.NewFixed(testNow))
		if _, err := svc.Create(ctx, "user-1", 1, []uint64{1, 99}); !errors.Is(err, ErrSeatNotFound) {
			t.Fatalf("expected ErrSeatNotFound, got %v", err)
		}
	})

	t.Run("empty seat set", func(t *testing.T) {
		svc := NewService(fixture(), clock.NewFixed(testNow))
		if _, err := svc.Create(ctx, "user-1", 1, nil); !errors.Is(err, ErrSeatNotFound) {
			t.Fatalf("expected ErrSeatNotFound, got %v", err)
		}
		if _, err := svc.Create(ctx, "user-1", 1, []uint64{0}); !errors.Is(err, ErrSeatNotFound) {
			t.Fatalf("expected ErrSeatNotFound for all-zero ids, got %v", err)
		}
	})

	t.Run("rejects overlap with a live hold and leaves no partial claim", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		if _, err := svc.Create(ctx, "user-1", 1, []uint64{1, 2}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		_, err := svc.Create(ctx, "user-2", 1, []uint64{2, 3})
		if !errors.Is(err, ErrSeatConflict) {
			t.Fatalf("expected ErrSeatConflict, got %v", err)
		}
		// seat 3 was free; the failed claim must not have taken it
		if len(store.reservations) != 1 {
			t.Fatalf("expected 1 reservation after rejected claim, got %d", len(store.reservations))
		}
		if _, err := svc.Create(ctx, "user-2", 1, []uint64{3}); err != nil {
			t.Fatalf("seat 3 should still be claimable, got %v", err)
		}
	})

	t.Run("rejects overlap with a confirmed claim", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, err := svc.Create(ctx, "user-1", 1, []uint64{1})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		if _, err := svc.Confirm(ctx, detail.Reservation.ID); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if _, err := svc.Create(ctx, "user-2", 1, []uint64{1}); !errors.Is(err, ErrSeatConflict) {
			t.Fatalf("expected ErrSeatConflict, got %v", err)
		}
	})

	t.Run("expired hold does not block a new claim", func(t *testing.T) {
		store := fixture()
		clk := clock.NewFixed(testNow)
		svc := NewService(store, clk)

		if _, err := svc.Create(ctx, "user-1", 1, []uint64{1}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		clk.Advance(DefaultHoldWindow + time.Second)

		// the expired hold has not been swept, yet it no longer counts
		detail, err := svc.Create(ctx, "user-2", 1, []uint64{1})
		if err != nil {
			t.Fatalf("expected claim over expired hold to succeed, got %v", err)
		}
		if detail.Reservation.UserID != "user-2" {
			t.Fatalf("unexpected holder %q", detail.Reservation.UserID)
		}
	})

	t.Run("later price change does not touch frozen prices", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		first, err := svc.Create(ctx, "user-1", 1, []uint64{3})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}

		show := store.shows[1]
		show.BasePriceCents = 2000
		store.shows[1] = show

		second, err := svc.Create(ctx, "user-2", 1, []uint64{4})
		if err != nil {
			t.Fatalf("second create failed: %v", err)
		}
		if second.Reservation.TotalAmountCents != 2400 {
			t.Fatalf("expected new claim priced at 2400, got %d", second.Reservation.TotalAmountCents)
		}

		lines, _ := store.ReservationSeats(ctx, first.Reservation.ID)
		if len(lines) != 1 || lines[0].PriceCents != 1500 {
			t.Fatalf("expected first claim still frozen at 1500, got %+v", lines)
		}
	})
}

// TestService_CreateConcurrent drives many goroutines at the same seat
// and requires exactly one winner, the rest rejected with a conflict
// and no partial state left behind.
func TestService_CreateConcurrent(t *testing.T) {
	t.Parallel()
	store := fixture()
	svc := NewService(store, clock.NewFixed(testNow))

	const workers = 32
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), "user-"+string(rune('a'+i%26)), 1, []uint64{1, 2})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSeatConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly 1 winning claim, got %d", won)
	}
	if len(store.reservations) != 1 {
		t.Fatalf("expected 1 reservation in store, got %d", len(store.reservations))
	}
	if len(store.lines) != 1 {
		t.Fatalf("expected line items for exactly 1 reservation, got %d", len(store.lines))
	}
}

func TestService_Confirm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("flips hold to confirmed and clears the deadline", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, err := svc.Create(ctx, "user-1", 1, []uint64{1})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		res, err := svc.Confirm(ctx, detail.Reservation.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Status != model.ReservationStatusConfirmed {
			t.Fatalf("expected CONFIRMED, got %s", res.Status)
		}
		if res.ExpiresAt != nil {
			t.Fatalf("expected cleared deadline, got %v", res.ExpiresAt)
		}
		stored, _ := store.lockedSnapshot(detail.Reservation.ID)
		if stored.Status != model.ReservationStatusConfirmed || stored.ExpiresAt != nil {
			t.Fatalf("store not updated: %+v", stored)
		}
	})

	t.Run("second confirm is invalid state", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, _ := svc.Create(ctx, "user-1", 1, []uint64{1})
		if _, err := svc.Confirm(ctx, detail.Reservation.ID); err != nil {
			t.Fatalf("first confirm failed: %v", err)
		}
		if _, err := svc.Confirm(ctx, detail.Reservation.ID); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		svc := NewService(fixture(), clock.NewFixed(testNow))
		if _, err := svc.Confirm(ctx, 42); !errors.Is(err, ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})
}

func TestService_Release(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("frees the seats for the next claim", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, _ := svc.Create(ctx, "user-1", 1, []uint64{1, 2})
		if err := svc.Release(ctx, detail.Reservation.ID, "user-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := store.lockedSnapshot(detail.Reservation.ID); ok {
			t.Fatalf("expected reservation deleted")
		}
		if _, err := svc.Create(ctx, "user-2", 1, []uint64{1, 2}); err != nil {
			t.Fatalf("released seats should be claimable, got %v", err)
		}
	})

	t.Run("wrong holder looks like not found", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, _ := svc.Create(ctx, "user-1", 1, []uint64{1})
		if err := svc.Release(ctx, detail.Reservation.ID, "user-2"); !errors.Is(err, ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
		if _, ok := store.lockedSnapshot(detail.Reservation.ID); !ok {
			t.Fatalf("reservation must survive a wrong-holder release")
		}
	})

	t.Run("confirm then release is invalid state", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, _ := svc.Create(ctx, "user-1", 1, []uint64{1})
		if _, err := svc.Confirm(ctx, detail.Reservation.ID); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if err := svc.Release(ctx, detail.Reservation.ID, "user-1"); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("release then confirm is not found", func(t *testing.T) {
		store := fixture()
		svc := NewService(store, clock.NewFixed(testNow))

		detail, _ := svc.Create(ctx, "user-1", 1, []uint64{1})
		if err := svc.Release(ctx, detail.Reservation.ID, "user-1"); err != nil {
			t.Fatalf("release failed: %v", err)
		}
		if _, err := svc.Confirm(ctx, detail.Reservation.ID); !errors.Is(err, ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})
}

func TestService_Availability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := fixture()
	clk := clock.NewFixed(testNow)
	svc := NewService(store, clk)

	if _, err := svc.Create(ctx, "user-1", 1, []uint64{1, 3}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	statusOf := func(t *testing.T, seatID uint64) string {
		t.Helper()
		_, seats, err := svc.Availability(ctx, 1)
		if err != nil {
			t.Fatalf("availability failed: %v", err)
		}
		if len(seats) != 4 {
			t.Fatalf("expected 4 seats of screen 1, got %d", len(seats))
		}
		for _, s := range seats {
			if s.Seat.ID == seatID {
				return s.Status
			}
		}
		t.Fatalf("seat %d missing from availability", seatID)
		return ""
	}

	if got := statusOf(t, 1); got != SeatStatusReserved {
		t.Fatalf("held seat should be RESERVED, got %s", got)
	}
	if got := statusOf(t, 2); got != SeatStatusAvailable {
		t.Fatalf("free seat should be AVAILABLE, got %s", got)
	}

	// past the deadline the unswept hold no longer covers its seats
	clk.Advance(DefaultHoldWindow + time.Second)
	if got := statusOf(t, 1); got != SeatStatusAvailable {
		t.Fatalf("expired hold should read AVAILABLE, got %s", got)
	}

	if _, _, err := svc.Availability(ctx, 42); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("expected ErrShowNotFound, got %v", err)
	}
}

func TestService_ListForHolder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := fixture()
	svc := NewService(store, clock.NewFixed(testNow))

	mine, _ := svc.Create(ctx, "user-1", 1, []uint64{1})
	_, _ = svc.Create(ctx, "user-2", 1, []uint64{2})

	details, err := svc.ListForHolder(ctx, "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(details))
	}
	if details[0].Reservation.ID != mine.Reservation.ID {
		t.Fatalf("unexpected reservation %d", details[0].Reservation.ID)
	}
	if details[0].Show.ID != 1 || len(details[0].Seats) != 1 {
		t.Fatalf("detail not joined: %+v", details[0])
	}
}
