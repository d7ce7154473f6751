package booking

import (
	"context"
	"time"

	"github.com/iliyamo/showtime-booking/internal/clock"
	"github.com/iliyamo/showtime-booking/internal/model"
)

// DefaultHoldWindow is how long an unconfirmed reservation keeps its
// seats before it becomes eligible for reclamation.
const DefaultHoldWindow = 10 * time.Minute

// Service orchestrates the reservation lifecycle against the claim
// store.  Create, Confirm and Release each run as one transaction; all
// coordination between concurrent callers happens through the store's
// transaction manager, never through in-process state.
type Service struct {
	store      Store
	clock      clock.Clock
	holdWindow time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithHoldWindow overrides the default hold window.
func WithHoldWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.holdWindow = d
		}
	}
}

// NewService constructs a Service.  Store and clock must be non-nil.
func NewService(store Store, clk clock.Clock, opts ...Option) *Service {
	if store == nil || clk == nil {
		panic("nil dependency passed to booking.NewService")
	}
	s := &Service{store: store, clock: clk, holdWindow: DefaultHoldWindow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReservationDetail is the denormalized view returned by Create: the
// reservation, its seats with frozen prices, and the show the caller
// needs to render a summary.
type ReservationDetail struct {
	Reservation model.Reservation    `json:"reservation"`
	Seats       []model.ReservedSeat `json:"seats"`
	Show        model.Show           `json:"show"`
}

// Create atomically claims the given seats of a show for holder.
// Within a single serializable transaction it verifies the show and
// seats exist, rejects any seat already covered by a live reservation,
// freezes per-seat prices and persists the reservation as a HOLD with
// a deadline one hold window away.  Either the whole claim commits or
// nothing does.
//
// Errors: ErrShowNotFound, ErrSeatNotFound (unknown seat id, seat of a
// different screen, or empty seat set), ErrSeatConflict.
func (s *Service) Create(ctx context.Context, holder string, showID uint64, seatIDs []uint64) (*ReservationDetail, error) {
	unique := dedupe(seatIDs)
	if len(unique) == 0 {
		return nil, ErrSeatNotFound
	}

	now := s.clock.Now()
	var detail ReservationDetail

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		// Locking the show row serializes creates per show, so the
		// conflict check below cannot miss a claim committed by a
		// concurrent transaction.
		show, err := s.store.GetShowForUpdate(txCtx, showID)
		if err != nil {
			return err
		}

		seats, err := s.store.GetSeatsByIDs(txCtx, unique)
		if err != nil {
			return err
		}
		if len(seats) != len(unique) {
			return ErrSeatNotFound
		}
		for _, seat := range seats {
			if seat.ScreenID != show.ScreenID {
				return ErrSeatNotFound
			}
		}

		taken, err := s.store.LiveReservedSeatIDs(txCtx, showID, unique, now)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return ErrSeatConflict
		}

		total := uint32(0)
		prices := make(map[uint64]uint32, len(seats))
		for _, seat := range seats {
			p := SeatPriceCents(show.BasePriceCents, seat.SeatType)
			prices[seat.ID] = p
			total += p
		}

		expiresAt := now.Add(s.holdWindow)
		res := model.Reservation{
			UserID:           holder,
			ShowID:           showID,
			Status:           model.ReservationStatusHold,
			TotalAmountCents: total,
			ExpiresAt:        &expiresAt,
			CreatedAt:        now,
		}
		if err := s.store.CreateReservation(txCtx, &res); err != nil {
			return err
		}

		lines := make([]model.ReservedSeat, 0, len(unique))
		for _, sid := range unique {
			lines = append(lines, model.ReservedSeat{
				ReservationID: res.ID,
				SeatID:        sid,
				PriceCents:    prices[sid],
			})
		}
		if err := s.store.CreateReservedSeats(txCtx, lines); err != nil {
			return err
		}

		detail = ReservationDetail{Reservation: res, Seats: lines, Show: *show}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Confirm finalizes a HOLD.  It locks the reservation row before
// inspecting its state so a concurrent confirm, release or sweep
// cannot interleave, then flips the status to CONFIRMED and clears the
// deadline.  The conflict check is not re-run: seat coverage was
// established at create time and confirmation changes only the status.
//
// Errors: ErrReservationNotFound (including a concurrently swept
// hold), ErrInvalidState when the reservation is not a HOLD.
func (s *Service) Confirm(ctx context.Context, reservationID uint64) (*model.Reservation, error) {
	var confirmed model.Reservation

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.store.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != model.ReservationStatusHold {
			return ErrInvalidState
		}
		if err := s.store.ConfirmReservation(txCtx, reservationID); err != nil {
			return err
		}
		res.Status = model.ReservationStatusConfirmed
		res.ExpiresAt = nil
		confirmed = *res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &confirmed, nil
}

// Release deletes a HOLD belonging to holder, seats first then the
// reservation, in one transaction.  A wrong holder is reported as
// ErrReservationNotFound, indistinguishable from a missing id, so the
// call leaks nothing to non-owners.  Confirmed reservations cannot be
// released through this path.
func (s *Service) Release(ctx context.Context, reservationID uint64, holder string) error {
	return s.store.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.store.GetReservationForHolder(txCtx, reservationID, holder)
		if err != nil {
			return err
		}
		if res.Status != model.ReservationStatusHold {
			return ErrInvalidState
		}
		return s.store.DeleteReservation(txCtx, reservationID)
	})
}

// SeatAvailability tags one seat of a show as available or reserved.
type SeatAvailability struct {
	Seat   model.Seat `json:"seat"`
	Status string     `json:"status"` // AVAILABLE | RESERVED
}

// Availability statuses reported by the availability query.
const (
	SeatStatusAvailable = "AVAILABLE"
	SeatStatusReserved  = "RESERVED"
)

// Availability returns every seat of the show's screen tagged with its
// live coverage.  The predicate is the same one the conflict checker
// uses, so a hold past its deadline counts as AVAILABLE even before
// the sweeper has removed the row.
func (s *Service) Availability(ctx context.Context, showID uint64) (*model.Show, []SeatAvailability, error) {
	show, err := s.store.GetShow(ctx, showID)
	if err != nil {
		return nil, nil, err
	}
	seats, err := s.store.SeatsByScreen(ctx, show.ScreenID)
	if err != nil {
		return nil, nil, err
	}
	taken, err := s.store.LiveReservedSeatIDs(ctx, showID, nil, s.clock.Now())
	if err != nil {
		return nil, nil, err
	}
	reserved := make(map[uint64]struct{}, len(taken))
	for _, id := range taken {
		reserved[id] = struct{}{}
	}
	out := make([]SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		status := SeatStatusAvailable
		if _, ok := reserved[seat.ID]; ok {
			status = SeatStatusReserved
		}
		out = append(out, SeatAvailability{Seat: seat, Status: status})
	}
	return show, out, nil
}

// ListForHolder returns the holder's reservations with their seats,
// newest first.
func (s *Service) ListForHolder(ctx context.Context, holder string) ([]ReservationDetail, error) {
	reservations, err := s.store.ReservationsByHolder(ctx, holder)
	if err != nil {
		return nil, err
	}
	details := make([]ReservationDetail, 0, len(reservations))
	for _, res := range reservations {
		seats, err := s.store.ReservationSeats(ctx, res.ID)
		if err != nil {
			return nil, err
		}
		show, err := s.store.GetShow(ctx, res.ShowID)
		if err != nil {
			return nil, err
		}
		details = append(details, ReservationDetail{Reservation: res, Seats: seats, Show: *show})
	}
	return details, nil
}

// dedupe drops repeated seat IDs while preserving order.  Invalid IDs
// (including 0) are kept so the catalog lookup's count comparison
// rejects them instead of silently shrinking the claim.
func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
