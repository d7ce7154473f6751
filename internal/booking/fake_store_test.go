package booking

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/showtime-booking/internal/model"
)

// fakeStore is an in-memory Store for exercising the engine without a
// database.  WithTx takes a single mutex, which gives the same
// observable guarantee as the serializable transaction plus show-row
// lock of the real store: transactions never interleave.
type fakeStore struct {
	mu sync.Mutex

	shows map[uint64]model.Show
	seats map[uint64]model.Seat

	nextResID    uint64
	reservations map[uint64]model.Reservation
	lines        map[uint64][]model.ReservedSeat // keyed by reservation ID
}

func newFakeStore(shows []model.Show, seats []model.Seat) *fakeStore {
	f := &fakeStore{
		shows:        make(map[uint64]model.Show),
		seats:        make(map[uint64]model.Seat),
		nextResID:    1,
		reservations: make(map[uint64]model.Reservation),
		lines:        make(map[uint64][]model.ReservedSeat),
	}
	for _, s := range shows {
		f.shows[s.ID] = s
	}
	for _, s := range seats {
		f.seats[s.ID] = s
	}
	return f
}

type fakeTxKey struct{}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, struct{}{}))
}

func (f *fakeStore) GetShow(ctx context.Context, showID uint64) (*model.Show, error) {
	s, ok := f.shows[showID]
	if !ok {
		return nil, ErrShowNotFound
	}
	return &s, nil
}

func (f *fakeStore) GetShowForUpdate(ctx context.Context, showID uint64) (*model.Show, error) {
	return f.GetShow(ctx, showID)
}

func (f *fakeStore) GetSeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error) {
	out := make([]model.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		if s, ok := f.seats[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SeatsByScreen(ctx context.Context, screenID uint64) ([]model.Seat, error) {
	var out []model.Seat
	for _, s := range f.seats {
		if s.ScreenID == screenID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) LiveReservedSeatIDs(ctx context.Context, showID uint64, seatIDs []uint64, now time.Time) ([]uint64, error) {
	want := map[uint64]struct{}{}
	for _, id := range seatIDs {
		want[id] = struct{}{}
	}
	var out []uint64
	for resID, res := range f.reservations {
		if res.ShowID != showID || !res.Live(now) {
			continue
		}
		for _, line := range f.lines[resID] {
			if seatIDs == nil {
				out = append(out, line.SeatID)
				continue
			}
			if _, ok := want[line.SeatID]; ok {
				out = append(out, line.SeatID)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	r.ID = f.nextResID
	f.nextResID++
	f.reservations[r.ID] = *r
	return nil
}

func (f *fakeStore) CreateReservedSeats(ctx context.Context, seats []model.ReservedSeat) error {
	for _, s := range seats {
		f.lines[s.ReservationID] = append(f.lines[s.ReservationID], s)
	}
	return nil
}

func (f *fakeStore) GetReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return &r, nil
}

func (f *fakeStore) GetReservationForHolder(ctx context.Context, id uint64, holder string) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok || r.UserID != holder {
		return nil, ErrReservationNotFound
	}
	return &r, nil
}

func (f *fakeStore) ConfirmReservation(ctx context.Context, id uint64) error {
	r, ok := f.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	r.Status = model.ReservationStatusConfirmed
	r.ExpiresAt = nil
	f.reservations[id] = r
	return nil
}

func (f *fakeStore) DeleteReservation(ctx context.Context, id uint64) error {
	delete(f.lines, id)
	delete(f.reservations, id)
	return nil
}

func (f *fakeStore) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, r := range f.reservations {
		if r.Status == model.ReservationStatusHold && r.ExpiresAt != nil && !r.ExpiresAt.After(now) {
			delete(f.lines, id)
			delete(f.reservations, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ReservationSeats(ctx context.Context, reservationID uint64) ([]model.ReservedSeat, error) {
	return f.lines[reservationID], nil
}

func (f *fakeStore) ReservationsByHolder(ctx context.Context, holder string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.UserID == holder {
			out = append(out, r)
		}
	}
	return out, nil
}

// lockedSnapshot reads a reservation under the store mutex so
// concurrent tests can assert on state safely.
func (f *fakeStore) lockedSnapshot(id uint64) (model.Reservation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	return r, ok
}
