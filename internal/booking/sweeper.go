package booking

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/showtime-booking/internal/clock"
)

// DefaultSweepInterval is how often the sweeper reclaims expired holds.
// The cadence is a tuning parameter, not a correctness one: the live
// predicate already ignores holds past their deadline, so the sweep is
// pure garbage collection.
const DefaultSweepInterval = time.Minute

// Sweeper periodically deletes HOLD reservations whose deadline has
// passed, cascading their seats.  Each pass is one set-based delete in
// its own transaction; running a pass twice in a row is a no-op the
// second time.
type Sweeper struct {
	store    Store
	clock    clock.Clock
	interval time.Duration
}

// NewSweeper constructs a Sweeper.  A non-positive interval falls back
// to DefaultSweepInterval.
func NewSweeper(store Store, clk clock.Clock, interval time.Duration) *Sweeper {
	if store == nil || clk == nil {
		panic("nil dependency passed to booking.NewSweeper")
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{store: store, clock: clk, interval: interval}
}

// Run blocks, sweeping on a fixed ticker until ctx is cancelled.  A
// failed pass is logged and simply retried on the next tick; deletion
// is idempotent so no reservation is ever left half-reclaimed.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	log.Printf("sweeper: running every %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("sweeper: stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.Printf("sweeper: pass failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sweeper: reclaimed %d expired hold(s)", n)
			}
		}
	}
}

// Sweep performs a single pass and returns the number of reclaimed
// holds.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	var n int64
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		n, err = s.store.DeleteExpiredHolds(txCtx, s.clock.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
