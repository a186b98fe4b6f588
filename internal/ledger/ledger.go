// Package ledger is the authoritative record of per-show seat occupancy.
// It is the single writer of seat state: every hold, confirmation and
// release goes through a Ledger, and all other components only read.
package ledger

import (
	"context"

	"github.com/cinexhq/booking-engine/internal/domain"
)

// Ledger serializes concurrent hold/confirm/release traffic per show.
// Operations on different shows never contend with each other; overlapping
// requests on the same show are serialized and exactly one wins.
type Ledger interface {
	// TryHold atomically places a hold on all requested seats, or fails the
	// whole request with domain.ErrSeatUnavailable if any seat is taken.
	// It never waits for a seat to free up.
	TryHold(ctx context.Context, showID, customerID int, seats []domain.SeatLabel) (*domain.Hold, error)

	// GetHold returns the hold if it exists and has not expired.
	GetHold(ctx context.Context, holdID string) (*domain.Hold, error)

	// Confirm converts an unexpired hold into a booking. The hold is
	// destroyed on success, so confirming twice fails with
	// domain.ErrHoldNotFound.
	Confirm(ctx context.Context, holdID string) (*domain.Booking, error)

	// Release frees the hold's seats. Releasing an expired hold that has not
	// been cleaned up yet succeeds.
	Release(ctx context.Context, holdID string) error

	// StateOf reports the current occupancy of one seat for one show.
	StateOf(ctx context.Context, showID int, seat domain.SeatLabel) (domain.SeatState, error)
}
