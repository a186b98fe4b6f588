// Package booking coordinates the hold -> confirm/release protocol between
// the catalog, the reservation ledger and the payment collaborator.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/cinexhq/booking-engine/internal/ledger"
	"github.com/shopspring/decimal"
)

type Orchestrator struct {
	catalog  domain.CatalogRepository
	ledger   ledger.Ledger
	bookings domain.BookingRepository
	payments domain.PaymentVerifier
	logger   *slog.Logger
}

func NewOrchestrator(
	catalog domain.CatalogRepository,
	l ledger.Ledger,
	bookings domain.BookingRepository,
	payments domain.PaymentVerifier,
	logger *slog.Logger) *Orchestrator {

	return &Orchestrator{
		catalog:  catalog,
		ledger:   l,
		bookings: bookings,
		payments: payments,
		logger:   logger,
	}
}

// FindShows lists the theater's shows whose start time falls inside the
// range.
func (o *Orchestrator) FindShows(
	ctx context.Context,
	theaterID int,
	start, end time.Time) ([]domain.Show, error) {

	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}

	if _, err := o.catalog.GetTheater(ctx, theaterID); err != nil {
		return nil, err
	}

	return o.catalog.FindShowsByTheaterAndDateRange(ctx, theaterID, start, end)
}

// ReserveSeats validates the selection against the show's screen layout and
// places a hold. Losing a race for any requested seat fails the whole
// request; the caller decides whether to retry with different seats.
func (o *Orchestrator) ReserveSeats(
	ctx context.Context,
	showID, customerID int,
	seats []domain.SeatLabel) (*domain.Hold, error) {

	seats = dedupe(seats)
	if len(seats) == 0 {
		return nil, domain.ErrInvalidSeatSelection
	}

	show, err := o.catalog.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	layout, err := o.catalog.GetScreenLayout(ctx, show.ScreenID)
	if err != nil {
		return nil, err
	}

	for _, seat := range seats {
		if !layout.Contains(seat) {
			return nil, domain.ErrInvalidSeatSelection
		}
	}

	return o.ledger.TryHold(ctx, showID, customerID, seats)
}

// ConfirmBooking verifies payment for the hold's total and converts the hold
// into a booking. A failed or declined verification leaves the hold
// untouched, so the caller may retry before expiry.
func (o *Orchestrator) ConfirmBooking(
	ctx context.Context,
	holdID, paymentProofToken string) (*domain.Booking, error) {

	hold, err := o.ledger.GetHold(ctx, holdID)
	if err != nil {
		return nil, err
	}

	show, err := o.catalog.GetShow(ctx, hold.ShowID)
	if err != nil {
		return nil, err
	}

	total := show.BasePrice.Mul(decimal.NewFromInt(int64(len(hold.Seats))))

	verified, err := o.payments.Verify(ctx, paymentProofToken, total)
	if err != nil {
		return nil, fmt.Errorf("payment verification: %w", err)
	}

	if !verified {
		return nil, domain.ErrPaymentDeclined
	}

	bkg, err := o.ledger.Confirm(ctx, holdID)
	if err != nil {
		return nil, err
	}

	// The ledger is the source of truth for seat assignment; a persistence
	// failure here must not undo a confirmed booking.
	if err := o.bookings.Create(ctx, *bkg); err != nil {
		o.logger.Error("failed to persist confirmed booking",
			"booking_id", bkg.ID, "show_id", bkg.ShowID, "error", err)
	}

	return bkg, nil
}

// CancelReservation releases the hold's seats back to the pool.
func (o *Orchestrator) CancelReservation(ctx context.Context, holdID string) error {
	return o.ledger.Release(ctx, holdID)
}

// Bookings returns the customer's confirmed bookings, oldest first.
func (o *Orchestrator) Bookings(ctx context.Context, customerID int) ([]domain.Booking, error) {
	if _, err := o.catalog.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	return o.bookings.GetByCustomer(ctx, customerID)
}

func dedupe(seats []domain.SeatLabel) []domain.SeatLabel {
	seen := make(map[domain.SeatLabel]bool, len(seats))
	out := seats[:0:0]

	for _, seat := range seats {
		if !seen[seat] {
			seen[seat] = true
			out = append(out, seat)
		}
	}

	return out
}
