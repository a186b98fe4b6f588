package domain

import (
	"context"
	"time"
)

// Booking is a confirmed, permanent seat assignment. It can only be created
// by converting an unexpired hold and is immutable thereafter.
type Booking struct {
	ID          string
	ShowID      int
	CustomerID  int
	Seats       []SeatLabel
	ConfirmedAt time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking Booking) error
	GetByCustomer(ctx context.Context, customerID int) ([]Booking, error)
}
