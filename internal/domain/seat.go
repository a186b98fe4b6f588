package domain

import "time"

// SeatLabel identifies a seat position within a screen layout, e.g. "A1".
// Seat identity across the system is the pair (showID, SeatLabel).
type SeatLabel string

type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatHeld      SeatStatus = "Held"
	SeatBooked    SeatStatus = "Booked"
)

// SeatState is the current occupancy of one seat for one show. A seat is in
// exactly one status at a time: Available carries nothing, Held carries the
// hold id and its expiry, Booked carries the booking id and is terminal.
type SeatState struct {
	Status    SeatStatus
	HoldID    string
	ExpiresAt time.Time
	BookingID string
}
