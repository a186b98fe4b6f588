package domain

import "time"

// Hold is a time-bounded provisional reservation of specific seats. It is
// created by a winning TryHold and destroyed on confirm, release or expiry.
type Hold struct {
	ID         string
	ShowID     int
	CustomerID int
	Seats      []SeatLabel
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func (h Hold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}
