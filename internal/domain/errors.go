package domain

import "errors"

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidRange         = errors.New("start date must not be after end date")
	ErrInvalidSeatSelection = errors.New("seat selection is empty or contains seats outside the screen layout")
	ErrSeatUnavailable      = errors.New("seat(s) are already held or booked")
	ErrHoldExpired          = errors.New("hold has expired, please select your seats again")
	ErrHoldNotFound         = errors.New("hold not found")
	ErrUnknownScreen        = errors.New("unknown screen")
	ErrUnknownSeat          = errors.New("seat is not part of the screen layout")
	ErrPaymentDeclined      = errors.New("payment verification failed")
)
