// Package api holds the request and response payloads of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Show struct {
	Id        int             `json:"id"`
	MovieId   int             `json:"movieId"`
	ScreenId  int             `json:"screenId"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

type ShowsResponse struct {
	TheaterId int    `json:"theaterId"`
	Shows     []Show `json:"shows"`
}

type Seat struct {
	Label     string     `json:"label"`
	Row       int        `json:"row"`
	Column    int        `json:"column"`
	Class     string     `json:"class"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ShowId   int       `json:"showId"`
	ScreenId int       `json:"screenId"`
	SeatRows []SeatRow `json:"seatRows"`
}

type CreateHoldRequest struct {
	CustomerId int      `json:"customerId" validate:"required,gt=0"`
	Seats      []string `json:"seats" validate:"required,min=1,max=10,dive,seat_label"`
}

type HoldResponse struct {
	HoldId    string    `json:"holdId"`
	ShowId    int       `json:"showId"`
	Seats     []string  `json:"seats"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ConfirmBookingRequest struct {
	PaymentToken string `json:"paymentToken" validate:"required"`
}

type Booking struct {
	BookingId   string    `json:"bookingId"`
	ShowId      int       `json:"showId"`
	CustomerId  int       `json:"customerId"`
	Seats       []string  `json:"seats"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

type BookingsResponse struct {
	CustomerId int       `json:"customerId"`
	Bookings   []Booking `json:"bookings"`
}
