package app

import (
	"net/http"

	"github.com/cinexhq/booking-engine/api"
	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	holdID := chi.URLParam(r, "holdId")

	var input api.ConfirmBookingRequest

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(input); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.orchestrator.ConfirmBooking(r.Context(), holdID, input.PaymentToken)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.BookingResponse{
		Booking: toApiBooking(*booking),
	}

	if err := app.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCustomerBookings(w http.ResponseWriter, r *http.Request) {
	customerID, err := app.intURLParam(r, "customerId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bookings, err := app.orchestrator.Bookings(r.Context(), customerID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	apiBookings := make([]api.Booking, len(bookings))
	for i, booking := range bookings {
		apiBookings[i] = toApiBooking(booking)
	}

	resp := api.BookingsResponse{
		CustomerId: customerID,
		Bookings:   apiBookings,
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBooking(booking domain.Booking) api.Booking {
	seats := make([]string, len(booking.Seats))
	for i, seat := range booking.Seats {
		seats[i] = string(seat)
	}

	return api.Booking{
		BookingId:   booking.ID,
		ShowId:      booking.ShowID,
		CustomerId:  booking.CustomerID,
		Seats:       seats,
		ConfirmedAt: booking.ConfirmedAt,
	}
}
