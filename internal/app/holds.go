package app

import (
	"net/http"

	"github.com/cinexhq/booking-engine/api"
	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) CreateHold(w http.ResponseWriter, r *http.Request) {
	showID, err := app.intURLParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateHoldRequest

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(input); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seats := make([]domain.SeatLabel, len(input.Seats))
	for i, seat := range input.Seats {
		seats[i] = domain.SeatLabel(seat)
	}

	hold, err := app.orchestrator.ReserveSeats(r.Context(), showID, input.CustomerId, seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := toApiHold(hold)

	if err := app.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelHold(w http.ResponseWriter, r *http.Request) {
	holdID := chi.URLParam(r, "holdId")

	if err := app.orchestrator.CancelReservation(r.Context(), holdID); err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toApiHold(hold *domain.Hold) api.HoldResponse {
	seats := make([]string, len(hold.Seats))
	for i, seat := range hold.Seats {
		seats[i] = string(seat)
	}

	return api.HoldResponse{
		HoldId:    hold.ID,
		ShowId:    hold.ShowID,
		Seats:     seats,
		ExpiresAt: hold.ExpiresAt,
	}
}
