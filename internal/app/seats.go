package app

import (
	"net/http"

	"github.com/cinexhq/booking-engine/api"
	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) GetSeatMapByShow(w http.ResponseWriter, r *http.Request) {
	showID, err := app.intURLParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	show, err := app.catalogRepo.GetShow(r.Context(), showID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	layout, err := app.catalogRepo.GetScreenLayout(r.Context(), show.ScreenID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	labels := layout.Labels()
	seatRows := make([]api.SeatRow, layout.Rows)

	for row := 0; row < layout.Rows; row++ {
		seatRows[row] = api.SeatRow{
			Row:   row + 1,
			Seats: make([]api.Seat, layout.Cols),
		}

		for col := 1; col <= layout.Cols; col++ {
			label := labels[row*layout.Cols+col-1]

			state, err := app.ledger.StateOf(r.Context(), showID, label)
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			seat := api.Seat{
				Label:  string(label),
				Row:    row + 1,
				Column: col,
				Class:  string(layout.ClassOfRow(row)),
				Status: string(state.Status),
			}

			if state.Status == domain.SeatHeld && !state.ExpiresAt.IsZero() {
				expiresAt := state.ExpiresAt
				seat.ExpiresAt = &expiresAt
			}

			seatRows[row].Seats[col-1] = seat
		}
	}

	resp := api.SeatMapResponse{
		ShowId:   showID,
		ScreenId: show.ScreenID,
		SeatRows: seatRows,
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatState(w http.ResponseWriter, r *http.Request) {
	showID, err := app.intURLParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	label := domain.SeatLabel(chi.URLParam(r, "seatLabel"))

	state, err := app.seatMap.StateOf(r.Context(), showID, label)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	seat := api.Seat{
		Label:  string(label),
		Status: string(state.Status),
	}

	if state.Status == domain.SeatHeld && !state.ExpiresAt.IsZero() {
		expiresAt := state.ExpiresAt
		seat.ExpiresAt = &expiresAt
	}

	if err := app.writeJSON(w, http.StatusOK, seat, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
