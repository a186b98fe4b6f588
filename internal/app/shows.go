package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cinexhq/booking-engine/api"
	"github.com/cinexhq/booking-engine/internal/domain"
)

const dateLayout = "2006-01-02"

func (app *Application) GetShowsByTheater(w http.ResponseWriter, r *http.Request) {
	theaterID, err := app.intURLParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	end, err := parseDateParam(r, "end")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// The end date is inclusive: a show starting any time that day matches.
	endOfDay := end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	shows, err := app.orchestrator.FindShows(r.Context(), theaterID, start, endOfDay)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ShowsResponse{
		TheaterId: theaterID,
		Shows:     toApiShows(shows),
	}

	if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s date is required (format %s)", name, dateLayout)
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in format %s", name, dateLayout)
	}

	return date, nil
}

func toApiShows(shows []domain.Show) []api.Show {
	apiShows := make([]api.Show, len(shows))

	for i, show := range shows {
		apiShows[i] = api.Show{
			Id:        show.ID,
			MovieId:   show.MovieID,
			ScreenId:  show.ScreenID,
			StartTime: show.StartTime,
			EndTime:   show.EndTime(),
			BasePrice: show.BasePrice,
		}
	}

	return apiShows
}
