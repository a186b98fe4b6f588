package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(otelchi.Middleware("booking-engine-api", otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Get("/theaters/{theaterId}/shows", app.GetShowsByTheater)

	r.Route("/shows/{showId}", func(r chi.Router) {
		r.Get("/seats", app.GetSeatMapByShow)
		r.Get("/seats/{seatLabel}", app.GetSeatState)
		r.Post("/holds", app.CreateHold)
	})

	r.Route("/holds/{holdId}", func(r chi.Router) {
		r.Delete("/", app.CancelHold)
		r.Post("/confirm", app.ConfirmBooking)
	})

	r.Get("/customers/{customerId}/bookings", app.GetCustomerBookings)

	return r
}
