package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cinexhq/booking-engine/api"
	"github.com/cinexhq/booking-engine/internal/booking"
	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/cinexhq/booking-engine/internal/ledger"
	"github.com/cinexhq/booking-engine/internal/mocks"
	"github.com/cinexhq/booking-engine/internal/payment"
	appvalidator "github.com/cinexhq/booking-engine/internal/validator"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testShowID     = 1
	testScreenID   = 10
	testTheaterID  = 3
	testCustomerID = 7
	testHoldTTL    = 5 * time.Minute
)

var testShowStart = time.Date(2026, 9, 4, 18, 30, 0, 0, time.UTC)

type testDeps struct {
	catalog  *mocks.MockCatalogRepo
	bookings *mocks.MockBookingRepo
	verifier *payment.MockVerifier
	clock    *clockwork.FakeClock
}

func defaultTestCatalog() *mocks.MockCatalogRepo {
	return &mocks.MockCatalogRepo{
		GetTheaterFunc: func(ctx context.Context, theaterID int) (*domain.Theater, error) {
			if theaterID != testTheaterID {
				return nil, domain.ErrRecordNotFound
			}
			return &domain.Theater{ID: testTheaterID, Name: "Downtown 5", City: "Austin"}, nil
		},
		GetShowFunc: func(ctx context.Context, showID int) (*domain.Show, error) {
			if showID != testShowID {
				return nil, domain.ErrRecordNotFound
			}
			return &domain.Show{
				ID:        testShowID,
				MovieID:   5,
				ScreenID:  testScreenID,
				StartTime: testShowStart,
				Duration:  120,
				BasePrice: decimal.NewFromInt(20),
			}, nil
		},
		GetScreenLayoutFunc: func(ctx context.Context, screenID int) (*domain.ScreenLayout, error) {
			if screenID != testScreenID {
				return nil, domain.ErrRecordNotFound
			}
			return &domain.ScreenLayout{
				ScreenID:   testScreenID,
				Rows:       2,
				Cols:       3,
				RowClasses: []domain.SeatClass{domain.SeatClassStandard, domain.SeatClassVIP},
			}, nil
		},
		FindShowsByTheaterAndDateRangeFunc: func(
			ctx context.Context, theaterID int, start, end time.Time) ([]domain.Show, error) {

			return nil, nil
		},
		GetCustomerFunc: func(ctx context.Context, customerID int) (*domain.Customer, error) {
			if customerID != testCustomerID {
				return nil, domain.ErrRecordNotFound
			}
			return &domain.Customer{ID: testCustomerID, Name: "Ada", Email: "ada@example.com"}, nil
		},
	}
}

func newTestApplication(opts ...func(*testDeps)) (*Application, *testDeps) {
	deps := &testDeps{
		catalog:  defaultTestCatalog(),
		bookings: &mocks.MockBookingRepo{},
		verifier: &payment.MockVerifier{},
		clock:    clockwork.NewFakeClock(),
	}

	for _, opt := range opts {
		opt(deps)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seatLedger := ledger.NewMemoryLedger(ledger.WithClock(deps.clock), ledger.WithHoldTTL(testHoldTTL))

	app := &Application{
		config:       Config{Env: "test"},
		logger:       logger,
		validator:    appvalidator.NewValidator(),
		catalogRepo:  deps.catalog,
		bookingRepo:  deps.bookings,
		ledger:       seatLedger,
		seatMap:      ledger.NewSeatMap(deps.catalog, seatLedger),
		orchestrator: booking.NewOrchestrator(deps.catalog, seatLedger, deps.bookings, deps.verifier, logger),
	}

	return app, deps
}

func executeRequest(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, url, reader)
	rr := httptest.NewRecorder()

	app.Routes().ServeHTTP(rr, req)

	return rr
}

func newRawRequest(t *testing.T, method, url, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, url, strings.NewReader(body))

	return req, httptest.NewRecorder()
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))

	return out
}

func checkErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int) api.ErrorResponse {
	t.Helper()

	require.Equal(t, wantStatus, rr.Code)

	resp := decodeResponse[api.ErrorResponse](t, rr)
	require.NotEmpty(t, resp.Message)

	return resp
}

func createHold(t *testing.T, app *Application, seats ...string) api.HoldResponse {
	t.Helper()

	rr := executeRequest(t, app, http.MethodPost, "/shows/1/holds", api.CreateHoldRequest{
		CustomerId: testCustomerID,
		Seats:      seats,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	return decodeResponse[api.HoldResponse](t, rr)
}
