package ledger

import (
	"context"
	"errors"

	"github.com/cinexhq/booking-engine/internal/domain"
)

// SeatMap materializes the fixed seat layout of a show's screen and exposes
// current per-seat state. It has no mutation methods: all writes go through
// the ledger.
type SeatMap struct {
	catalog domain.CatalogRepository
	ledger  Ledger
}

func NewSeatMap(catalog domain.CatalogRepository, ledger Ledger) *SeatMap {
	return &SeatMap{catalog: catalog, ledger: ledger}
}

// LayoutFor returns the ordered seat labels of the screen, derived
// deterministically from its row/column template.
func (m *SeatMap) LayoutFor(ctx context.Context, screenID int) ([]domain.SeatLabel, error) {
	layout, err := m.catalog.GetScreenLayout(ctx, screenID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUnknownScreen
		}

		return nil, err
	}

	return layout.Labels(), nil
}

// StateOf reports the occupancy of one seat of one show, failing with
// domain.ErrUnknownSeat when the label is outside the screen's layout.
func (m *SeatMap) StateOf(ctx context.Context, showID int, seat domain.SeatLabel) (domain.SeatState, error) {
	show, err := m.catalog.GetShow(ctx, showID)
	if err != nil {
		return domain.SeatState{}, err
	}

	layout, err := m.catalog.GetScreenLayout(ctx, show.ScreenID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.SeatState{}, domain.ErrUnknownScreen
		}

		return domain.SeatState{}, err
	}

	if !layout.Contains(seat) {
		return domain.SeatState{}, domain.ErrUnknownSeat
	}

	return m.ledger.StateOf(ctx, showID, seat)
}
