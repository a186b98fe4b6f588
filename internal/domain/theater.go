package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Theater struct {
	ID         int
	Name       string
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

// Screen belongs to exactly one theater. It carries the theater id rather
// than a live reference so that ownership stays one-directional.
type Screen struct {
	ID        int
	TheaterID int
	Name      string
}

type SeatClass string

const (
	SeatClassStandard SeatClass = "Standard"
	SeatClassVIP      SeatClass = "VIP"
	SeatClassRecliner SeatClass = "Recliner"
)

// ScreenLayout is the fixed seat template of a screen: Rows x Cols positions
// with a seat class per row. The layout never changes once a screen is built.
type ScreenLayout struct {
	ScreenID   int
	Rows       int
	Cols       int
	RowClasses []SeatClass // len == Rows; empty means all Standard
}

// Labels returns the full ordered seat label sequence of the layout,
// row-major: A1, A2, ..., B1, B2, ...
func (l ScreenLayout) Labels() []SeatLabel {
	labels := make([]SeatLabel, 0, l.Rows*l.Cols)

	for row := 0; row < l.Rows; row++ {
		for col := 1; col <= l.Cols; col++ {
			labels = append(labels, seatLabelAt(row, col))
		}
	}

	return labels
}

// Contains reports whether the label denotes a position inside the layout.
func (l ScreenLayout) Contains(label SeatLabel) bool {
	for row := 0; row < l.Rows; row++ {
		for col := 1; col <= l.Cols; col++ {
			if seatLabelAt(row, col) == label {
				return true
			}
		}
	}

	return false
}

// ClassOfRow returns the seat class of the zero-based row index.
func (l ScreenLayout) ClassOfRow(row int) SeatClass {
	if row < len(l.RowClasses) {
		return l.RowClasses[row]
	}

	return SeatClassStandard
}

func seatLabelAt(row, col int) SeatLabel {
	return SeatLabel(fmt.Sprintf("%s%d", rowLetters(row), col))
}

// rowLetters converts a zero-based row index to spreadsheet-style letters:
// 0 -> A, 25 -> Z, 26 -> AA.
func rowLetters(row int) string {
	letters := ""
	for row >= 0 {
		letters = string(rune('A'+row%26)) + letters
		row = row/26 - 1
	}

	return letters
}

// Show is immutable once scheduled. Seat occupancy lives in the reservation
// ledger, never on the show itself.
type Show struct {
	ID        int
	MovieID   int
	ScreenID  int
	StartTime time.Time
	Duration  int // minutes, joined from the movie
	BasePrice decimal.Decimal
}

func (s Show) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.Duration) * time.Minute)
}

type CatalogRepository interface {
	GetTheater(ctx context.Context, theaterID int) (*Theater, error)
	GetShow(ctx context.Context, showID int) (*Show, error)
	GetScreenLayout(ctx context.Context, screenID int) (*ScreenLayout, error)
	FindShowsByTheaterAndDateRange(ctx context.Context, theaterID int, start, end time.Time) ([]Show, error)
	GetCustomer(ctx context.Context, customerID int) (*Customer, error)
}
