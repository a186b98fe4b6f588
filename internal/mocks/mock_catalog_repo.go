package mocks

import (
	"context"
	"time"

	"github.com/cinexhq/booking-engine/internal/domain"
)

type MockCatalogRepo struct {
	GetTheaterFunc                     func(ctx context.Context, theaterID int) (*domain.Theater, error)
	GetShowFunc                        func(ctx context.Context, showID int) (*domain.Show, error)
	GetScreenLayoutFunc                func(ctx context.Context, screenID int) (*domain.ScreenLayout, error)
	FindShowsByTheaterAndDateRangeFunc func(ctx context.Context, theaterID int, start, end time.Time) ([]domain.Show, error)
	GetCustomerFunc                    func(ctx context.Context, customerID int) (*domain.Customer, error)
}

func (m *MockCatalogRepo) GetTheater(ctx context.Context, theaterID int) (*domain.Theater, error) {
	return m.GetTheaterFunc(ctx, theaterID)
}

func (m *MockCatalogRepo) GetShow(ctx context.Context, showID int) (*domain.Show, error) {
	return m.GetShowFunc(ctx, showID)
}

func (m *MockCatalogRepo) GetScreenLayout(ctx context.Context, screenID int) (*domain.ScreenLayout, error) {
	return m.GetScreenLayoutFunc(ctx, screenID)
}

func (m *MockCatalogRepo) FindShowsByTheaterAndDateRange(
	ctx context.Context,
	theaterID int,
	start, end time.Time) ([]domain.Show, error) {

	return m.FindShowsByTheaterAndDateRangeFunc(ctx, theaterID, start, end)
}

func (m *MockCatalogRepo) GetCustomer(ctx context.Context, customerID int) (*domain.Customer, error) {
	return m.GetCustomerFunc(ctx, customerID)
}
