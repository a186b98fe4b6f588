package mocks

import (
	"context"

	"github.com/cinexhq/booking-engine/internal/domain"
)

type MockBookingRepo struct {
	CreateFunc        func(ctx context.Context, booking domain.Booking) error
	GetByCustomerFunc func(ctx context.Context, customerID int) ([]domain.Booking, error)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}

	return nil
}

func (m *MockBookingRepo) GetByCustomer(ctx context.Context, customerID int) ([]domain.Booking, error) {
	return m.GetByCustomerFunc(ctx, customerID)
}
