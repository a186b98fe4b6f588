package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// MockVerifier accepts every token unless configured otherwise.
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, proofToken string, amount decimal.Decimal) (bool, error)
}

func (m *MockVerifier) Verify(ctx context.Context, proofToken string, amount decimal.Decimal) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, proofToken, amount)
	}

	return true, nil
}
