package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentVerifier checks that a payment proof presented by the caller covers
// the given amount. Payment processing itself happens outside this system.
type PaymentVerifier interface {
	Verify(ctx context.Context, proofToken string, amount decimal.Decimal) (bool, error)
}
