package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeVerifier treats the payment proof token as a Stripe PaymentIntent id
// and accepts it when the intent succeeded and its amount covers the total.
type StripeVerifier struct{}

func NewStripeVerifier() *StripeVerifier {
	return &StripeVerifier{}
}

func (s *StripeVerifier) Verify(ctx context.Context, proofToken string, amount decimal.Decimal) (bool, error) {
	intent, err := paymentintent.Get(proofToken, nil)
	if err != nil {
		return false, err
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return false, nil
	}

	paidCents := decimal.NewFromInt(intent.Amount)
	wantCents := amount.Mul(decimal.NewFromInt(100))

	return paidCents.GreaterThanOrEqual(wantCents), nil
}
