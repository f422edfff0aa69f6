package checkout

import (
	"context"
	"errors"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

type StripeAdapter struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

func (a StripeAdapter) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	if a.SecretKey == "" {
		return Session{}, errors.New("stripe secret key is not set")
	}
	stripe.Key = a.SecretKey

	cents := int64(math.Round(req.Amount * 100))
	if cents <= 0 {
		return Session{}, errors.New("checkout amount must be positive")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(cents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(a.SuccessURL),
		CancelURL:         stripe.String(a.CancelURL),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.Reference),
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: s.ID, URL: s.URL}, nil
}
