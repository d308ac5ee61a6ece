package payments

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	api *client.API
}

// NewStripeProvider — backends == nil означает боевой API Stripe
func NewStripeProvider(secretKey string, backends *stripe.Backends) *StripeProvider {
	return &StripeProvider{api: client.New(secretKey, backends)}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountMinor),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	log.Printf("[stripe] create intent amount=%d currency=%s", req.AmountMinor, req.Currency)

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: %s", ProviderMessage(err))
	}
	if pi.ClientSecret == "" {
		return nil, fmt.Errorf("stripe: empty client secret for intent %s", pi.ID)
	}

	log.Printf("[stripe] intent created id=%s", pi.ID)

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// ProviderMessage достаёт текст ошибки, который вернул Stripe
func ProviderMessage(err error) string {
	var serr *stripe.Error
	if errors.As(err, &serr) && serr.Msg != "" {
		return serr.Msg
	}
	return err.Error()
}
