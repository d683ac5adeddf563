package shipping

import (
	"context"
	"time"

	"github.com/bytefit/storefront/internal/telemetry"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeProvider lists shipping rates maintained on a seller's
// connected Stripe account. Like the billing provider, it owns an
// explicitly constructed SDK client instead of relying on the
// package-global key.
type StripeProvider struct {
	client *client.API
}

// NewStripeProvider creates a Stripe shipping rate provider.
func NewStripeProvider(apiKey string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &StripeProvider{client: sc}, nil
}

// ListRates returns the connected account's active shipping rates.
func (s *StripeProvider) ListRates(ctx context.Context, connectedAccountID string) ([]Rate, error) {
	if connectedAccountID == "" {
		return nil, ErrMissingAccountID
	}

	params := &stripe.ShippingRateListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	params.SetStripeAccount(connectedAccountID)

	start := time.Now()
	rates := []Rate{}
	iter := s.client.ShippingRates.List(params)
	for iter.Next() {
		rates = append(rates, newRate(iter.ShippingRate()))
	}
	if telemetry.Business != nil {
		telemetry.Business.GatewayLatency.WithLabelValues("list_rates").Observe(time.Since(start).Seconds())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}

// newRate maps the SDK shipping rate onto the wire model.
func newRate(sr *stripe.ShippingRate) Rate {
	rate := Rate{
		ID:          sr.ID,
		DisplayName: sr.DisplayName,
		Type:        string(sr.Type),
		TaxBehavior: string(sr.TaxBehavior),
		Active:      sr.Active,
		Metadata:    sr.Metadata,
	}

	if sr.FixedAmount != nil {
		rate.FixedAmount = &FixedAmount{
			Amount:   sr.FixedAmount.Amount,
			Currency: string(sr.FixedAmount.Currency),
		}
	}

	if sr.DeliveryEstimate != nil {
		estimate := &DeliveryEstimate{}
		if sr.DeliveryEstimate.Minimum != nil {
			estimate.Minimum = &EstimateBound{
				Unit:  string(sr.DeliveryEstimate.Minimum.Unit),
				Value: sr.DeliveryEstimate.Minimum.Value,
			}
		}
		if sr.DeliveryEstimate.Maximum != nil {
			estimate.Maximum = &EstimateBound{
				Unit:  string(sr.DeliveryEstimate.Maximum.Unit),
				Value: sr.DeliveryEstimate.Maximum.Value,
			}
		}
		rate.DeliveryEstimate = estimate
	}

	return rate
}
