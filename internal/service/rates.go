package service

import (
	"context"
	"strings"

	"github.com/bytefit/storefront/internal/domain"
	"github.com/bytefit/storefront/internal/shipping"
	"github.com/bytefit/storefront/internal/telemetry"
)

// FreeShippingRateID identifies the synthetic option injected above
// the free-shipping threshold. It has no backing record in the
// seller's rate table.
const FreeShippingRateID = "free_shipping"

// RateConfig carries shipping rate settings.
type RateConfig struct {
	// Currency for the synthetic free shipping option.
	Currency string

	// FreeShippingThreshold is the order total (decimal major units)
	// at which free shipping is offered. Zero disables injection.
	FreeShippingThreshold float64
}

type rateService struct {
	provider  shipping.Provider
	currency  string
	threshold float64
}

// NewRateService creates the shipping rate service.
func NewRateService(provider shipping.Provider, cfg RateConfig) domain.RateService {
	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = "aed"
	}

	return &rateService{
		provider:  provider,
		currency:  currency,
		threshold: cfg.FreeShippingThreshold,
	}
}

// GetShippingRates lists the seller's active rates, prepending a
// synthetic free option when the order total qualifies.
func (s *rateService) GetShippingRates(ctx context.Context, connectedAccountID string, orderTotal float64) ([]shipping.Rate, error) {
	const op = "shipping.rates"

	if connectedAccountID == "" {
		return nil, domain.Invalid(op, "connected account ID is required")
	}

	rates, err := s.provider.ListRates(ctx, connectedAccountID)
	if err != nil {
		return nil, domain.Unavailable(err, op, "shipping rate gateway unavailable")
	}

	if telemetry.Business != nil {
		telemetry.Business.RateLookups.Inc()
	}

	if s.threshold > 0 && orderTotal >= s.threshold {
		free := shipping.Rate{
			ID:          FreeShippingRateID,
			DisplayName: "Free Shipping",
			Type:        "fixed_amount",
			FixedAmount: &shipping.FixedAmount{
				Amount:   0,
				Currency: s.currency,
			},
			Active: true,
		}
		rates = append([]shipping.Rate{free}, rates...)

		if telemetry.Business != nil {
			telemetry.Business.FreeShippingInjected.Inc()
		}
	}

	return rates, nil
}
