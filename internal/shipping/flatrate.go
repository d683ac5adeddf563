package shipping

import (
	"context"
	"fmt"
)

// FlatRateProvider returns predefined flat-rate shipping options.
// Used when a seller has no gateway-managed rate table configured.
type FlatRateProvider struct {
	currency string
	rates    []FlatRate
}

// FlatRate defines a single flat-rate shipping option.
type FlatRate struct {
	Name    string
	Amount  int64 // smallest currency units
	DaysMin int64
	DaysMax int64
}

// NewFlatRateProvider creates a new flat-rate shipping provider.
func NewFlatRateProvider(currency string, rates []FlatRate) Provider {
	return &FlatRateProvider{currency: currency, rates: rates}
}

// ListRates converts the configured flat rates to Rate objects. The
// connected account ID is accepted for interface compatibility but
// not used.
func (p *FlatRateProvider) ListRates(ctx context.Context, connectedAccountID string) ([]Rate, error) {
	result := make([]Rate, len(p.rates))
	for i, fr := range p.rates {
		rate := Rate{
			ID:          fmt.Sprintf("flat_rate_%d", i),
			DisplayName: fr.Name,
			Type:        "fixed_amount",
			FixedAmount: &FixedAmount{
				Amount:   fr.Amount,
				Currency: p.currency,
			},
			Active: true,
		}
		if fr.DaysMax > 0 {
			rate.DeliveryEstimate = &DeliveryEstimate{
				Minimum: &EstimateBound{Unit: "business_day", Value: fr.DaysMin},
				Maximum: &EstimateBound{Unit: "business_day", Value: fr.DaysMax},
			}
		}
		result[i] = rate
	}
	return result, nil
}
