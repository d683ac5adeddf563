package shipping

import (
	"context"
)

// Provider defines the interface for retrieving shipping options.
// Implementations can integrate with payment-gateway rate tables or
// carriers directly.
type Provider interface {
	// ListRates returns the active shipping options configured on the
	// seller's connected account.
	ListRates(ctx context.Context, connectedAccountID string) ([]Rate, error)
}

// FixedAmount is a flat charge in smallest currency units.
type FixedAmount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// EstimateBound is one end of a delivery estimate window.
type EstimateBound struct {
	Unit  string `json:"unit"`
	Value int64  `json:"value"`
}

// DeliveryEstimate is the promised delivery window for a rate.
type DeliveryEstimate struct {
	Minimum *EstimateBound `json:"minimum,omitempty"`
	Maximum *EstimateBound `json:"maximum,omitempty"`
}

// Rate is one shipping option offered at checkout. JSON field names
// follow the gateway's wire format, which the storefront client
// consumes directly.
type Rate struct {
	ID               string            `json:"id"`
	DisplayName      string            `json:"display_name"`
	Type             string            `json:"type"`
	FixedAmount      *FixedAmount      `json:"fixed_amount,omitempty"`
	TaxBehavior      string            `json:"tax_behavior,omitempty"`
	DeliveryEstimate *DeliveryEstimate `json:"delivery_estimate,omitempty"`
	Active           bool              `json:"active"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// Amount returns the rate's charge in smallest currency units.
func (r Rate) Amount() int64 {
	if r.FixedAmount != nil {
		return r.FixedAmount.Amount
	}
	return 0
}
