package domain

import (
	"context"

	"github.com/bytefit/storefront/internal/billing"
	"github.com/bytefit/storefront/internal/shipping"
)

// Checkout-related domain errors.
var (
	ErrEmptyCart = &Error{Code: EINVALID, Message: "Cart must contain at least one item"}
)

// CartItem is one line of the client's cart snapshot. Price is the
// decimal major-unit amount the storefront client sends; it is
// converted to integer minor units exactly once, inside the checkout
// service.
type CartItem struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int64   `json:"quantity" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// CheckoutRequest assembles everything needed to open a payment
// session: the cart, an optional seller (connected) account for
// marketplace splits, an optional pre-selected shipping option, and
// the redirect URLs.
type CheckoutRequest struct {
	Items              []CartItem        `json:"items" validate:"required,min=1,dive"`
	CustomerEmail      string            `json:"customerEmail,omitempty" validate:"omitempty,email"`
	ConnectedAccountID string            `json:"connectedAccountId,omitempty"`
	ShippingCost       float64           `json:"shippingCost,omitempty" validate:"gte=0"`
	ShippingName       string            `json:"shippingName,omitempty"`
	SuccessURL         string            `json:"successUrl" validate:"required,url"`
	CancelURL          string            `json:"cancelUrl" validate:"required,url"`
	UserID             string            `json:"userId,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// CheckoutResult is returned after a session is created on the
// gateway. Total is the full amount (products + shipping) in minor
// units, kept for later verification against the gateway's own total.
type CheckoutResult struct {
	SessionID    string `json:"sessionId"`
	URL          string `json:"url,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Total        int64  `json:"-"`
}

// CheckoutService provides business logic for checkout operations.
type CheckoutService interface {
	// CreateCheckoutSession validates the cart and opens a payment
	// session on the gateway. Rejects empty carts before any remote
	// call.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)

	// GetCheckoutSession retrieves session state with line items and
	// payment intent expanded.
	GetCheckoutSession(ctx context.Context, sessionID string) (*billing.CheckoutSession, error)
}

// RateService lists shipping options available for a seller account.
type RateService interface {
	// GetShippingRates returns the seller's active rates. When
	// orderTotal (decimal major units) meets the free-shipping
	// threshold, a synthetic free_shipping option is prepended.
	GetShippingRates(ctx context.Context, connectedAccountID string, orderTotal float64) ([]shipping.Rate, error)
}
