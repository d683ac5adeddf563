package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment session processing.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreateCheckoutSession opens a hosted checkout session on the
	// gateway and returns its identifier, redirect URL and client
	// secret.
	CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error)

	// GetCheckoutSession retrieves an existing session with line items
	// and the payment intent expanded. Required to verify payment
	// before creating an order.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// SessionLineItem is one line of a session request. UnitAmount is in
// smallest currency units (cents, fils).
type SessionLineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
	Images      []string
}

// CreateCheckoutSessionParams contains parameters for creating a
// checkout session. The session is always created under the platform's
// own gateway identity; marketplace payments attach transfer
// instructions instead of being created on the seller's account.
type CreateCheckoutSessionParams struct {
	// LineItems are the cart lines, shipping already folded in as an
	// extra line when selected.
	LineItems []SessionLineItem

	// Currency code (ISO 4217 lowercase) - e.g., "aed", "usd"
	Currency string

	// SuccessURL and CancelURL are the post-checkout redirects.
	SuccessURL string
	CancelURL  string

	// CustomerEmail prefills the email field on the hosted page.
	CustomerEmail string

	// TransferDestination is the seller's connected account ID.
	// Empty for direct (non-marketplace) payments.
	TransferDestination string

	// TransferAmount is the portion (in smallest currency units)
	// forwarded to the seller after the platform fee is withheld.
	// Ignored when TransferDestination is empty.
	TransferAmount int64

	// Metadata for filtering and reporting.
	Metadata map[string]string
}

// SessionStatus is the lifecycle state of a checkout session.
type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)

// PaymentStatus is the payment state reported on a session.
type PaymentStatus string

const (
	PaymentStatusUnpaid            PaymentStatus = "unpaid"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

// ReconciledLineItem is an item as reported back by the gateway after
// checkout. These need not map 1:1 to the request lines (shipping
// comes back as a generic line item).
type ReconciledLineItem struct {
	Description string `json:"description"`
	AmountTotal int64  `json:"amountTotal"`
	Quantity    int64  `json:"quantity"`
}

// ShippingDetails is the destination collected by the hosted page.
type ShippingDetails struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CheckoutSession is the gateway's session read model. The core never
// mutates it.
type CheckoutSession struct {
	// ID is the gateway session ID (cs_...)
	ID string `json:"id"`

	// URL is the hosted checkout redirect URL (open sessions only).
	URL string `json:"url,omitempty"`

	// ClientSecret is used by embedded checkout on the frontend.
	ClientSecret string `json:"clientSecret,omitempty"`

	Status        SessionStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	// AmountTotal is the gateway-computed total in smallest currency
	// units, the single source of truth for the order total.
	AmountTotal int64  `json:"amountTotal"`
	Currency    string `json:"currency"`

	// LineItems are populated only when the session was retrieved with
	// line items expanded.
	LineItems []ReconciledLineItem `json:"lineItems,omitempty"`

	CustomerEmail   string           `json:"customerEmail,omitempty"`
	ShippingDetails *ShippingDetails `json:"shippingDetails,omitempty"`

	// PaymentIntentID and PaymentIntentStatus are populated when the
	// payment intent was expanded. Status "succeeded" is an alternate
	// proof of completed payment.
	PaymentIntentID     string `json:"paymentIntentId,omitempty"`
	PaymentIntentStatus string `json:"paymentIntentStatus,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Paid reports whether the session's payment is complete: either the
// session-level payment status is paid, or the underlying payment
// intent has succeeded.
func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid || s.PaymentIntentStatus == "succeeded"
}
