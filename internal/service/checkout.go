package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/bytefit/storefront/internal/billing"
	"github.com/bytefit/storefront/internal/domain"
	"github.com/bytefit/storefront/internal/telemetry"
	"github.com/go-playground/validator/v10"
)

// CheckoutConfig carries the platform-level checkout settings.
type CheckoutConfig struct {
	// Currency is the ISO 4217 code all sessions are denominated in.
	Currency string

	// PlatformFeePercent is the marketplace fee withheld from seller
	// transfers.
	PlatformFeePercent float64

	// DefaultConnectedAccountID is the seller used when the request
	// carries none. Empty means direct payments by default.
	DefaultConnectedAccountID string
}

type checkoutService struct {
	provider       billing.Provider
	fees           *FeeSplitCalculator
	validate       *validator.Validate
	currency       string
	defaultAccount string
}

// NewCheckoutService creates the checkout session builder.
func NewCheckoutService(provider billing.Provider, cfg CheckoutConfig) domain.CheckoutService {
	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = "aed"
	}

	return &checkoutService{
		provider:       provider,
		fees:           NewFeeSplitCalculator(cfg.PlatformFeePercent),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		currency:       currency,
		defaultAccount: cfg.DefaultConnectedAccountID,
	}
}

// CreateCheckoutSession validates the cart, converts boundary prices
// to minor units, folds the selected shipping option in as an extra
// line item, and opens the session on the gateway. Marketplace
// requests get transfer instructions computed over the full total;
// the session itself is always created under the platform's identity.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	const op = "checkout.create"

	// Reject before any gateway call.
	if len(req.Items) == 0 {
		if telemetry.Business != nil {
			telemetry.Business.CheckoutRejected.WithLabelValues("empty_cart").Inc()
		}
		return nil, domain.ErrEmptyCart
	}

	if err := s.validate.Struct(req); err != nil {
		if telemetry.Business != nil {
			telemetry.Business.CheckoutRejected.WithLabelValues("invalid_request").Inc()
		}
		return nil, toValidationError(err, op)
	}

	lineItems := make([]billing.SessionLineItem, 0, len(req.Items)+1)
	var total int64
	for _, item := range req.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		// The only decimal-to-minor-units conversion point in the system.
		unit := toMinorUnits(item.Price)

		li := billing.SessionLineItem{
			Name:        item.Name,
			Description: item.Description,
			UnitAmount:  unit,
			Quantity:    qty,
		}
		if item.ImageURL != "" {
			li.Images = []string{item.ImageURL}
		}

		lineItems = append(lineItems, li)
		total += unit * qty
	}

	// Shipping rides along as an extra line item so the gateway's
	// computed total stays the single source of truth.
	if req.ShippingCost > 0 {
		name := req.ShippingName
		if name == "" {
			name = DefaultShippingName
		}
		amount := toMinorUnits(req.ShippingCost)
		lineItems = append(lineItems, billing.SessionLineItem{
			Name:       name,
			UnitAmount: amount,
			Quantity:   1,
		})
		total += amount
	}

	params := billing.CreateCheckoutSessionParams{
		LineItems:     lineItems,
		Currency:      s.currency,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		CustomerEmail: req.CustomerEmail,
		Metadata:      map[string]string{},
	}
	for k, v := range req.Metadata {
		params.Metadata[k] = v
	}
	if req.UserID != "" {
		params.Metadata["user_id"] = req.UserID
	}

	paymentType := "direct"
	account := req.ConnectedAccountID
	if account == "" {
		account = s.defaultAccount
	}
	if account != "" {
		// Transfer is computed over the full total, shipping included.
		params.TransferDestination = account
		params.TransferAmount = s.fees.TransferAmount(total)
		paymentType = "marketplace"
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, domain.Unavailable(err, op, "payment gateway unavailable")
	}

	if telemetry.Business != nil {
		telemetry.Business.CheckoutStarted.WithLabelValues(paymentType).Inc()
	}

	return &domain.CheckoutResult{
		SessionID:    sess.ID,
		URL:          sess.URL,
		ClientSecret: sess.ClientSecret,
		Total:        total,
	}, nil
}

// GetCheckoutSession retrieves session state with line items and
// payment intent expanded.
func (s *checkoutService) GetCheckoutSession(ctx context.Context, sessionID string) (*billing.CheckoutSession, error) {
	const op = "checkout.get"

	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}

	sess, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, billing.ErrSessionNotFound) {
			return nil, domain.NotFound(op, "checkout session", sessionID)
		}
		return nil, domain.Unavailable(err, op, "payment gateway unavailable")
	}

	if telemetry.Business != nil {
		telemetry.Business.SessionLookups.Inc()
	}

	return sess, nil
}

// toMinorUnits converts a decimal major-unit price into integer minor
// units with round-half-up, exact for round currency values.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// toValidationError folds validator output into field-level domain
// validation errors.
func toValidationError(err error, op string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.WrapError(err, domain.EINVALID, op, "invalid checkout request")
	}

	var out error
	for _, fe := range verrs {
		out = domain.AddFieldError(out, fe.Field(), "failed "+fe.Tag()+" validation")
	}
	return out
}
