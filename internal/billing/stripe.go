package billing

import (
	"context"
	"errors"
	"time"

	"github.com/bytefit/storefront/internal/telemetry"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeProvider implements Provider using Stripe Checkout.
//
// The SDK client is constructed explicitly and injected here rather
// than configured through the package-global key, so tests can swap in
// fakes and nothing in the process depends on hidden state.
type StripeProvider struct {
	client *client.API
	config StripeConfig
}

// NewStripeProvider creates a Stripe billing provider with its own
// SDK client.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	sc := &client.API{}
	sc.Init(config.APIKey, nil)

	return &StripeProvider{
		client: sc,
		config: config,
	}, nil
}

// CreateCheckoutSession opens a hosted checkout session in payment mode.
// Marketplace payments attach transfer instructions on the underlying
// payment intent; the session itself always belongs to the platform
// account.
func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.LineItems))
	for _, li := range params.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.Description != "" {
			product.Description = stripe.String(li.Description)
		}
		if len(li.Images) > 0 {
			product.Images = stripe.StringSlice(li.Images)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(params.Currency),
				UnitAmount:  stripe.Int64(li.UnitAmount),
				ProductData: product,
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx

	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}

	if params.TransferDestination != "" {
		sessionParams.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(params.TransferDestination),
				Amount:      stripe.Int64(params.TransferAmount),
			},
		}
	}

	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	start := time.Now()
	sess, err := s.client.CheckoutSessions.New(sessionParams)
	observeGatewayLatency("create_session", start)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return newCheckoutSession(sess), nil
}

// GetCheckoutSession retrieves a session with line items and the
// payment intent expanded.
func (s *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")
	params.AddExpand("payment_intent")

	start := time.Now()
	sess, err := s.client.CheckoutSessions.Get(sessionID, params)
	observeGatewayLatency("get_session", start)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrSessionNotFound
		}
		return nil, wrapStripeError(err)
	}

	return newCheckoutSession(sess), nil
}

// newCheckoutSession maps the SDK session onto the provider-neutral
// read model.
func newCheckoutSession(sess *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		ClientSecret:  sess.ClientSecret,
		Status:        SessionStatus(sess.Status),
		PaymentStatus: PaymentStatus(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CreatedAt:     time.Unix(sess.Created, 0),
	}

	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		cs.CustomerEmail = sess.CustomerDetails.Email
	} else {
		cs.CustomerEmail = sess.CustomerEmail
	}

	if sess.LineItems != nil {
		cs.LineItems = make([]ReconciledLineItem, 0, len(sess.LineItems.Data))
		for _, li := range sess.LineItems.Data {
			cs.LineItems = append(cs.LineItems, ReconciledLineItem{
				Description: li.Description,
				AmountTotal: li.AmountTotal,
				Quantity:    li.Quantity,
			})
		}
	}

	if sess.PaymentIntent != nil {
		cs.PaymentIntentID = sess.PaymentIntent.ID
		cs.PaymentIntentStatus = string(sess.PaymentIntent.Status)
	}

	if sess.CollectedInformation != nil && sess.CollectedInformation.ShippingDetails != nil {
		sd := sess.CollectedInformation.ShippingDetails
		details := &ShippingDetails{Name: sd.Name}
		if sd.Address != nil {
			details.Line1 = sd.Address.Line1
			details.Line2 = sd.Address.Line2
			details.City = sd.Address.City
			details.State = sd.Address.State
			details.PostalCode = sd.Address.PostalCode
			details.Country = sd.Address.Country
		}
		cs.ShippingDetails = details
	}

	return cs
}

func observeGatewayLatency(operation string, start time.Time) {
	if telemetry.Business != nil {
		telemetry.Business.GatewayLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// wrapStripeError converts SDK errors into StripeError for upstream
// inspection.
func wrapStripeError(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		return &StripeError{
			Message:       sErr.Msg,
			Code:          string(sErr.Code),
			DeclineCode:   string(sErr.DeclineCode),
			RequestID:     sErr.RequestID,
			OriginalError: err,
		}
	}
	return err
}
