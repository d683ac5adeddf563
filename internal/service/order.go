package service

import (
	"context"
	"errors"

	"github.com/bytefit/storefront/internal/billing"
	"github.com/bytefit/storefront/internal/domain"
	"github.com/bytefit/storefront/internal/telemetry"
	"github.com/google/uuid"
)

type orderService struct {
	store    domain.OrderStore
	provider billing.Provider
}

// NewOrderService creates the order materializer and status
// controller over a store and the payment gateway.
func NewOrderService(store domain.OrderStore, provider billing.Provider) domain.OrderService {
	return &orderService{
		store:    store,
		provider: provider,
	}
}

// CreateOrderFromSession materializes exactly one order from a
// completed payment session.
//
// Flow:
//  1. Duplicate check: an order may already exist for this session.
//  2. Session lookup with line items and payment intent expanded.
//  3. Payment validation: paid, or payment intent succeeded.
//  4. Classification: split reconciled lines into products + shipping.
//  5. Persist with status "paid".
//
// The duplicate-check/insert pair is not one atomic step, so two
// concurrent calls can both pass step 1. The store's unique index on
// session_id breaks the tie: the loser's insert fails with a conflict,
// which is folded into "fetch and return the existing order". The
// conflict never reaches the caller.
func (s *orderService) CreateOrderFromSession(ctx context.Context, params domain.CreateOrderParams) (*domain.Order, error) {
	const op = "order.create"

	if params.SessionID == "" {
		return nil, domain.ErrMissingSessionID
	}

	existing, err := s.store.GetBySessionID(ctx, params.SessionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, err
	}

	sess, err := s.provider.GetCheckoutSession(ctx, params.SessionID)
	if err != nil {
		if errors.Is(err, billing.ErrSessionNotFound) {
			return nil, domain.NotFound(op, "checkout session", params.SessionID)
		}
		// No order is ever left behind: persistence only happens after
		// a successful lookup, so the caller can simply retry.
		return nil, domain.Unavailable(err, op, "payment gateway unavailable")
	}

	if !sess.Paid() {
		if telemetry.Business != nil {
			telemetry.Business.PaymentIncomplete.Inc()
		}
		return nil, domain.Errorf(domain.EPAYMENT, op,
			"payment has not been completed (status: %s)", sess.PaymentStatus)
	}

	classified := ClassifyLineItems(sess.LineItems)
	subtotal := sess.AmountTotal - classified.ShippingCost

	email := sess.CustomerEmail
	if email == "" {
		email = params.CustomerEmail
	}

	order := &domain.Order{
		SessionID:       sess.ID,
		PaymentIntentID: sess.PaymentIntentID,
		UserID:          params.UserID,
		CustomerEmail:   email,
		Products:        classified.Products,
		Subtotal:        subtotal,
		ShippingCost:    classified.ShippingCost,
		ShippingName:    classified.ShippingName,
		Total:           sess.AmountTotal,
		Currency:        sess.Currency,
		Status:          domain.OrderStatusPaid,
	}
	if sd := sess.ShippingDetails; sd != nil {
		order.ShippingAddress = &domain.Address{
			Line1:      sd.Line1,
			Line2:      sd.Line2,
			City:       sd.City,
			State:      sd.State,
			PostalCode: sd.PostalCode,
			Country:    sd.Country,
		}
	}

	created, err := s.store.Insert(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) {
			// Lost the race: another writer materialized first.
			if telemetry.Business != nil {
				telemetry.Business.DuplicateMaterializations.Inc()
			}
			return s.store.GetBySessionID(ctx, params.SessionID)
		}
		return nil, err
	}

	if telemetry.Business != nil {
		telemetry.Business.OrdersCreated.Inc()
		telemetry.Business.OrderValue.Observe(float64(created.Total))
		telemetry.Business.OrderItemCount.Observe(float64(len(created.Products)))
	}

	return created, nil
}

// GetOrder retrieves a single order by ID.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.store.GetByID(ctx, id)
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *orderService) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	return s.store.ListByUser(ctx, userID)
}

// ListOrders returns all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.ListAll(ctx)
}

// UpdateOrderStatus validates and applies a status transition. Any
// transition between known states is accepted except back into
// "pending": orders are only ever created after payment, so pending
// is unreachable once left.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	const op = "order.status"

	if !status.Valid() {
		return nil, domain.Errorf(domain.EINVALID, op, "invalid order status: %q", status)
	}
	if status == domain.OrderStatusPending {
		return nil, domain.Invalid(op, "orders cannot return to pending")
	}

	updated, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if telemetry.Business != nil {
		telemetry.Business.StatusTransitions.WithLabelValues(string(status)).Inc()
	}

	return updated, nil
}
