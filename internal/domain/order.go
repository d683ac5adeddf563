package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order-related domain errors.
var (
	ErrOrderNotFound      = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrDuplicateOrder     = &Error{Code: ECONFLICT, Message: "Order already exists for this session"}
	ErrPaymentNotComplete = &Error{Code: EPAYMENT, Message: "Payment has not been completed"}
	ErrMissingSessionID   = &Error{Code: EINVALID, Message: "Session ID is required"}
	ErrMissingUserID      = &Error{Code: EINVALID, Message: "User ID is required"}
	ErrInvalidOrderStatus = &Error{Code: EINVALID, Message: "Invalid order status"}
)

// OrderStatus is the lifecycle state of an order.
// Orders are only ever created as "paid"; "pending" is reserved for
// future pre-payment tracking and cannot be re-entered once left.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ProductLine is a single product entry on an order, denominated in
// integer minor units.
type ProductLine struct {
	Name        string `json:"name"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int64  `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// Address is a shipping destination captured from the payment session.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order is the persisted record materialized from a completed payment
// session. At most one order ever exists per session ID, and
// Subtotal + ShippingCost == Total at creation time.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	SessionID       string        `json:"sessionId"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	UserID          string        `json:"userId,omitempty"`
	CustomerEmail   string        `json:"customerEmail,omitempty"`
	Products        []ProductLine `json:"products"`
	Subtotal        int64         `json:"subtotal"`
	ShippingCost    int64         `json:"shippingCost"`
	ShippingName    string        `json:"shippingName"`
	Total           int64         `json:"total"`
	Currency        string        `json:"currency"`
	Status          OrderStatus   `json:"status"`
	ShippingAddress *Address      `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// OrderStore is the persistence boundary for orders.
type OrderStore interface {
	// Insert writes a new order. Returns ErrDuplicateOrder when an order
	// for the same session ID already exists (unique-index violation).
	Insert(ctx context.Context, order *Order) (*Order, error)

	// GetByID retrieves a single order by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// GetBySessionID retrieves the order materialized from the given
	// checkout session, or ErrOrderNotFound.
	GetBySessionID(ctx context.Context, sessionID string) (*Order, error)

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]Order, error)

	// UpdateStatus sets the order status and bumps updated_at.
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
}

// CreateOrderParams identifies the payment session to materialize an
// order from. UserID and CustomerEmail are optional client hints; the
// session's own customer email wins when present.
type CreateOrderParams struct {
	SessionID     string `json:"sessionId"`
	UserID        string `json:"userId,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

// OrderService provides business logic for order operations.
type OrderService interface {
	// CreateOrderFromSession materializes exactly one order from a
	// completed payment session. Safe to call repeatedly and
	// concurrently for the same session: every call returns the same
	// order.
	CreateOrderFromSession(ctx context.Context, params CreateOrderParams) (*Order, error)

	// GetOrder retrieves a single order by ID.
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrdersByUser returns a user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)

	// ListOrders returns all orders, newest first (admin).
	ListOrders(ctx context.Context) ([]Order, error)

	// UpdateOrderStatus validates and applies a status transition.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
}
