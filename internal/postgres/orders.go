package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bytefit/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code raised when an insert
// hits the unique index on session_id.
const uniqueViolation = "23505"

// OrderStore implements domain.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that OrderStore implements domain.OrderStore.
var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a new PostgreSQL-backed order store.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

const orderColumns = `id, session_id, payment_intent_id, user_id, customer_email,
	products, subtotal, shipping_cost, shipping_name, total, currency, status,
	shipping_address, created_at, updated_at`

// Insert persists a new order. The unique index on session_id makes
// concurrent materializations of the same checkout session collapse
// into a single row; losers get domain.ErrDuplicateOrder.
func (s *OrderStore) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	products, err := json.Marshal(order.Products)
	if err != nil {
		return nil, domain.Internal(err, "order.insert", "failed to encode products")
	}

	var address []byte
	if order.ShippingAddress != nil {
		address, err = json.Marshal(order.ShippingAddress)
		if err != nil {
			return nil, domain.Internal(err, "order.insert", "failed to encode shipping address")
		}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO orders (
			session_id, payment_intent_id, user_id, customer_email,
			products, subtotal, shipping_cost, shipping_name, total,
			currency, status, shipping_address
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+orderColumns,
		order.SessionID,
		order.PaymentIntentID,
		order.UserID,
		order.CustomerEmail,
		products,
		order.Subtotal,
		order.ShippingCost,
		order.ShippingName,
		order.Total,
		order.Currency,
		order.Status,
		address,
	)

	inserted, err := scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateOrder
		}
		return nil, domain.Internal(err, "order.insert", "failed to insert order")
	}
	return inserted, nil
}

// GetByID retrieves an order by its ID.
func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to get order")
	}
	return order, nil
}

// GetBySessionID retrieves the order materialized from a checkout session.
func (s *OrderStore) GetBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE session_id = $1`, sessionID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get_by_session", "failed to get order by session")
	}
	return order, nil
}

// ListByUser returns a user's orders, newest first.
func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, domain.Internal(err, "order.list_by_user", "failed to list orders")
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListAll returns every order, newest first.
func (s *OrderStore) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "order.list", "failed to list orders")
	}
	defer rows.Close()

	return collectOrders(rows)
}

// UpdateStatus sets a new fulfillment status and returns the updated order.
func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, status)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.update_status", "failed to update order status")
	}
	return order, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order    domain.Order
		products []byte
		address  []byte
	)

	err := row.Scan(
		&order.ID,
		&order.SessionID,
		&order.PaymentIntentID,
		&order.UserID,
		&order.CustomerEmail,
		&products,
		&order.Subtotal,
		&order.ShippingCost,
		&order.ShippingName,
		&order.Total,
		&order.Currency,
		&order.Status,
		&address,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(products, &order.Products); err != nil {
		return nil, err
	}
	if len(address) > 0 {
		order.ShippingAddress = &domain.Address{}
		if err := json.Unmarshal(address, order.ShippingAddress); err != nil {
			return nil, err
		}
	}

	return &order, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "order.scan", "failed to scan order row")
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.scan", "failed to read order rows")
	}
	return orders, nil
}
