package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bytefit/storefront/internal/domain"
	"github.com/bytefit/storefront/internal/handler"
	"github.com/google/uuid"
)

// OrderHandler handles order materialization and fulfillment routes
type OrderHandler struct {
	orderService domain.OrderService
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService domain.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateFromSession handles POST /api/orders/from-session
//
// Materializes an order from a completed checkout session. Safe to
// call repeatedly for the same session; every call returns the same
// order.
func (h *OrderHandler) CreateFromSession(w http.ResponseWriter, r *http.Request) {
	var params domain.CreateOrderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("order.create", "invalid request body"))
		return
	}

	order, err := h.orderService.CreateOrderFromSession(r.Context(), params)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("order materialized",
		"order_id", order.ID,
		"session_id", order.SessionID,
		"total", order.Total,
	)

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"orderId": order.ID,
		"order":   order,
	})
}

// Get handles GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("order.get", "invalid order ID"))
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

// ListByUser handles GET /api/orders?userId={userId}
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	orders, err := h.orderService.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// ListAll handles GET /api/admin/orders
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// UpdateStatus handles POST /api/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("order.status", "invalid order ID"))
		return
	}

	var body struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("order.status", "invalid request body"))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), id, body.Status)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("order status updated",
		"order_id", order.ID,
		"status", order.Status,
	)

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}
