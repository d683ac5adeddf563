package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bytefit/storefront/internal/domain"
	"github.com/bytefit/storefront/internal/handler"
)

// CheckoutHandler handles checkout session routes
type CheckoutHandler struct {
	checkoutService domain.CheckoutService
	logger          *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService domain.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// CreateSession handles POST /api/checkout/session
//
// Accepts a cart with decimal prices, builds a hosted checkout session
// and returns its ID and redirect URL.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.create", "invalid request body"))
		return
	}

	result, err := h.checkoutService.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("checkout session created",
		"session_id", result.SessionID,
		"items", len(req.Items),
	)

	payload := map[string]interface{}{
		"sessionId": result.SessionID,
		"url":       result.URL,
	}
	if result.ClientSecret != "" {
		payload["clientSecret"] = result.ClientSecret
	}
	handler.JSONResponse(w, http.StatusOK, payload)
}

// GetSession handles GET /api/checkout/session/{id}
//
// Returns the live session state from the payment gateway, including
// payment status and reconciled line items. The id may also arrive as
// a ?sessionId= query parameter, the form the web client uses.
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		sessionID = r.URL.Query().Get("sessionId")
	}

	session, err := h.checkoutService.GetCheckoutSession(r.Context(), sessionID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}
