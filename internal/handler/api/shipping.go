package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bytefit/storefront/internal/domain"
	"github.com/bytefit/storefront/internal/handler"
)

// ShippingHandler handles shipping rate routes
type ShippingHandler struct {
	rateService domain.RateService
	logger      *slog.Logger
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(rateService domain.RateService, logger *slog.Logger) *ShippingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShippingHandler{
		rateService: rateService,
		logger:      logger,
	}
}

// GetRates handles POST /api/shipping/rates
//
// Returns the seller's active shipping rates. Orders above the
// free-shipping threshold get a zero-cost option first in the list.
func (h *ShippingHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConnectedAccountID string  `json:"connectedAccountId"`
		OrderTotal         float64 `json:"orderTotal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("shipping.rates", "invalid request body"))
		return
	}

	rates, err := h.rateService.GetShippingRates(r.Context(), req.ConnectedAccountID, req.OrderTotal)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"rates": rates,
	})
}
