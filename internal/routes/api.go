package routes

import (
	"github.com/bytefit/storefront/internal/router"
)

// RegisterAPIRoutes registers the checkout, order and shipping routes.
// All routes speak JSON; the frontend is a separate application.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Checkout sessions
	r.Post("/api/checkout/session", deps.CheckoutHandler.CreateSession)
	r.Get("/api/checkout/session", deps.CheckoutHandler.GetSession)
	r.Get("/api/checkout/session/{id}", deps.CheckoutHandler.GetSession)

	// Orders
	r.Post("/api/orders/from-session", deps.OrderHandler.CreateFromSession)
	r.Get("/api/orders", deps.OrderHandler.ListByUser)
	r.Get("/api/orders/{id}", deps.OrderHandler.Get)

	// Admin order management
	r.Get("/api/admin/orders", deps.OrderHandler.ListAll)
	r.Post("/api/admin/orders/{id}/status", deps.OrderHandler.UpdateStatus)

	// Shipping rates
	r.Post("/api/shipping/rates", deps.ShippingHandler.GetRates)
}
