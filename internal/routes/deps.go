package routes

import (
	"github.com/bytefit/storefront/internal/handler/api"
)

// APIDeps contains dependencies for API routes
type APIDeps struct {
	CheckoutHandler *api.CheckoutHandler
	OrderHandler    *api.OrderHandler
	ShippingHandler *api.ShippingHandler
}
