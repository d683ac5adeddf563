package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level
// observability of the checkout and order pipeline.
type BusinessMetrics struct {
	// Checkout funnel
	CheckoutStarted  *prometheus.CounterVec // payment_type: marketplace, direct
	CheckoutRejected *prometheus.CounterVec // reason: empty_cart, invalid_request
	SessionLookups   prometheus.Counter

	// Orders
	OrdersCreated             prometheus.Counter
	OrderValue                prometheus.Histogram
	OrderItemCount            prometheus.Histogram
	PaymentIncomplete         prometheus.Counter
	DuplicateMaterializations prometheus.Counter
	StatusTransitions         *prometheus.CounterVec // status

	// Shipping
	RateLookups          prometheus.Counter
	FreeShippingInjected prometheus.Counter

	// External API performance
	GatewayLatency *prometheus.HistogramVec // operation
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "storefront"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		CheckoutStarted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_started_total",
				Help:      "Total checkout sessions created",
			},
			[]string{"payment_type"}, // payment_type: marketplace, direct
		),
		CheckoutRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_rejected_total",
				Help:      "Total checkout requests rejected before reaching the gateway",
			},
			[]string{"reason"}, // reason: empty_cart, invalid_request
		),
		SessionLookups: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "session_lookups_total",
				Help:      "Total checkout session retrievals",
			},
		),
		OrdersCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders materialized from paid sessions",
			},
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_minor_units",
				Help:      "Order value distribution in smallest currency units",
				Buckets:   []float64{1000, 2500, 5000, 7500, 10000, 15000, 25000, 50000, 100000},
			},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of product lines per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
		),
		PaymentIncomplete: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_incomplete_total",
				Help:      "Total materialization attempts against unpaid sessions",
			},
		),
		DuplicateMaterializations: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duplicate_materializations_total",
				Help:      "Total insert conflicts resolved by returning the existing order",
			},
		),
		StatusTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_status_transitions_total",
				Help:      "Total order status updates applied",
			},
			[]string{"status"},
		),
		RateLookups: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shipping_rate_lookups_total",
				Help:      "Total shipping rate list requests",
			},
		),
		FreeShippingInjected: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "free_shipping_injected_total",
				Help:      "Total rate responses with the synthetic free shipping option",
			},
		),
		GatewayLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "gateway_duration_seconds",
				Help:      "Payment gateway call duration (differentiates app slowness from gateway issues)",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"}, // operation: create_session, get_session, list_rates
		),
	}

	return m
}

// Global instance for easy access from services and handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
