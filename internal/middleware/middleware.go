// Package middleware provides request-scoped HTTP middleware: request
// IDs, request-scoped loggers, client IP extraction and Prometheus
// metrics. Error rendering lives in the handler package.
package middleware

// contextKey is a private type for context values set by this package.
type contextKey string
