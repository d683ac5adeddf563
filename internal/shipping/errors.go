package shipping

// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.
const (
	codeInvalid     = "invalid"
	codeInternal    = "internal"
	codeUnavailable = "unavailable"
)

// ShippingError represents a shipping-specific error with a code and
// message. It follows the domain error pattern for consistent HTTP
// status mapping.
type ShippingError struct {
	Code    string
	Message string
}

func (e *ShippingError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *ShippingError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *ShippingError) ErrorMessage() string {
	return e.Message
}

func newShippingError(code, message string) *ShippingError {
	return &ShippingError{Code: code, Message: message}
}

var (
	// ErrMissingAccountID is returned when the connected account ID is missing.
	ErrMissingAccountID = newShippingError(codeInvalid, "Connected account ID is required")

	// ErrMissingAPIKey is returned when the shipping provider API key is missing.
	ErrMissingAPIKey = newShippingError(codeInternal, "Shipping provider API key is required")

	// ErrNoRates is returned when no shipping rates are available.
	ErrNoRates = newShippingError(codeUnavailable, "No shipping rates available")
)
