package shipping

import (
	"context"
	"fmt"
)

// MockProvider is a test implementation of Provider.
type MockProvider struct {
	// ListRatesFunc allows customizing rate listing behavior
	ListRatesFunc func(ctx context.Context, connectedAccountID string) ([]Rate, error)

	// Rates are returned by default when ListRatesFunc is unset
	Rates []Rate

	// CallLog tracks method calls for test assertions
	CallLog []string
}

// NewMockProvider creates a new mock shipping provider for testing.
func NewMockProvider() *MockProvider {
	return &MockProvider{CallLog: []string{}}
}

// ListRates delegates to the configured function or returns the stored rates.
func (m *MockProvider) ListRates(ctx context.Context, connectedAccountID string) ([]Rate, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("ListRates(%s)", connectedAccountID))

	if m.ListRatesFunc != nil {
		return m.ListRatesFunc(ctx, connectedAccountID)
	}

	return m.Rates, nil
}
