package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a mock billing provider for testing.
// Simulates checkout session flows without calling the Stripe API.
// Safe for concurrent use.
type MockProvider struct {
	mu sync.Mutex

	// CreateCheckoutSessionFunc allows customizing session creation behavior
	CreateCheckoutSessionFunc func(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error)

	// GetCheckoutSessionFunc allows customizing session retrieval behavior
	GetCheckoutSessionFunc func(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// Sessions stores created sessions for retrieval
	Sessions map[string]*CheckoutSession

	// CallLog tracks method calls for test assertions
	CallLog []string
}

// NewMockProvider creates a new mock billing provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Sessions: make(map[string]*CheckoutSession),
		CallLog:  []string{},
	}
}

// CreateCheckoutSession creates a mock checkout session.
func (m *MockProvider) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallLog = append(m.CallLog, fmt.Sprintf("CreateCheckoutSession(%d items, %s)", len(params.LineItems), params.Currency))

	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}

	// Default mock behavior: open session with gateway-computed total
	var total int64
	for _, li := range params.LineItems {
		total += li.UnitAmount * li.Quantity
	}

	id := "cs_test_" + uuid.New().String()
	sess := &CheckoutSession{
		ID:            id,
		URL:           "https://checkout.stripe.com/c/pay/" + id,
		ClientSecret:  id + "_secret_" + uuid.New().String(),
		Status:        SessionStatusOpen,
		PaymentStatus: PaymentStatusUnpaid,
		AmountTotal:   total,
		Currency:      params.Currency,
		CustomerEmail: params.CustomerEmail,
		CreatedAt:     time.Now(),
	}

	m.Sessions[sess.ID] = sess
	return sess, nil
}

// GetCheckoutSession retrieves a mock checkout session.
func (m *MockProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallLog = append(m.CallLog, fmt.Sprintf("GetCheckoutSession(%s)", sessionID))

	if m.GetCheckoutSessionFunc != nil {
		return m.GetCheckoutSessionFunc(ctx, sessionID)
	}

	sess, exists := m.Sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// CompletePayment marks a stored session as paid, simulating the
// customer finishing checkout out-of-band.
func (m *MockProvider) CompletePayment(sessionID string, lineItems []ReconciledLineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.Sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	sess.Status = SessionStatusComplete
	sess.PaymentStatus = PaymentStatusPaid
	sess.PaymentIntentID = "pi_" + uuid.New().String()
	sess.PaymentIntentStatus = "succeeded"
	if lineItems != nil {
		sess.LineItems = lineItems
		var total int64
		for _, li := range lineItems {
			total += li.AmountTotal
		}
		sess.AmountTotal = total
	}
	return nil
}
