package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytefit/storefront/internal/billing"
	"github.com/bytefit/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutTestHandler(mock *billing.MockProvider) *CheckoutHandler {
	svc := service.NewCheckoutService(mock, service.CheckoutConfig{
		Currency:           "aed",
		PlatformFeePercent: 10,
	})
	return NewCheckoutHandler(svc, nil)
}

func TestCheckoutHandler_CreateSession(t *testing.T) {
	t.Run("creates session", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		body := `{
			"items": [{"id": "prod_1", "name": "T-Shirt", "price": 50.00, "quantity": 2}],
			"successUrl": "https://shop.example.com/success",
			"cancelUrl": "https://shop.example.com/cancel"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateSession(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success   bool   `json:"success"`
			SessionID string `json:"sessionId"`
			URL       string `json:"url"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.SessionID)
		assert.NotEmpty(t, resp.URL)
	})

	t.Run("malformed body", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateSession(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, mock.CallLog)
	})

	t.Run("empty cart", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		body := `{
			"items": [],
			"successUrl": "https://shop.example.com/success",
			"cancelUrl": "https://shop.example.com/cancel"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateSession(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "invalid", resp.Error.Code)
	})

	t.Run("validation failure reports fields", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		body := `{
			"items": [{"id": "prod_1", "name": "T-Shirt", "price": 50.00, "quantity": 1}],
			"successUrl": "not-a-url",
			"cancelUrl": "https://shop.example.com/cancel"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateSession(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error struct {
				Fields map[string]string `json:"fields"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Error.Fields)
	})

	t.Run("gateway failure maps to 502", func(t *testing.T) {
		mock := billing.NewMockProvider()
		mock.CreateCheckoutSessionFunc = func(ctx context.Context, params billing.CreateCheckoutSessionParams) (*billing.CheckoutSession, error) {
			return nil, &billing.StripeError{Message: "down", Code: "api_connection_error"}
		}
		h := newCheckoutTestHandler(mock)

		body := `{
			"items": [{"id": "prod_1", "name": "T-Shirt", "price": 50.00, "quantity": 1}],
			"successUrl": "https://shop.example.com/success",
			"cancelUrl": "https://shop.example.com/cancel"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateSession(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestCheckoutHandler_GetSession(t *testing.T) {
	t.Run("returns session", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		mock.Sessions["cs_abc"] = &billing.CheckoutSession{
			ID:            "cs_abc",
			Status:        billing.SessionStatusOpen,
			PaymentStatus: billing.PaymentStatusUnpaid,
		}

		req := httptest.NewRequest(http.MethodGet, "/api/checkout/session/cs_abc", nil)
		req.SetPathValue("id", "cs_abc")
		rec := httptest.NewRecorder()

		h.GetSession(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Session struct {
				ID            string `json:"id"`
				PaymentStatus string `json:"paymentStatus"`
			} `json:"session"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "cs_abc", resp.Session.ID)
		assert.Equal(t, "unpaid", resp.Session.PaymentStatus)
	})

	t.Run("accepts sessionId query param", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		mock.Sessions["cs_abc"] = &billing.CheckoutSession{
			ID:            "cs_abc",
			Status:        billing.SessionStatusComplete,
			PaymentStatus: billing.PaymentStatusPaid,
		}

		req := httptest.NewRequest(http.MethodGet, "/api/checkout/session?sessionId=cs_abc", nil)
		rec := httptest.NewRecorder()

		h.GetSession(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Session struct {
				ID string `json:"id"`
			} `json:"session"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "cs_abc", resp.Session.ID)
	})

	t.Run("unknown session", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "/api/checkout/session/cs_missing", nil)
		req.SetPathValue("id", "cs_missing")
		rec := httptest.NewRecorder()

		h.GetSession(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing session id", func(t *testing.T) {
		mock := billing.NewMockProvider()
		h := newCheckoutTestHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "/api/checkout/session/", nil)
		rec := httptest.NewRecorder()

		h.GetSession(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
