package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytefit/storefront/internal/service"
	"github.com/bytefit/storefront/internal/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShippingTestHandler(mock *shipping.MockProvider) *ShippingHandler {
	svc := service.NewRateService(mock, service.RateConfig{
		Currency:              "aed",
		FreeShippingThreshold: 200,
	})
	return NewShippingHandler(svc, nil)
}

func TestShippingHandler_GetRates(t *testing.T) {
	t.Run("returns seller rates", func(t *testing.T) {
		mock := shipping.NewMockProvider()
		mock.Rates = []shipping.Rate{
			{
				ID:          "shr_standard",
				DisplayName: "Standard",
				Type:        "fixed_amount",
				FixedAmount: &shipping.FixedAmount{Amount: 2000, Currency: "aed"},
				Active:      true,
			},
		}
		h := newShippingTestHandler(mock)

		body := `{"connectedAccountId": "acct_seller", "orderTotal": 100}`
		req := httptest.NewRequest(http.MethodPost, "/api/shipping/rates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.GetRates(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool            `json:"success"`
			Rates   []shipping.Rate `json:"rates"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Rates, 1)
		assert.Equal(t, "shr_standard", resp.Rates[0].ID)
	})

	t.Run("injects free shipping above threshold", func(t *testing.T) {
		mock := shipping.NewMockProvider()
		h := newShippingTestHandler(mock)

		body := `{"connectedAccountId": "acct_seller", "orderTotal": 250}`
		req := httptest.NewRequest(http.MethodPost, "/api/shipping/rates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.GetRates(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Rates []shipping.Rate `json:"rates"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Rates, 1)
		assert.Equal(t, service.FreeShippingRateID, resp.Rates[0].ID)
		require.NotNil(t, resp.Rates[0].FixedAmount)
		assert.Equal(t, int64(0), resp.Rates[0].FixedAmount.Amount)
	})

	t.Run("missing account returns 400", func(t *testing.T) {
		mock := shipping.NewMockProvider()
		h := newShippingTestHandler(mock)

		body := `{"orderTotal": 100}`
		req := httptest.NewRequest(http.MethodPost, "/api/shipping/rates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.GetRates(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, mock.CallLog)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		mock := shipping.NewMockProvider()
		h := newShippingTestHandler(mock)

		req := httptest.NewRequest(http.MethodPost, "/api/shipping/rates", strings.NewReader("{bad"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.GetRates(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure returns 502", func(t *testing.T) {
		mock := shipping.NewMockProvider()
		mock.ListRatesFunc = func(ctx context.Context, connectedAccountID string) ([]shipping.Rate, error) {
			return nil, shipping.ErrNoRates
		}
		h := newShippingTestHandler(mock)

		body := `{"connectedAccountId": "acct_seller", "orderTotal": 100}`
		req := httptest.NewRequest(http.MethodPost, "/api/shipping/rates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.GetRates(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
