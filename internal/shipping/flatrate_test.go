package shipping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatRateProvider_ListRates(t *testing.T) {
	provider := NewFlatRateProvider("aed", []FlatRate{
		{Name: "Standard Shipping", Amount: 2000, DaysMin: 3, DaysMax: 7},
		{Name: "Express Shipping", Amount: 5000, DaysMin: 1, DaysMax: 2},
	})

	rates, err := provider.ListRates(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rates, 2)

	assert.Equal(t, "flat_rate_0", rates[0].ID)
	assert.Equal(t, "Standard Shipping", rates[0].DisplayName)
	assert.Equal(t, "fixed_amount", rates[0].Type)
	assert.Equal(t, int64(2000), rates[0].Amount())
	assert.Equal(t, "aed", rates[0].FixedAmount.Currency)
	assert.True(t, rates[0].Active)

	require.NotNil(t, rates[0].DeliveryEstimate)
	assert.Equal(t, int64(3), rates[0].DeliveryEstimate.Minimum.Value)
	assert.Equal(t, int64(7), rates[0].DeliveryEstimate.Maximum.Value)
	assert.Equal(t, "business_day", rates[0].DeliveryEstimate.Maximum.Unit)

	assert.Equal(t, int64(5000), rates[1].Amount())
}

func TestFlatRateProvider_NoEstimate(t *testing.T) {
	provider := NewFlatRateProvider("usd", []FlatRate{
		{Name: "Pickup", Amount: 0},
	})

	rates, err := provider.ListRates(context.Background(), "acct_123")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Nil(t, rates[0].DeliveryEstimate)
	assert.Equal(t, int64(0), rates[0].Amount())
}
