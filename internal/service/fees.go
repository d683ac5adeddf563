package service

import (
	"math"
)

// DefaultPlatformFeePercent is the platform's cut of marketplace
// payments when no fee is configured.
const DefaultPlatformFeePercent = 10.0

// FeeSplitCalculator computes the platform/seller fund split for
// marketplace payments. Direct payments never touch it: the platform
// account retains the full amount.
type FeeSplitCalculator struct {
	feeFraction float64
}

// NewFeeSplitCalculator creates a calculator for the given platform
// fee percentage. Out-of-range values fall back to the default.
func NewFeeSplitCalculator(feePercent float64) *FeeSplitCalculator {
	if feePercent < 0 || feePercent >= 100 {
		feePercent = DefaultPlatformFeePercent
	}
	return &FeeSplitCalculator{feeFraction: feePercent / 100}
}

// TransferAmount returns the portion of total (smallest currency
// units) forwarded to the seller: round-half-up(total * (1 - fee)).
// The result is always within [0, total], so the platform's retained
// amount is never negative.
func (c *FeeSplitCalculator) TransferAmount(total int64) int64 {
	if total <= 0 {
		return 0
	}

	transfer := int64(math.Round(float64(total) * (1 - c.feeFraction)))
	if transfer < 0 {
		return 0
	}
	if transfer > total {
		return total
	}
	return transfer
}

// PlatformFee returns the amount the platform retains.
func (c *FeeSplitCalculator) PlatformFee(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return total - c.TransferAmount(total)
}
