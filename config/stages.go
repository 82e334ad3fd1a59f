package config

import (
	"github.com/shopspring/decimal"

	"github.com/brats-labs/brats/types"
)

// DefaultStages returns the hardcoded 8-stage pricing schedule.
// Prices are stored with 8 decimals (0.00021 -> 21000).
func DefaultStages() [types.StageCount]types.PresaleStage {
	return [types.StageCount]types.PresaleStage{
		{Stage: 1, Price: 21000, TokensSold: 2_500_000_000, TotalRaised: 525_000},
		{Stage: 2, Price: 25000, TokensSold: 2_500_000_000, TotalRaised: 625_000},
		{Stage: 3, Price: 29000, TokensSold: 2_500_000_000, TotalRaised: 725_000},
		{Stage: 4, Price: 33000, TokensSold: 2_500_000_000, TotalRaised: 825_000},
		{Stage: 5, Price: 37000, TokensSold: 2_500_000_000, TotalRaised: 925_000},
		{Stage: 6, Price: 41000, TokensSold: 2_500_000_000, TotalRaised: 1_025_000},
		{Stage: 7, Price: 45000, TokensSold: 2_500_000_000, TotalRaised: 1_125_000},
		{Stage: 8, Price: 49000, TokensSold: 2_500_000_000, TotalRaised: 1_225_000},
	}
}

// PriceToDecimal converts a stored fixed-point stage price into its
// human value, e.g. 21000 -> 0.00021.
func PriceToDecimal(price uint64) decimal.Decimal {
	return decimal.New(int64(price), -PriceDecimals)
}

// PriceFromDecimal converts a human price into the stored fixed-point
// representation, truncating anything below the 8th decimal.
func PriceFromDecimal(d decimal.Decimal) uint64 {
	shifted := d.Shift(PriceDecimals).Truncate(0)
	return uint64(shifted.IntPart())
}
