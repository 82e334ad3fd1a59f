package config

// Deployment constants
const (
	// Token Related
	TokenName   = "Brotherhood of Rats"
	TokenSymbol = "$BRATS"

	// Payment Related
	FlatPaymentFee = 3 // flat fee units on every accepted payment

	// Staking Related
	StakingDuration            = 180 * 24 * 3600 // full staking term, seconds
	EarlyUnstakePeriod         = 7 * 24 * 3600   // lock after launch before early unstake
	EarlyUnstakePenaltyPercent = 20

	// Liquidity Related
	LiquidityLockPeriod = 365 * 24 * 3600 // one year in seconds

	// Stage Related
	PriceDecimals = 8 // stage prices are fixed-point with 8 decimals
)
