package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/brats-labs/brats/types"
)

// StakeClockMode picks how StartTime behaves when a depositor stakes on
// top of an existing position. Reset restarts the full-term clock every
// call (the original behavior); Weighted moves StartTime to the
// amount-weighted average so earlier vesting time is not thrown away.
type StakeClockMode string

const (
	ClockReset    StakeClockMode = "reset"
	ClockWeighted StakeClockMode = "weighted"
)

// Config carries the deployment-fixed identities and holdings. These are
// set once at wiring time and never mutated by operations.
type Config struct {
	Admin        types.Address
	FeeRecipient types.Address
	Treasury     types.Address

	// TokenMint identifies the secondary payment token; it doubles as
	// the Currency for all staking balances.
	TokenMint types.Currency

	StakingPool      types.Address
	RewardPool       types.Address
	LiquidityHolding types.Address
	Vault            types.Address

	StakeClockMode StakeClockMode
}

// Default holdings match the account set of the original deployment.
const (
	defaultAdmin        = "brats1adminxk3qst1bhk3yktw3s"
	defaultFeeRecipient = "brats1feewalletjr9jdjpz1srr9tr"
	defaultTreasury     = "brats1treasuryngzpknjr9jdjpz1"
	defaultTokenMint    = "brats1mint57emxjxjkgyncgjr9"
	defaultStakingPool  = "brats1stakingpool"
	defaultRewardPool   = "brats1rewardpool"
	defaultLiquidity    = "brats1liquidity"
	defaultVault        = "brats1vault"
)

// Load reads settings from the environment, honoring a .env file when
// one exists next to the process.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Admin:            types.Address(getEnv("BRATS_ADMIN", defaultAdmin)),
		FeeRecipient:     types.Address(getEnv("BRATS_FEE_RECIPIENT", defaultFeeRecipient)),
		Treasury:         types.Address(getEnv("BRATS_TREASURY", defaultTreasury)),
		TokenMint:        types.Currency(getEnv("BRATS_TOKEN_MINT", defaultTokenMint)),
		StakingPool:      types.Address(getEnv("BRATS_STAKING_POOL", defaultStakingPool)),
		RewardPool:       types.Address(getEnv("BRATS_REWARD_POOL", defaultRewardPool)),
		LiquidityHolding: types.Address(getEnv("BRATS_LIQUIDITY", defaultLiquidity)),
		Vault:            types.Address(getEnv("BRATS_VAULT", defaultVault)),
		StakeClockMode:   StakeClockMode(getEnv("BRATS_STAKE_CLOCK", string(ClockReset))),
	}

	if cfg.StakeClockMode != ClockReset && cfg.StakeClockMode != ClockWeighted {
		return nil, fmt.Errorf("invalid BRATS_STAKE_CLOCK %q", cfg.StakeClockMode)
	}
	return cfg, nil
}

// Default returns the deployment defaults without touching the environment.
func Default() *Config {
	return &Config{
		Admin:            defaultAdmin,
		FeeRecipient:     defaultFeeRecipient,
		Treasury:         defaultTreasury,
		TokenMint:        defaultTokenMint,
		StakingPool:      defaultStakingPool,
		RewardPool:       defaultRewardPool,
		LiquidityHolding: defaultLiquidity,
		Vault:            defaultVault,
		StakeClockMode:   ClockReset,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
