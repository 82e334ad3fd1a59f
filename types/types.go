package types

import (
	"github.com/brats-labs/brats/amount"
)

// Address is an opaque, pre-authenticated caller or holding identity.
// Signature verification happens outside this module; by the time an
// Address reaches an engine it is trusted.
type Address string

func (a Address) String() string {
	return string(a)
}

// Currency identifies which balance column a payment or transfer moves.
// CurrencyNative is the chain's native coin; everything else is a token
// mint identifier.
type Currency string

const CurrencyNative Currency = "native"

// PresaleState is the lifecycle record for one presale instance.
// Active flips true -> false exactly once; the optional timestamps are
// unix seconds and stay nil until EndPresale runs.
type PresaleState struct {
	Active               bool    `cbor:"1,keyasint"`
	EndTime              *int64  `cbor:"2,keyasint,omitempty"`
	LaunchTime           *int64  `cbor:"3,keyasint,omitempty"`
	Admin                Address `cbor:"4,keyasint"`
	LiquidityLocked      bool    `cbor:"5,keyasint"`
	LiquidityLockEndTime *int64  `cbor:"6,keyasint,omitempty"`
}

// GlobalState aggregates the staking economy. TotalStaked must equal the
// sum of all StakeAccount.Amount at every quiescent point; RewardPool
// only decreases on claim payout and only increases on admin refill.
type GlobalState struct {
	TotalStaked amount.Amount `cbor:"1,keyasint"`
	RewardPool  amount.Amount `cbor:"2,keyasint"`
	APY         uint64        `cbor:"3,keyasint"`
	FeePercent  uint64        `cbor:"4,keyasint"`
}

// StakeAccount is the per-depositor stake record. It is zero-initialized
// on first stake and zeroed, not deleted, on full unstake.
type StakeAccount struct {
	Amount        amount.Amount `cbor:"1,keyasint"`
	StartTime     int64         `cbor:"2,keyasint"`
	LastClaimTime int64         `cbor:"3,keyasint"`
}

// PresaleStage is one entry of the fixed 8-stage pricing schedule.
// Price is fixed-point with 8 decimals (0.00021 is stored as 21000).
type PresaleStage struct {
	Stage       uint8         `cbor:"1,keyasint"`
	Price       uint64        `cbor:"2,keyasint"`
	TokensSold  amount.Amount `cbor:"3,keyasint"`
	TotalRaised amount.Amount `cbor:"4,keyasint"`
}

// StageCount is fixed by the deployment; the table never grows or shrinks.
const StageCount = 8

type StageTable struct {
	Stages [StageCount]PresaleStage `cbor:"1,keyasint"`
}
