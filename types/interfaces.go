package types

import (
	"github.com/brats-labs/brats/amount"
)

// StateStore persists the economy's records. Get methods return
// (nil, nil) when a record was never written; engines decide whether
// that is an error for the operation at hand.
type StateStore interface {
	GetPresaleState() (*PresaleState, error)
	SavePresaleState(st *PresaleState) error

	GetGlobalState() (*GlobalState, error)
	SaveGlobalState(st *GlobalState) error

	// GetStakeAccount returns a zeroed account when the depositor has
	// never staked, matching the zero-initialize-on-first-stake rule.
	GetStakeAccount(addr Address) (*StakeAccount, error)
	SaveStakeAccount(addr Address, acct *StakeAccount) error
	ListStakeAccounts() (map[Address]*StakeAccount, error)

	GetStageTable() (*StageTable, error)
	SaveStageTable(tbl *StageTable) error
}

// OpKind discriminates ledger instructions.
type OpKind uint8

const (
	OpTransfer OpKind = iota + 1
	OpBurn
	OpMint
)

func (k OpKind) String() string {
	switch k {
	case OpTransfer:
		return "transfer"
	case OpBurn:
		return "burn"
	case OpMint:
		return "mint"
	default:
		return "unknown"
	}
}

// Instruction is one balance movement. Burn has no To, Mint has no From.
type Instruction struct {
	Op       OpKind
	Currency Currency
	From     Address
	To       Address
	Amount   amount.Amount
}

// Ledger executes validated balance movements. Apply is atomic: either
// the whole batch lands or none of it does, which is what lets an engine
// bundle a payout and a penalty burn into a single fallible step.
type Ledger interface {
	Apply(batch []Instruction) error
	Balance(addr Address, cur Currency) (amount.Amount, error)
}

// Authorizer is the policy check behind every privileged operation.
// A single stored admin is just an AdminSet of one; multi-sig or
// role-based schemes substitute here without touching engine logic.
type Authorizer interface {
	Authorize(caller Address) error
}

// AdminSet authorizes a fixed set of principals.
type AdminSet map[Address]struct{}

func NewAdminSet(addrs ...Address) AdminSet {
	s := make(AdminSet, len(addrs))
	for _, a := range addrs {
		s[a] = struct{}{}
	}
	return s
}

func (s AdminSet) Authorize(caller Address) error {
	if _, ok := s[caller]; !ok {
		return ErrUnauthorized
	}
	return nil
}
