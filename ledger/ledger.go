package ledger

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/brats-labs/brats/amount"
	"github.com/brats-labs/brats/types"
)

// Entry is one committed balance movement in the journal.
type Entry struct {
	ID       string
	Op       types.OpKind
	Currency types.Currency
	From     types.Address
	To       types.Address
	Amount   amount.Amount
}

type balanceKey struct {
	cur  types.Currency
	addr types.Address
}

// Ledger is the in-memory token service. Balances are tracked per
// currency per holding; Apply commits a whole instruction batch or
// nothing, which gives callers their transactional sub-steps.
type Ledger struct {
	mu       sync.RWMutex
	balances map[balanceKey]amount.Amount
	journal  []Entry
}

func New() *Ledger {
	return &Ledger{balances: make(map[balanceKey]amount.Amount)}
}

// Fund credits a holding directly. Used at bootstrap and in tests to
// seed initial balances; it does not journal.
func (l *Ledger) Fund(addr types.Address, cur types.Currency, amt amount.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := balanceKey{cur: cur, addr: addr}
	next, err := amount.Add(l.balances[key], amt)
	if err != nil {
		return types.ArithmeticFault(err)
	}
	l.balances[key] = next
	return nil
}

func (l *Ledger) Balance(addr types.Address, cur types.Currency) (amount.Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[balanceKey{cur: cur, addr: addr}], nil
}

// Journal returns the committed entries in order.
func (l *Ledger) Journal() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.journal))
	copy(out, l.journal)
	return out
}

// Apply validates the whole batch against current balances and commits
// it atomically. Any failure leaves every balance untouched.
func (l *Ledger) Apply(batch []types.Instruction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	scratch := make(map[balanceKey]amount.Amount)
	read := func(key balanceKey) amount.Amount {
		if v, ok := scratch[key]; ok {
			return v
		}
		return l.balances[key]
	}

	for i, inst := range batch {
		switch inst.Op {
		case types.OpTransfer, types.OpBurn:
			fromKey := balanceKey{cur: inst.Currency, addr: inst.From}
			bal := read(fromKey)
			if bal < inst.Amount {
				return fmt.Errorf("%w: %s of %s from %s (balance %s)",
					types.ErrInsufficientFunds, inst.Op, inst.Amount, inst.From, bal)
			}
			next, err := amount.Sub(bal, inst.Amount)
			if err != nil {
				return types.ArithmeticFault(err)
			}
			scratch[fromKey] = next

			if inst.Op == types.OpTransfer {
				toKey := balanceKey{cur: inst.Currency, addr: inst.To}
				next, err := amount.Add(read(toKey), inst.Amount)
				if err != nil {
					return types.ArithmeticFault(err)
				}
				scratch[toKey] = next
			}
		case types.OpMint:
			toKey := balanceKey{cur: inst.Currency, addr: inst.To}
			next, err := amount.Add(read(toKey), inst.Amount)
			if err != nil {
				return types.ArithmeticFault(err)
			}
			scratch[toKey] = next
		default:
			return fmt.Errorf("unknown ledger op %d at instruction %d", inst.Op, i)
		}
	}

	// Every instruction validated; commit.
	for key, v := range scratch {
		l.balances[key] = v
	}
	for _, inst := range batch {
		entry := Entry{
			ID:       uuid.NewString(),
			Op:       inst.Op,
			Currency: inst.Currency,
			From:     inst.From,
			To:       inst.To,
			Amount:   inst.Amount,
		}
		l.journal = append(l.journal, entry)
		log.WithFields(log.Fields{
			"id":     entry.ID,
			"op":     entry.Op.String(),
			"from":   entry.From,
			"to":     entry.To,
			"amount": entry.Amount,
		}).Debug("ledger entry committed")
	}
	return nil
}
