package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brats-labs/brats/types"
)

const (
	alice = types.Address("brats1alice")
	bob   = types.Address("brats1bob")
	pool  = types.Address("brats1pool")
)

func balance(t *testing.T, l *Ledger, addr types.Address, cur types.Currency) uint64 {
	t.Helper()
	bal, err := l.Balance(addr, cur)
	require.NoError(t, err)
	return bal.Uint64()
}

func TestApplyTransfer(t *testing.T) {
	l := New()
	require.NoError(t, l.Fund(alice, types.CurrencyNative, 1000))

	err := l.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: alice, To: bob, Amount: 997},
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: alice, To: pool, Amount: 3},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 0, balance(t, l, alice, types.CurrencyNative))
	assert.EqualValues(t, 997, balance(t, l, bob, types.CurrencyNative))
	assert.EqualValues(t, 3, balance(t, l, pool, types.CurrencyNative))
	assert.Len(t, l.Journal(), 2)
}

func TestApplyIsAtomic(t *testing.T) {
	l := New()
	require.NoError(t, l.Fund(alice, types.CurrencyNative, 100))

	// Second instruction overdraws, so the first must not land either.
	err := l.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: alice, To: bob, Amount: 50},
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: alice, To: pool, Amount: 51},
	})
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	assert.EqualValues(t, 100, balance(t, l, alice, types.CurrencyNative))
	assert.EqualValues(t, 0, balance(t, l, bob, types.CurrencyNative))
	assert.Empty(t, l.Journal())
}

func TestApplySeesEarlierInstructions(t *testing.T) {
	l := New()
	require.NoError(t, l.Fund(alice, types.CurrencyNative, 10))

	// Bob has nothing until the first transfer lands, but the batch
	// validates as a whole so the relay goes through.
	err := l.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: alice, To: bob, Amount: 10},
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: bob, To: pool, Amount: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, balance(t, l, pool, types.CurrencyNative))
}

func TestBurnReducesSupply(t *testing.T) {
	l := New()
	cur := types.Currency("brats")
	require.NoError(t, l.Fund(pool, cur, 1_000_000))

	err := l.Apply([]types.Instruction{
		{Op: types.OpBurn, Currency: cur, From: pool, Amount: 200_000},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 800_000, balance(t, l, pool, cur))

	err = l.Apply([]types.Instruction{
		{Op: types.OpBurn, Currency: cur, From: pool, Amount: 800_001},
	})
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
	assert.EqualValues(t, 800_000, balance(t, l, pool, cur))
}

func TestMint(t *testing.T) {
	l := New()
	cur := types.Currency("brats")

	require.NoError(t, l.Apply([]types.Instruction{
		{Op: types.OpMint, Currency: cur, To: alice, Amount: 500},
	}))
	assert.EqualValues(t, 500, balance(t, l, alice, cur))
}

func TestCurrenciesAreIsolated(t *testing.T) {
	l := New()
	require.NoError(t, l.Fund(alice, types.CurrencyNative, 100))

	err := l.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: types.Currency("brats"), From: alice, To: bob, Amount: 1},
	})
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
}

func TestUnknownOpRejected(t *testing.T) {
	l := New()
	err := l.Apply([]types.Instruction{{Op: types.OpKind(99), Amount: 1}})
	require.Error(t, err)
	assert.Empty(t, l.Journal())
}
