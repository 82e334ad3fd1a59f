package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brats-labs/brats/types"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	// Records start out absent.
	st, err := s.GetPresaleState()
	require.NoError(t, err)
	assert.Nil(t, st)

	end := int64(1_700_000_000)
	require.NoError(t, s.SavePresaleState(&types.PresaleState{
		Active:  true,
		Admin:   "brats1admin",
		EndTime: &end,
	}))

	st, err = s.GetPresaleState()
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.Active)
	assert.Equal(t, types.Address("brats1admin"), st.Admin)
	require.NotNil(t, st.EndTime)
	assert.Equal(t, end, *st.EndTime)

	require.NoError(t, s.SaveGlobalState(&types.GlobalState{TotalStaked: 42, RewardPool: 7, APY: 43, FeePercent: 2}))
	gs, err := s.GetGlobalState()
	require.NoError(t, err)
	require.NotNil(t, gs)
	assert.EqualValues(t, 42, gs.TotalStaked)
	assert.EqualValues(t, 43, gs.APY)
}

func TestStakeAccountDefaultsToZero(t *testing.T) {
	s := openTestStore(t)

	acct, err := s.GetStakeAccount("brats1nobody")
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.EqualValues(t, 0, acct.Amount)
	assert.EqualValues(t, 0, acct.StartTime)
}

func TestStakeAccountCacheReturnsCopies(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveStakeAccount("brats1alice", &types.StakeAccount{Amount: 100, StartTime: 10, LastClaimTime: 10}))

	a1, err := s.GetStakeAccount("brats1alice")
	require.NoError(t, err)
	a1.Amount = 999 // mutate without saving

	a2, err := s.GetStakeAccount("brats1alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, a2.Amount, "unsaved mutation must not leak through the cache")
}

func TestListStakeAccounts(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveStakeAccount("brats1alice", &types.StakeAccount{Amount: 100}))
	require.NoError(t, s.SaveStakeAccount("brats1bob", &types.StakeAccount{Amount: 250}))

	accounts, err := s.ListStakeAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.EqualValues(t, 100, accounts["brats1alice"].Amount)
	assert.EqualValues(t, 250, accounts["brats1bob"].Amount)
}

func TestStageTableRoundTrip(t *testing.T) {
	s := openTestStore(t)

	tbl, err := s.GetStageTable()
	require.NoError(t, err)
	assert.Nil(t, tbl)

	var in types.StageTable
	in.Stages[0] = types.PresaleStage{Stage: 1, Price: 21000, TokensSold: 2_500_000_000, TotalRaised: 525_000}
	in.Stages[7] = types.PresaleStage{Stage: 8, Price: 49000, TokensSold: 2_500_000_000, TotalRaised: 1_225_000}
	require.NoError(t, s.SaveStageTable(&in))

	tbl, err = s.GetStageTable()
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.EqualValues(t, 21000, tbl.Stages[0].Price)
	assert.EqualValues(t, 1_225_000, tbl.Stages[7].TotalRaised)
}

func TestMemStoreMatchesInterface(t *testing.T) {
	var _ types.StateStore = NewMemStore()
	var _ types.StateStore = &BadgerStore{}

	m := NewMemStore()
	require.NoError(t, m.SaveStakeAccount("brats1alice", &types.StakeAccount{Amount: 5}))
	acct, err := m.GetStakeAccount("brats1alice")
	require.NoError(t, err)
	assert.EqualValues(t, 5, acct.Amount)

	accounts, err := m.ListStakeAccounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}
