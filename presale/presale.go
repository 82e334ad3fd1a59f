package presale

import (
	"fmt"
	"strconv"

	"github.com/benbjohnson/clock"

	"github.com/brats-labs/brats/amount"
	"github.com/brats-labs/brats/config"
	"github.com/brats-labs/brats/types"
)

// Controller owns the presale lifecycle and the admin surface: record
// initialization, ending the sale, liquidity locking, burns, reward
// refills, parameter updates, withdrawals and the stage table.
type Controller struct {
	cfg    *config.Config
	store  types.StateStore
	ledger types.Ledger
	auth   types.Authorizer
	clk    clock.Clock
	sink   types.EventSink
}

func NewController(cfg *config.Config, store types.StateStore, l types.Ledger, auth types.Authorizer, clk clock.Clock, sink types.EventSink) *Controller {
	if clk == nil {
		clk = clock.New()
	}
	if sink == nil {
		sink = types.NopSink{}
	}
	return &Controller{cfg: cfg, store: store, ledger: l, auth: auth, clk: clk, sink: sink}
}

// Initialize creates the presale record in its open state. It can run
// exactly once per deployment.
func (c *Controller) Initialize(admin types.Address) error {
	st, err := c.store.GetPresaleState()
	if err != nil {
		return err
	}
	if st != nil {
		return types.ErrAlreadyInitialized
	}

	if err := c.store.SavePresaleState(&types.PresaleState{Active: true, Admin: admin}); err != nil {
		return err
	}
	c.sink.Emit(types.Event{Kind: types.EventPresaleInitialized, Attrs: map[string]string{
		"admin": admin.String(),
	}})
	return nil
}

// InitializeGlobalState creates the staking aggregate with its starting
// rates. Like Initialize, it refuses to overwrite an existing record.
func (c *Controller) InitializeGlobalState(apy, feePercent uint64) error {
	st, err := c.store.GetGlobalState()
	if err != nil {
		return err
	}
	if st != nil {
		return types.ErrAlreadyInitialized
	}
	return c.store.SaveGlobalState(&types.GlobalState{APY: apy, FeePercent: feePercent})
}

// End closes the presale. The same instant becomes the end time, the
// launch time, and the start of the one-year liquidity lock window.
func (c *Controller) End(caller types.Address) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}

	st, err := c.store.GetPresaleState()
	if err != nil {
		return err
	}
	if st == nil {
		return types.ErrNotInitialized
	}
	if !st.Active {
		return types.ErrAlreadyEnded
	}

	now := c.clk.Now().Unix()
	lockEnd := now + config.LiquidityLockPeriod
	st.Active = false
	st.EndTime = &now
	st.LaunchTime = &now
	st.LiquidityLockEndTime = &lockEnd
	if err := c.store.SavePresaleState(st); err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventPresaleEnded, Attrs: map[string]string{
		"end_time":      strconv.FormatInt(now, 10),
		"lock_end_time": strconv.FormatInt(lockEnd, 10),
	}})
	return nil
}

// LockLiquidity sweeps the liquidity holding into the vault. The call
// only succeeds while the current time is still before the lock-end
// timestamp set by End; after that it reports a lock window error.
func (c *Controller) LockLiquidity() error {
	st, err := c.store.GetPresaleState()
	if err != nil {
		return err
	}
	if st == nil {
		return types.ErrNotInitialized
	}
	if st.LiquidityLockEndTime == nil {
		return fmt.Errorf("%w: lock window not set", types.ErrLiquidityLock)
	}
	if c.clk.Now().Unix() >= *st.LiquidityLockEndTime {
		return fmt.Errorf("%w: lock window has passed", types.ErrLiquidityLock)
	}

	bal, err := c.ledger.Balance(c.cfg.LiquidityHolding, c.cfg.TokenMint)
	if err != nil {
		return err
	}
	if bal == 0 {
		return fmt.Errorf("%w: liquidity holding is empty", types.ErrInvalidAmount)
	}

	err = c.ledger.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: c.cfg.TokenMint, From: c.cfg.LiquidityHolding, To: c.cfg.Vault, Amount: bal},
	})
	if err != nil {
		return err
	}

	st.LiquidityLocked = true
	if err := c.store.SavePresaleState(st); err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventLiquidityLocked, Attrs: map[string]string{
		"amount": bal.String(),
	}})
	return nil
}

// BurnTokens destroys amt tokens held by the vault.
func (c *Controller) BurnTokens(caller types.Address, amt amount.Amount) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}
	if amt == 0 {
		return fmt.Errorf("%w: burn amount must be positive", types.ErrInvalidAmount)
	}

	err := c.ledger.Apply([]types.Instruction{
		{Op: types.OpBurn, Currency: c.cfg.TokenMint, From: c.cfg.Vault, Amount: amt},
	})
	if err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventTokensBurned, Attrs: map[string]string{
		"amount": amt.String(),
	}})
	return nil
}

// RefillRewardPool tops up the staking reward pool from the caller's own
// token balance and bumps the tracked pool size by the same amount.
func (c *Controller) RefillRewardPool(caller types.Address, amt amount.Amount) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}
	if amt == 0 {
		return fmt.Errorf("%w: refill amount must be positive", types.ErrInvalidAmount)
	}

	gs, err := c.store.GetGlobalState()
	if err != nil {
		return err
	}
	if gs == nil {
		return types.ErrNotInitialized
	}

	next, err := amount.Add(gs.RewardPool, amt)
	if err != nil {
		return types.ArithmeticFault(err)
	}

	err = c.ledger.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: c.cfg.TokenMint, From: caller, To: c.cfg.RewardPool, Amount: amt},
	})
	if err != nil {
		return err
	}

	gs.RewardPool = next
	if err := c.store.SaveGlobalState(gs); err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventRewardPoolRefilled, Attrs: map[string]string{
		"amount": amt.String(),
		"pool":   gs.RewardPool.String(),
	}})
	return nil
}

// UpdateParameters overwrites the APY and fee percent. New values apply
// to rewards computed after the update; nothing is recomputed
// retroactively.
func (c *Controller) UpdateParameters(caller types.Address, apy, feePercent uint64) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}

	gs, err := c.store.GetGlobalState()
	if err != nil {
		return err
	}
	if gs == nil {
		return types.ErrNotInitialized
	}

	gs.APY = apy
	gs.FeePercent = feePercent
	if err := c.store.SaveGlobalState(gs); err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventParametersUpdated, Attrs: map[string]string{
		"apy":         strconv.FormatUint(apy, 10),
		"fee_percent": strconv.FormatUint(feePercent, 10),
	}})
	return nil
}

// WithdrawFunds moves native funds from the treasury to the caller while
// the presale is still running.
func (c *Controller) WithdrawFunds(caller types.Address, amt amount.Amount) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}
	if amt == 0 {
		return fmt.Errorf("%w: withdrawal must be positive", types.ErrInvalidAmount)
	}

	st, err := c.store.GetPresaleState()
	if err != nil {
		return err
	}
	if st == nil {
		return types.ErrNotInitialized
	}
	if !st.Active {
		return types.ErrWithdrawalClosed
	}

	err = c.ledger.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: c.cfg.Treasury, To: caller, Amount: amt},
	})
	if err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventFundsWithdrawn, Attrs: map[string]string{
		"recipient": caller.String(),
		"amount":    amt.String(),
	}})
	return nil
}

// InitializeStages writes the hardcoded 8-stage schedule.
func (c *Controller) InitializeStages(caller types.Address) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}

	tbl, err := c.store.GetStageTable()
	if err != nil {
		return err
	}
	if tbl != nil {
		return types.ErrAlreadyInitialized
	}
	return c.store.SaveStageTable(&types.StageTable{Stages: config.DefaultStages()})
}

// UpdateStage rewrites one stage entry. The stored Stage field is always
// the 1-based position, whatever the caller passed in.
func (c *Controller) UpdateStage(caller types.Address, idx uint8, price uint64, tokensSold, totalRaised amount.Amount) error {
	if err := c.auth.Authorize(caller); err != nil {
		return err
	}
	if idx >= types.StageCount {
		return fmt.Errorf("%w: index %d", types.ErrInvalidStageIndex, idx)
	}

	tbl, err := c.store.GetStageTable()
	if err != nil {
		return err
	}
	if tbl == nil {
		return types.ErrNotInitialized
	}

	tbl.Stages[idx] = types.PresaleStage{
		Stage:       idx + 1,
		Price:       price,
		TokensSold:  tokensSold,
		TotalRaised: totalRaised,
	}
	if err := c.store.SaveStageTable(tbl); err != nil {
		return err
	}

	c.sink.Emit(types.Event{Kind: types.EventStageUpdated, Attrs: map[string]string{
		"stage": strconv.Itoa(int(idx) + 1),
		"price": strconv.FormatUint(price, 10),
	}})
	return nil
}
