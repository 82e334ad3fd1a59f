package staking

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/benbjohnson/clock"

	"github.com/brats-labs/brats/amount"
	"github.com/brats-labs/brats/config"
	"github.com/brats-labs/brats/types"
)

// Engine runs the presale-only staking program: deposits into the
// staking pool, time-prorated reward claims, and unstaking with an
// early-exit penalty burn.
type Engine struct {
	cfg    *config.Config
	store  types.StateStore
	ledger types.Ledger
	clk    clock.Clock
	sink   types.EventSink
}

func NewEngine(cfg *config.Config, store types.StateStore, l types.Ledger, clk clock.Clock, sink types.EventSink) *Engine {
	if clk == nil {
		clk = clock.New()
	}
	if sink == nil {
		sink = types.NopSink{}
	}
	return &Engine{cfg: cfg, store: store, ledger: l, clk: clk, sink: sink}
}

// Stake moves amt of the depositor's tokens into the staking pool.
// Staking is only open while the presale is running and while the
// reward pool has anything left to earn from.
func (e *Engine) Stake(caller types.Address, amt amount.Amount) error {
	st, err := e.store.GetPresaleState()
	if err != nil {
		return err
	}
	if st == nil {
		return types.ErrNotInitialized
	}
	if !st.Active {
		return types.ErrStakingClosed
	}

	gs, err := e.store.GetGlobalState()
	if err != nil {
		return err
	}
	if gs == nil {
		return types.ErrNotInitialized
	}
	if gs.RewardPool == 0 {
		return types.ErrRewardsExhausted
	}
	if amt == 0 {
		return fmt.Errorf("%w: stake must be positive", types.ErrInvalidAmount)
	}

	acct, err := e.store.GetStakeAccount(caller)
	if err != nil {
		return err
	}

	newAmount, err := amount.Add(acct.Amount, amt)
	if err != nil {
		return types.ArithmeticFault(err)
	}
	newTotal, err := amount.Add(gs.TotalStaked, amt)
	if err != nil {
		return types.ArithmeticFault(err)
	}

	now := e.clk.Now().Unix()
	start := now
	if acct.Amount > 0 && e.cfg.StakeClockMode == config.ClockWeighted {
		start = weightedStart(acct.Amount, acct.StartTime, amt, now)
	}

	err = e.ledger.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: e.cfg.TokenMint, From: caller, To: e.cfg.StakingPool, Amount: amt},
	})
	if err != nil {
		return err
	}

	acct.Amount = newAmount
	acct.StartTime = start
	acct.LastClaimTime = now
	if err := e.store.SaveStakeAccount(caller, acct); err != nil {
		return err
	}
	gs.TotalStaked = newTotal
	if err := e.store.SaveGlobalState(gs); err != nil {
		return err
	}

	e.sink.Emit(types.Event{Kind: types.EventStaked, Attrs: map[string]string{
		"depositor":    caller.String(),
		"amount":       amt.String(),
		"total_staked": gs.TotalStaked.String(),
	}})
	return nil
}

// weightedStart moves the vesting clock to the stake-weighted average of
// the existing position and the new deposit. Intermediate products can
// exceed 64 bits, so the average is taken in big integers.
func weightedStart(oldAmt amount.Amount, oldStart int64, addAmt amount.Amount, now int64) int64 {
	oa := new(big.Int).SetUint64(oldAmt.Uint64())
	na := new(big.Int).SetUint64(addAmt.Uint64())

	num := new(big.Int).Mul(oa, big.NewInt(oldStart))
	num.Add(num, new(big.Int).Mul(na, big.NewInt(now)))
	den := new(big.Int).Add(oa, na)

	return new(big.Int).Quo(num, den).Int64()
}

// Unstake returns the full position to the depositor. Before the full
// term has elapsed the exit pays out net of a penalty, and the penalty
// is burned.
func (e *Engine) Unstake(caller types.Address) error {
	st, err := e.store.GetPresaleState()
	if err != nil {
		return err
	}
	if st == nil {
		return types.ErrNotInitialized
	}

	// The 7-day floor only exists once a launch time is stamped;
	// exiting while the presale still runs is allowed and simply
	// takes the early penalty below.
	now := e.clk.Now().Unix()
	if st.LaunchTime != nil && now < *st.LaunchTime+config.EarlyUnstakePeriod {
		return types.ErrEarlyUnstakeLocked
	}

	acct, err := e.store.GetStakeAccount(caller)
	if err != nil {
		return err
	}
	if acct.Amount == 0 {
		return fmt.Errorf("%w: nothing staked", types.ErrInvalidAmount)
	}

	gs, err := e.store.GetGlobalState()
	if err != nil {
		return err
	}
	if gs == nil {
		return types.ErrNotInitialized
	}

	staked := acct.Amount
	payout := staked
	var penalty amount.Amount
	if now-acct.StartTime < config.StakingDuration {
		p, err := amount.Mul(staked, config.EarlyUnstakePenaltyPercent)
		if err != nil {
			return types.ArithmeticFault(err)
		}
		penalty, err = amount.Div(p, 100)
		if err != nil {
			return types.ArithmeticFault(err)
		}
		payout, err = amount.Sub(staked, penalty)
		if err != nil {
			return types.ArithmeticFault(err)
		}
	}

	newTotal, err := amount.Sub(gs.TotalStaked, staked)
	if err != nil {
		return types.ArithmeticFault(err)
	}

	batch := []types.Instruction{
		{Op: types.OpTransfer, Currency: e.cfg.TokenMint, From: e.cfg.StakingPool, To: caller, Amount: payout},
	}
	if penalty > 0 {
		batch = append(batch, types.Instruction{
			Op: types.OpBurn, Currency: e.cfg.TokenMint, From: e.cfg.StakingPool, Amount: penalty,
		})
	}
	if err := e.ledger.Apply(batch); err != nil {
		return err
	}

	// Zero the record rather than delete it; the depositor keeps an
	// account slot for any later program.
	if err := e.store.SaveStakeAccount(caller, &types.StakeAccount{}); err != nil {
		return err
	}
	gs.TotalStaked = newTotal
	if err := e.store.SaveGlobalState(gs); err != nil {
		return err
	}

	e.sink.Emit(types.Event{Kind: types.EventUnstaked, Attrs: map[string]string{
		"depositor": caller.String(),
		"staked":    staked.String(),
		"payout":    payout.String(),
		"penalty":   penalty.String(),
	}})
	return nil
}

// Calculate returns the reward accrued since the last claim without
// changing any state. The formula prorates a full-term yield of
// amount * apy / 100 linearly over the staking duration.
func (e *Engine) Calculate(caller types.Address) (amount.Amount, error) {
	return e.rewardAt(caller, e.clk.Now().Unix())
}

// rewardAt computes the accrual for a single already-sampled instant so
// Claim records the exact timestamp its payout was computed for.
func (e *Engine) rewardAt(caller types.Address, now int64) (amount.Amount, error) {
	gs, err := e.store.GetGlobalState()
	if err != nil {
		return 0, err
	}
	if gs == nil {
		return 0, types.ErrNotInitialized
	}

	acct, err := e.store.GetStakeAccount(caller)
	if err != nil {
		return 0, err
	}

	dt := now - acct.LastClaimTime
	if dt <= 0 {
		return 0, types.ErrNoRewardsAvailable
	}

	m, err := amount.Mul(acct.Amount, amount.Amount(gs.APY))
	if err != nil {
		return 0, types.ArithmeticFault(err)
	}
	m, err = amount.Mul(m, amount.Amount(dt))
	if err != nil {
		return 0, types.ArithmeticFault(err)
	}
	reward, err := amount.Div(m, 100*config.StakingDuration)
	if err != nil {
		return 0, types.ArithmeticFault(err)
	}
	return reward, nil
}

// Claim pays out the accrued reward from the reward pool and restarts
// the accrual clock.
func (e *Engine) Claim(caller types.Address) error {
	now := e.clk.Now().Unix()
	reward, err := e.rewardAt(caller, now)
	if err != nil {
		return err
	}
	if reward == 0 {
		return types.ErrNoRewardsAvailable
	}

	gs, err := e.store.GetGlobalState()
	if err != nil {
		return err
	}
	if gs == nil {
		return types.ErrNotInitialized
	}
	if gs.RewardPool < reward {
		return fmt.Errorf("%w: pool %s below reward %s", types.ErrInsufficientRewards, gs.RewardPool, reward)
	}
	poolBal, err := e.ledger.Balance(e.cfg.RewardPool, e.cfg.TokenMint)
	if err != nil {
		return err
	}
	if poolBal < reward {
		return fmt.Errorf("%w: pool holds %s, reward is %s", types.ErrInsufficientRewards, poolBal, reward)
	}

	newPool, err := amount.Sub(gs.RewardPool, reward)
	if err != nil {
		return types.ArithmeticFault(err)
	}

	err = e.ledger.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: e.cfg.TokenMint, From: e.cfg.RewardPool, To: caller, Amount: reward},
	})
	if err != nil {
		return err
	}

	acct, err := e.store.GetStakeAccount(caller)
	if err != nil {
		return err
	}
	acct.LastClaimTime = now
	if err := e.store.SaveStakeAccount(caller, acct); err != nil {
		return err
	}
	gs.RewardPool = newPool
	if err := e.store.SaveGlobalState(gs); err != nil {
		return err
	}

	e.sink.Emit(types.Event{Kind: types.EventRewardsClaimed, Attrs: map[string]string{
		"depositor": caller.String(),
		"reward":    reward.String(),
		"pool":      strconv.FormatUint(gs.RewardPool.Uint64(), 10),
	}})
	return nil
}
