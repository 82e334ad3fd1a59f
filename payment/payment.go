package payment

import (
	"fmt"

	"github.com/brats-labs/brats/amount"
	"github.com/brats-labs/brats/config"
	"github.com/brats-labs/brats/types"
)

// Processor accepts presale purchases in either currency and splits the
// flat fee off every payment. It never touches stored records; a payment
// is purely a ledger batch.
type Processor struct {
	cfg    *config.Config
	ledger types.Ledger
	sink   types.EventSink
}

func NewProcessor(cfg *config.Config, l types.Ledger, sink types.EventSink) *Processor {
	if sink == nil {
		sink = types.NopSink{}
	}
	return &Processor{cfg: cfg, ledger: l, sink: sink}
}

// AcceptPayment moves amt from the payer, sending amt minus the flat fee
// to the treasury and the fee to the fee recipient. The destination
// accounts are caller-supplied and checked against configuration, so a
// payment can never be redirected.
func (p *Processor) AcceptPayment(caller types.Address, amt amount.Amount, cur types.Currency, feeRecipient, treasury types.Address) error {
	if feeRecipient != p.cfg.FeeRecipient || treasury != p.cfg.Treasury {
		return fmt.Errorf("%w: got fee=%s treasury=%s", types.ErrInvalidFeeRecipient, feeRecipient, treasury)
	}
	if amt <= config.FlatPaymentFee {
		return fmt.Errorf("%w: payment %s does not cover the %d fee", types.ErrInvalidAmount, amt, config.FlatPaymentFee)
	}

	switch cur {
	case types.CurrencyNative:
	case p.cfg.TokenMint:
		bal, err := p.ledger.Balance(caller, cur)
		if err != nil {
			return err
		}
		if bal < amt {
			return fmt.Errorf("%w: token balance %s below payment %s", types.ErrInsufficientFunds, bal, amt)
		}
	default:
		return fmt.Errorf("%w: %s", types.ErrInvalidTokenMint, cur)
	}

	net, err := amount.Sub(amt, config.FlatPaymentFee)
	if err != nil {
		return types.ArithmeticFault(err)
	}

	batch := []types.Instruction{
		{Op: types.OpTransfer, Currency: cur, From: caller, To: treasury, Amount: net},
		{Op: types.OpTransfer, Currency: cur, From: caller, To: feeRecipient, Amount: config.FlatPaymentFee},
	}
	if err := p.ledger.Apply(batch); err != nil {
		return err
	}

	p.sink.Emit(types.Event{Kind: types.EventPaymentAccepted, Attrs: map[string]string{
		"payer":    caller.String(),
		"currency": string(cur),
		"amount":   amt.String(),
		"net":      net.String(),
		"fee":      amount.Amount(config.FlatPaymentFee).String(),
	}})
	return nil
}

// DepositNative moves native funds from the depositor into the treasury
// with no fee split.
func (p *Processor) DepositNative(caller types.Address, amt amount.Amount) error {
	if amt == 0 {
		return fmt.Errorf("%w: deposit must be positive", types.ErrInvalidAmount)
	}

	err := p.ledger.Apply([]types.Instruction{
		{Op: types.OpTransfer, Currency: types.CurrencyNative, From: caller, To: p.cfg.Treasury, Amount: amt},
	})
	if err != nil {
		return err
	}

	p.sink.Emit(types.Event{Kind: types.EventNativeDeposited, Attrs: map[string]string{
		"depositor": caller.String(),
		"amount":    amt.String(),
	}})
	return nil
}
