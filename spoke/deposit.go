package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/store"
)

type DepositParams struct {
	Depositor            solana.PublicKey
	Recipient            solana.PublicKey
	InputToken           solana.PublicKey
	OutputToken          solana.PublicKey
	InputAmount          uint64
	OutputAmount         [32]byte
	DestinationChainId   uint64
	ExclusiveRelayer     solana.PublicKey
	QuoteTimestamp       uint32
	FillDeadline         uint32
	ExclusivityParameter uint32
	Message              []byte
}

// SeedData is what the depositor's delegate approval is derived from.
func (d DepositParams) SeedData() across.DepositSeedData {
	return across.DepositSeedData{
		Depositor:            d.Depositor,
		Recipient:            d.Recipient,
		InputToken:           d.InputToken,
		OutputToken:          d.OutputToken,
		InputAmount:          d.InputAmount,
		OutputAmount:         d.OutputAmount,
		DestinationChainId:   d.DestinationChainId,
		ExclusiveRelayer:     d.ExclusiveRelayer,
		QuoteTimestamp:       d.QuoteTimestamp,
		FillDeadline:         d.FillDeadline,
		ExclusivityParameter: d.ExclusivityParameter,
		Message:              d.Message,
	}
}

type DepositNowParams struct {
	Depositor          solana.PublicKey
	Recipient          solana.PublicKey
	InputToken         solana.PublicKey
	OutputToken        solana.PublicKey
	InputAmount        uint64
	OutputAmount       [32]byte
	DestinationChainId uint64
	ExclusiveRelayer   solana.PublicKey
	FillDeadlineOffset uint32
	ExclusivityPeriod  uint32
	Message            []byte
}

func (d DepositNowParams) SeedData() across.DepositNowSeedData {
	return across.DepositNowSeedData{
		Depositor:          d.Depositor,
		Recipient:          d.Recipient,
		InputToken:         d.InputToken,
		OutputToken:        d.OutputToken,
		InputAmount:        d.InputAmount,
		OutputAmount:       d.OutputAmount,
		DestinationChainId: d.DestinationChainId,
		ExclusiveRelayer:   d.ExclusiveRelayer,
		FillDeadlineOffset: d.FillDeadlineOffset,
		ExclusivityPeriod:  d.ExclusivityPeriod,
		Message:            d.Message,
	}
}

// Deposit locks the input amount in custody and numbers the deposit with the deposit counter.
// The depositor must have approved the delegate derived from the deposit's seed data.
func (p *SpokePool) Deposit(signer solana.PublicKey, params DepositParams) ([32]byte, error) {
	var depositID [32]byte
	err := p.update(func(c *call) error {
		seedHash, err := across.SeedHash(params.SeedData())
		if err != nil {
			return err
		}
		depositID, err = p.deposit(c, signer, params, across.ZeroDepositID, seedHash)
		return err
	})
	return depositID, err
}

// DepositNow is a deposit quoted at the time of execution with a fill deadline relative to it.
func (p *SpokePool) DepositNow(signer solana.PublicKey, params DepositNowParams) ([32]byte, error) {
	var depositID [32]byte
	err := p.update(func(c *call) error {
		seedHash, err := across.SeedHash(params.SeedData())
		if err != nil {
			return err
		}
		fillDeadline, err := checkedAdd(c.now, params.FillDeadlineOffset)
		if err != nil {
			return spokeErr(InvalidFillDeadline, "offset %d overflows", params.FillDeadlineOffset)
		}

		depositID, err = p.deposit(c, signer, DepositParams{
			Depositor:            params.Depositor,
			Recipient:            params.Recipient,
			InputToken:           params.InputToken,
			OutputToken:          params.OutputToken,
			InputAmount:          params.InputAmount,
			OutputAmount:         params.OutputAmount,
			DestinationChainId:   params.DestinationChainId,
			ExclusiveRelayer:     params.ExclusiveRelayer,
			QuoteTimestamp:       c.now,
			FillDeadline:         fillDeadline,
			ExclusivityParameter: params.ExclusivityPeriod,
			Message:              params.Message,
		}, across.ZeroDepositID, seedHash)
		return err
	})
	return depositID, err
}

// UnsafeDeposit numbers the deposit from the signer, depositor and a caller chosen nonce instead
// of the deposit counter. Reusing a nonce produces a duplicate deposit id.
func (p *SpokePool) UnsafeDeposit(signer solana.PublicKey, nonce uint64, params DepositParams) ([32]byte, error) {
	var depositID [32]byte
	err := p.update(func(c *call) error {
		seedHash, err := across.SeedHash(params.SeedData())
		if err != nil {
			return err
		}
		depositID, err = p.deposit(c, signer, params, across.UnsafeDepositID(signer, params.Depositor, nonce), seedHash)
		return err
	})
	return depositID, err
}

func (p *SpokePool) deposit(c *call, signer solana.PublicKey, params DepositParams, depositID [32]byte, seedHash [32]byte) ([32]byte, error) {
	stateKey, state, err := p.loadState(c.tx)
	if err != nil {
		return depositID, err
	}
	if state.PausedDeposits {
		return depositID, ErrDepositsArePaused
	}

	routeKey, err := p.RouteAddress(params.InputToken, params.DestinationChainId)
	if err != nil {
		return depositID, err
	}
	route, ok, err := store.Routes.Get(c.tx, routeKey)
	if err != nil {
		return depositID, err
	}
	if !ok || !route.Enabled {
		return depositID, spokeErr(DisabledRoute, "%s to chain %d", params.InputToken, params.DestinationChainId)
	}

	if params.OutputToken.IsZero() {
		return depositID, ErrInvalidOutputToken
	}
	// a quote from the future underflows and counts as too old
	if c.now < params.QuoteTimestamp || c.now-params.QuoteTimestamp > state.DepositQuoteTimeBuffer {
		return depositID, spokeErr(InvalidQuoteTimestamp, "quote timestamp %d at %d", params.QuoteTimestamp, c.now)
	}
	if uint64(params.FillDeadline) > uint64(c.now)+uint64(state.FillDeadlineBuffer) {
		return depositID, spokeErr(InvalidFillDeadline, "fill deadline %d at %d", params.FillDeadline, c.now)
	}

	exclusivityDeadline := params.ExclusivityParameter
	if exclusivityDeadline > 0 {
		if params.ExclusiveRelayer.IsZero() {
			return depositID, ErrInvalidExclusiveRelayer
		}
		if exclusivityDeadline <= across.MAX_EXCLUSIVITY_PERIOD_SECONDS {
			if exclusivityDeadline, err = checkedAdd(exclusivityDeadline, c.now); err != nil {
				return depositID, spokeErr(InvalidExclusiveRelayer, "exclusivity period %d at %d overflows", params.ExclusivityParameter, c.now)
			}
		}
	}

	delegate, err := p.deriver.Authority(DELEGATE_SEED, seedHash[:])
	if err != nil {
		return depositID, err
	}
	depositorTokenAccount, err := store.AssociatedTokenAddress(params.Depositor, params.InputToken)
	if err != nil {
		return depositID, err
	}
	vault, err := c.tx.CreateAssociatedTokenAccount(signer, stateKey, params.InputToken)
	if err != nil {
		return depositID, err
	}
	err = c.tx.Transfer(depositorTokenAccount, vault, params.InputToken, delegate, params.InputAmount)
	if err != nil {
		return depositID, err
	}

	if depositID == across.ZeroDepositID {
		if state.NumberOfDeposits, err = checkedAdd(state.NumberOfDeposits, 1); err != nil {
			return depositID, err
		}
		depositID = across.CounterDepositID(state.NumberOfDeposits)
		if err := p.saveState(c.tx, stateKey, state); err != nil {
			return depositID, err
		}
	}

	c.emit(FundsDeposited{FundsDeposited: across.FundsDeposited{
		InputToken:          params.InputToken,
		OutputToken:         params.OutputToken,
		InputAmount:         params.InputAmount,
		OutputAmount:        params.OutputAmount,
		DestinationChainId:  params.DestinationChainId,
		DepositId:           depositID,
		QuoteTimestamp:      params.QuoteTimestamp,
		FillDeadline:        params.FillDeadline,
		ExclusivityDeadline: exclusivityDeadline,
		Depositor:           params.Depositor,
		Recipient:           params.Recipient,
		ExclusiveRelayer:    params.ExclusiveRelayer,
		Message:             params.Message,
	}})
	c.onCommit(p.metrics.TrackDeposit)
	return depositID, nil
}
