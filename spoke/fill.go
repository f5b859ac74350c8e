package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/store"
)

type FillRelayParams struct {
	RelayHash        across.Hash
	RelayData        across.RelayData
	RepaymentChainId uint64
	RepaymentAddress solana.PublicKey
	// RelayerTokenAccount defaults to the signer's canonical account of the output token.
	RelayerTokenAccount solana.PublicKey
}

// FillRelay sends the output amount from the relayer to the recipient and marks the relay as
// filled. A relay can be filled exactly once, whoever commits first wins.
func (p *SpokePool) FillRelay(signer solana.PublicKey, params FillRelayParams) error {
	return p.update(func(c *call) error {
		_, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}
		if state.PausedFills {
			return ErrFillsArePaused
		}

		data := params.RelayData
		fillKey, fillStatus, err := p.touchFillStatus(c.tx, state, params.RelayHash, data)
		if err != nil {
			return err
		}

		if fillStatus.Status == store.Filled {
			return ErrRelayFilled
		}
		if c.now > data.FillDeadline {
			return spokeErr(ExpiredFillDeadline, "fill deadline %d passed at %d", data.FillDeadline, c.now)
		}
		if data.HasExclusiveRelayer() && c.now <= data.ExclusivityDeadline && signer != data.ExclusiveRelayer {
			return spokeErr(NotExclusiveRelayer, "%s is exclusive until %d", data.ExclusiveRelayer, data.ExclusivityDeadline)
		}

		fillType := FastFill
		if fillStatus.Status == store.RequestedSlowFill {
			fillType = ReplacedSlowFill
		}

		if err := p.payRecipient(c.tx, signer, params.RelayerTokenAccount, data); err != nil {
			return err
		}

		fillStatus.Status = store.Filled
		fillStatus.Relayer = signer
		fillStatus.FillDeadline = data.FillDeadline
		if err := store.FillStatuses.Save(c.tx, signer, fillKey, fillStatus); err != nil {
			return err
		}

		if len(data.Message) > 0 {
			if err := p.invokeHandler(c.tx, signer, data.OutputAmount, data.Message); err != nil {
				return err
			}
		}

		messageHash := across.MessageHash(data.Message)
		c.emit(FilledRelay{
			InputToken:          data.InputToken,
			OutputToken:         data.OutputToken,
			InputAmount:         data.InputAmount,
			OutputAmount:        data.OutputAmount,
			RepaymentChainId:    params.RepaymentChainId,
			OriginChainId:       data.OriginChainId,
			DepositId:           data.DepositId,
			FillDeadline:        data.FillDeadline,
			ExclusivityDeadline: data.ExclusivityDeadline,
			ExclusiveRelayer:    data.ExclusiveRelayer,
			Relayer:             params.RepaymentAddress,
			Depositor:           data.Depositor,
			Recipient:           data.Recipient,
			MessageHash:         messageHash,
			RelayExecutionInfo: RelayExecutionEventInfo{
				UpdatedRecipient:    data.Recipient,
				UpdatedMessageHash:  messageHash,
				UpdatedOutputAmount: data.OutputAmount,
				FillType:            fillType,
			},
		})
		c.onCommit(func() { p.metrics.TrackFill(fillType) })
		return nil
	})
}

// payRecipient moves the output amount from the relayer token account to the recipient's
// canonical account. Relaying to oneself moves nothing.
func (p *SpokePool) payRecipient(tx *store.Tx, signer, relayerTokenAccount solana.PublicKey, data across.RelayData) error {
	if relayerTokenAccount.IsZero() {
		var err error
		relayerTokenAccount, err = store.AssociatedTokenAddress(signer, data.OutputToken)
		if err != nil {
			return err
		}
	}

	recipientTokenAccount, err := tx.CreateAssociatedTokenAccount(signer, data.Recipient, data.OutputToken)
	if err != nil {
		return wrapErr(InvalidMint, err)
	}
	if recipientTokenAccount == relayerTokenAccount {
		return nil
	}

	if _, err := tx.TokenAccount(relayerTokenAccount, data.OutputToken); err != nil {
		return wrapErr(InvalidMint, err)
	}
	return tx.Transfer(relayerTokenAccount, recipientTokenAccount, data.OutputToken, authority.Signer(signer), data.OutputAmount)
}

// touchFillStatus checks the relay hash and loads its fill record. An untouched relay yields a
// fresh Unfilled record that the caller stores on success.
func (p *SpokePool) touchFillStatus(tx *store.Tx, state *store.SpokeState, relayHash across.Hash, data across.RelayData) (solana.PublicKey, *store.FillStatusAccount, error) {
	if across.RelayHash(data, state.ChainId) != relayHash {
		return solana.PublicKey{}, nil, ErrInvalidRelayHash
	}

	key, err := p.FillStatusAddress(relayHash)
	if err != nil {
		return key, nil, err
	}
	fillStatus, ok, err := store.FillStatuses.Get(tx, key)
	if err != nil {
		return key, nil, err
	}
	if !ok {
		fillStatus = &store.FillStatusAccount{Status: store.Unfilled}
	}
	return key, fillStatus, nil
}

// CloseFillStatus deletes a fill record after its fill deadline and returns its storage to the
// relayer that created it. A record without a relayer can be closed by anyone.
func (p *SpokePool) CloseFillStatus(signer solana.PublicKey, relayHash across.Hash) error {
	return p.update(func(c *call) error {
		key, err := p.FillStatusAddress(relayHash)
		if err != nil {
			return err
		}
		fillStatus, err := store.FillStatuses.MustGet(c.tx, key)
		if err != nil {
			return wrapErr(InvalidRelayHash, err)
		}

		if !fillStatus.Relayer.IsZero() && fillStatus.Relayer != signer {
			return spokeErr(NotRelayer, "%s did not create the fill record", signer)
		}
		if c.now <= fillStatus.FillDeadline {
			return spokeErr(FillDeadlineNotPassed, "fill deadline %d not passed at %d", fillStatus.FillDeadline, c.now)
		}
		return store.FillStatuses.Close(c.tx, key, signer)
	})
}
