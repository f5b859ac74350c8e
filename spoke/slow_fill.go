package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/merkle"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/store"
)

// RequestSlowFill asks for the relay to be paid from custody by a later root bundle. It is only
// accepted once exclusivity ended and before the fill deadline.
func (p *SpokePool) RequestSlowFill(signer solana.PublicKey, relayHash across.Hash, data across.RelayData) error {
	return p.update(func(c *call) error {
		_, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}
		if state.PausedFills {
			return ErrFillsArePaused
		}

		if data.HasExclusiveRelayer() && data.ExclusivityDeadline >= c.now {
			return spokeErr(NoSlowFillsInExclusivityWindow, "exclusive until %d", data.ExclusivityDeadline)
		}
		if data.FillDeadline < c.now {
			return spokeErr(ExpiredFillDeadline, "fill deadline %d passed at %d", data.FillDeadline, c.now)
		}

		key, fillStatus, err := p.touchFillStatus(c.tx, state, relayHash, data)
		if err != nil {
			return err
		}
		if fillStatus.Status != store.Unfilled {
			return spokeErr(InvalidSlowFillRequest, "relay is %s", fillStatus.Status)
		}

		fillStatus.Status = store.RequestedSlowFill
		fillStatus.Relayer = signer
		fillStatus.FillDeadline = data.FillDeadline
		if err := store.FillStatuses.Save(c.tx, signer, key, fillStatus); err != nil {
			return err
		}

		c.emit(RequestedSlowFill{
			InputToken:          data.InputToken,
			OutputToken:         data.OutputToken,
			InputAmount:         data.InputAmount,
			OutputAmount:        data.OutputAmount,
			OriginChainId:       data.OriginChainId,
			DepositId:           data.DepositId,
			FillDeadline:        data.FillDeadline,
			ExclusivityDeadline: data.ExclusivityDeadline,
			ExclusiveRelayer:    data.ExclusiveRelayer,
			Depositor:           data.Depositor,
			Recipient:           data.Recipient,
			MessageHash:         across.MessageHash(data.Message),
		})
		c.onCommit(p.metrics.TrackSlowFillRequest)
		return nil
	})
}

type ExecuteSlowRelayLeafParams struct {
	RelayHash    across.Hash
	Leaf         across.SlowFill
	RootBundleId uint32
	Proof        [][32]byte
}

// ExecuteSlowRelayLeaf pays a slow fill published in a root bundle from custody straight to the
// recipient. The leaf chain id is always the local chain id.
func (p *SpokePool) ExecuteSlowRelayLeaf(signer solana.PublicKey, params ExecuteSlowRelayLeafParams) error {
	return p.update(func(c *call) error {
		stateKey, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}
		if state.PausedFills {
			return ErrFillsArePaused
		}

		bundle, err := p.loadRootBundle(c.tx, params.RootBundleId)
		if err != nil {
			return err
		}

		leaf := params.Leaf
		leaf.ChainId = state.ChainId
		if !merkle.Verify(params.Proof, bundle.SlowRelayRoot, leaf.Hash()) {
			return ErrInvalidMerkleProof
		}

		data := leaf.RelayData
		if data.FillDeadline < c.now {
			return spokeErr(ExpiredFillDeadline, "fill deadline %d passed at %d", data.FillDeadline, c.now)
		}

		fillKey, fillStatus, err := p.touchFillStatus(c.tx, state, params.RelayHash, data)
		if err != nil {
			return err
		}
		if fillStatus.Status == store.Filled {
			return ErrRelayFilled
		}

		vault, err := p.VaultAddress(data.OutputToken)
		if err != nil {
			return err
		}
		balance, err := c.tx.Balance(vault)
		if err != nil {
			return err
		}
		if balance < leaf.UpdatedOutputAmount {
			return spokeErr(InsufficientSpokePoolBalanceToExecuteLeaf, "vault holds %d, leaf pays %d", balance, leaf.UpdatedOutputAmount)
		}
		recipientTokenAccount, err := c.tx.CreateAssociatedTokenAccount(signer, data.Recipient, data.OutputToken)
		if err != nil {
			return wrapErr(InvalidMint, err)
		}
		stateAuthority, err := p.stateAuthority()
		if err != nil {
			return err
		}
		err = c.tx.Transfer(vault, recipientTokenAccount, data.OutputToken, stateAuthority, leaf.UpdatedOutputAmount)
		if err != nil {
			return err
		}

		// a requested record keeps its requester, a slow fill records no relayer
		fillStatus.Status = store.Filled
		fillStatus.FillDeadline = data.FillDeadline
		if err := store.FillStatuses.Save(c.tx, signer, fillKey, fillStatus); err != nil {
			return err
		}

		if len(data.Message) > 0 {
			if err := p.invokeHandler(c.tx, signer, leaf.UpdatedOutputAmount, data.Message); err != nil {
				return err
			}
		}

		messageHash := across.MessageHash(data.Message)
		c.emit(FilledRelay{
			InputToken:          data.InputToken,
			OutputToken:         data.OutputToken,
			InputAmount:         data.InputAmount,
			OutputAmount:        data.OutputAmount,
			OriginChainId:       data.OriginChainId,
			DepositId:           data.DepositId,
			FillDeadline:        data.FillDeadline,
			ExclusivityDeadline: data.ExclusivityDeadline,
			ExclusiveRelayer:    data.ExclusiveRelayer,
			Depositor:           data.Depositor,
			Recipient:           data.Recipient,
			MessageHash:         messageHash,
			RelayExecutionInfo: RelayExecutionEventInfo{
				UpdatedRecipient:    data.Recipient,
				UpdatedMessageHash:  messageHash,
				UpdatedOutputAmount: leaf.UpdatedOutputAmount,
				FillType:            SlowFill,
			},
		})
		p.log.Debug().Str("stateKey", stateKey.String()).Uint32("rootBundleId", params.RootBundleId).Msg("Executed slow relay leaf")
		c.onCommit(func() { p.metrics.TrackFill(SlowFill) })
		return nil
	})
}

func (p *SpokePool) loadRootBundle(tx *store.Tx, rootBundleID uint32) (*store.RootBundle, error) {
	key, err := p.RootBundleAddress(rootBundleID)
	if err != nil {
		return nil, err
	}
	bundle, ok, err := store.RootBundles.Get(tx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, spokeErr(InvalidRootBundle, "root bundle %d does not exist", rootBundleID)
	}
	return bundle, nil
}
