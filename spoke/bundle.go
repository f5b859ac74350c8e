package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/bitmap"
	"github.com/sprintertech/svm-spoke/merkle"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/store"
)

type ExecuteRelayerRefundLeafParams struct {
	RootBundleId uint32
	Leaf         across.RelayerRefundLeaf
	Proof        [][32]byte
	// Deferred accrues refunds to claim accounts instead of paying them out.
	Deferred bool
}

// ExecuteRelayerRefundLeaf pays the refunds of one leaf of a published root bundle. Each leaf is
// executed at most once.
func (p *SpokePool) ExecuteRelayerRefundLeaf(signer solana.PublicKey, params ExecuteRelayerRefundLeafParams) error {
	return p.update(func(c *call) error {
		_, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}
		bundleKey, err := p.RootBundleAddress(params.RootBundleId)
		if err != nil {
			return err
		}
		bundle, err := p.loadRootBundle(c.tx, params.RootBundleId)
		if err != nil {
			return err
		}

		leaf := params.Leaf
		leafHash, err := leaf.Hash()
		if err != nil {
			return wrapErr(InvalidMerkleLeaf, err)
		}
		if !merkle.Verify(params.Proof, bundle.RelayerRefundRoot, leafHash) {
			return ErrInvalidMerkleProof
		}

		if leaf.ChainId != state.ChainId {
			return spokeErr(InvalidChainId, "leaf chain %d, local chain %d", leaf.ChainId, state.ChainId)
		}
		if err := leaf.Validate(); err != nil {
			return wrapErr(InvalidMerkleLeaf, err)
		}

		claimed := bitmap.Bitmap(bundle.ClaimedBitmap)
		if claimed.IsClaimed(leaf.LeafId) {
			return spokeErr(ClaimedMerkleLeaf, "leaf %d of root bundle %d", leaf.LeafId, params.RootBundleId)
		}
		claimed.SetClaimed(leaf.LeafId)
		bundle.ClaimedBitmap = claimed
		if err := store.RootBundles.Save(c.tx, signer, bundleKey, bundle); err != nil {
			return err
		}

		total, err := checkedSum(append([]uint64{leaf.AmountToReturn}, leaf.RefundAmounts...)...)
		if err != nil {
			return err
		}
		vault, err := p.VaultAddress(leaf.MintPublicKey)
		if err != nil {
			return err
		}
		balance, err := c.tx.Balance(vault)
		if err != nil {
			return err
		}
		if balance < total {
			return spokeErr(InsufficientSpokePoolBalanceToExecuteLeaf, "vault holds %d, leaf needs %d", balance, total)
		}

		if params.Deferred {
			err = p.accrueRefunds(c, signer, leaf)
		} else {
			err = p.distributeRefunds(c, vault, leaf)
		}
		if err != nil {
			return err
		}

		if leaf.AmountToReturn > 0 {
			if err := p.addLiability(c.tx, signer, leaf.MintPublicKey, leaf.AmountToReturn); err != nil {
				return err
			}
		}

		c.emit(ExecutedRelayerRefundRoot{
			AmountToReturn:  leaf.AmountToReturn,
			ChainId:         leaf.ChainId,
			RefundAmounts:   leaf.RefundAmounts,
			RootBundleId:    params.RootBundleId,
			LeafId:          leaf.LeafId,
			L2TokenAddress:  leaf.MintPublicKey,
			RefundAddresses: leaf.RefundAddresses,
			DeferredRefunds: params.Deferred,
			Caller:          signer,
		})
		c.onCommit(func() { p.metrics.TrackRefundLeaf(params.Deferred) })
		return nil
	})
}

// distributeRefunds pays every refund to the canonical token account of its address. A missing
// or foreign account fails the whole leaf, deferred execution is the way around it.
func (p *SpokePool) distributeRefunds(c *call, vault solana.PublicKey, leaf across.RelayerRefundLeaf) error {
	stateAuthority, err := p.stateAuthority()
	if err != nil {
		return err
	}

	for i, amount := range leaf.RefundAmounts {
		address := leaf.RefundAddresses[i]
		tokenAccount, err := store.AssociatedTokenAddress(address, leaf.MintPublicKey)
		if err != nil {
			return err
		}
		account, err := c.tx.TokenAccount(tokenAccount, leaf.MintPublicKey)
		if err != nil {
			return wrapErr(InvalidRefund, err)
		}
		if account.Owner != address {
			return spokeErr(InvalidRefund, "token account %s is not owned by %s", tokenAccount, address)
		}

		if err := c.tx.Transfer(vault, tokenAccount, leaf.MintPublicKey, stateAuthority, amount); err != nil {
			return err
		}
	}
	return nil
}

// accrueRefunds credits every refund to the claim account of its address, opening missing
// claim accounts with the signer as initializer.
func (p *SpokePool) accrueRefunds(c *call, signer solana.PublicKey, leaf across.RelayerRefundLeaf) error {
	for i, amount := range leaf.RefundAmounts {
		address := leaf.RefundAddresses[i]
		key, err := p.ClaimAccountAddress(leaf.MintPublicKey, address)
		if err != nil {
			return err
		}
		claim, ok, err := store.ClaimAccounts.Get(c.tx, key)
		if err != nil {
			return err
		}
		if !ok {
			claim = &store.ClaimAccount{Initializer: signer}
		}

		if claim.Amount, err = checkedAdd(claim.Amount, amount); err != nil {
			return err
		}
		if err := store.ClaimAccounts.Save(c.tx, signer, key, claim); err != nil {
			return err
		}
	}
	return nil
}

func (p *SpokePool) addLiability(tx *store.Tx, payer, mint solana.PublicKey, amount uint64) error {
	key, err := p.TransferLiabilityAddress(mint)
	if err != nil {
		return err
	}
	liability, _, err := store.TransferLiabilities.Get(tx, key)
	if err != nil {
		return err
	}
	if liability == nil {
		liability = &store.TransferLiability{}
	}

	liability.PendingToHubPool = saturatingAdd(liability.PendingToHubPool, amount)
	return store.TransferLiabilities.Save(tx, payer, key, liability)
}
