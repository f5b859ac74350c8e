package spoke

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/store"
)

// InitializeClaimAccount opens the claim account of a refund address so refunds to it can be
// deferred. The signer funds its storage and gets it back when the account closes.
func (p *SpokePool) InitializeClaimAccount(signer, mint, refundAddress solana.PublicKey) error {
	return p.update(func(c *call) error {
		key, err := p.ClaimAccountAddress(mint, refundAddress)
		if err != nil {
			return err
		}
		return store.ClaimAccounts.Create(c.tx, signer, key, &store.ClaimAccount{Initializer: signer})
	})
}

// ClaimRelayerRefund pays the refunds accrued to the signer into a token account of its choice.
func (p *SpokePool) ClaimRelayerRefund(signer, mint, tokenAccount solana.PublicKey) error {
	return p.update(func(c *call) error {
		return p.claim(c, mint, signer, tokenAccount)
	})
}

// ClaimRelayerRefundFor pays the refunds accrued to the refund address into its canonical token
// account. Anyone may trigger it.
func (p *SpokePool) ClaimRelayerRefundFor(signer, mint, refundAddress solana.PublicKey) error {
	return p.update(func(c *call) error {
		tokenAccount, err := c.tx.CreateAssociatedTokenAccount(signer, refundAddress, mint)
		if err != nil {
			return wrapErr(InvalidRefund, err)
		}
		return p.claim(c, mint, refundAddress, tokenAccount)
	})
}

func (p *SpokePool) claim(c *call, mint, refundAddress, tokenAccount solana.PublicKey) error {
	if _, _, err := p.loadState(c.tx); err != nil {
		return err
	}
	key, err := p.ClaimAccountAddress(mint, refundAddress)
	if err != nil {
		return err
	}
	claim, err := p.loadClaim(c.tx, key)
	if err != nil {
		return err
	}
	if claim.Amount == 0 {
		return ErrZeroRefundClaim
	}

	if _, err := c.tx.TokenAccount(tokenAccount, mint); err != nil {
		return wrapErr(InvalidMint, err)
	}
	vault, err := p.VaultAddress(mint)
	if err != nil {
		return err
	}
	stateAuthority, err := p.stateAuthority()
	if err != nil {
		return err
	}
	if err := c.tx.Transfer(vault, tokenAccount, mint, stateAuthority, claim.Amount); err != nil {
		return err
	}

	// storage goes back to whoever funded it, never to the claimant
	if err := store.ClaimAccounts.Close(c.tx, key, claim.Initializer); err != nil {
		return err
	}

	c.emit(ClaimedRelayerRefund{
		L2TokenAddress: mint,
		ClaimAmount:    claim.Amount,
		RefundAddress:  refundAddress,
	})
	c.onCommit(p.metrics.TrackRefundClaim)
	return nil
}

// CloseClaimAccount lets the initializer reclaim the storage of an empty claim account.
func (p *SpokePool) CloseClaimAccount(signer, mint, refundAddress solana.PublicKey) error {
	return p.update(func(c *call) error {
		key, err := p.ClaimAccountAddress(mint, refundAddress)
		if err != nil {
			return err
		}
		claim, err := p.loadClaim(c.tx, key)
		if err != nil {
			return err
		}

		if claim.Initializer != signer {
			return spokeErr(InvalidClaimInitializer, "%s did not initialize the claim account", signer)
		}
		if claim.Amount > 0 {
			return spokeErr(NonZeroRefundClaim, "%d left to claim", claim.Amount)
		}
		return store.ClaimAccounts.Close(c.tx, key, signer)
	})
}

func (p *SpokePool) loadClaim(tx *store.Tx, key solana.PublicKey) (*store.ClaimAccount, error) {
	claim, err := store.ClaimAccounts.MustGet(tx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, wrapErr(InvalidRefund, err)
	}
	return claim, err
}
