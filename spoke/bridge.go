package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/store"
)

// BridgeTokensToHubPool burns up to the pending liability of the mint from custody towards the
// hub pool on the remote domain.
func (p *SpokePool) BridgeTokensToHubPool(signer, mint solana.PublicKey, amount uint64) error {
	if p.messenger == nil {
		return ErrMessengerNotSet
	}

	return p.update(func(c *call) error {
		_, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}

		key, err := p.TransferLiabilityAddress(mint)
		if err != nil {
			return err
		}
		liability, ok, err := store.TransferLiabilities.Get(c.tx, key)
		if err != nil {
			return err
		}
		if !ok || amount > liability.PendingToHubPool {
			return spokeErr(ExceededPendingBridgeAmount, "bridging %d of mint %s", amount, mint)
		}
		liability.PendingToHubPool -= amount
		if err := store.TransferLiabilities.Save(c.tx, signer, key, liability); err != nil {
			return err
		}

		vault, err := p.VaultAddress(mint)
		if err != nil {
			return err
		}
		stateAuthority, err := p.stateAuthority()
		if err != nil {
			return err
		}
		nonce, err := p.messenger.DepositForBurn(c.tx, cctp.BurnRequest{
			Owner:             stateAuthority,
			Payer:             signer,
			BurnTokenAccount:  vault,
			BurnToken:         mint,
			Amount:            amount,
			DestinationDomain: state.RemoteDomain,
			MintRecipient:     state.CrossDomainAdmin,
		})
		if err != nil {
			return err
		}

		c.emit(BridgedToHubPool{Amount: amount, Mint: mint, Nonce: nonce})
		return nil
	})
}
