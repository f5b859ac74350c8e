package spoke

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/store"
)

const (
	STATE_SEED              = "state"
	SELF_AUTHORITY_SEED     = "self_authority"
	FILL_STATUS_SEED        = "fills"
	ROOT_BUNDLE_SEED        = "root_bundle"
	CLAIM_ACCOUNT_SEED      = "claim_account"
	TRANSFER_LIABILITY_SEED = "transfer_liability"
	ROUTE_SEED              = "route"
	DELEGATE_SEED           = "delegate"
)

func u64LE(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func u32LE(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// stateAuthority is the handle owning the vaults. It signs token movements out of custody.
func (p *SpokePool) stateAuthority() (authority.Authority, error) {
	return p.deriver.Authority(STATE_SEED, u64LE(p.seed))
}

// selfAuthority is the handle admin calls arriving from the remote domain act as.
func (p *SpokePool) selfAuthority() (authority.Authority, error) {
	return p.deriver.Authority(SELF_AUTHORITY_SEED)
}

func (p *SpokePool) StateAddress() (solana.PublicKey, error) {
	return p.deriver.Address(STATE_SEED, u64LE(p.seed))
}

func (p *SpokePool) SelfAuthorityAddress() (solana.PublicKey, error) {
	return p.deriver.Address(SELF_AUTHORITY_SEED)
}

func (p *SpokePool) FillStatusAddress(relayHash across.Hash) (solana.PublicKey, error) {
	return p.deriver.Address(FILL_STATUS_SEED, relayHash[:])
}

func (p *SpokePool) RootBundleAddress(rootBundleID uint32) (solana.PublicKey, error) {
	stateKey, err := p.StateAddress()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return p.deriver.Address(ROOT_BUNDLE_SEED, stateKey[:], u32LE(rootBundleID))
}

func (p *SpokePool) ClaimAccountAddress(mint, refundAddress solana.PublicKey) (solana.PublicKey, error) {
	return p.deriver.Address(CLAIM_ACCOUNT_SEED, mint[:], refundAddress[:])
}

func (p *SpokePool) TransferLiabilityAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	return p.deriver.Address(TRANSFER_LIABILITY_SEED, mint[:])
}

func (p *SpokePool) RouteAddress(originToken solana.PublicKey, destinationChainID uint64) (solana.PublicKey, error) {
	stateKey, err := p.StateAddress()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return p.deriver.Address(ROUTE_SEED, originToken[:], stateKey[:], u64LE(destinationChainID))
}

// DelegateAddress is the key a depositor approves to let the pool pull a specific deposit.
func (p *SpokePool) DelegateAddress(seed any) (solana.PublicKey, error) {
	hash, err := across.SeedHash(seed)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return p.deriver.Address(DELEGATE_SEED, hash[:])
}

// VaultAddress is the custody token account of the mint.
func (p *SpokePool) VaultAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	stateKey, err := p.StateAddress()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return store.AssociatedTokenAddress(stateKey, mint)
}
