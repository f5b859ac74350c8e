package spoke

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/crossdomain"
	"github.com/sprintertech/svm-spoke/store"
)

type InitializeParams struct {
	InitialNumberOfDeposits uint32
	ChainId                 uint64
	RemoteDomain            uint32
	CrossDomainAdmin        solana.PublicKey
	DepositQuoteTimeBuffer  uint32
	FillDeadlineBuffer      uint32
}

// Initialize creates the program state once. The signer becomes the owner and pays its storage.
func (p *SpokePool) Initialize(signer solana.PublicKey, params InitializeParams) error {
	return p.update(func(c *call) error {
		key, err := p.StateAddress()
		if err != nil {
			return err
		}

		err = store.States.Create(c.tx, signer, key, &store.SpokeState{
			Owner:                  signer,
			Seed:                   p.seed,
			NumberOfDeposits:       params.InitialNumberOfDeposits,
			ChainId:                params.ChainId,
			RemoteDomain:           params.RemoteDomain,
			CrossDomainAdmin:       params.CrossDomainAdmin,
			DepositQuoteTimeBuffer: params.DepositQuoteTimeBuffer,
			FillDeadlineBuffer:     params.FillDeadlineBuffer,
		})
		if errors.Is(err, store.ErrAccountExists) {
			return ErrAlreadyInitialized
		}
		if err != nil {
			return err
		}

		p.log.Info().Uint64("chainId", params.ChainId).Str("owner", signer.String()).Msg("Initialized spoke pool")
		return nil
	})
}

// checkAdmin accepts the owner signer or the self authority handle local admin calls are
// relayed through.
func (p *SpokePool) checkAdmin(auth authority.Authority, state *store.SpokeState) error {
	if !auth.Derived() && auth.Key() == state.Owner {
		return nil
	}

	if auth.Derived() && auth.Namespace() == SELF_AUTHORITY_SEED {
		self, err := p.SelfAuthorityAddress()
		if err != nil {
			return err
		}
		if auth.Key() == self {
			return nil
		}
	}
	return spokeErr(NotOwner, "%s is not the owner", auth)
}

func (p *SpokePool) PauseDeposits(signer solana.PublicKey, pause bool) error {
	return p.adminCall(signer, crossdomain.PauseDeposits{Pause: pause})
}

func (p *SpokePool) PauseFills(signer solana.PublicKey, pause bool) error {
	return p.adminCall(signer, crossdomain.PauseFills{Pause: pause})
}

func (p *SpokePool) SetCrossDomainAdmin(signer, crossDomainAdmin solana.PublicKey) error {
	return p.adminCall(signer, crossdomain.SetCrossDomainAdmin{CrossDomainAdmin: crossDomainAdmin})
}

// SetEnableRoute toggles deposits of the origin token towards the destination chain. Enabling a
// route opens the custody token account of the mint when it does not exist yet.
func (p *SpokePool) SetEnableRoute(signer, originToken solana.PublicKey, destinationChainID uint64, enabled bool) error {
	return p.adminCall(signer, crossdomain.SetEnableRoute{
		OriginToken:        originToken,
		DestinationChainId: destinationChainID,
		Enabled:            enabled,
	})
}

// RelayRootBundle publishes a new root bundle under the next sequential id.
func (p *SpokePool) RelayRootBundle(signer solana.PublicKey, relayerRefundRoot, slowRelayRoot [32]byte) error {
	return p.adminCall(signer, crossdomain.RelayRootBundle{
		RelayerRefundRoot: relayerRefundRoot,
		SlowRelayRoot:     slowRelayRoot,
	})
}

func (p *SpokePool) EmergencyDeleteRootBundle(signer solana.PublicKey, rootBundleID uint32) error {
	return p.adminCall(signer, crossdomain.EmergencyDeleteRootBundle{RootBundleId: rootBundleID})
}

// TransferOwnership hands the program to a new owner. Only the current owner may do so.
func (p *SpokePool) TransferOwnership(signer, newOwner solana.PublicKey) error {
	return p.update(func(c *call) error {
		key, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}
		if signer != state.Owner {
			return spokeErr(NotOwner, "%s is not the owner", signer)
		}

		state.Owner = newOwner
		if err := p.saveState(c.tx, key, state); err != nil {
			return err
		}
		c.emit(TransferredOwnership{NewOwner: newOwner})
		return nil
	})
}

func (p *SpokePool) adminCall(signer solana.PublicKey, adminCall crossdomain.AdminCall) error {
	return p.update(func(c *call) error {
		return p.applyAdminCall(c, authority.Signer(signer), signer, adminCall)
	})
}

// applyAdminCall executes an admin call inside the transaction of c. The payer funds any
// storage the call opens and receives the storage of records it closes.
func (p *SpokePool) applyAdminCall(c *call, auth authority.Authority, payer solana.PublicKey, adminCall crossdomain.AdminCall) error {
	key, state, err := p.loadState(c.tx)
	if err != nil {
		return err
	}
	if err := p.checkAdmin(auth, state); err != nil {
		return err
	}

	switch a := adminCall.(type) {
	case crossdomain.PauseDeposits:
		state.PausedDeposits = a.Pause
		c.emit(PausedDeposits{IsPaused: a.Pause})
	case crossdomain.PauseFills:
		state.PausedFills = a.Pause
		c.emit(PausedFills{IsPaused: a.Pause})
	case crossdomain.SetCrossDomainAdmin:
		state.CrossDomainAdmin = a.CrossDomainAdmin
		c.emit(SetXDomainAdmin{NewAdmin: a.CrossDomainAdmin})
	case crossdomain.SetEnableRoute:
		if err := p.setRoute(c, key, payer, a); err != nil {
			return err
		}
		c.emit(EnabledDepositRoute{
			OriginToken:        a.OriginToken,
			DestinationChainId: a.DestinationChainId,
			Enabled:            a.Enabled,
		})
	case crossdomain.RelayRootBundle:
		id := state.RootBundleId
		bundleKey, err := p.RootBundleAddress(id)
		if err != nil {
			return err
		}
		err = store.RootBundles.Create(c.tx, payer, bundleKey, &store.RootBundle{
			RelayerRefundRoot: a.RelayerRefundRoot,
			SlowRelayRoot:     a.SlowRelayRoot,
		})
		if err != nil {
			return err
		}
		if state.RootBundleId, err = checkedAdd(state.RootBundleId, 1); err != nil {
			return err
		}

		c.emit(RelayedRootBundle{
			RootBundleId:      id,
			RelayerRefundRoot: a.RelayerRefundRoot,
			SlowRelayRoot:     a.SlowRelayRoot,
		})
		c.onCommit(p.metrics.TrackRootBundle)
	case crossdomain.EmergencyDeleteRootBundle:
		bundleKey, err := p.RootBundleAddress(a.RootBundleId)
		if err != nil {
			return err
		}
		err = store.RootBundles.Close(c.tx, bundleKey, payer)
		if errors.Is(err, store.ErrNotFound) {
			return spokeErr(InvalidRootBundle, "root bundle %d does not exist", a.RootBundleId)
		}
		if err != nil {
			return err
		}
		c.emit(EmergencyDeletedRootBundle{RootBundleId: a.RootBundleId})
	default:
		return spokeErr(InvalidCalldata, "unsupported admin call %s", adminCall.Method())
	}

	if err := p.saveState(c.tx, key, state); err != nil {
		return err
	}
	p.log.Debug().Str("call", adminCall.Method()).Str("authority", auth.String()).Msg("Applied admin call")
	return nil
}

func (p *SpokePool) setRoute(c *call, stateKey, payer solana.PublicKey, a crossdomain.SetEnableRoute) error {
	routeKey, err := p.RouteAddress(a.OriginToken, a.DestinationChainId)
	if err != nil {
		return err
	}
	if err := store.Routes.Save(c.tx, payer, routeKey, &store.Route{Enabled: a.Enabled}); err != nil {
		return err
	}

	if _, err := c.tx.CreateAssociatedTokenAccount(payer, stateKey, a.OriginToken); err != nil {
		return fmt.Errorf("failed opening vault of %s: %w", a.OriginToken, err)
	}
	return nil
}

// RouteEnabled reports whether deposits of the origin token towards the chain are accepted.
func (p *SpokePool) RouteEnabled(originToken solana.PublicKey, destinationChainID uint64) (bool, error) {
	key, err := p.RouteAddress(originToken, destinationChainID)
	if err != nil {
		return false, err
	}

	var enabled bool
	err = p.view(func(tx *store.Tx) error {
		route, ok, err := store.Routes.Get(tx, key)
		if err != nil || !ok {
			return err
		}
		enabled = route.Enabled
		return nil
	})
	return enabled, err
}
