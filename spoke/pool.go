// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package spoke

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/store"
)

type Metrics interface {
	TrackFill(fillType FillType)
	TrackSlowFillRequest()
	TrackRefundLeaf(deferred bool)
	TrackRefundClaim()
	TrackRootBundle()
	TrackDeposit()
}

type noopMetrics struct{}

func (noopMetrics) TrackFill(FillType)    {}
func (noopMetrics) TrackSlowFillRequest() {}
func (noopMetrics) TrackRefundLeaf(bool)  {}
func (noopMetrics) TrackRefundClaim()     {}
func (noopMetrics) TrackRootBundle()      {}
func (noopMetrics) TrackDeposit()         {}

// SpokePool settles deposits, fills and root bundles of one spoke pool instance. Every public
// call runs as a single store transaction and leaves no trace when it fails.
type SpokePool struct {
	db       *store.DB
	deriver  authority.Deriver
	seed     uint64
	clock    Clock
	handlers map[solana.PublicKey]MessageHandler

	messenger   cctp.TokenMessenger
	transmitter solana.PublicKey

	events  EventSink
	metrics Metrics
	log     zerolog.Logger
}

type Option func(p *SpokePool)

func WithClock(clock Clock) Option {
	return func(p *SpokePool) {
		p.clock = clock
	}
}

// WithMessageHandler registers the handler invoked for fill messages naming its program id.
func WithMessageHandler(programID solana.PublicKey, handler MessageHandler) Option {
	return func(p *SpokePool) {
		p.handlers[programID] = handler
	}
}

func WithMessenger(messenger cctp.TokenMessenger) Option {
	return func(p *SpokePool) {
		p.messenger = messenger
	}
}

// WithMessageTransmitter sets the only authority allowed to deliver remote admin messages.
func WithMessageTransmitter(transmitterAuthority solana.PublicKey) Option {
	return func(p *SpokePool) {
		p.transmitter = transmitterAuthority
	}
}

func WithEventSink(sink EventSink) Option {
	return func(p *SpokePool) {
		p.events = sink
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(p *SpokePool) {
		p.metrics = metrics
	}
}

func NewSpokePool(db *store.DB, programID solana.PublicKey, seed uint64, opts ...Option) *SpokePool {
	p := &SpokePool{
		db:       db,
		deriver:  authority.NewDeriver(programID),
		seed:     seed,
		clock:    SystemClock{},
		handlers: make(map[solana.PublicKey]MessageHandler),
		events:   LogSink{},
		metrics:  noopMetrics{},
		log:      log.With().Str("program", programID.String()).Uint64("seed", seed).Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *SpokePool) ProgramID() solana.PublicKey {
	return p.deriver.ProgramID()
}

// call collects the effects of a transaction that may only be observed once it commits.
type call struct {
	tx     *store.Tx
	now    uint32
	events []Event
	commit []func()
}

func (c *call) emit(event Event) {
	c.events = append(c.events, event)
}

func (c *call) onCommit(fn func()) {
	c.commit = append(c.commit, fn)
}

func (p *SpokePool) update(fn func(c *call) error) error {
	c := &call{now: p.clock.Now()}
	err := p.db.Update(func(tx *store.Tx) error {
		c.tx = tx
		return fn(c)
	})
	if err != nil {
		return err
	}

	for _, event := range c.events {
		p.events.Emit(event)
	}
	for _, fn := range c.commit {
		fn()
	}
	return nil
}

func (p *SpokePool) view(fn func(tx *store.Tx) error) error {
	return p.db.View(fn)
}

func (p *SpokePool) loadState(tx *store.Tx) (solana.PublicKey, *store.SpokeState, error) {
	key, err := p.StateAddress()
	if err != nil {
		return key, nil, err
	}
	state, err := store.States.MustGet(tx, key)
	if errors.Is(err, store.ErrNotFound) {
		return key, nil, ErrNotInitialized
	}
	return key, state, err
}

// saveState writes the fixed size state record, its rent was paid on initialization.
func (p *SpokePool) saveState(tx *store.Tx, key solana.PublicKey, state *store.SpokeState) error {
	return store.States.Save(tx, key, key, state)
}

// State returns the current program configuration.
func (p *SpokePool) State() (*store.SpokeState, error) {
	var state *store.SpokeState
	err := p.view(func(tx *store.Tx) error {
		var err error
		_, state, err = p.loadState(tx)
		return err
	})
	return state, err
}

// FillStatus returns the fill record of the relay hash and false when the relay was never touched.
func (p *SpokePool) FillStatus(relayHash [32]byte) (*store.FillStatusAccount, bool, error) {
	key, err := p.FillStatusAddress(relayHash)
	if err != nil {
		return nil, false, err
	}

	var (
		record *store.FillStatusAccount
		ok     bool
	)
	err = p.view(func(tx *store.Tx) error {
		record, ok, err = store.FillStatuses.Get(tx, key)
		return err
	})
	return record, ok, err
}

// OpenFillStatuses counts the fill records in the store by status.
func (p *SpokePool) OpenFillStatuses() (map[store.FillStatus]int64, error) {
	counts := make(map[store.FillStatus]int64)
	err := p.view(func(tx *store.Tx) error {
		return store.FillStatuses.ForEach(tx, func(_ solana.PublicKey, v *store.FillStatusAccount) error {
			counts[v.Status]++
			return nil
		})
	})
	return counts, err
}

func (p *SpokePool) RootBundle(rootBundleID uint32) (*store.RootBundle, error) {
	key, err := p.RootBundleAddress(rootBundleID)
	if err != nil {
		return nil, err
	}

	var bundle *store.RootBundle
	err = p.view(func(tx *store.Tx) error {
		bundle, err = store.RootBundles.MustGet(tx, key)
		return err
	})
	return bundle, err
}

func (p *SpokePool) ClaimAccount(mint, refundAddress solana.PublicKey) (*store.ClaimAccount, bool, error) {
	key, err := p.ClaimAccountAddress(mint, refundAddress)
	if err != nil {
		return nil, false, err
	}

	var (
		claim *store.ClaimAccount
		ok    bool
	)
	err = p.view(func(tx *store.Tx) error {
		claim, ok, err = store.ClaimAccounts.Get(tx, key)
		return err
	})
	return claim, ok, err
}

// PendingToHubPool returns the amount of the mint owed back to the hub pool.
func (p *SpokePool) PendingToHubPool(mint solana.PublicKey) (uint64, error) {
	key, err := p.TransferLiabilityAddress(mint)
	if err != nil {
		return 0, err
	}

	var pending uint64
	err = p.view(func(tx *store.Tx) error {
		liability, ok, err := store.TransferLiabilities.Get(tx, key)
		if err != nil || !ok {
			return err
		}
		pending = liability.PendingToHubPool
		return nil
	})
	return pending, err
}

// VaultBalance returns the custody balance of the mint.
func (p *SpokePool) VaultBalance(mint solana.PublicKey) (uint64, error) {
	vault, err := p.VaultAddress(mint)
	if err != nil {
		return 0, err
	}

	var balance uint64
	err = p.view(func(tx *store.Tx) error {
		balance, err = tx.Balance(vault)
		return err
	})
	return balance, err
}
