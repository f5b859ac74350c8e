// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package periphery

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/chains/evm/signature"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
)

const (
	STATE_SEED           = "state"
	RENT_FUND_SEED       = "rent_fund"
	USED_NONCE_SEED      = "used_nonce"
	MINIMUM_DEPOSIT_SEED = "minimum_deposit"
)

// QuoteVerifier checks a sponsored quote was signed by the expected signer.
type QuoteVerifier interface {
	VerifyQuote(expectedSigner solana.PublicKey, quote *sponsored.Quote, signature []byte) error
}

type verifyFunc func(expectedSigner solana.PublicKey, quote *sponsored.Quote, signature []byte) error

func (f verifyFunc) VerifyQuote(expectedSigner solana.PublicKey, quote *sponsored.Quote, signature []byte) error {
	return f(expectedSigner, quote, signature)
}

type Metrics interface {
	TrackSponsoredDeposit()
}

type noopMetrics struct{}

func (noopMetrics) TrackSponsoredDeposit() {}

// Periphery burns user funds through the token messenger once an off-chain signer sponsored
// the transfer with a signed quote.
type Periphery struct {
	db        *store.DB
	deriver   authority.Deriver
	seed      uint64
	clock     spoke.Clock
	messenger cctp.TokenMessenger
	verifier  QuoteVerifier
	events    spoke.EventSink
	metrics   Metrics
	log       zerolog.Logger
}

type Option func(p *Periphery)

func WithClock(clock spoke.Clock) Option {
	return func(p *Periphery) {
		p.clock = clock
	}
}

// WithQuoteVerifier replaces signature recovery, e.g. with a cached verifier.
func WithQuoteVerifier(verifier QuoteVerifier) Option {
	return func(p *Periphery) {
		p.verifier = verifier
	}
}

func WithEventSink(sink spoke.EventSink) Option {
	return func(p *Periphery) {
		p.events = sink
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(p *Periphery) {
		p.metrics = metrics
	}
}

func NewPeriphery(db *store.DB, programID solana.PublicKey, seed uint64, messenger cctp.TokenMessenger, opts ...Option) *Periphery {
	p := &Periphery{
		db:        db,
		deriver:   authority.NewDeriver(programID),
		seed:      seed,
		clock:     spoke.SystemClock{},
		messenger: messenger,
		verifier:  verifyFunc(signature.VerifyQuote),
		events:    spoke.LogSink{},
		metrics:   noopMetrics{},
		log:       log.With().Str("program", programID.String()).Str("component", "periphery").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Periphery) StateAddress() (solana.PublicKey, error) {
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, p.seed)
	return p.deriver.Address(STATE_SEED, seed)
}

// RentFundAddress holds the lamports sponsoring nonce records and outgoing messages.
func (p *Periphery) RentFundAddress() (solana.PublicKey, error) {
	return p.deriver.Address(RENT_FUND_SEED)
}

func (p *Periphery) UsedNonceAddress(nonce [32]byte) (solana.PublicKey, error) {
	return p.deriver.Address(USED_NONCE_SEED, nonce[:])
}

func (p *Periphery) MinimumDepositAddress(burnToken solana.PublicKey) (solana.PublicKey, error) {
	return p.deriver.Address(MINIMUM_DEPOSIT_SEED, burnToken[:])
}

// update runs fn in one store transaction and publishes its events after commit.
func (p *Periphery) update(fn func(tx *store.Tx, now uint32, emit func(spoke.Event)) error) error {
	now := p.clock.Now()
	var events []spoke.Event
	err := p.db.Update(func(tx *store.Tx) error {
		return fn(tx, now, func(e spoke.Event) {
			events = append(events, e)
		})
	})
	if err != nil {
		return err
	}

	for _, event := range events {
		p.events.Emit(event)
	}
	return nil
}

type InitializeParams struct {
	LocalDomain uint32
	QuoteSigner solana.PublicKey
}

// Initialize creates the periphery state with the signer as owner. The local domain can not
// change afterwards.
func (p *Periphery) Initialize(signer solana.PublicKey, params InitializeParams) error {
	key, err := p.StateAddress()
	if err != nil {
		return err
	}

	return p.update(func(tx *store.Tx, _ uint32, emit func(spoke.Event)) error {
		err := store.PeripheryStates.Create(tx, signer, key, &store.PeripheryState{
			Owner:       signer,
			LocalDomain: params.LocalDomain,
			QuoteSigner: params.QuoteSigner,
		})
		if errors.Is(err, store.ErrAccountExists) {
			return ErrAlreadyInitialized
		}
		if err != nil {
			return err
		}

		emit(QuoteSignerSet{NewQuoteSigner: params.QuoteSigner})
		return nil
	})
}

func (p *Periphery) loadState(tx *store.Tx) (solana.PublicKey, *store.PeripheryState, error) {
	key, err := p.StateAddress()
	if err != nil {
		return key, nil, err
	}
	state, err := store.PeripheryStates.MustGet(tx, key)
	if errors.Is(err, store.ErrNotFound) {
		return key, nil, ErrNotInitialized
	}
	return key, state, err
}

func (p *Periphery) loadOwned(tx *store.Tx, signer solana.PublicKey) (solana.PublicKey, *store.PeripheryState, error) {
	key, state, err := p.loadState(tx)
	if err != nil {
		return key, nil, err
	}
	if state.Owner != signer {
		return key, nil, fmt.Errorf("%w: %s", ErrNotOwner, signer)
	}
	return key, state, nil
}

// SetQuoteSigner replaces the trusted quote signer. A zero signer disables deposits.
func (p *Periphery) SetQuoteSigner(signer, quoteSigner solana.PublicKey) error {
	return p.update(func(tx *store.Tx, _ uint32, emit func(spoke.Event)) error {
		key, state, err := p.loadOwned(tx, signer)
		if err != nil {
			return err
		}
		if state.QuoteSigner == quoteSigner {
			return ErrSignerUnchanged
		}

		emit(QuoteSignerSet{OldQuoteSigner: state.QuoteSigner, NewQuoteSigner: quoteSigner})
		state.QuoteSigner = quoteSigner
		return store.PeripheryStates.Save(tx, key, key, state)
	})
}

// SetMinimumDepositAmount sets the smallest sponsored burn accepted for the token. Tokens with
// no minimum set can not be deposited.
func (p *Periphery) SetMinimumDepositAmount(signer, burnToken solana.PublicKey, amount uint64) error {
	key, err := p.MinimumDepositAddress(burnToken)
	if err != nil {
		return err
	}

	return p.update(func(tx *store.Tx, _ uint32, emit func(spoke.Event)) error {
		if _, _, err := p.loadOwned(tx, signer); err != nil {
			return err
		}
		if err := store.MinimumDeposits.Save(tx, signer, key, &store.MinimumDeposit{Amount: amount}); err != nil {
			return err
		}

		emit(MinimumDepositAmountSet{BurnToken: burnToken, Amount: amount})
		return nil
	})
}

// WithdrawRentFund moves lamports out of the rent fund.
func (p *Periphery) WithdrawRentFund(signer, recipient solana.PublicKey, amount uint64) error {
	rentFund, err := p.RentFundAddress()
	if err != nil {
		return err
	}

	return p.update(func(tx *store.Tx, _ uint32, emit func(spoke.Event)) error {
		if _, _, err := p.loadOwned(tx, signer); err != nil {
			return err
		}
		if err := tx.TransferLamports(rentFund, recipient, amount); err != nil {
			return err
		}

		emit(WithdrawnRentFund{Amount: amount, Recipient: recipient})
		return nil
	})
}

// State returns the periphery configuration.
func (p *Periphery) State() (*store.PeripheryState, error) {
	var state *store.PeripheryState
	err := p.db.View(func(tx *store.Tx) error {
		var err error
		_, state, err = p.loadState(tx)
		return err
	})
	return state, err
}
