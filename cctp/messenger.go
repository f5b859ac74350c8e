package cctp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/store"
)

const (
	MESSENGER_NAMESPACE    = "token_messenger"
	MESSAGE_SENT_NAMESPACE = "message_sent"
	TRANSMITTER_NAMESPACE  = "message_transmitter_authority"
)

var (
	ErrZeroAmount        = errors.New("burn amount must be positive")
	ErrZeroMintRecipient = errors.New("mint recipient must be set")
)

// BurnRequest asks the token messenger to burn tokens and send a mint message to the
// destination domain.
type BurnRequest struct {
	Owner                authority.Authority
	Payer                solana.PublicKey
	BurnTokenAccount     solana.PublicKey
	BurnToken            solana.PublicKey
	Amount               uint64
	DestinationDomain    uint32
	MintRecipient        solana.PublicKey
	DestinationCaller    solana.PublicKey
	MaxFee               uint64
	MinFinalityThreshold uint32
	HookData             []byte
}

// TokenMessenger burns tokens on the local domain. The returned nonce identifies the message
// that an attester relays to the destination domain.
type TokenMessenger interface {
	DepositForBurn(tx *store.Tx, req BurnRequest) (uint64, error)
}

// LedgerMessenger burns from the local token ledger and keeps the outgoing messages in the
// store until they are attested.
type LedgerMessenger struct {
	deriver     authority.Deriver
	localDomain uint32
}

func NewLedgerMessenger(programID solana.PublicKey, localDomain uint32) *LedgerMessenger {
	return &LedgerMessenger{
		deriver:     authority.NewDeriver(programID),
		localDomain: localDomain,
	}
}

func (m *LedgerMessenger) DepositForBurn(tx *store.Tx, req BurnRequest) (uint64, error) {
	if req.Amount == 0 {
		return 0, ErrZeroAmount
	}
	if req.MintRecipient.IsZero() {
		return 0, ErrZeroMintRecipient
	}

	if err := tx.Burn(req.BurnTokenAccount, req.BurnToken, req.Owner, req.Amount); err != nil {
		return 0, err
	}

	stateKey, err := m.deriver.Address(MESSENGER_NAMESPACE)
	if err != nil {
		return 0, err
	}
	state, ok, err := store.MessengerStates.Get(tx, stateKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		state = &store.MessengerState{LocalDomain: m.localDomain}
	}
	nonce := state.NextNonce
	state.NextNonce++
	if err := store.MessengerStates.Save(tx, req.Payer, stateKey, state); err != nil {
		return 0, err
	}

	messageKey, err := m.messageAddress(nonce)
	if err != nil {
		return 0, err
	}
	err = store.BurnMessages.Create(tx, req.Payer, messageKey, &store.BurnMessage{
		Nonce:                nonce,
		SourceDomain:         m.localDomain,
		DestinationDomain:    req.DestinationDomain,
		Sender:               req.Owner.Key(),
		BurnToken:            req.BurnToken,
		MintRecipient:        req.MintRecipient,
		DestinationCaller:    req.DestinationCaller,
		Amount:               req.Amount,
		MaxFee:               req.MaxFee,
		MinFinalityThreshold: req.MinFinalityThreshold,
		HookData:             append([]byte{}, req.HookData...),
	})
	if err != nil {
		return 0, fmt.Errorf("failed recording burn message %d: %w", nonce, err)
	}

	return nonce, nil
}

// Message returns the recorded burn message with the nonce.
func (m *LedgerMessenger) Message(tx *store.Tx, nonce uint64) (*store.BurnMessage, error) {
	key, err := m.messageAddress(nonce)
	if err != nil {
		return nil, err
	}
	return store.BurnMessages.MustGet(tx, key)
}

func (m *LedgerMessenger) messageAddress(nonce uint64) (solana.PublicKey, error) {
	n := make([]byte, 8)
	binary.LittleEndian.PutUint64(n, nonce)
	return m.deriver.Address(MESSAGE_SENT_NAMESPACE, n)
}

// TransmitterAuthority is the key the message transmitter acts as when delivering a message to
// the receiver program.
func TransmitterAuthority(transmitterProgramID, receiverProgramID solana.PublicKey) (solana.PublicKey, error) {
	return authority.NewDeriver(transmitterProgramID).Address(TRANSMITTER_NAMESPACE, receiverProgramID[:])
}

// MessageView reads recorded burn messages outside of a program call.
type MessageView struct {
	db        *store.DB
	messenger *LedgerMessenger
}

func NewMessageView(db *store.DB, messenger *LedgerMessenger) *MessageView {
	return &MessageView{
		db:        db,
		messenger: messenger,
	}
}

func (v *MessageView) BurnMessage(nonce uint64) (*store.BurnMessage, error) {
	var msg *store.BurnMessage
	err := v.db.View(func(tx *store.Tx) error {
		var err error
		msg, err = v.messenger.Message(tx, nonce)
		return err
	})
	return msg, err
}
