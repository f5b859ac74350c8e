package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/store"
)

// HandlerCall is passed to the message handler named by a fill message.
type HandlerCall struct {
	Relayer          solana.PublicKey
	AmountReceived   uint64
	Accounts         []solana.PublicKey
	WritableAccounts []solana.PublicKey
	Message          []byte
}

// MessageHandler reacts to a filled relay carrying a message. It runs inside the fill's
// transaction, an error aborts the fill.
type MessageHandler interface {
	HandleV3AcrossMessage(tx *store.Tx, call HandlerCall) error
}

func (p *SpokePool) invokeHandler(tx *store.Tx, relayer solana.PublicKey, amount uint64, message []byte) error {
	msg, err := across.DecodeAcrossPlusMessage(message)
	if err != nil {
		return wrapErr(InvalidMessage, err)
	}

	handler, ok := p.handlers[msg.Handler]
	if !ok {
		return spokeErr(InvalidMessageHandler, "no handler registered for %s", msg.Handler)
	}

	if msg.ValueAmount > 0 {
		if err := tx.TransferLamports(relayer, msg.Accounts[0], msg.ValueAmount); err != nil {
			return err
		}
	}

	return handler.HandleV3AcrossMessage(tx, HandlerCall{
		Relayer:          relayer,
		AmountReceived:   amount,
		Accounts:         msg.Accounts,
		WritableAccounts: msg.Writable(),
		Message:          msg.HandlerMessage,
	})
}
