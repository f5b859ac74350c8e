package across

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	ErrMessageDidNotDeserialize = errors.New("message did not deserialize")
	ErrInvalidReadOnlyKeyLength = errors.New("invalid read only key length")
	ErrMissingValueRecipientKey = errors.New("missing value recipient key")
)

// AcrossPlusMessage routes a fill message to a registered handler.
type AcrossPlusMessage struct {
	Handler        solana.PublicKey
	ReadOnlyLen    uint8
	ValueAmount    uint64
	Accounts       []solana.PublicKey
	HandlerMessage []byte
}

// DecodeAcrossPlusMessage decodes and validates a Borsh encoded message.
func DecodeAcrossPlusMessage(data []byte) (*AcrossPlusMessage, error) {
	m := &AcrossPlusMessage{}
	decoder := bin.NewBorshDecoder(data)
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMessageDidNotDeserialize, err)
	}

	if int(m.ReadOnlyLen) > len(m.Accounts) {
		return nil, ErrInvalidReadOnlyKeyLength
	}
	if m.ValueAmount > 0 && len(m.Accounts) == 0 {
		return nil, ErrMissingValueRecipientKey
	}
	return m, nil
}

// Encode returns the Borsh encoding of the message.
func (m *AcrossPlusMessage) Encode() ([]byte, error) {
	return bin.MarshalBorsh(m)
}

// Writable returns the accounts the handler may mutate. Writable accounts precede read only ones.
func (m *AcrossPlusMessage) Writable() []solana.PublicKey {
	return m.Accounts[:len(m.Accounts)-int(m.ReadOnlyLen)]
}
