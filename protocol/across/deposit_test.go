package across_test

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/stretchr/testify/suite"
)

type DepositIDTestSuite struct {
	suite.Suite
}

func TestRunDepositIDTestSuite(t *testing.T) {
	suite.Run(t, new(DepositIDTestSuite))
}

func (s *DepositIDTestSuite) Test_CounterDepositID() {
	id := across.CounterDepositID(0x01020304)

	s.Equal([]byte{1, 2, 3, 4}, id[28:])
	s.Equal(make([]byte, 28), id[:28])
}

func (s *DepositIDTestSuite) Test_UnsafeDepositID() {
	signer := key(1)
	depositor := key(2)
	nonce := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonce, 42)

	id := across.UnsafeDepositID(signer, depositor, 42)

	s.Equal(crypto.Keccak256(signer[:], depositor[:], nonce), id[:])
	s.NotEqual(id, across.UnsafeDepositID(signer, depositor, 43))
	s.NotEqual(id, across.UnsafeDepositID(depositor, signer, 42))
}

func (s *DepositIDTestSuite) Test_SeedHash_DependsOnData() {
	seed := across.DepositSeedData{
		Depositor:   key(1),
		InputAmount: 10,
		Message:     []byte{},
	}
	first, err := across.SeedHash(seed)
	s.Nil(err)

	seed.InputAmount = 11
	second, err := across.SeedHash(seed)
	s.Nil(err)

	s.NotEqual(first, second)
}

type AcrossPlusMessageTestSuite struct {
	suite.Suite
}

func TestRunAcrossPlusMessageTestSuite(t *testing.T) {
	suite.Run(t, new(AcrossPlusMessageTestSuite))
}

func (s *AcrossPlusMessageTestSuite) Test_Decode_ValidMessage() {
	msg := &across.AcrossPlusMessage{
		Handler:        key(7),
		ReadOnlyLen:    1,
		ValueAmount:    5,
		Accounts:       []solana.PublicKey{key(8), key(9)},
		HandlerMessage: []byte("payload"),
	}
	encoded, err := msg.Encode()
	s.Nil(err)

	decoded, err := across.DecodeAcrossPlusMessage(encoded)

	s.Nil(err)
	s.Equal(msg, decoded)
	s.Equal([]solana.PublicKey{key(8)}, decoded.Writable())
}

func (s *AcrossPlusMessageTestSuite) Test_Decode_Garbage() {
	_, err := across.DecodeAcrossPlusMessage([]byte{1, 2, 3})

	s.ErrorIs(err, across.ErrMessageDidNotDeserialize)
}

func (s *AcrossPlusMessageTestSuite) Test_Decode_InvalidReadOnlyLength() {
	msg := &across.AcrossPlusMessage{
		Handler:        key(7),
		ReadOnlyLen:    2,
		Accounts:       []solana.PublicKey{key(8)},
		HandlerMessage: []byte{},
	}
	encoded, _ := msg.Encode()

	_, err := across.DecodeAcrossPlusMessage(encoded)

	s.ErrorIs(err, across.ErrInvalidReadOnlyKeyLength)
}

func (s *AcrossPlusMessageTestSuite) Test_Decode_MissingValueRecipient() {
	msg := &across.AcrossPlusMessage{
		Handler:        key(7),
		ValueAmount:    1,
		Accounts:       []solana.PublicKey{},
		HandlerMessage: []byte{},
	}
	encoded, _ := msg.Encode()

	_, err := across.DecodeAcrossPlusMessage(encoded)

	s.ErrorIs(err, across.ErrMissingValueRecipientKey)
}
