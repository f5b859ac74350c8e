package across

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	// MAX_EXCLUSIVITY_PERIOD_SECONDS separates exclusivity offsets from absolute deadlines.
	MAX_EXCLUSIVITY_PERIOD_SECONDS uint32 = 31_536_000
)

// ZeroDepositID requests the deposit counter to be used as the deposit id.
var ZeroDepositID [32]byte

// CounterDepositID places the deposit counter big endian into the last four bytes.
func CounterDepositID(numberOfDeposits uint32) [32]byte {
	var id [32]byte
	binary.BigEndian.PutUint32(id[28:], numberOfDeposits)
	return id
}

// UnsafeDepositID derives a deposit id from caller chosen inputs. Uniqueness is the caller's
// responsibility.
func UnsafeDepositID(signer, depositor solana.PublicKey, nonce uint64) [32]byte {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], nonce)

	var id [32]byte
	copy(id[:], crypto.Keccak256(signer[:], depositor[:], n[:]))
	return id
}

// DepositSeedData binds a delegate approval to one exact deposit.
type DepositSeedData struct {
	Depositor            solana.PublicKey
	Recipient            solana.PublicKey
	InputToken           solana.PublicKey
	OutputToken          solana.PublicKey
	InputAmount          uint64
	OutputAmount         [32]byte
	DestinationChainId   uint64
	ExclusiveRelayer     solana.PublicKey
	QuoteTimestamp       uint32
	FillDeadline         uint32
	ExclusivityParameter uint32
	Message              []byte
}

// DepositNowSeedData binds a delegate approval to a deposit quoted at execution time.
type DepositNowSeedData struct {
	Depositor          solana.PublicKey
	Recipient          solana.PublicKey
	InputToken         solana.PublicKey
	OutputToken        solana.PublicKey
	InputAmount        uint64
	OutputAmount       [32]byte
	DestinationChainId uint64
	ExclusiveRelayer   solana.PublicKey
	FillDeadlineOffset uint32
	ExclusivityPeriod  uint32
	Message            []byte
}

// SeedHash is keccak256 of the Borsh encoded seed data.
func SeedHash(seed any) ([32]byte, error) {
	var h [32]byte
	encoded, err := bin.MarshalBorsh(seed)
	if err != nil {
		return h, err
	}
	copy(h[:], crypto.Keccak256(encoded))
	return h, nil
}

// FundsDeposited is emitted for every accepted deposit.
type FundsDeposited struct {
	InputToken          solana.PublicKey
	OutputToken         solana.PublicKey
	InputAmount         uint64
	OutputAmount        [32]byte
	DestinationChainId  uint64
	DepositId           [32]byte
	QuoteTimestamp      uint32
	FillDeadline        uint32
	ExclusivityDeadline uint32
	Depositor           solana.PublicKey
	Recipient           solana.PublicKey
	ExclusiveRelayer    solana.PublicKey
	Message             []byte
}
