package across

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// LeafPrefixLength zero bytes start every leaf preimage so leaves of this chain can never
// collide with the abi encoded leaves of the counterpart chain.
const LeafPrefixLength = 64

var ErrMismatchedLeafArrays = errors.New("refund amounts and refund addresses differ in length")

// SlowFill is the leaf of the slow relay tree.
type SlowFill struct {
	RelayData           RelayData
	ChainId             uint64
	UpdatedOutputAmount uint64
}

// Hash returns the leaf hash. Unlike the relay hash the full message is part of the preimage.
func (l SlowFill) Hash() Hash {
	buf := new(bytes.Buffer)
	buf.Write(make([]byte, LeafPrefixLength))

	enc := bin.NewBorshEncoder(buf)
	writeRelayHead(enc, l.RelayData)
	_ = enc.WriteBytes(l.RelayData.Message, true)
	_ = enc.WriteUint64(l.ChainId, binary.LittleEndian)
	_ = enc.WriteUint64(l.UpdatedOutputAmount, binary.LittleEndian)

	var h Hash
	copy(h[:], crypto.Keccak256(buf.Bytes()))
	return h
}

// RelayerRefundLeaf is the leaf of the relayer refund tree. Field order matches the wire layout.
type RelayerRefundLeaf struct {
	AmountToReturn  uint64
	ChainId         uint64
	RefundAmounts   []uint64
	LeafId          uint32
	MintPublicKey   solana.PublicKey
	RefundAddresses []solana.PublicKey
}

// Encode returns the Borsh encoding of the leaf.
func (l RelayerRefundLeaf) Encode() ([]byte, error) {
	return bin.MarshalBorsh(&l)
}

// Hash returns keccak256 of the zero prefix followed by the encoded leaf.
func (l RelayerRefundLeaf) Hash() (Hash, error) {
	var h Hash
	encoded, err := l.Encode()
	if err != nil {
		return h, err
	}

	copy(h[:], crypto.Keccak256(make([]byte, LeafPrefixLength), encoded))
	return h, nil
}

// Validate checks the refund arrays pair up.
func (l RelayerRefundLeaf) Validate() error {
	if len(l.RefundAmounts) != len(l.RefundAddresses) {
		return ErrMismatchedLeafArrays
	}
	return nil
}

// DecodeRelayerRefundLeaf decodes a Borsh encoded leaf.
func DecodeRelayerRefundLeaf(data []byte) (RelayerRefundLeaf, error) {
	var l RelayerRefundLeaf
	err := bin.NewBorshDecoder(data).Decode(&l)
	return l, err
}
