// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package across

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type Hash [32]byte

// RelayData is the destination side view of a single deposit.
type RelayData struct {
	Depositor           solana.PublicKey
	Recipient           solana.PublicKey
	ExclusiveRelayer    solana.PublicKey
	InputToken          solana.PublicKey
	OutputToken         solana.PublicKey
	InputAmount         uint64
	OutputAmount        uint64
	OriginChainId       uint64
	DepositId           [32]byte
	FillDeadline        uint32
	ExclusivityDeadline uint32
	Message             []byte
}

// MessageHash returns keccak256 of the message or the zero hash when the message is empty.
func MessageHash(message []byte) Hash {
	var h Hash
	if len(message) == 0 {
		return h
	}
	copy(h[:], crypto.Keccak256(message))
	return h
}

// RelayHash calculates the canonical relay identifier for a destination chain. The message is
// folded in as its hash so the identifier can be recomputed from the emitted fill event.
func RelayHash(data RelayData, chainID uint64) Hash {
	return RelayEventHash(data, MessageHash(data.Message), chainID)
}

// RelayEventHash calculates the relay identifier when only the message hash is known.
func RelayEventHash(data RelayData, messageHash Hash, chainID uint64) Hash {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	writeRelayHead(enc, data)
	_ = enc.WriteBytes(messageHash[:], false)
	_ = enc.WriteUint64(chainID, binary.LittleEndian)

	var h Hash
	copy(h[:], crypto.Keccak256(buf.Bytes()))
	return h
}

// writeRelayHead writes every relay field preceding the message.
func writeRelayHead(enc *bin.Encoder, data RelayData) {
	for _, key := range []solana.PublicKey{
		data.Depositor,
		data.Recipient,
		data.ExclusiveRelayer,
		data.InputToken,
		data.OutputToken,
	} {
		_ = enc.WriteBytes(key[:], false)
	}
	_ = enc.WriteUint64(data.InputAmount, binary.LittleEndian)
	_ = enc.WriteUint64(data.OutputAmount, binary.LittleEndian)
	_ = enc.WriteUint64(data.OriginChainId, binary.LittleEndian)
	_ = enc.WriteBytes(data.DepositId[:], false)
	_ = enc.WriteUint32(data.FillDeadline, binary.LittleEndian)
	_ = enc.WriteUint32(data.ExclusivityDeadline, binary.LittleEndian)
}

// HasExclusiveRelayer reports whether an exclusive relayer was set on the deposit.
func (d RelayData) HasExclusiveRelayer() bool {
	return !d.ExclusiveRelayer.IsZero()
}
