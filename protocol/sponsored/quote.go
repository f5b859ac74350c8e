package sponsored

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

var ErrNonCanonicalQuote = errors.New("non canonical quote encoding")

// Quote is an off-chain signed authorization for a sponsored CCTP deposit.
type Quote struct {
	SourceDomain         uint32
	DestinationDomain    uint32
	MintRecipient        solana.PublicKey
	Amount               uint64
	BurnToken            solana.PublicKey
	DestinationCaller    solana.PublicKey
	MaxFee               uint64
	MinFinalityThreshold uint32
	Nonce                [32]byte
	Deadline             uint64
	MaxBpsToSponsor      uint64
	MaxUserSlippageBps   uint64
	FinalRecipient       solana.PublicKey
	FinalToken           solana.PublicKey
	ExecutionMode        uint8
	ActionData           []byte
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

var (
	uint8Type   = mustType("uint8")
	uint32Type  = mustType("uint32")
	uint64Type  = mustType("uint64")
	bytes32Type = mustType("bytes32")
	bytesType   = mustType("bytes")

	// first half of the typed hash
	hash1Arguments = abi.Arguments{
		{Name: "sourceDomain", Type: uint32Type},
		{Name: "destinationDomain", Type: uint32Type},
		{Name: "mintRecipient", Type: bytes32Type},
		{Name: "amount", Type: uint64Type},
		{Name: "burnToken", Type: bytes32Type},
		{Name: "destinationCaller", Type: bytes32Type},
		{Name: "maxFee", Type: uint64Type},
		{Name: "minFinalityThreshold", Type: uint32Type},
	}
	// second half of the typed hash, action data folded in as its hash
	hash2Arguments = abi.Arguments{
		{Name: "nonce", Type: bytes32Type},
		{Name: "deadline", Type: uint64Type},
		{Name: "maxBpsToSponsor", Type: uint64Type},
		{Name: "maxUserSlippageBps", Type: uint64Type},
		{Name: "finalRecipient", Type: bytes32Type},
		{Name: "finalToken", Type: bytes32Type},
		{Name: "executionMode", Type: uint8Type},
		{Name: "actionDataHash", Type: bytes32Type},
	}
	hookDataArguments = abi.Arguments{
		{Name: "nonce", Type: bytes32Type},
		{Name: "deadline", Type: uint64Type},
		{Name: "maxBpsToSponsor", Type: uint64Type},
		{Name: "maxUserSlippageBps", Type: uint64Type},
		{Name: "finalRecipient", Type: bytes32Type},
		{Name: "finalToken", Type: bytes32Type},
		{Name: "executionMode", Type: uint8Type},
		{Name: "actionData", Type: bytesType},
	}
	quoteArguments = append(append(abi.Arguments{}, hash1Arguments...), hookDataArguments...)
)

// Decode parses an abi encoded quote: fifteen static words followed by the action data tail.
func Decode(data []byte) (*Quote, error) {
	values, err := quoteArguments.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed decoding quote: %w", err)
	}
	if len(values) != len(quoteArguments) {
		return nil, fmt.Errorf("expected %d quote fields, got %d", len(quoteArguments), len(values))
	}

	q := &Quote{
		SourceDomain:         values[0].(uint32),
		DestinationDomain:    values[1].(uint32),
		MintRecipient:        solana.PublicKeyFromBytes(word(values[2])),
		Amount:               values[3].(uint64),
		BurnToken:            solana.PublicKeyFromBytes(word(values[4])),
		DestinationCaller:    solana.PublicKeyFromBytes(word(values[5])),
		MaxFee:               values[6].(uint64),
		MinFinalityThreshold: values[7].(uint32),
		Nonce:                values[8].([32]byte),
		Deadline:             values[9].(uint64),
		MaxBpsToSponsor:      values[10].(uint64),
		MaxUserSlippageBps:   values[11].(uint64),
		FinalRecipient:       solana.PublicKeyFromBytes(word(values[12])),
		FinalToken:           solana.PublicKeyFromBytes(word(values[13])),
		ExecutionMode:        values[14].(uint8),
		ActionData:           values[15].([]byte),
	}

	// the abi decoder ignores offsets and padding bytes it does not read
	canonical, err := q.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed encoding quote: %w", err)
	}
	if !bytes.Equal(canonical, data) {
		return nil, ErrNonCanonicalQuote
	}
	return q, nil
}

func word(v interface{}) []byte {
	w := v.([32]byte)
	return w[:]
}

// Encode returns the abi encoding accepted by Decode.
func (q *Quote) Encode() ([]byte, error) {
	return quoteArguments.Pack(
		q.SourceDomain,
		q.DestinationDomain,
		[32]byte(q.MintRecipient),
		q.Amount,
		[32]byte(q.BurnToken),
		[32]byte(q.DestinationCaller),
		q.MaxFee,
		q.MinFinalityThreshold,
		q.Nonce,
		q.Deadline,
		q.MaxBpsToSponsor,
		q.MaxUserSlippageBps,
		[32]byte(q.FinalRecipient),
		[32]byte(q.FinalToken),
		q.ExecutionMode,
		q.actionData(),
	)
}

func (q *Quote) actionData() []byte {
	if q.ActionData == nil {
		return []byte{}
	}
	return q.ActionData
}

// TypedHash is the digest the quote signer signs. The fields are split over two sub hashes to
// stay within evm stack limits on the counterpart chain.
func (q *Quote) TypedHash() ([32]byte, error) {
	var out [32]byte

	first, err := hash1Arguments.Pack(
		q.SourceDomain,
		q.DestinationDomain,
		[32]byte(q.MintRecipient),
		q.Amount,
		[32]byte(q.BurnToken),
		[32]byte(q.DestinationCaller),
		q.MaxFee,
		q.MinFinalityThreshold,
	)
	if err != nil {
		return out, err
	}

	var actionDataHash [32]byte
	copy(actionDataHash[:], crypto.Keccak256(q.ActionData))
	second, err := hash2Arguments.Pack(
		q.Nonce,
		q.Deadline,
		q.MaxBpsToSponsor,
		q.MaxUserSlippageBps,
		[32]byte(q.FinalRecipient),
		[32]byte(q.FinalToken),
		q.ExecutionMode,
		actionDataHash,
	)
	if err != nil {
		return out, err
	}

	copy(out[:], crypto.Keccak256(crypto.Keccak256(first), crypto.Keccak256(second)))
	return out, nil
}

// HookData is the payload forwarded with the burn to the destination domain.
func (q *Quote) HookData() ([]byte, error) {
	return hookDataArguments.Pack(
		q.Nonce,
		q.Deadline,
		q.MaxBpsToSponsor,
		q.MaxUserSlippageBps,
		[32]byte(q.FinalRecipient),
		[32]byte(q.FinalToken),
		q.ExecutionMode,
		q.actionData(),
	)
}
