// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package crossdomain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/chains/evm/calls/consts"
)

const (
	SELECTOR_LENGTH = 4
	WORD_LENGTH     = 32
)

var (
	ErrInvalidSelector     = errors.New("invalid selector")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidBool         = errors.New("invalid bool")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidUint32       = errors.New("invalid uint32")
	ErrInvalidUint64       = errors.New("invalid uint64")
	ErrUnsupportedSelector = errors.New("unsupported selector")
)

// AdminCall is a local admin operation requested by the remote admin.
type AdminCall interface {
	Method() string
}

type PauseDeposits struct {
	Pause bool
}

type PauseFills struct {
	Pause bool
}

type SetCrossDomainAdmin struct {
	CrossDomainAdmin solana.PublicKey
}

type SetEnableRoute struct {
	OriginToken        solana.PublicKey
	DestinationChainId uint64
	Enabled            bool
}

type RelayRootBundle struct {
	RelayerRefundRoot [32]byte
	SlowRelayRoot     [32]byte
}

type EmergencyDeleteRootBundle struct {
	RootBundleId uint32
}

func (PauseDeposits) Method() string             { return "pauseDeposits" }
func (PauseFills) Method() string                { return "pauseFills" }
func (SetCrossDomainAdmin) Method() string       { return "setCrossDomainAdmin" }
func (SetEnableRoute) Method() string            { return "setEnableRoute" }
func (RelayRootBundle) Method() string           { return "relayRootBundle" }
func (EmergencyDeleteRootBundle) Method() string { return "emergencyDeleteRootBundle" }

// Translate maps an authenticated remote calldata payload to a local admin call. The payload
// is a 4 byte selector followed by exactly one 32 byte word per argument.
func Translate(body []byte) (AdminCall, error) {
	if len(body) < SELECTOR_LENGTH {
		return nil, ErrInvalidSelector
	}

	method, err := consts.CrossDomainAdminABI.MethodById(body[:SELECTOR_LENGTH])
	if err != nil {
		return nil, fmt.Errorf("%w: %x", ErrUnsupportedSelector, body[:SELECTOR_LENGTH])
	}

	args := body[SELECTOR_LENGTH:]
	if len(args) != WORD_LENGTH*len(method.Inputs) {
		return nil, fmt.Errorf("%w: %s expects %d words, got %d bytes", ErrInvalidArgument, method.Name, len(method.Inputs), len(args))
	}
	w := func(i int) []byte {
		return args[i*WORD_LENGTH : (i+1)*WORD_LENGTH]
	}

	switch method.Name {
	case "pauseDeposits":
		pause, err := decodeBool(w(0))
		if err != nil {
			return nil, err
		}
		return PauseDeposits{Pause: pause}, nil
	case "pauseFills":
		pause, err := decodeBool(w(0))
		if err != nil {
			return nil, err
		}
		return PauseFills{Pause: pause}, nil
	case "setCrossDomainAdmin":
		admin, err := decodeAddress(w(0))
		if err != nil {
			return nil, err
		}
		return SetCrossDomainAdmin{CrossDomainAdmin: admin}, nil
	case "setEnableRoute":
		chainID, err := decodeUint64(w(1))
		if err != nil {
			return nil, err
		}
		enabled, err := decodeBool(w(2))
		if err != nil {
			return nil, err
		}
		return SetEnableRoute{
			OriginToken:        solana.PublicKeyFromBytes(w(0)),
			DestinationChainId: chainID,
			Enabled:            enabled,
		}, nil
	case "relayRootBundle":
		call := RelayRootBundle{}
		copy(call.RelayerRefundRoot[:], w(0))
		copy(call.SlowRelayRoot[:], w(1))
		return call, nil
	case "emergencyDeleteRootBundle":
		id, err := decodeUint32(w(0))
		if err != nil {
			return nil, err
		}
		return EmergencyDeleteRootBundle{RootBundleId: id}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSelector, method.Name)
	}
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func decodeBool(word []byte) (bool, error) {
	if !isZero(word[:WORD_LENGTH-1]) || word[WORD_LENGTH-1] > 1 {
		return false, ErrInvalidBool
	}
	return word[WORD_LENGTH-1] == 1, nil
}

// decodeAddress keeps the evm address left padded in a 32 byte key.
func decodeAddress(word []byte) (solana.PublicKey, error) {
	if !isZero(word[:12]) {
		return solana.PublicKey{}, ErrInvalidAddress
	}
	return solana.PublicKeyFromBytes(word), nil
}

func decodeUint64(word []byte) (uint64, error) {
	if !isZero(word[:WORD_LENGTH-8]) {
		return 0, ErrInvalidUint64
	}
	return binary.BigEndian.Uint64(word[WORD_LENGTH-8:]), nil
}

func decodeUint32(word []byte) (uint32, error) {
	if !isZero(word[:WORD_LENGTH-4]) {
		return 0, ErrInvalidUint32
	}
	return binary.BigEndian.Uint32(word[WORD_LENGTH-4:]), nil
}

// Encode produces the remote calldata for a call.
func Encode(call AdminCall) ([]byte, error) {
	var args []interface{}
	switch c := call.(type) {
	case PauseDeposits:
		args = []interface{}{c.Pause}
	case PauseFills:
		args = []interface{}{c.Pause}
	case SetCrossDomainAdmin:
		args = []interface{}{common.BytesToAddress(c.CrossDomainAdmin[12:])}
	case SetEnableRoute:
		args = []interface{}{[32]byte(c.OriginToken), c.DestinationChainId, c.Enabled}
	case RelayRootBundle:
		args = []interface{}{c.RelayerRefundRoot, c.SlowRelayRoot}
	case EmergencyDeleteRootBundle:
		args = []interface{}{new(big.Int).SetUint64(uint64(c.RootBundleId))}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSelector, call)
	}

	return consts.CrossDomainAdminABI.Pack(call.Method(), args...)
}

// Selectors lists the recognized remote function selectors by method name.
func Selectors() map[string][]byte {
	selectors := make(map[string][]byte)
	for name, method := range consts.CrossDomainAdminABI.Methods {
		selectors[name] = append([]byte{}, method.ID...)
	}
	return selectors
}

