package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/svm-spoke/protocol/across"
)

// Event is a record of a committed state transition.
type Event interface {
	Name() string
}

// EventSink receives events after the call that produced them committed.
type EventSink interface {
	Emit(event Event)
}

// LogSink writes events as structured log lines.
type LogSink struct{}

func (LogSink) Emit(event Event) {
	log.Info().Str("event", event.Name()).Interface("data", event).Msg("Program event")
}

type FillType uint8

const (
	FastFill FillType = iota
	ReplacedSlowFill
	SlowFill
)

func (t FillType) String() string {
	switch t {
	case FastFill:
		return "FastFill"
	case ReplacedSlowFill:
		return "ReplacedSlowFill"
	case SlowFill:
		return "SlowFill"
	default:
		return "Unknown"
	}
}

type RelayExecutionEventInfo struct {
	UpdatedRecipient    solana.PublicKey
	UpdatedMessageHash  across.Hash
	UpdatedOutputAmount uint64
	FillType            FillType
}

type FilledRelay struct {
	InputToken          solana.PublicKey
	OutputToken         solana.PublicKey
	InputAmount         uint64
	OutputAmount        uint64
	RepaymentChainId    uint64
	OriginChainId       uint64
	DepositId           [32]byte
	FillDeadline        uint32
	ExclusivityDeadline uint32
	ExclusiveRelayer    solana.PublicKey
	Relayer             solana.PublicKey
	Depositor           solana.PublicKey
	Recipient           solana.PublicKey
	MessageHash         across.Hash
	RelayExecutionInfo  RelayExecutionEventInfo
}

type RequestedSlowFill struct {
	InputToken          solana.PublicKey
	OutputToken         solana.PublicKey
	InputAmount         uint64
	OutputAmount        uint64
	OriginChainId       uint64
	DepositId           [32]byte
	FillDeadline        uint32
	ExclusivityDeadline uint32
	ExclusiveRelayer    solana.PublicKey
	Depositor           solana.PublicKey
	Recipient           solana.PublicKey
	MessageHash         across.Hash
}

type FundsDeposited struct {
	across.FundsDeposited
}

type ExecutedRelayerRefundRoot struct {
	AmountToReturn  uint64
	ChainId         uint64
	RefundAmounts   []uint64
	RootBundleId    uint32
	LeafId          uint32
	L2TokenAddress  solana.PublicKey
	RefundAddresses []solana.PublicKey
	DeferredRefunds bool
	Caller          solana.PublicKey
}

type ClaimedRelayerRefund struct {
	L2TokenAddress solana.PublicKey
	ClaimAmount    uint64
	RefundAddress  solana.PublicKey
}

type RelayedRootBundle struct {
	RootBundleId      uint32
	RelayerRefundRoot [32]byte
	SlowRelayRoot     [32]byte
}

type EmergencyDeletedRootBundle struct {
	RootBundleId uint32
}

type PausedDeposits struct {
	IsPaused bool
}

type PausedFills struct {
	IsPaused bool
}

type SetXDomainAdmin struct {
	NewAdmin solana.PublicKey
}

type EnabledDepositRoute struct {
	OriginToken        solana.PublicKey
	DestinationChainId uint64
	Enabled            bool
}

type TransferredOwnership struct {
	NewOwner solana.PublicKey
}

type BridgedToHubPool struct {
	Amount uint64
	Mint   solana.PublicKey
	Nonce  uint64
}

func (FilledRelay) Name() string                { return "FilledRelay" }
func (RequestedSlowFill) Name() string          { return "RequestedSlowFill" }
func (FundsDeposited) Name() string             { return "FundsDeposited" }
func (ExecutedRelayerRefundRoot) Name() string  { return "ExecutedRelayerRefundRoot" }
func (ClaimedRelayerRefund) Name() string       { return "ClaimedRelayerRefund" }
func (RelayedRootBundle) Name() string          { return "RelayedRootBundle" }
func (EmergencyDeletedRootBundle) Name() string { return "EmergencyDeletedRootBundle" }
func (PausedDeposits) Name() string             { return "PausedDeposits" }
func (PausedFills) Name() string                { return "PausedFills" }
func (SetXDomainAdmin) Name() string            { return "SetXDomainAdmin" }
func (EnabledDepositRoute) Name() string        { return "EnabledDepositRoute" }
func (TransferredOwnership) Name() string       { return "TransferredOwnership" }
func (BridgedToHubPool) Name() string           { return "BridgedToHubPool" }
