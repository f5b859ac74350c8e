package store

import "github.com/gagliardetto/solana-go"

type FillStatus uint8

const (
	Unfilled FillStatus = iota
	RequestedSlowFill
	Filled
)

func (s FillStatus) String() string {
	switch s {
	case Unfilled:
		return "Unfilled"
	case RequestedSlowFill:
		return "RequestedSlowFill"
	case Filled:
		return "Filled"
	default:
		return "Unknown"
	}
}

// SpokeState is the program configuration singleton.
type SpokeState struct {
	Owner                  solana.PublicKey
	Seed                   uint64
	NumberOfDeposits       uint32
	ChainId                uint64
	RemoteDomain           uint32
	CrossDomainAdmin       solana.PublicKey
	RootBundleId           uint32
	DepositQuoteTimeBuffer uint32
	FillDeadlineBuffer     uint32
	PausedDeposits         bool
	PausedFills            bool
}

type FillStatusAccount struct {
	Status       FillStatus
	Relayer      solana.PublicKey
	FillDeadline uint32
}

type RootBundle struct {
	RelayerRefundRoot [32]byte
	SlowRelayRoot     [32]byte
	ClaimedBitmap     []byte
}

// ClaimAccount holds refunds accrued for a refund address that could not be paid directly.
type ClaimAccount struct {
	Amount      uint64
	Initializer solana.PublicKey
}

type TransferLiability struct {
	PendingToHubPool uint64
}

type Route struct {
	Enabled bool
}

type TokenAccount struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        solana.PublicKey
	DelegatedAmount uint64
}

type PeripheryState struct {
	Owner       solana.PublicKey
	LocalDomain uint32
	QuoteSigner solana.PublicKey
}

type UsedNonce struct {
	QuoteDeadline uint64
}

type MinimumDeposit struct {
	Amount uint64
}

// BurnMessage is a burn recorded by the local token messenger, awaiting attestation.
type BurnMessage struct {
	Nonce                uint64
	SourceDomain         uint32
	DestinationDomain    uint32
	Sender               solana.PublicKey
	BurnToken            solana.PublicKey
	MintRecipient        solana.PublicKey
	DestinationCaller    solana.PublicKey
	Amount               uint64
	MaxFee               uint64
	MinFinalityThreshold uint32
	HookData             []byte
}

type MessengerState struct {
	LocalDomain uint32
	NextNonce   uint64
}

var (
	States              = Table[SpokeState]{name: bucketState}
	FillStatuses        = Table[FillStatusAccount]{name: bucketFillStatus}
	RootBundles         = Table[RootBundle]{name: bucketRootBundles}
	ClaimAccounts       = Table[ClaimAccount]{name: bucketClaimAccounts}
	TransferLiabilities = Table[TransferLiability]{name: bucketTransferLiabilities}
	Routes              = Table[Route]{name: bucketRoutes}
	TokenAccounts       = Table[TokenAccount]{name: bucketTokenAccounts}
	PeripheryStates     = Table[PeripheryState]{name: bucketPeripheryState}
	UsedNonces          = Table[UsedNonce]{name: bucketUsedNonces}
	MinimumDeposits     = Table[MinimumDeposit]{name: bucketMinimumDeposits}
	BurnMessages        = Table[BurnMessage]{name: bucketMessages}
	MessengerStates     = Table[MessengerState]{name: bucketMessengerState}
)
