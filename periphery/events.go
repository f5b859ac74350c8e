package periphery

import "github.com/gagliardetto/solana-go"

type QuoteSignerSet struct {
	OldQuoteSigner solana.PublicKey
	NewQuoteSigner solana.PublicKey
}

type MinimumDepositAmountSet struct {
	BurnToken solana.PublicKey
	Amount    uint64
}

type WithdrawnRentFund struct {
	Amount    uint64
	Recipient solana.PublicKey
}

type SponsoredDepositForBurn struct {
	QuoteNonce         [32]byte
	OriginSender       solana.PublicKey
	FinalRecipient     solana.PublicKey
	QuoteDeadline      uint64
	MaxBpsToSponsor    uint64
	MaxUserSlippageBps uint64
	FinalToken         solana.PublicKey
	MessageNonce       uint64
	Signature          []byte
}

type ReclaimedUsedNonceAccount struct {
	Nonce     [32]byte
	UsedNonce solana.PublicKey
}

func (QuoteSignerSet) Name() string            { return "QuoteSignerSet" }
func (MinimumDepositAmountSet) Name() string   { return "MinimumDepositAmountSet" }
func (WithdrawnRentFund) Name() string         { return "WithdrawnRentFund" }
func (SponsoredDepositForBurn) Name() string   { return "SponsoredDepositForBurn" }
func (ReclaimedUsedNonceAccount) Name() string { return "ReclaimedUsedNonceAccount" }
