package periphery

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
)

type DepositForBurnParams struct {
	Mint      solana.PublicKey
	Quote     []byte
	Signature []byte
}

// DepositForBurn verifies a sponsored quote, marks its nonce used and burns the quoted amount
// from the signer's canonical token account. It returns the nonce of the outgoing message.
func (p *Periphery) DepositForBurn(signer solana.PublicKey, params DepositForBurnParams) (uint64, error) {
	quote, err := sponsored.Decode(params.Quote)
	if err != nil {
		return 0, err
	}

	var messageNonce uint64
	err = p.update(func(tx *store.Tx, now uint32, emit func(spoke.Event)) error {
		_, state, err := p.loadState(tx)
		if err != nil {
			return err
		}

		if err := p.verifier.VerifyQuote(state.QuoteSigner, quote, params.Signature); err != nil {
			return err
		}
		if quote.Deadline < uint64(now) {
			return fmt.Errorf("%w: deadline %d, now %d", ErrInvalidDeadline, quote.Deadline, now)
		}
		if quote.SourceDomain != state.LocalDomain {
			return fmt.Errorf("%w: %d", ErrInvalidSourceDomain, quote.SourceDomain)
		}
		if quote.BurnToken != params.Mint {
			return fmt.Errorf("%w: quote burns %s", ErrInvalidMint, quote.BurnToken)
		}
		if quote.Amount == 0 {
			return ErrAmountNotPositive
		}
		if err := p.checkMinimum(tx, quote); err != nil {
			return err
		}

		payer, err := p.rentPayer(tx, signer)
		if err != nil {
			return err
		}
		if err := p.useNonce(tx, payer, quote); err != nil {
			return err
		}

		hookData, err := quote.HookData()
		if err != nil {
			return err
		}
		depositorAccount, err := store.AssociatedTokenAddress(signer, params.Mint)
		if err != nil {
			return err
		}
		messageNonce, err = p.messenger.DepositForBurn(tx, cctp.BurnRequest{
			Owner:                authority.Signer(signer),
			Payer:                payer,
			BurnTokenAccount:     depositorAccount,
			BurnToken:            quote.BurnToken,
			Amount:               quote.Amount,
			DestinationDomain:    quote.DestinationDomain,
			MintRecipient:        quote.MintRecipient,
			DestinationCaller:    quote.DestinationCaller,
			MaxFee:               quote.MaxFee,
			MinFinalityThreshold: quote.MinFinalityThreshold,
			HookData:             hookData,
		})
		if err != nil {
			return err
		}

		emit(SponsoredDepositForBurn{
			QuoteNonce:         quote.Nonce,
			OriginSender:       signer,
			FinalRecipient:     quote.FinalRecipient,
			QuoteDeadline:      quote.Deadline,
			MaxBpsToSponsor:    quote.MaxBpsToSponsor,
			MaxUserSlippageBps: quote.MaxUserSlippageBps,
			FinalToken:         quote.FinalToken,
			MessageNonce:       messageNonce,
			Signature:          append([]byte{}, params.Signature...),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	p.metrics.TrackSponsoredDeposit()
	p.log.Info().
		Str("depositor", signer.String()).
		Uint64("amount", quote.Amount).
		Uint32("destinationDomain", quote.DestinationDomain).
		Uint64("messageNonce", messageNonce).
		Msgf("Sponsored deposit %x burned", quote.Nonce)
	return messageNonce, nil
}

func (p *Periphery) checkMinimum(tx *store.Tx, quote *sponsored.Quote) error {
	key, err := p.MinimumDepositAddress(quote.BurnToken)
	if err != nil {
		return err
	}
	minimum, ok, err := store.MinimumDeposits.Get(tx, key)
	if err != nil {
		return err
	}
	if !ok || quote.Amount < minimum.Amount {
		return fmt.Errorf("%w: %d of %s", ErrAmountBelowMinimum, quote.Amount, quote.BurnToken)
	}
	return nil
}

// rentPayer picks the rent fund while it still covers a nonce record, the signer otherwise.
func (p *Periphery) rentPayer(tx *store.Tx, signer solana.PublicKey) (solana.PublicKey, error) {
	rentFund, err := p.RentFundAddress()
	if err != nil {
		return rentFund, err
	}
	size, err := store.UsedNonces.Size(&store.UsedNonce{})
	if err != nil {
		return rentFund, err
	}
	balance, err := tx.Lamports(rentFund)
	if err != nil {
		return rentFund, err
	}
	if balance < store.MinimumBalance(size) {
		return signer, nil
	}
	return rentFund, nil
}

func (p *Periphery) useNonce(tx *store.Tx, payer solana.PublicKey, quote *sponsored.Quote) error {
	key, err := p.UsedNonceAddress(quote.Nonce)
	if err != nil {
		return err
	}
	err = store.UsedNonces.Create(tx, payer, key, &store.UsedNonce{QuoteDeadline: quote.Deadline})
	if errors.Is(err, store.ErrAccountExists) {
		return fmt.Errorf("%w: %x", ErrUsedNonce, quote.Nonce)
	}
	return err
}
