package periphery_test

import (
	"crypto/ecdsa"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/chains/evm/signature"
	"github.com/sprintertech/svm-spoke/periphery"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/stretchr/testify/suite"
)

const (
	LOCAL_DOMAIN       uint32 = 5
	DESTINATION_DOMAIN uint32 = 3
	NOW                uint32 = 1_700_000_000
	LAMPORTS           uint64 = 10_000_000_000
	MINIMUM            uint64 = 100
)

type fakeClock struct {
	now uint32
}

func (c *fakeClock) Now() uint32 {
	return c.now
}

type recordingSink struct {
	events []spoke.Event
}

func (r *recordingSink) Emit(event spoke.Event) {
	r.events = append(r.events, event)
}

type PeripheryTestSuite struct {
	suite.Suite

	db        *store.DB
	periphery *periphery.Periphery
	messenger *cctp.LedgerMessenger
	clock     *fakeClock
	sink      *recordingSink

	owner     solana.PublicKey
	depositor solana.PublicKey
	mint      solana.PublicKey
	key       *ecdsa.PrivateKey
	quote     *sponsored.Quote
}

func TestRunPeripheryTestSuite(t *testing.T) {
	suite.Run(t, new(PeripheryTestSuite))
}

func (s *PeripheryTestSuite) SetupTest() {
	db, err := store.Open(filepath.Join(s.T().TempDir(), "periphery.db"))
	s.Require().Nil(err)
	s.db = db

	s.clock = &fakeClock{now: NOW}
	s.sink = &recordingSink{}
	s.messenger = cctp.NewLedgerMessenger(solana.NewWallet().PublicKey(), LOCAL_DOMAIN)
	s.periphery = periphery.NewPeriphery(
		db,
		solana.NewWallet().PublicKey(),
		0,
		s.messenger,
		periphery.WithClock(s.clock),
		periphery.WithEventSink(s.sink),
	)

	key, err := crypto.GenerateKey()
	s.Require().Nil(err)
	s.key = key

	s.owner = solana.NewWallet().PublicKey()
	s.depositor = solana.NewWallet().PublicKey()
	s.mint = solana.NewWallet().PublicKey()
	s.Require().Nil(db.Update(func(tx *store.Tx) error {
		if err := tx.Airdrop(s.owner, LAMPORTS); err != nil {
			return err
		}
		if err := tx.Airdrop(s.depositor, LAMPORTS); err != nil {
			return err
		}
		account, err := tx.CreateAssociatedTokenAccount(s.depositor, s.depositor, s.mint)
		if err != nil {
			return err
		}
		return tx.MintTo(account, s.mint, 1000)
	}))

	err = s.periphery.Initialize(s.owner, periphery.InitializeParams{
		LocalDomain: LOCAL_DOMAIN,
		QuoteSigner: signature.EVMSigner(crypto.PubkeyToAddress(key.PublicKey)),
	})
	s.Require().Nil(err)
	s.Require().Nil(s.periphery.SetMinimumDepositAmount(s.owner, s.mint, MINIMUM))
	s.sink.events = nil

	s.quote = &sponsored.Quote{
		SourceDomain:      LOCAL_DOMAIN,
		DestinationDomain: DESTINATION_DOMAIN,
		MintRecipient:     solana.NewWallet().PublicKey(),
		Amount:            400,
		BurnToken:         s.mint,
		MaxFee:            10,
		Nonce:             [32]byte{7},
		Deadline:          uint64(NOW) + 600,
		FinalRecipient:    solana.NewWallet().PublicKey(),
		FinalToken:        solana.NewWallet().PublicKey(),
		ActionData:        []byte{1, 2},
	}
}

func (s *PeripheryTestSuite) TearDownTest() {
	s.Nil(s.db.Close())
}

func (s *PeripheryTestSuite) params(quote *sponsored.Quote) periphery.DepositForBurnParams {
	encoded, err := quote.Encode()
	s.Require().Nil(err)
	digest, err := quote.TypedHash()
	s.Require().Nil(err)
	sig, err := crypto.Sign(digest[:], s.key)
	s.Require().Nil(err)
	sig[64] += 27

	return periphery.DepositForBurnParams{Mint: s.mint, Quote: encoded, Signature: sig}
}

func (s *PeripheryTestSuite) depositorBalance() uint64 {
	account, err := store.AssociatedTokenAddress(s.depositor, s.mint)
	s.Require().Nil(err)

	var balance uint64
	s.Nil(s.db.View(func(tx *store.Tx) error {
		balance, err = tx.Balance(account)
		return err
	}))
	return balance
}

func (s *PeripheryTestSuite) lamports(address solana.PublicKey) uint64 {
	var lamports uint64
	s.Nil(s.db.View(func(tx *store.Tx) error {
		var err error
		lamports, err = tx.Lamports(address)
		return err
	}))
	return lamports
}

func (s *PeripheryTestSuite) fundRentFund() solana.PublicKey {
	rentFund, err := s.periphery.RentFundAddress()
	s.Require().Nil(err)
	s.Require().Nil(s.db.Update(func(tx *store.Tx) error {
		return tx.Airdrop(rentFund, LAMPORTS)
	}))
	return rentFund
}

func (s *PeripheryTestSuite) Test_Initialize_Twice() {
	err := s.periphery.Initialize(s.owner, periphery.InitializeParams{LocalDomain: LOCAL_DOMAIN})

	s.ErrorIs(err, periphery.ErrAlreadyInitialized)
}

func (s *PeripheryTestSuite) Test_SetQuoteSigner_NotOwner() {
	err := s.periphery.SetQuoteSigner(s.depositor, solana.NewWallet().PublicKey())

	s.ErrorIs(err, periphery.ErrNotOwner)
}

func (s *PeripheryTestSuite) Test_SetQuoteSigner_Unchanged() {
	state, err := s.periphery.State()
	s.Nil(err)

	err = s.periphery.SetQuoteSigner(s.owner, state.QuoteSigner)

	s.ErrorIs(err, periphery.ErrSignerUnchanged)
}

func (s *PeripheryTestSuite) Test_SetQuoteSigner_Emits() {
	state, _ := s.periphery.State()
	next := solana.NewWallet().PublicKey()

	err := s.periphery.SetQuoteSigner(s.owner, next)

	s.Nil(err)
	s.Equal([]spoke.Event{periphery.QuoteSignerSet{OldQuoteSigner: state.QuoteSigner, NewQuoteSigner: next}}, s.sink.events)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_BurnsAndRecordsMessage() {
	rentFund := s.fundRentFund()

	nonce, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.Nil(err)
	s.Equal(uint64(600), s.depositorBalance())
	s.Less(s.lamports(rentFund), LAMPORTS)
	s.Equal(LAMPORTS-store.MinimumBalance(165), s.lamports(s.depositor))

	var message *store.BurnMessage
	s.Nil(s.db.View(func(tx *store.Tx) error {
		message, err = s.messenger.Message(tx, nonce)
		return err
	}))
	hookData, _ := s.quote.HookData()
	s.Equal(s.depositor, message.Sender)
	s.Equal(DESTINATION_DOMAIN, message.DestinationDomain)
	s.Equal(s.quote.MintRecipient, message.MintRecipient)
	s.Equal(uint64(400), message.Amount)
	s.Equal(hookData, message.HookData)

	s.Len(s.sink.events, 1)
	event := s.sink.events[0].(periphery.SponsoredDepositForBurn)
	s.Equal(s.quote.Nonce, event.QuoteNonce)
	s.Equal(s.depositor, event.OriginSender)
	s.Equal(nonce, event.MessageNonce)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_SignerPaysWithoutRentFund() {
	before := s.lamports(s.depositor)

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.Nil(err)
	s.Less(s.lamports(s.depositor), before)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_UsedNonce() {
	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))
	s.Nil(err)

	_, err = s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, periphery.ErrUsedNonce)
	s.Equal(uint64(600), s.depositorBalance())
}

func (s *PeripheryTestSuite) Test_DepositForBurn_WrongSigner() {
	params := s.params(s.quote)
	other, _ := crypto.GenerateKey()
	digest, _ := s.quote.TypedHash()
	sig, _ := crypto.Sign(digest[:], other)
	sig[64] += 27
	params.Signature = sig

	_, err := s.periphery.DepositForBurn(s.depositor, params)

	s.ErrorIs(err, signature.ErrInvalidSignature)
	s.Equal(uint64(1000), s.depositorBalance())
}

func (s *PeripheryTestSuite) Test_DepositForBurn_SignerNotSet() {
	s.Nil(s.periphery.SetQuoteSigner(s.owner, solana.PublicKey{}))

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, signature.ErrQuoteSignerNotSet)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_ExpiredDeadline() {
	s.quote.Deadline = uint64(NOW) - 1

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, periphery.ErrInvalidDeadline)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_DeadlineNow() {
	s.quote.Deadline = uint64(NOW)

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.Nil(err)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_WrongSourceDomain() {
	s.quote.SourceDomain = LOCAL_DOMAIN + 1

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, periphery.ErrInvalidSourceDomain)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_WrongMint() {
	params := s.params(s.quote)
	params.Mint = solana.NewWallet().PublicKey()

	_, err := s.periphery.DepositForBurn(s.depositor, params)

	s.ErrorIs(err, periphery.ErrInvalidMint)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_ZeroAmount() {
	s.quote.Amount = 0

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, periphery.ErrAmountNotPositive)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_BelowMinimum() {
	s.quote.Amount = MINIMUM - 1

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, periphery.ErrAmountBelowMinimum)
}

func (s *PeripheryTestSuite) Test_DepositForBurn_InsufficientFunds() {
	s.quote.Amount = 1001

	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))

	s.ErrorIs(err, store.ErrInsufficientFunds)
	_, err = s.periphery.UsedNonceCloseInfo(s.quote.Nonce)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PeripheryTestSuite) Test_ReclaimUsedNonce_BeforeDeadline() {
	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))
	s.Nil(err)
	s.clock.now = uint32(s.quote.Deadline)

	err = s.periphery.ReclaimUsedNonce(s.quote.Nonce)

	s.ErrorIs(err, periphery.ErrQuoteDeadlineNotPassed)
	info, err := s.periphery.UsedNonceCloseInfo(s.quote.Nonce)
	s.Nil(err)
	s.False(info.CanCloseNow)
	s.Equal(s.quote.Deadline, info.CanCloseAfter)
}

func (s *PeripheryTestSuite) Test_ReclaimUsedNonce_RefundsRentFund() {
	rentFund := s.fundRentFund()
	_, err := s.periphery.DepositForBurn(s.depositor, s.params(s.quote))
	s.Nil(err)
	before := s.lamports(rentFund)
	s.clock.now = uint32(s.quote.Deadline) + 1

	err = s.periphery.ReclaimUsedNonce(s.quote.Nonce)

	s.Nil(err)
	size, _ := store.UsedNonces.Size(&store.UsedNonce{})
	s.Equal(before+store.MinimumBalance(size), s.lamports(rentFund))
	_, err = s.periphery.UsedNonceCloseInfo(s.quote.Nonce)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PeripheryTestSuite) Test_WithdrawRentFund() {
	s.fundRentFund()
	recipient := solana.NewWallet().PublicKey()

	s.ErrorIs(s.periphery.WithdrawRentFund(s.depositor, recipient, 10), periphery.ErrNotOwner)
	s.Nil(s.periphery.WithdrawRentFund(s.owner, recipient, 10))
	s.Equal(uint64(10), s.lamports(recipient))
}
