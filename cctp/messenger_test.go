package cctp_test

import (
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/stretchr/testify/suite"
)

type LedgerMessengerTestSuite struct {
	suite.Suite

	db        *store.DB
	messenger *cctp.LedgerMessenger
	owner     solana.PublicKey
	mint      solana.PublicKey
	account   solana.PublicKey
}

func TestRunLedgerMessengerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerMessengerTestSuite))
}

func (s *LedgerMessengerTestSuite) SetupTest() {
	db, err := store.Open(filepath.Join(s.T().TempDir(), "cctp.db"))
	s.Nil(err)
	s.db = db
	s.messenger = cctp.NewLedgerMessenger(solana.NewWallet().PublicKey(), 5)
	s.owner = solana.NewWallet().PublicKey()
	s.mint = solana.NewWallet().PublicKey()

	err = s.db.Update(func(tx *store.Tx) error {
		if err := tx.Airdrop(s.owner, 1_000_000_000); err != nil {
			return err
		}
		account, err := tx.CreateAssociatedTokenAccount(s.owner, s.owner, s.mint)
		if err != nil {
			return err
		}
		s.account = account
		return tx.MintTo(account, s.mint, 1000)
	})
	s.Nil(err)
}

func (s *LedgerMessengerTestSuite) TearDownTest() {
	s.Nil(s.db.Close())
}

func (s *LedgerMessengerTestSuite) request(amount uint64) cctp.BurnRequest {
	return cctp.BurnRequest{
		Owner:             authority.Signer(s.owner),
		Payer:             s.owner,
		BurnTokenAccount:  s.account,
		BurnToken:         s.mint,
		Amount:            amount,
		DestinationDomain: 0,
		MintRecipient:     solana.NewWallet().PublicKey(),
		HookData:          []byte("hook"),
	}
}

func (s *LedgerMessengerTestSuite) Test_DepositForBurn_RecordsMessages() {
	var first, second uint64
	err := s.db.Update(func(tx *store.Tx) error {
		var err error
		first, err = s.messenger.DepositForBurn(tx, s.request(100))
		if err != nil {
			return err
		}
		second, err = s.messenger.DepositForBurn(tx, s.request(200))
		return err
	})
	s.Nil(err)
	s.Equal(uint64(0), first)
	s.Equal(uint64(1), second)

	_ = s.db.View(func(tx *store.Tx) error {
		balance, _ := tx.Balance(s.account)
		s.Equal(uint64(700), balance)

		msg, err := s.messenger.Message(tx, second)
		s.Nil(err)
		s.Equal(uint64(200), msg.Amount)
		s.Equal(uint32(5), msg.SourceDomain)
		s.Equal([]byte("hook"), msg.HookData)
		s.Equal(s.owner, msg.Sender)
		return nil
	})
}

func (s *LedgerMessengerTestSuite) Test_DepositForBurn_ZeroAmount() {
	err := s.db.Update(func(tx *store.Tx) error {
		_, err := s.messenger.DepositForBurn(tx, s.request(0))
		return err
	})

	s.ErrorIs(err, cctp.ErrZeroAmount)
}

func (s *LedgerMessengerTestSuite) Test_DepositForBurn_NotOwner() {
	req := s.request(10)
	req.Owner = authority.Signer(solana.NewWallet().PublicKey())

	err := s.db.Update(func(tx *store.Tx) error {
		_, err := s.messenger.DepositForBurn(tx, req)
		return err
	})

	s.ErrorIs(err, store.ErrOwnerMismatch)
}

func (s *LedgerMessengerTestSuite) Test_TransmitterAuthority_Deterministic() {
	transmitter := solana.NewWallet().PublicKey()
	receiver := solana.NewWallet().PublicKey()

	first, err := cctp.TransmitterAuthority(transmitter, receiver)
	s.Nil(err)
	second, _ := cctp.TransmitterAuthority(transmitter, receiver)

	s.Equal(first, second)
}

func (s *LedgerMessengerTestSuite) Test_TransmitterAuthority_DerivedFromReceiver() {
	transmitter := solana.NewWallet().PublicKey()
	receiver := solana.NewWallet().PublicKey()

	address, err := cctp.TransmitterAuthority(transmitter, receiver)
	s.Nil(err)

	expected, err := authority.NewDeriver(transmitter).Address("message_transmitter_authority", receiver.Bytes())
	s.Nil(err)
	s.Equal(expected, address)
	other, _ := cctp.TransmitterAuthority(transmitter, solana.NewWallet().PublicKey())
	s.NotEqual(address, other)
}

func (s *LedgerMessengerTestSuite) Test_MessageView_BurnMessage() {
	var nonce uint64
	err := s.db.Update(func(tx *store.Tx) error {
		var err error
		nonce, err = s.messenger.DepositForBurn(tx, s.request(300))
		return err
	})
	s.Nil(err)
	view := cctp.NewMessageView(s.db, s.messenger)

	msg, err := view.BurnMessage(nonce)
	s.Nil(err)
	s.Equal(nonce, msg.Nonce)
	s.Equal(uint64(300), msg.Amount)

	_, err = view.BurnMessage(nonce + 1)
	s.ErrorIs(err, store.ErrNotFound)
}
