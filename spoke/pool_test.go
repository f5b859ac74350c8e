package spoke_test

import (
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/stretchr/testify/suite"
)

const (
	CHAIN_ID      uint64 = 1234
	REMOTE_DOMAIN uint32 = 0
	T             uint32 = 1_700_000_000
	QUOTE_BUFFER  uint32 = 3600
	DEADLINE_SPAN uint32 = 4 * 3600
	LAMPORTS      uint64 = 10_000_000_000
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

// spokeSuite runs every test against a freshly initialized pool backed by a temporary store.
type spokeSuite struct {
	suite.Suite

	db          *store.DB
	pool        *spoke.SpokePool
	clock       *fakeClock
	sink        *recordingSink
	programID   solana.PublicKey
	owner       solana.PublicKey
	hubPool     solana.PublicKey
	transmitter solana.PublicKey
}

func (s *spokeSuite) setupPool(opts ...spoke.Option) {
	db, err := store.Open(filepath.Join(s.T().TempDir(), "spoke.db"))
	s.Require().Nil(err)
	s.db = db

	s.clock = &fakeClock{now: T}
	s.sink = &recordingSink{}
	s.programID = solana.NewWallet().PublicKey()
	s.owner = solana.NewWallet().PublicKey()
	s.transmitter = solana.NewWallet().PublicKey()
	var hubPool solana.PublicKey
	copy(hubPool[12:], []byte("hub-pool-address-20b"))
	s.hubPool = hubPool

	opts = append([]spoke.Option{
		spoke.WithClock(s.clock),
		spoke.WithEventSink(s.sink),
		spoke.WithMessageTransmitter(s.transmitter),
	}, opts...)
	s.pool = spoke.NewSpokePool(db, s.programID, 0, opts...)

	s.airdrop(s.owner)
	err = s.pool.Initialize(s.owner, spoke.InitializeParams{
		ChainId:                CHAIN_ID,
		RemoteDomain:           REMOTE_DOMAIN,
		CrossDomainAdmin:       s.hubPool,
		DepositQuoteTimeBuffer: QUOTE_BUFFER,
		FillDeadlineBuffer:     DEADLINE_SPAN,
	})
	s.Require().Nil(err)
	s.sink.events = nil
}

func (s *spokeSuite) TearDownTest() {
	s.Nil(s.db.Close())
}

func (s *spokeSuite) update(fn func(tx *store.Tx) error) {
	s.Require().Nil(s.db.Update(fn))
}

func (s *spokeSuite) airdrop(address solana.PublicKey) {
	s.update(func(tx *store.Tx) error {
		return tx.Airdrop(address, LAMPORTS)
	})
}

func (s *spokeSuite) newAccount() solana.PublicKey {
	account := solana.NewWallet().PublicKey()
	s.airdrop(account)
	return account
}

// mintTo opens the canonical token account of the owner and credits it.
func (s *spokeSuite) mintTo(owner, mint solana.PublicKey, amount uint64) solana.PublicKey {
	var account solana.PublicKey
	s.update(func(tx *store.Tx) error {
		var err error
		if err = tx.Airdrop(owner, LAMPORTS); err != nil {
			return err
		}
		account, err = tx.CreateAssociatedTokenAccount(owner, owner, mint)
		if err != nil {
			return err
		}
		return tx.MintTo(account, mint, amount)
	})
	return account
}

func (s *spokeSuite) fundVault(mint solana.PublicKey, amount uint64) {
	stateKey, err := s.pool.StateAddress()
	s.Require().Nil(err)

	s.update(func(tx *store.Tx) error {
		vault, err := tx.CreateAssociatedTokenAccount(s.owner, stateKey, mint)
		if err != nil {
			return err
		}
		return tx.MintTo(vault, mint, amount)
	})
}

func (s *spokeSuite) balance(owner, mint solana.PublicKey) uint64 {
	address, err := store.AssociatedTokenAddress(owner, mint)
	s.Require().Nil(err)

	var balance uint64
	_ = s.db.View(func(tx *store.Tx) error {
		balance, err = tx.Balance(address)
		return err
	})
	return balance
}

func (s *spokeSuite) vaultBalance(mint solana.PublicKey) uint64 {
	balance, err := s.pool.VaultBalance(mint)
	s.Require().Nil(err)
	return balance
}

func (s *spokeSuite) lamports(address solana.PublicKey) uint64 {
	var lamports uint64
	_ = s.db.View(func(tx *store.Tx) error {
		var err error
		lamports, err = tx.Lamports(address)
		return err
	})
	return lamports
}

func (s *spokeSuite) lastEvent() spoke.Event {
	s.Require().NotEmpty(s.sink.events)
	return s.sink.events[len(s.sink.events)-1]
}
