package spoke_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/sprintertech/svm-spoke/multicall"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/stretchr/testify/suite"
)

type MulticallFillTestSuite struct {
	spokeSuite

	handlerSigner  solana.PublicKey
	relayer        solana.PublicKey
	finalRecipient solana.PublicKey
	outputToken    solana.PublicKey
}

func TestRunMulticallFillTestSuite(t *testing.T) {
	suite.Run(t, new(MulticallFillTestSuite))
}

func (s *MulticallFillTestSuite) SetupTest() {
	handler, err := multicall.NewHandler()
	s.Require().Nil(err)
	s.setupPool(spoke.WithMessageHandler(multicall.PROGRAM_ID, handler))

	s.handlerSigner, err = multicall.HandlerSigner()
	s.Require().Nil(err)
	s.relayer = solana.NewWallet().PublicKey()
	s.finalRecipient = solana.NewWallet().PublicKey()
	s.outputToken = solana.NewWallet().PublicKey()
	s.mintTo(s.relayer, s.outputToken, 10_000)
	s.mintTo(s.finalRecipient, s.outputToken, 0)
}

// relayData routes the output amount through the handler signer, the message forwards amount
// of it to the final recipient.
func (s *MulticallFillTestSuite) relayData(amount uint64) across.RelayData {
	handlerATA, err := store.AssociatedTokenAddress(s.handlerSigner, s.outputToken)
	s.Require().Nil(err)
	finalATA, err := store.AssociatedTokenAddress(s.finalRecipient, s.outputToken)
	s.Require().Nil(err)

	transfer, err := token.NewTransferInstruction(amount, handlerATA, finalATA, s.handlerSigner, nil).Build().Data()
	s.Require().Nil(err)
	calls, err := multicall.EncodeMessage([]multicall.CompiledIx{
		{ProgramIdIndex: 3, AccountKeyIndexes: []uint8{0, 1, 2}, Data: transfer},
	})
	s.Require().Nil(err)
	msg := &across.AcrossPlusMessage{
		Handler:        multicall.PROGRAM_ID,
		ReadOnlyLen:    2,
		Accounts:       []solana.PublicKey{handlerATA, finalATA, s.handlerSigner, solana.TokenProgramID},
		HandlerMessage: calls,
	}
	message, err := msg.Encode()
	s.Require().Nil(err)

	return across.RelayData{
		Depositor:     solana.NewWallet().PublicKey(),
		Recipient:     s.handlerSigner,
		InputToken:    solana.NewWallet().PublicKey(),
		OutputToken:   s.outputToken,
		InputAmount:   1000,
		OutputAmount:  990,
		OriginChainId: 1,
		DepositId:     across.CounterDepositID(1),
		FillDeadline:  T + 3600,
		Message:       message,
	}
}

func (s *MulticallFillTestSuite) Test_FillRelay_ForwardsThroughHandler() {
	data := s.relayData(990)

	err := s.pool.FillRelay(s.relayer, spoke.FillRelayParams{
		RelayHash:        across.RelayHash(data, CHAIN_ID),
		RelayData:        data,
		RepaymentChainId: CHAIN_ID,
		RepaymentAddress: s.relayer,
	})

	s.Nil(err)
	s.Equal(uint64(990), s.balance(s.finalRecipient, s.outputToken))
	s.Equal(uint64(0), s.balance(s.handlerSigner, s.outputToken))
	s.Equal(uint64(10_000-990), s.balance(s.relayer, s.outputToken))
	event := s.lastEvent().(spoke.FilledRelay)
	s.Equal(across.MessageHash(data.Message), event.MessageHash)
}

func (s *MulticallFillTestSuite) Test_FillRelay_HandlerCallFailureRollsBack() {
	data := s.relayData(991)
	relayHash := across.RelayHash(data, CHAIN_ID)

	err := s.pool.FillRelay(s.relayer, spoke.FillRelayParams{RelayHash: relayHash, RelayData: data})

	s.ErrorIs(err, store.ErrInsufficientFunds)
	s.Equal(uint64(0), s.balance(s.finalRecipient, s.outputToken))
	s.Equal(uint64(10_000), s.balance(s.relayer, s.outputToken))
	_, ok, _ := s.pool.FillStatus(relayHash)
	s.False(ok)
}
