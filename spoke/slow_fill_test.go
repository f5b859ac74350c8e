package spoke_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/merkle"
	"github.com/sprintertech/svm-spoke/protocol/across"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/stretchr/testify/suite"
)

type SlowFillTestSuite struct {
	spokeSuite

	requester   solana.PublicKey
	recipient   solana.PublicKey
	outputToken solana.PublicKey
}

func TestRunSlowFillTestSuite(t *testing.T) {
	suite.Run(t, new(SlowFillTestSuite))
}

func (s *SlowFillTestSuite) SetupTest() {
	s.setupPool()
	s.requester = s.newAccount()
	s.recipient = solana.NewWallet().PublicKey()
	s.outputToken = solana.NewWallet().PublicKey()
}

func (s *SlowFillTestSuite) relayData(depositID uint32) across.RelayData {
	return across.RelayData{
		Depositor:           solana.NewWallet().PublicKey(),
		Recipient:           s.recipient,
		ExclusiveRelayer:    solana.NewWallet().PublicKey(),
		InputToken:          solana.NewWallet().PublicKey(),
		OutputToken:         s.outputToken,
		InputAmount:         1000,
		OutputAmount:        990,
		OriginChainId:       1,
		DepositId:           across.CounterDepositID(depositID),
		FillDeadline:        T + 3600,
		ExclusivityDeadline: T + 300,
	}
}

func (s *SlowFillTestSuite) Test_RequestSlowFill_InExclusivityWindow() {
	data := s.relayData(1)
	s.clock.now = T + 300

	err := s.pool.RequestSlowFill(s.requester, across.RelayHash(data, CHAIN_ID), data)

	s.ErrorIs(err, spoke.ErrNoSlowFillsInExclusivityWindow)
}

func (s *SlowFillTestSuite) Test_RequestSlowFill_NoExclusiveRelayer() {
	data := s.relayData(1)
	data.ExclusiveRelayer = solana.PublicKey{}

	err := s.pool.RequestSlowFill(s.requester, across.RelayHash(data, CHAIN_ID), data)

	s.Nil(err)
}

func (s *SlowFillTestSuite) Test_RequestSlowFill_Expired() {
	data := s.relayData(1)
	s.clock.now = T + 3601

	err := s.pool.RequestSlowFill(s.requester, across.RelayHash(data, CHAIN_ID), data)

	s.ErrorIs(err, spoke.ErrExpiredFillDeadline)
}

func (s *SlowFillTestSuite) Test_RequestSlowFill_OnlyOnce() {
	data := s.relayData(1)
	relayHash := across.RelayHash(data, CHAIN_ID)
	s.clock.now = T + 301

	s.Nil(s.pool.RequestSlowFill(s.requester, relayHash, data))
	err := s.pool.RequestSlowFill(s.requester, relayHash, data)

	s.ErrorIs(err, spoke.ErrInvalidSlowFillRequest)
	fillStatus, _, _ := s.pool.FillStatus(relayHash)
	s.Equal(store.RequestedSlowFill, fillStatus.Status)
	s.Equal(s.requester, fillStatus.Relayer)
	s.Equal(spoke.RequestedSlowFill{
		InputToken:          data.InputToken,
		OutputToken:         data.OutputToken,
		InputAmount:         1000,
		OutputAmount:        990,
		OriginChainId:       1,
		DepositId:           data.DepositId,
		FillDeadline:        data.FillDeadline,
		ExclusivityDeadline: data.ExclusivityDeadline,
		ExclusiveRelayer:    data.ExclusiveRelayer,
		Depositor:           data.Depositor,
		Recipient:           data.Recipient,
		MessageHash:         across.MessageHash(nil),
	}, s.lastEvent())
}

// publishSlowFills relays a root bundle whose slow relay root commits to the leaves.
func (s *SlowFillTestSuite) publishSlowFills(leaves ...across.SlowFill) *merkle.Tree {
	hashes := make([][32]byte, len(leaves))
	for i, leaf := range leaves {
		hashes[i] = leaf.Hash()
	}
	tree, err := merkle.NewTree(hashes)
	s.Require().Nil(err)
	s.Require().Nil(s.pool.RelayRootBundle(s.owner, [32]byte{}, tree.Root()))
	return tree
}

func (s *SlowFillTestSuite) executeParams(tree *merkle.Tree, index int, leaf across.SlowFill) spoke.ExecuteSlowRelayLeafParams {
	proof, err := tree.Proof(index)
	s.Require().Nil(err)
	return spoke.ExecuteSlowRelayLeafParams{
		RelayHash:    across.RelayHash(leaf.RelayData, CHAIN_ID),
		Leaf:         leaf,
		RootBundleId: 0,
		Proof:        proof,
	}
}

func (s *SlowFillTestSuite) Test_ExecuteSlowRelayLeaf() {
	first := across.SlowFill{RelayData: s.relayData(1), ChainId: CHAIN_ID, UpdatedOutputAmount: 980}
	second := across.SlowFill{RelayData: s.relayData(2), ChainId: CHAIN_ID, UpdatedOutputAmount: 500}
	tree := s.publishSlowFills(first, second)
	s.fundVault(s.outputToken, 2000)
	params := s.executeParams(tree, 0, first)
	s.clock.now = T + 400
	s.Nil(s.pool.RequestSlowFill(s.requester, params.RelayHash, first.RelayData))

	executor := s.newAccount()
	err := s.pool.ExecuteSlowRelayLeaf(executor, params)

	s.Nil(err)
	s.Equal(uint64(980), s.balance(s.recipient, s.outputToken))
	s.Equal(uint64(1020), s.vaultBalance(s.outputToken))
	fillStatus, _, _ := s.pool.FillStatus(params.RelayHash)
	s.Equal(store.Filled, fillStatus.Status)
	s.Equal(s.requester, fillStatus.Relayer)
	event := s.lastEvent().(spoke.FilledRelay)
	s.Equal(spoke.SlowFill, event.RelayExecutionInfo.FillType)
	s.Equal(uint64(980), event.RelayExecutionInfo.UpdatedOutputAmount)
	s.True(event.Relayer.IsZero())

	err = s.pool.ExecuteSlowRelayLeaf(executor, params)
	s.ErrorIs(err, spoke.ErrRelayFilled)

	err = s.pool.FillRelay(executor, spoke.FillRelayParams{RelayHash: params.RelayHash, RelayData: first.RelayData})
	s.ErrorIs(err, spoke.ErrRelayFilled)
}

func (s *SlowFillTestSuite) Test_ExecuteSlowRelayLeaf_ChainIdOverridden() {
	leaf := across.SlowFill{RelayData: s.relayData(1), ChainId: CHAIN_ID, UpdatedOutputAmount: 980}
	tree := s.publishSlowFills(leaf, across.SlowFill{RelayData: s.relayData(2), ChainId: CHAIN_ID})
	s.fundVault(s.outputToken, 2000)
	params := s.executeParams(tree, 0, leaf)
	params.Leaf.ChainId = 1

	err := s.pool.ExecuteSlowRelayLeaf(s.owner, params)

	s.Nil(err)
}

func (s *SlowFillTestSuite) Test_ExecuteSlowRelayLeaf_RecordsNoRelayer() {
	leaf := across.SlowFill{RelayData: s.relayData(1), ChainId: CHAIN_ID, UpdatedOutputAmount: 980}
	tree := s.publishSlowFills(leaf, across.SlowFill{RelayData: s.relayData(2), ChainId: CHAIN_ID})
	s.fundVault(s.outputToken, 2000)
	params := s.executeParams(tree, 0, leaf)
	executor := s.newAccount()

	err := s.pool.ExecuteSlowRelayLeaf(executor, params)

	s.Nil(err)
	fillStatus, ok, _ := s.pool.FillStatus(params.RelayHash)
	s.True(ok)
	s.Equal(store.Filled, fillStatus.Status)
	s.True(fillStatus.Relayer.IsZero())
	s.Equal(leaf.RelayData.FillDeadline, fillStatus.FillDeadline)

	fillKey, err := s.pool.FillStatusAddress(params.RelayHash)
	s.Nil(err)
	rent := s.lamports(fillKey)
	closer := s.newAccount()
	before := s.lamports(closer)
	s.clock.now = leaf.RelayData.FillDeadline
	s.ErrorIs(s.pool.CloseFillStatus(closer, params.RelayHash), spoke.ErrFillDeadlineNotPassed)

	s.clock.now = leaf.RelayData.FillDeadline + 1
	s.Nil(s.pool.CloseFillStatus(closer, params.RelayHash))
	s.Equal(before+rent, s.lamports(closer))
	_, ok, _ = s.pool.FillStatus(params.RelayHash)
	s.False(ok)
}

func (s *SlowFillTestSuite) Test_OpenFillStatuses() {
	requested := s.relayData(1)
	leaf := across.SlowFill{RelayData: s.relayData(2), ChainId: CHAIN_ID, UpdatedOutputAmount: 500}
	tree := s.publishSlowFills(leaf, across.SlowFill{RelayData: s.relayData(3), ChainId: CHAIN_ID})
	s.fundVault(s.outputToken, 2000)
	s.clock.now = T + 400
	s.Nil(s.pool.RequestSlowFill(s.requester, across.RelayHash(requested, CHAIN_ID), requested))
	s.Nil(s.pool.ExecuteSlowRelayLeaf(s.owner, s.executeParams(tree, 0, leaf)))

	counts, err := s.pool.OpenFillStatuses()

	s.Nil(err)
	s.Equal(map[store.FillStatus]int64{store.RequestedSlowFill: 1, store.Filled: 1}, counts)
}

func (s *SlowFillTestSuite) Test_ExecuteSlowRelayLeaf_InvalidProof() {
	leaf := across.SlowFill{RelayData: s.relayData(1), ChainId: CHAIN_ID, UpdatedOutputAmount: 980}
	tree := s.publishSlowFills(leaf, across.SlowFill{RelayData: s.relayData(2), ChainId: CHAIN_ID})
	s.fundVault(s.outputToken, 2000)
	params := s.executeParams(tree, 0, leaf)
	params.Leaf.UpdatedOutputAmount = 2000

	err := s.pool.ExecuteSlowRelayLeaf(s.owner, params)

	s.ErrorIs(err, spoke.ErrInvalidMerkleProof)
	s.Equal(uint64(2000), s.vaultBalance(s.outputToken))
}

func (s *SlowFillTestSuite) Test_ExecuteSlowRelayLeaf_MissingRootBundle() {
	leaf := across.SlowFill{RelayData: s.relayData(1), ChainId: CHAIN_ID}

	err := s.pool.ExecuteSlowRelayLeaf(s.owner, spoke.ExecuteSlowRelayLeafParams{
		RelayHash:    across.RelayHash(leaf.RelayData, CHAIN_ID),
		Leaf:         leaf,
		RootBundleId: 3,
	})

	s.ErrorIs(err, spoke.ErrInvalidRootBundle)
}

func (s *SlowFillTestSuite) Test_ExecuteSlowRelayLeaf_InsufficientVault() {
	leaf := across.SlowFill{RelayData: s.relayData(1), ChainId: CHAIN_ID, UpdatedOutputAmount: 980}
	tree := s.publishSlowFills(leaf)
	s.fundVault(s.outputToken, 100)

	err := s.pool.ExecuteSlowRelayLeaf(s.owner, s.executeParams(tree, 0, leaf))

	s.ErrorIs(err, spoke.ErrInsufficientSpokePoolBalanceToExecuteLeaf)
}
