// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package svm_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	solverConfig "github.com/sprintertech/solver-config/go/config"
	"github.com/sprintertech/svm-spoke/chains/evm/signature"
	"github.com/sprintertech/svm-spoke/chains/svm"
	"github.com/stretchr/testify/suite"
)

const (
	PROGRAM_ID = "DLv3NggMiSaef97YCkew5xKUHDh13tVGZ7tydt3ZeAru"
	USDC_MINT  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	HUB_POOL   = "0xc186fA914353c44b2E33eBE05f21846F1048bEda"
)

type NewSVMConfigTestSuite struct {
	suite.Suite
}

func TestRunNewSVMConfigTestSuite(t *testing.T) {
	suite.Run(t, new(NewSVMConfigTestSuite))
}

func (s *NewSVMConfigTestSuite) rawConfig() map[string]interface{} {
	return map[string]interface{}{
		"id":               34268394551451,
		"name":             "solana",
		"type":             "svm",
		"programId":        PROGRAM_ID,
		"crossDomainAdmin": HUB_POOL,
		"tokens": map[string]interface{}{
			"usdc": map[string]interface{}{
				"mint":     USDC_MINT,
				"decimals": 6,
			},
		},
	}
}

func (s *NewSVMConfigTestSuite) Test_FailedDecode() {
	_, err := svm.NewSVMConfig(map[string]interface{}{
		"seed": "invalid",
	}, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_FailedGeneralConfigValidation() {
	_, err := svm.NewSVMConfig(map[string]interface{}{}, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_MissingProgramID() {
	raw := s.rawConfig()
	delete(raw, "programId")

	_, err := svm.NewSVMConfig(raw, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_InvalidCrossDomainAdmin() {
	raw := s.rawConfig()
	raw["crossDomainAdmin"] = "admin"

	_, err := svm.NewSVMConfig(raw, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_InvalidQuoteSigner() {
	raw := s.rawConfig()
	raw["quoteSigner"] = "signer"

	_, err := svm.NewSVMConfig(raw, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_InvalidOwner() {
	raw := s.rawConfig()
	raw["owner"] = "0xowner"

	_, err := svm.NewSVMConfig(raw, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_InvalidMint() {
	raw := s.rawConfig()
	raw["tokens"] = map[string]interface{}{
		"usdc": map[string]interface{}{"mint": "0xinvalid"},
	}

	_, err := svm.NewSVMConfig(raw, solverConfig.SolverConfig{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_ValidConfig() {
	config, err := svm.NewSVMConfig(s.rawConfig(), solverConfig.SolverConfig{})

	s.Nil(err)
	s.Equal(solana.MustPublicKeyFromBase58(PROGRAM_ID), config.ProgramID)
	s.Equal(signature.EVMSigner(common.HexToAddress(HUB_POOL)), config.CrossDomainAdmin)
	s.Equal(uint32(3600), config.DepositQuoteTimeBuffer)
	s.Equal(uint32(14400), config.FillDeadlineBuffer)
	s.Equal(uint32(5), config.LocalDomain)
	s.Equal("./spoke.db", config.GeneralChainConfig.DBPath)
	s.Equal(solana.MustPublicKeyFromBase58("CCTPV2vPZJS2u2BBsUoscuikbYjnpFmbFsvVuJdgUMQe"), config.MessengerProgramID)
	s.True(config.Owner.IsZero())
	s.True(config.PeripheryProgramID.IsZero())
	s.True(config.QuoteSigner.IsZero())
	s.Equal(solana.MustPublicKeyFromBase58(USDC_MINT), config.Tokens["usdc"].Mint)
	s.Equal(uint8(6), config.Tokens["usdc"].Decimals)
}

func (s *NewSVMConfigTestSuite) Test_SolverConfigTokens() {
	raw := s.rawConfig()
	raw["caip"] = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
	wsol := "So11111111111111111111111111111111111111112"

	tokens := make(map[string]solverConfig.Token)
	tokens["wsol"] = solverConfig.Token{
		Address:  wsol,
		Decimals: 9,
	}
	solverChains := make(map[string]solverConfig.Chain)
	solverChains["solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"] = solverConfig.Chain{
		Tokens: tokens,
	}

	config, err := svm.NewSVMConfig(raw, solverConfig.SolverConfig{Chains: solverChains})

	s.Nil(err)
	s.Len(config.Tokens, 2)
	s.Equal(solana.MustPublicKeyFromBase58(wsol), config.Tokens["wsol"].Mint)
	s.Equal(uint8(9), config.Tokens["wsol"].Decimals)
}
