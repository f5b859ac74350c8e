// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package svm

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/mitchellh/mapstructure"

	solverConfig "github.com/sprintertech/solver-config/go/config"
	"github.com/sprintertech/svm-spoke/chains/evm/signature"
	"github.com/sprintertech/svm-spoke/config"
	"github.com/sprintertech/svm-spoke/config/chain"
)

type SVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	ProgramID              solana.PublicKey
	Owner                  solana.PublicKey
	Seed                   uint64
	RemoteDomain           uint32
	CrossDomainAdmin       solana.PublicKey
	DepositQuoteTimeBuffer uint32
	FillDeadlineBuffer     uint32

	MessengerProgramID   solana.PublicKey
	TransmitterProgramID solana.PublicKey
	LocalDomain          uint32

	// zero when the sponsored periphery is not deployed
	PeripheryProgramID solana.PublicKey
	QuoteSigner        solana.PublicKey

	Tokens map[string]config.TokenConfig
}

type RawToken struct {
	Mint     string `mapstructure:"mint"`
	Decimals uint8  `mapstructure:"decimals"`
}

type RawSVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	Caip                     string `mapstructure:"caip"`

	ProgramID              string `mapstructure:"programId"`
	Owner                  string `mapstructure:"owner"`
	Seed                   uint64 `mapstructure:"seed"`
	RemoteDomain           uint32 `mapstructure:"remoteDomain"`
	CrossDomainAdmin       string `mapstructure:"crossDomainAdmin"`
	DepositQuoteTimeBuffer uint32 `mapstructure:"depositQuoteTimeBuffer" default:"3600"`
	FillDeadlineBuffer     uint32 `mapstructure:"fillDeadlineBuffer" default:"14400"`

	MessengerProgramID   string `mapstructure:"messengerProgramId" default:"CCTPV2vPZJS2u2BBsUoscuikbYjnpFmbFsvVuJdgUMQe"`
	TransmitterProgramID string `mapstructure:"transmitterProgramId" default:"CCTPV2Sm4AdWt5296sk4P66VBZ7bEhcARwFaaS9YPbeC"`
	LocalDomain          uint32 `mapstructure:"localDomain" default:"5"`

	PeripheryProgramID string `mapstructure:"peripheryProgramId"`
	QuoteSigner        string `mapstructure:"quoteSigner"`

	Tokens map[string]RawToken `mapstructure:"tokens"`
}

func (c *RawSVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if c.ProgramID == "" {
		return fmt.Errorf("required field chain.ProgramID empty for chain %v", *c.Id)
	}
	if !common.IsHexAddress(c.CrossDomainAdmin) {
		return fmt.Errorf("invalid cross domain admin %s for chain %v", c.CrossDomainAdmin, *c.Id)
	}
	if c.QuoteSigner != "" && !common.IsHexAddress(c.QuoteSigner) {
		return fmt.Errorf("invalid quote signer %s for chain %v", c.QuoteSigner, *c.Id)
	}
	return nil
}

func publicKey(field, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return key, fmt.Errorf("invalid %s %s: %w", field, value, err)
	}
	return key, nil
}

// NewSVMConfig decodes and validates an instance of an SVMConfig from
// raw chain config. Tokens of the shared solver configuration are added to the
// configured ones when the chain caip is set.
func NewSVMConfig(chainConfig map[string]interface{}, solverConfig solverConfig.SolverConfig) (*SVMConfig, error) {
	var c RawSVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	keys := make(map[string]solana.PublicKey)
	for field, value := range map[string]string{
		"programId":            c.ProgramID,
		"owner":                c.Owner,
		"messengerProgramId":   c.MessengerProgramID,
		"transmitterProgramId": c.TransmitterProgramID,
		"peripheryProgramId":   c.PeripheryProgramID,
	} {
		keys[field], err = publicKey(field, value)
		if err != nil {
			return nil, err
		}
	}

	tokens := make(map[string]config.TokenConfig)
	if sc, ok := solverConfig.Chains[c.Caip]; ok && c.Caip != "" {
		for symbol, t := range sc.Tokens {
			mint, err := publicKey("mint", t.Address)
			if err != nil {
				return nil, err
			}
			tokens[symbol] = config.TokenConfig{
				Mint: mint,
				// nolint:gosec
				Decimals: uint8(t.Decimals),
			}
		}
	}
	for symbol, t := range c.Tokens {
		mint, err := publicKey("mint", t.Mint)
		if err != nil {
			return nil, err
		}
		tokens[symbol] = config.TokenConfig{Mint: mint, Decimals: t.Decimals}
	}

	var quoteSigner solana.PublicKey
	if c.QuoteSigner != "" {
		quoteSigner = signature.EVMSigner(common.HexToAddress(c.QuoteSigner))
	}

	c.ParseFlags()
	config := &SVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,

		ProgramID:              keys["programId"],
		Owner:                  keys["owner"],
		Seed:                   c.Seed,
		RemoteDomain:           c.RemoteDomain,
		CrossDomainAdmin:       signature.EVMSigner(common.HexToAddress(c.CrossDomainAdmin)),
		DepositQuoteTimeBuffer: c.DepositQuoteTimeBuffer,
		FillDeadlineBuffer:     c.FillDeadlineBuffer,

		MessengerProgramID:   keys["messengerProgramId"],
		TransmitterProgramID: keys["transmitterProgramId"],
		LocalDomain:          c.LocalDomain,

		PeripheryProgramID: keys["peripheryProgramId"],
		QuoteSigner:        quoteSigner,

		Tokens: tokens,
	}

	return config, nil
}
