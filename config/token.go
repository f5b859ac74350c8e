package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type TokenConfig struct {
	Mint     solana.PublicKey
	Decimals uint8
}

type TokenStore struct {
	Tokens map[string]TokenConfig
}

func NewTokenStore(tokens map[string]TokenConfig) *TokenStore {
	return &TokenStore{Tokens: tokens}
}

func (s *TokenStore) ConfigByMint(mint solana.PublicKey) (string, TokenConfig, error) {
	for symbol, c := range s.Tokens {
		if c.Mint == mint {
			return symbol, c, nil
		}
	}

	return "", TokenConfig{}, fmt.Errorf("no symbol for mint %s", mint)
}

func (s *TokenStore) ConfigBySymbol(symbol string) (TokenConfig, error) {
	c, ok := s.Tokens[symbol]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no config for token %s", symbol)
	}

	return c, nil
}

// Mint resolves either a configured symbol or a base58 mint address.
func (s *TokenStore) Mint(symbolOrMint string) (solana.PublicKey, error) {
	if c, ok := s.Tokens[symbolOrMint]; ok {
		return c.Mint, nil
	}

	mint, err := solana.PublicKeyFromBase58(symbolOrMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unknown token %s", symbolOrMint)
	}
	return mint, nil
}
