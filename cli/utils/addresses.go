package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/sprintertech/svm-spoke/spoke"
)

var (
	addressesCMD = &cobra.Command{
		Use:   "addresses",
		Short: "Derive spoke pool addresses",
		Long: "Derives the state, self authority and optionally the vault, liability and " +
			"fill status addresses of a spoke pool program",
		RunE: printAddresses,
	}
)

var (
	programID string
	seed      uint64
	mint      string
	relayHash string
)

func init() {
	addressesCMD.Flags().StringVar(&programID, "program-id", "", "spoke pool program id")
	_ = addressesCMD.MarkFlagRequired("program-id")
	addressesCMD.Flags().Uint64Var(&seed, "seed", 0, "state seed")
	addressesCMD.Flags().StringVar(&mint, "mint", "", "token mint")
	addressesCMD.Flags().StringVar(&relayHash, "relay-hash", "", "hex encoded relay hash")
}

func printAddresses(cmd *cobra.Command, args []string) error {
	id, err := solana.PublicKeyFromBase58(programID)
	if err != nil {
		return fmt.Errorf("invalid program id: %w", err)
	}
	pool := spoke.NewSpokePool(nil, id, seed)

	label := color.New(color.FgCyan).SprintFunc()
	show := func(name string, address solana.PublicKey, err error) error {
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", label(fmt.Sprintf("%-20s", name)), address)
		return nil
	}

	state, err := pool.StateAddress()
	if err := show("state", state, err); err != nil {
		return err
	}
	self, err := pool.SelfAuthorityAddress()
	if err := show("self authority", self, err); err != nil {
		return err
	}

	if mint != "" {
		m, err := solana.PublicKeyFromBase58(mint)
		if err != nil {
			return fmt.Errorf("invalid mint: %w", err)
		}
		vault, err := pool.VaultAddress(m)
		if err := show("vault", vault, err); err != nil {
			return err
		}
		liability, err := pool.TransferLiabilityAddress(m)
		if err := show("transfer liability", liability, err); err != nil {
			return err
		}
	}

	if relayHash != "" {
		b, err := hexutil.Decode(relayHash)
		if err != nil || len(b) != 32 {
			color.Red("invalid relay hash %s", relayHash)
			return fmt.Errorf("invalid relay hash")
		}
		var h [32]byte
		copy(h[:], b)
		fillStatus, err := pool.FillStatusAddress(h)
		if err := show("fill status", fillStatus, err); err != nil {
			return err
		}
	}
	return nil
}
