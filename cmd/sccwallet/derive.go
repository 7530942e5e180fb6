package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasony/sccwallet/internal/hdkey"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive an address for the session's user",
	Long: `Derives the address at m/44'/coin'/account'/change/index for the
requested chain. Default derivation path follows BIP-44:
m/44'/60'/0'/0/0 for Ethereum, m/44'/0'/0'/0/0 for Bitcoin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		chainName, _ := cmd.Flags().GetString("chain")
		account, _ := cmd.Flags().GetUint32("account")
		change, _ := cmd.Flags().GetUint32("change")
		index, _ := cmd.Flags().GetUint32("index")

		chain, err := parseChain(chainName)
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		derived, err := svc.DeriveAddress(session, password, chain, account, change, index)
		if err != nil {
			return fmt.Errorf("derive address: %w", err)
		}

		fmt.Printf("Path:    %s\n", derived.Path)
		fmt.Printf("Address: %s\n", derived.Address)
		return nil
	},
}

func parseChain(name string) (hdkey.Chain, error) {
	switch name {
	case "bitcoin", "btc":
		return hdkey.ChainBitcoin, nil
	case "bitcoin-testnet", "btc-testnet":
		return hdkey.ChainBitcoinTestnet, nil
	case "ethereum", "eth":
		return hdkey.ChainEthereum, nil
	case "litecoin", "ltc":
		return hdkey.ChainLitecoin, nil
	default:
		return 0, fmt.Errorf("unknown chain %q (want bitcoin, bitcoin-testnet, ethereum, or litecoin)", name)
	}
}

func init() {
	deriveCmd.Flags().String("session", "", "session ID (required)")
	deriveCmd.Flags().String("chain", "ethereum", "chain: bitcoin, bitcoin-testnet, ethereum, litecoin")
	deriveCmd.Flags().Uint32("account", 0, "BIP44 account index")
	deriveCmd.Flags().Uint32("change", 0, "BIP44 change (0=external, 1=internal)")
	deriveCmd.Flags().Uint32("index", 0, "BIP44 address index")
	deriveCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(deriveCmd)
}
