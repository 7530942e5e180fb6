package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/jasony/sccwallet/internal/config"
	"github.com/jasony/sccwallet/internal/platform/broadcast"
	"github.com/jasony/sccwallet/internal/scc"
)

// broadcastIfRequested submits raw to the configured transport and
// prints the resulting txid when --broadcast is set; otherwise it
// prints raw's hex, matching spec.md §6's "the SCC hands up signed
// bytes and lets the caller broadcast" boundary.
func broadcastIfRequested(cmd *cobra.Command, chain broadcast.Chain, raw []byte) error {
	doBroadcast, _ := cmd.Flags().GetBool("broadcast")
	if !doBroadcast {
		fmt.Println(hex.EncodeToString(raw))
		return nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	client, err := newBroadcastClient(cfg)
	if err != nil {
		return err
	}
	txid, err := client.BroadcastTx(context.Background(), chain, raw)
	if err != nil {
		return fmt.Errorf("broadcast tx: %w", err)
	}
	fmt.Println(txid)
	return nil
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a Bitcoin or Ethereum transaction",
}

// bitcoinTxJSON mirrors scc.BitcoinTxSpec in a CLI-friendly shape: the
// caller supplies a --spec file holding "inputs"/"outputs" JSON arrays
// rather than repeated flags, since a transaction may carry an
// arbitrary number of inputs and outputs.
type bitcoinTxJSON struct {
	Inputs []struct {
		TxID       string `json:"txid"`
		Vout       uint32 `json:"vout"`
		ValueSats  int64  `json:"value_sats"`
		AccountIdx uint32 `json:"account"`
		Change     uint32 `json:"change"`
		AddrIdx    uint32 `json:"index"`
	} `json:"inputs"`
	Outputs []struct {
		Address   string `json:"address"`
		ValueSats int64  `json:"value_sats"`
	} `json:"outputs"`
}

var signBitcoinCmd = &cobra.Command{
	Use:   "bitcoin",
	Short: "Sign a Bitcoin transaction from a JSON input/output spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		specPath, _ := cmd.Flags().GetString("spec")
		testnet, _ := cmd.Flags().GetBool("testnet")

		var spec bitcoinTxJSON
		if err := readJSONFile(specPath, &spec); err != nil {
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

		btcSpec := scc.BitcoinTxSpec{Testnet: testnet}
		for _, in := range spec.Inputs {
			btcSpec.Inputs = append(btcSpec.Inputs, scc.BitcoinUTXOInput{
				TxID: in.TxID, Vout: in.Vout, ValueSats: in.ValueSats,
				AccountIdx: in.AccountIdx, Change: in.Change, AddrIdx: in.AddrIdx,
			})
		}
		for _, out := range spec.Outputs {
			btcSpec.Outputs = append(btcSpec.Outputs, scc.BitcoinTxOutput{Address: out.Address, ValueSats: out.ValueSats})
		}

		raw, err := svc.SignBitcoinTx(session, password, btcSpec)
		if err != nil {
			return fmt.Errorf("sign bitcoin tx: %w", err)
		}
		return broadcastIfRequested(cmd, broadcast.ChainBitcoin, raw)
	},
}

var signEthereumCmd = &cobra.Command{
	Use:   "ethereum",
	Short: "Sign an Ethereum transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		nonce, _ := cmd.Flags().GetUint64("nonce")
		gasLimit, _ := cmd.Flags().GetUint64("gas-limit")
		gasPriceStr, _ := cmd.Flags().GetString("gas-price")
		valueStr, _ := cmd.Flags().GetString("value")
		toStr, _ := cmd.Flags().GetString("to")
		dataHex, _ := cmd.Flags().GetString("data")
		chainIDInt, _ := cmd.Flags().GetInt64("chain-id")
		account, _ := cmd.Flags().GetUint32("account")

		gasPrice, ok := new(big.Int).SetString(gasPriceStr, 10)
		if !ok {
			return fmt.Errorf("invalid --gas-price %q", gasPriceStr)
		}
		value, ok := new(big.Int).SetString(valueStr, 10)
		if !ok {
			return fmt.Errorf("invalid --value %q", valueStr)
		}
		data, err := hex.DecodeString(dataHex)
		if err != nil {
			return fmt.Errorf("invalid --data: %w", err)
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

		raw, err := svc.SignEthereumTx(session, password, scc.EthereumTxSpec{
			AccountIdx: account,
			Nonce:      nonce,
			GasPrice:   gasPrice,
			GasLimit:   gasLimit,
			To:         common.HexToAddress(toStr),
			Value:      value,
			Data:       data,
			ChainID:    big.NewInt(chainIDInt),
		})
		if err != nil {
			return fmt.Errorf("sign ethereum tx: %w", err)
		}
		return broadcastIfRequested(cmd, broadcast.ChainEthereum, raw)
	},
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func init() {
	signBitcoinCmd.Flags().String("session", "", "session ID (required)")
	signBitcoinCmd.Flags().String("spec", "", "path to a JSON file describing inputs/outputs (required)")
	signBitcoinCmd.Flags().Bool("testnet", false, "sign against Bitcoin testnet")
	signBitcoinCmd.Flags().Bool("broadcast", false, "submit the signed tx via the configured broadcast transport instead of printing hex")
	signBitcoinCmd.MarkFlagRequired("session")
	signBitcoinCmd.MarkFlagRequired("spec")

	signEthereumCmd.Flags().String("session", "", "session ID (required)")
	signEthereumCmd.Flags().Uint64("nonce", 0, "account nonce")
	signEthereumCmd.Flags().Uint64("gas-limit", 21000, "gas limit")
	signEthereumCmd.Flags().String("gas-price", "0", "gas price in wei")
	signEthereumCmd.Flags().String("value", "0", "value in wei")
	signEthereumCmd.Flags().String("to", "", "recipient address (required)")
	signEthereumCmd.Flags().String("data", "", "call data, hex-encoded")
	signEthereumCmd.Flags().Int64("chain-id", 1, "EIP-155 chain ID")
	signEthereumCmd.Flags().Uint32("account", 0, "BIP44 account index")
	signEthereumCmd.Flags().Bool("broadcast", false, "submit the signed tx via the configured broadcast transport instead of printing hex")
	signEthereumCmd.MarkFlagRequired("session")
	signEthereumCmd.MarkFlagRequired("to")

	signCmd.AddCommand(signBitcoinCmd, signEthereumCmd)
	rootCmd.AddCommand(signCmd)
}
