// Command sccwallet is a thin demonstration CLI over internal/scc, in
// the style of the teacher's own cmd/skms: cobra commands that parse
// flags and call straight into the Secret Custody Core, with no
// business logic of their own.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jasony/sccwallet/internal/config"
	"github.com/jasony/sccwallet/internal/identity"
	"github.com/jasony/sccwallet/internal/logging"
	"github.com/jasony/sccwallet/internal/platform"
	"github.com/jasony/sccwallet/internal/platform/broadcast"
	"github.com/jasony/sccwallet/internal/scc"
	"github.com/jasony/sccwallet/internal/storekv"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "sccwallet",
	Short:   "Secret Custody Core wallet CLI",
	Version: version,
	Long: `sccwallet is a demonstration front-end for the Secret Custody Core:
a local, single-user crypto wallet backed by BIP39/BIP32/44 and a
password-and-machine-bound seed vault.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sccwallet.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openService loads configuration, opens the leveldb store, and
// builds a scc.Service plus a cleanup func every command must defer.
func openService() (*scc.Service, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if viper.GetBool("verbose") {
		cfg.Verbose = true
	}

	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}

	kv, err := storekv.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	mf := platform.NewHostMachineFactor(cfg.DataDir)
	svc := scc.NewService(kv, mf, scc.Options{
		VaultIterations: cfg.VaultIterations,
		Log:             log,
		Identity: identity.Options{
			VerifierIterations: cfg.VerifierIterations,
			SessionTTL:         cfg.SessionTTL,
			RateLimitWindow:    cfg.RateLimitWindow,
			RateLimitThreshold: cfg.RateLimitThreshold,
			RateLimitLockout:   cfg.RateLimitLockout,
		},
	})

	cleanup := func() {
		log.Sync()
		_ = kv.Close()
	}
	return svc, cleanup, nil
}

// newBroadcastClient picks the configured broadcast transport: a
// BlockCypher REST client (cfg.BroadcastEndpoint used as its API
// token, which may be empty for BlockCypher's free tier) or a generic
// JSON-RPC client (cfg.BroadcastEndpoint used as the node URL), per
// SPEC_FULL.md's config section.
func newBroadcastClient(cfg config.Config) (broadcast.Client, error) {
	switch cfg.BroadcastTransport {
	case "", "blockcypher":
		return broadcast.NewBlockCypherClient(cfg.BroadcastEndpoint), nil
	case "jsonrpc":
		return broadcast.NewJSONRPCClient(cfg.BroadcastEndpoint), nil
	default:
		return nil, fmt.Errorf("unknown broadcast_transport %q", cfg.BroadcastTransport)
	}
}
