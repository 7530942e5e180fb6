// Package config loads sccwallet's runtime settings the way the
// teacher's cli/root.go loads skms's: spf13/viper layering a YAML file
// under $HOME, environment overrides, and compiled-in defaults that
// match spec.md's literal constants.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/jasony/sccwallet/internal/identity"
	"github.com/jasony/sccwallet/internal/vault"
)

// Config holds every tunable the SCC and its CLI front-end need.
type Config struct {
	DataDir            string
	VaultIterations    int
	VerifierIterations int
	SessionTTL         time.Duration
	RateLimitWindow    time.Duration
	RateLimitThreshold int
	RateLimitLockout   time.Duration
	Verbose            bool
	BroadcastTransport string // "blockcypher" or "jsonrpc"
	BroadcastEndpoint  string
}

// Defaults returns the compiled-in defaults matching spec.md's literal
// constants, before any file or environment override is applied.
func Defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:            filepath.Join(home, ".sccwallet", "data"),
		VaultIterations:    vault.VaultIterations,
		VerifierIterations: identity.VerifierIterations,
		SessionTTL:         identity.SessionTTL,
		RateLimitWindow:    identity.RateLimitWindow,
		RateLimitThreshold: identity.RateLimitThreshold,
		RateLimitLockout:   identity.RateLimitLockout,
		BroadcastTransport: "blockcypher",
	}
}

// Load reads $HOME/.sccwallet.yaml (or cfgFile if non-empty) plus
// SCCWALLET_*-prefixed environment variables over the compiled-in
// defaults, mirroring the teacher's viper.AutomaticEnv() pattern in
// cli/root.go.
func Load(cfgFile string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("vault_iterations", cfg.VaultIterations)
	v.SetDefault("verifier_iterations", cfg.VerifierIterations)
	v.SetDefault("session_ttl_seconds", int(cfg.SessionTTL.Seconds()))
	v.SetDefault("rate_limit_window_seconds", int(cfg.RateLimitWindow.Seconds()))
	v.SetDefault("rate_limit_threshold", cfg.RateLimitThreshold)
	v.SetDefault("rate_limit_lockout_seconds", int(cfg.RateLimitLockout.Seconds()))
	v.SetDefault("verbose", false)
	v.SetDefault("broadcast_transport", cfg.BroadcastTransport)
	v.SetDefault("broadcast_endpoint", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".sccwallet")
	}

	v.SetEnvPrefix("sccwallet")
	v.AutomaticEnv()

	// A missing config file is not an error: defaults and environment
	// overrides are sufficient to run.
	_ = v.ReadInConfig()

	cfg.DataDir = v.GetString("data_dir")
	cfg.VaultIterations = v.GetInt("vault_iterations")
	cfg.VerifierIterations = v.GetInt("verifier_iterations")
	cfg.SessionTTL = time.Duration(v.GetInt("session_ttl_seconds")) * time.Second
	cfg.RateLimitWindow = time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second
	cfg.RateLimitThreshold = v.GetInt("rate_limit_threshold")
	cfg.RateLimitLockout = time.Duration(v.GetInt("rate_limit_lockout_seconds")) * time.Second
	cfg.Verbose = v.GetBool("verbose")
	cfg.BroadcastTransport = v.GetString("broadcast_transport")
	cfg.BroadcastEndpoint = v.GetString("broadcast_endpoint")

	return cfg, nil
}
