package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jasony/sccwallet/internal/identity"
	"github.com/jasony/sccwallet/internal/vault"
)

func TestDefaultsMatchSpecConstants(t *testing.T) {
	cfg := Defaults()
	if cfg.VaultIterations != vault.VaultIterations {
		t.Errorf("VaultIterations = %d, want %d", cfg.VaultIterations, vault.VaultIterations)
	}
	if cfg.VerifierIterations != identity.VerifierIterations {
		t.Errorf("VerifierIterations = %d, want %d", cfg.VerifierIterations, identity.VerifierIterations)
	}
	if cfg.SessionTTL != identity.SessionTTL {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, identity.SessionTTL)
	}
	if cfg.BroadcastTransport != "blockcypher" {
		t.Errorf("BroadcastTransport = %s, want blockcypher", cfg.BroadcastTransport)
	}
}

func TestLoadWithNoConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.VaultIterations != vault.VaultIterations {
		t.Errorf("VaultIterations = %d, want %d", cfg.VaultIterations, vault.VaultIterations)
	}
}

func TestLoadReadsExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	contents := "data_dir: " + filepath.Join(dir, "walletdata") + "\nbroadcast_transport: jsonrpc\nverbose: true\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != filepath.Join(dir, "walletdata") {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, filepath.Join(dir, "walletdata"))
	}
	if cfg.BroadcastTransport != "jsonrpc" {
		t.Errorf("BroadcastTransport = %s, want jsonrpc", cfg.BroadcastTransport)
	}
	if !cfg.Verbose {
		t.Error("expected Verbose = true from the config file")
	}
}
