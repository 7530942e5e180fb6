// Package scc wires components C1 through C5 together behind the
// single Service spec.md §6 describes, so callers never poke at
// internal/identity or internal/vault's package-level state directly.
package scc

import (
	"github.com/jasony/sccwallet/internal/identity"
	"github.com/jasony/sccwallet/internal/logging"
	"github.com/jasony/sccwallet/internal/platform"
	"github.com/jasony/sccwallet/internal/storekv"
	"github.com/jasony/sccwallet/internal/vault"
)

// Service exposes the Secret Custody Core's full operation set over
// one durable KV handle, per spec.md §6's operations table.
type Service struct {
	identity      *identity.Service
	vault         *vault.Store
	machineFactor platform.MachineFactorProvider
	log           *logging.Logger

	vaultIterations int
}

// Options configures a Service beyond its storage handle. Identity
// carries through to identity.NewService unchanged, so an operator
// config (internal/config) can tune verifier/session/rate-limit
// behaviour without either package hardcoding the spec defaults twice.
type Options struct {
	VaultIterations int
	Log             *logging.Logger
	Identity        identity.Options
}

// NewService builds a Service over kv, which must already be open.
// identity and vault tables share the same underlying KV handle but
// own disjoint tables, per spec.md §3's ownership rule.
func NewService(kv storekv.KV, mf platform.MachineFactorProvider, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logging.NewNop()
	}
	iterations := opts.VaultIterations
	if iterations <= 0 {
		iterations = vault.VaultIterations
	}
	return &Service{
		identity:        identity.NewService(identity.NewStore(kv), log, opts.Identity),
		vault:           vault.NewStore(kv),
		machineFactor:   mf,
		log:             log,
		vaultIterations: iterations,
	}
}
