// Package platform supplies the host-specific adaptors the Secret
// Custody Core consumes but never implements itself: the machine-factor
// binding for the vault key, and (in the broadcast subpackage) the
// block-explorer client capability interface.
package platform

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// installationIDFile is the per-installation UUID persisted alongside
// the leveldb data directory the first time the vault is opened.
const installationIDFile = "installation-id"

// MachineFactorProvider supplies get_machine_factor() per spec.md §6:
// a byte string that is stable across reboots on the same installation
// and opaque to the SCC.
type MachineFactorProvider interface {
	MachineFactor() ([]byte, error)
}

// HostMachineFactor derives the machine factor from the hostname, the
// OS user, and a per-installation UUID persisted under dataDir. None of
// these need be secret: the vault key derivation treats the factor as
// a binding value, not an independent secret, per spec.md §4.4.
type HostMachineFactor struct {
	dataDir string
}

func NewHostMachineFactor(dataDir string) *HostMachineFactor {
	return &HostMachineFactor{dataDir: dataDir}
}

func (h *HostMachineFactor) MachineFactor() ([]byte, error) {
	const op = "platform.HostMachineFactor.MachineFactor"

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}

	installID, err := h.loadOrCreateInstallationID()
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}

	material := hostname + "|" + user + "|" + installID
	sum := primitives.SHA256([]byte(material))
	return sum[:], nil
}

func (h *HostMachineFactor) loadOrCreateInstallationID() (string, error) {
	path := filepath.Join(h.dataDir, installationIDFile)
	if raw, err := os.ReadFile(path); err == nil {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := os.MkdirAll(h.dataDir, 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id), 0o600); err != nil {
		return "", err
	}
	return id, nil
}
