package platform

import (
	"bytes"
	"testing"
)

func TestHostMachineFactorIsStableAcrossCalls(t *testing.T) {
	h := NewHostMachineFactor(t.TempDir())

	first, err := h.MachineFactor()
	if err != nil {
		t.Fatalf("MachineFactor: %v", err)
	}
	second, err := h.MachineFactor()
	if err != nil {
		t.Fatalf("MachineFactor: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected MachineFactor to be stable across calls against the same data dir")
	}
	if len(first) != 32 {
		t.Errorf("MachineFactor length = %d, want 32 (SHA-256 digest)", len(first))
	}
}

func TestHostMachineFactorPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	a, err := NewHostMachineFactor(dir).MachineFactor()
	if err != nil {
		t.Fatalf("MachineFactor: %v", err)
	}
	b, err := NewHostMachineFactor(dir).MachineFactor()
	if err != nil {
		t.Fatalf("MachineFactor: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected the persisted installation ID to survive across HostMachineFactor instances")
	}
}

func TestHostMachineFactorDiffersAcrossDataDirs(t *testing.T) {
	a, err := NewHostMachineFactor(t.TempDir()).MachineFactor()
	if err != nil {
		t.Fatalf("MachineFactor: %v", err)
	}
	b, err := NewHostMachineFactor(t.TempDir()).MachineFactor()
	if err != nil {
		t.Fatalf("MachineFactor: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("expected different data dirs to yield different installation-bound machine factors")
	}
}
