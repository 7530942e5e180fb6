package vault

import (
	"bytes"
	"testing"

	"github.com/jasony/sccwallet/internal/storekv"
)

func openTestKV(t *testing.T) storekv.KV {
	t.Helper()
	kv, err := storekv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storekv.Open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestStorePutGetRoundTrip(t *testing.T) {
	kv := openTestKV(t)
	store := NewStore(kv)

	seed := bytes.Repeat([]byte{0x11}, 64)
	e, err := Encrypt(seed, []byte("password"), []byte("machine"), 4096)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	e.BackupConfirmed = true

	if err := store.Put("user-1", e); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get("user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored record to be found")
	}
	if !got.BackupConfirmed {
		t.Error("BackupConfirmed flag was not persisted")
	}
	if !bytes.Equal(got.Ciphertext, e.Ciphertext) {
		t.Error("ciphertext did not round-trip through the store")
	}
}

func TestStoreGetMissingReturnsNotFound(t *testing.T) {
	kv := openTestKV(t)
	store := NewStore(kv)

	_, ok, err := store.Get("no-such-user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected no record for an unknown user")
	}
}
