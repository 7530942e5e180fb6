package primitives

import (
	"bytes"
	"testing"
)

func TestHash160IsSHA256ThenRIPEMD160(t *testing.T) {
	data := []byte("hash160 me")
	sum := SHA256(data)
	want := RIPEMD160(sum[:])

	if got := Hash160(data); !bytes.Equal(got, want) {
		t.Errorf("Hash160 = % x, want % x", got, want)
	}
}

func TestHMACSHA512Deterministic(t *testing.T) {
	key := []byte("Bitcoin seed")
	data := []byte("some seed bytes")
	a := HMACSHA512(key, data)
	b := HMACSHA512(key, data)
	if !bytes.Equal(a, b) {
		t.Error("HMACSHA512 is not deterministic for identical inputs")
	}
	if len(a) != 64 {
		t.Errorf("HMACSHA512 length = %d, want 64", len(a))
	}
}
