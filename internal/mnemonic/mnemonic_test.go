package mnemonic

import (
	"encoding/hex"
	"strings"
	"testing"
)

// Known-answer BIP39 vector, per spec.md §8 scenario 1.
func TestMnemonicToSeedKnownAnswer(t *testing.T) {
	words := strings.Fields("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	want := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"

	seed, err := MnemonicToSeed(words, "")
	if err != nil {
		t.Fatalf("MnemonicToSeed: %v", err)
	}
	if got := hex.EncodeToString(seed); got != want {
		t.Errorf("seed = %s, want %s", got, want)
	}
}

func TestGenerateMnemonicRoundTrip(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		words, err := GenerateMnemonic(bits)
		if err != nil {
			t.Fatalf("GenerateMnemonic(%d): %v", bits, err)
		}
		if err := ValidateMnemonic(words); err != nil {
			t.Errorf("GenerateMnemonic(%d) produced an invalid mnemonic: %v", bits, err)
		}
		seed, err := MnemonicToSeed(words, "")
		if err != nil {
			t.Fatalf("MnemonicToSeed: %v", err)
		}
		if len(seed) != SeedLength {
			t.Errorf("seed length = %d, want %d", len(seed), SeedLength)
		}
	}
}

func TestGenerateMnemonicRejectsBadStrength(t *testing.T) {
	if _, err := GenerateMnemonic(100); err == nil {
		t.Error("expected an error for an invalid entropy strength")
	}
}

func TestValidateMnemonicRejectsTamperedChecksum(t *testing.T) {
	words := strings.Fields("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zoo")
	if err := ValidateMnemonic(words); err == nil {
		t.Error("expected the tampered checksum word to fail validation")
	}
}

func TestValidateMnemonicIsCaseInsensitive(t *testing.T) {
	words := strings.Fields("ABANDON abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ABOUT")
	if err := ValidateMnemonic(words); err != nil {
		t.Errorf("expected case-insensitive validation to succeed: %v", err)
	}
}
