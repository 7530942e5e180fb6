package hdkey

import (
	"encoding/hex"
	"testing"

	"github.com/jasony/sccwallet/internal/primitives"
)

// Known-answer BIP32 vector, per spec.md §8 scenario 2: the BIP39 seed
// for "abandon...about" derived at m/44'/0'/0'/0/0 yields a well-known
// mainnet P2PKH address.
func TestDeriveAddressKnownAnswer(t *testing.T) {
	seedHex := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}

	master, err := MasterFromSeed(seed)
	if err != nil {
		t.Fatalf("MasterFromSeed: %v", err)
	}

	got, err := DeriveAddress(master, ChainBitcoin, 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}

	want := "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"
	if got.Address != want {
		t.Errorf("address = %s, want %s", got.Address, want)
	}
	if got.Path.String() != "m/44'/0'/0'/0/0" {
		t.Errorf("path = %s, want m/44'/0'/0'/0/0", got.Path.String())
	}
}

func TestDeriveAddressIsDeterministic(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}
	master, err := MasterFromSeed(seed)
	if err != nil {
		t.Fatalf("MasterFromSeed: %v", err)
	}

	a, err := DeriveAddress(master, ChainEthereum, 0, 0, 1)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}
	b, err := DeriveAddress(master, ChainEthereum, 0, 0, 1)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}
	if a.Address != b.Address {
		t.Errorf("derivation is not deterministic: %s != %s", a.Address, b.Address)
	}

	c, err := DeriveAddress(master, ChainEthereum, 0, 0, 2)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}
	if a.Address == c.Address {
		t.Error("different address indices produced the same address")
	}
}

func TestParsePathRoundTrip(t *testing.T) {
	want := "m/44'/60'/0'/0/5"
	p, err := ParsePath(want)
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if got := p.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestBIP44PathMatchesCoinType(t *testing.T) {
	p := BIP44Path(ChainEthereum, 2, 0, 3)
	want := Path{44 + HardenedOffset, 60 + HardenedOffset, 2 + HardenedOffset, 0, 3}
	if len(p) != len(want) {
		t.Fatalf("path length = %d, want %d", len(p), len(want))
	}
	for i := range p {
		if p[i] != want[i] {
			t.Errorf("path[%d] = %d, want %d", i, p[i], want[i])
		}
	}
}

// TestDeriveLitecoinAddressUsesLitecoinVersionByte guards against
// reusing Bitcoin's 0x00 P2PKH version byte for Litecoin, per
// SPEC_FULL.md §4.3's promise of "P2PKH with Litecoin's version byte".
func TestDeriveLitecoinAddressUsesLitecoinVersionByte(t *testing.T) {
	seedHex := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	master, err := MasterFromSeed(seed)
	if err != nil {
		t.Fatalf("MasterFromSeed: %v", err)
	}

	ltc, err := DeriveAddress(master, ChainLitecoin, 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress(ChainLitecoin): %v", err)
	}

	_, version, err := primitives.Base58CheckDecode(ltc.Address)
	if err != nil {
		t.Fatalf("Base58CheckDecode: %v", err)
	}
	if version != 0x30 {
		t.Errorf("Litecoin P2PKH version byte = 0x%02x, want 0x30", version)
	}

	btc, err := DeriveAddress(master, ChainBitcoin, 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress(ChainBitcoin): %v", err)
	}
	if ltc.Address == btc.Address {
		t.Error("Litecoin and Bitcoin addresses for the same key should differ (different version bytes)")
	}
}

func TestDeriveChildHardenedFromPrivateMaster(t *testing.T) {
	seed := make([]byte, 32)
	master, err := MasterFromSeed(seed)
	if err != nil {
		t.Fatalf("MasterFromSeed: %v", err)
	}
	if _, err := DeriveChild(master, HardenedOffset); err != nil {
		t.Fatalf("deriving a hardened child from a private master should succeed: %v", err)
	}
}
