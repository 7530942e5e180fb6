package scc

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // matches the RFC 6238 default algorithm under test
	"encoding/base32"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/jasony/sccwallet/internal/hdkey"
	"github.com/jasony/sccwallet/internal/mnemonic"
	"github.com/jasony/sccwallet/internal/storekv"
)

// fakeMachineFactor returns a fixed value so vault round-trips are
// reproducible across test runs, in place of platform.HostMachineFactor.
type fakeMachineFactor struct{ value []byte }

func (f *fakeMachineFactor) MachineFactor() ([]byte, error) { return f.value, nil }

func newTestService(t *testing.T) *Service {
	t.Helper()
	kv, err := storekv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storekv.Open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	mf := &fakeMachineFactor{value: []byte("test-machine-factor")}
	return NewService(kv, mf, Options{VaultIterations: 4096})
}

const testPassword = "Correct-Horse-Battery-9!"

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestService(t)

	reg, err := svc.Register("alice", testPassword, 0)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(reg.Mnemonic) != 12 {
		t.Errorf("len(Mnemonic) = %d, want 12 for the default strength", len(reg.Mnemonic))
	}

	login, err := svc.Login("alice", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.NeedsTotp {
		t.Error("expected NeedsTotp = false when TOTP was never enabled")
	}
	if login.SessionID == "" {
		t.Error("expected a non-empty session ID")
	}
}

func TestRevealSeedMatchesRegisteredMnemonic(t *testing.T) {
	svc := newTestService(t)

	reg, err := svc.Register("bob", testPassword, 0)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	login, err := svc.Login("bob", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	revealed, err := svc.RevealSeed(login.SessionID, testPassword)
	if err != nil {
		t.Fatalf("RevealSeed: %v", err)
	}

	wantSeed, err := mnemonic.MnemonicToSeed(reg.Mnemonic, "")
	if err != nil {
		t.Fatalf("MnemonicToSeed: %v", err)
	}
	if revealed.SeedHex != hexEncode(wantSeed) {
		t.Error("revealed seed does not match the seed derived from the registered mnemonic")
	}
}

func TestRegisterFromMnemonicThenDeriveMatchesDirectDerivation(t *testing.T) {
	svc := newTestService(t)

	words := []string{
		"abandon", "abandon", "abandon", "abandon", "abandon", "abandon",
		"abandon", "abandon", "abandon", "abandon", "abandon", "about",
	}
	if _, err := svc.RegisterFromMnemonic("carol", testPassword, words, ""); err != nil {
		t.Fatalf("RegisterFromMnemonic: %v", err)
	}
	login, err := svc.Login("carol", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	derived, err := svc.DeriveAddress(login.SessionID, testPassword, hdkey.ChainBitcoin, 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}
	want := "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"
	if derived.Address != want {
		t.Errorf("derived address = %s, want %s", derived.Address, want)
	}
}

func TestRevealSeedFailsWithWrongPassword(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register("dave", testPassword, 0); err != nil {
		t.Fatalf("Register: %v", err)
	}
	login, err := svc.Login("dave", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.RevealSeed(login.SessionID, "wrong-password-here!!!!"); err == nil {
		t.Error("expected RevealSeed to fail with the wrong password")
	}
}

func TestTotpLoginRequiresSubmission(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register("erin", testPassword, 0); err != nil {
		t.Fatalf("Register: %v", err)
	}
	firstLogin, err := svc.Login("erin", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	uri, err := svc.EnableTotp(firstLogin.SessionID, testPassword)
	if err != nil {
		t.Fatalf("EnableTotp: %v", err)
	}
	if uri == "" {
		t.Fatal("expected a non-empty otpauth URI")
	}

	secret := parseSecretFromURI(t, uri)
	if _, err := svc.ConfirmTotp(firstLogin.SessionID, codeForSecret(secret)); err != nil {
		t.Fatalf("ConfirmTotp: %v", err)
	}

	login, err := svc.Login("erin", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !login.NeedsTotp {
		t.Fatal("expected NeedsTotp = true once TOTP is enabled")
	}

	if _, err := svc.RevealSeed(login.SessionID, testPassword); err == nil {
		t.Error("expected RevealSeed to fail before TOTP is submitted")
	}

	if err := svc.SubmitTotp(login.SessionID, codeForSecret(secret)); err != nil {
		t.Fatalf("SubmitTotp: %v", err)
	}
	if _, err := svc.RevealSeed(login.SessionID, testPassword); err != nil {
		t.Fatalf("RevealSeed after SubmitTotp: %v", err)
	}
}

func hexEncode(b []byte) string { return hex.EncodeToString(b) }

// parseSecretFromURI pulls the base32 "secret" query parameter out of an
// otpauth:// URI, mirroring what an authenticator app would do.
func parseSecretFromURI(t *testing.T, otpauthURI string) []byte {
	t.Helper()
	u, err := url.Parse(otpauthURI)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", otpauthURI, err)
	}
	secretB32 := u.Query().Get("secret")
	secret, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secretB32)
	if err != nil {
		t.Fatalf("decode otpauth secret: %v", err)
	}
	return secret
}

// codeForSecret computes the current RFC 6238 TOTP code for secret, the
// same HOTP-over-counter construction identity.totpAt uses internally.
func codeForSecret(secret []byte) string {
	counter := uint64(time.Now().Unix()) / 30
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	code := (uint32(sum[offset]&0x7F) << 24) |
		(uint32(sum[offset+1]) << 16) |
		(uint32(sum[offset+2]) << 8) |
		uint32(sum[offset+3])
	return fmt.Sprintf("%06d", code%1000000)
}
