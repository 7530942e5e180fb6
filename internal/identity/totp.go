package identity

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // RFC 6238 mandates SHA-1 for the default TOTP algorithm
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// TOTP is implemented directly against RFC 6238 primitives
// (crypto/hmac, crypto/sha1, encoding/base32): none of the example
// repositories retrieved for this module ship a TOTP library, so this
// is the one ambient concern built on the standard library rather than
// a third-party package (see DESIGN.md).

// totpStep is the RFC 6238 time-step size.
const totpStep = 30 * time.Second

// totpDigits is the number of decimal digits in a generated code.
const totpDigits = 6

// totpSecretBits is the enrolment secret length, per spec.md §4.5.3
// ("generate a 160-bit secret").
const totpSecretBits = 160

// totpWindow is the number of steps of drift tolerated on either side
// of the current step, per spec.md §4.5.3 ("±1 step window").
const totpWindow = 1

// GenerateTOTPSecret draws a fresh 160-bit secret for enrolment.
func GenerateTOTPSecret() ([]byte, error) {
	return primitives.RandomBytesRetry(totpSecretBits/8, 3)
}

// Base32Secret encodes secret for display/otpauth URIs.
func Base32Secret(secret []byte) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret)
}

// OTPAuthURI builds an otpauth:// URI for QR-code enrolment (the
// caller renders the QR code; the SCC only produces the URI, per
// spec.md §1's "QR rendering" non-goal).
func OTPAuthURI(issuer, accountName string, secret []byte) string {
	v := url.Values{}
	v.Set("secret", Base32Secret(secret))
	v.Set("issuer", issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", fmt.Sprintf("%d", totpDigits))
	v.Set("period", fmt.Sprintf("%d", int(totpStep.Seconds())))
	label := url.PathEscape(fmt.Sprintf("%s:%s", issuer, accountName))
	return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
}

// totpAt computes the 6-digit code for secret at the time step
// covering t, per RFC 4226/6238's HOTP-over-counter construction.
func totpAt(secret []byte, t time.Time) string {
	counter := uint64(t.Unix()) / uint64(totpStep.Seconds())
	return hotp(secret, counter)
}

func hotp(secret []byte, counter uint64) string {
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

	mod := uint32(1)
	for i := 0; i < totpDigits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", totpDigits, code%mod)
}

// VerifyTOTP accepts a code generated at the current step or ±1 step
// (±30s), per spec.md §4.5.3.
func VerifyTOTP(secret []byte, code string, now time.Time) bool {
	code = strings.TrimSpace(code)
	for delta := -totpWindow; delta <= totpWindow; delta++ {
		shifted := now.Add(time.Duration(delta) * totpStep)
		if primitives.ConstantTimeEquals([]byte(totpAt(secret, shifted)), []byte(code)) {
			return true
		}
	}
	return false
}

// backupCodeLen is the character length of a generated backup code
// (8-char base32, per spec.md §4.5.3).
const backupCodeLen = 8

// GenerateBackupCodes produces n single-use 8-char base32 codes.
func GenerateBackupCodes(n int) ([]string, error) {
	alphabet := base32.StdEncoding.WithPadding(base32.NoPadding)
	codes := make([]string, n)
	for i := 0; i < n; i++ {
		raw, err := primitives.RandomBytesRetry(backupCodeLen, 3)
		if err != nil {
			return nil, err
		}
		codes[i] = alphabet.EncodeToString(raw)[:backupCodeLen]
	}
	return codes, nil
}

// BackupCode is a single stored, single-use backup code verifier.
type BackupCode struct {
	UserID   string
	Index    int
	Verifier string // PBKDF2 verifier, same format as the password verifier
	Used     bool
}

// NewBackupCodeVerifier hashes a plaintext backup code the same way
// the password verifier is hashed, so a leaked record of backup codes
// cannot be reversed to the plaintext codes either.
func NewBackupCodeVerifier(code string) (string, error) {
	_, verifier, err := NewPasswordVerifier(code)
	if err != nil {
		return "", sccerr.Wrap("identity.NewBackupCodeVerifier", sccerr.RngFailure, err)
	}
	return verifier, nil
}
