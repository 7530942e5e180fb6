package identity

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// VerifierIterations is the PBKDF2 round count for the password
// verifier, per spec.md §4.5.1. It uses a different salt and a
// different output-usage domain than the vault KDF — there is no path
// from the verifier back to the vault key, per spec.md §4.5.1.
const VerifierIterations = 600000

const verifierDKLen = 64
const authSaltLen = 32

// verifierPrefix identifies the KDF scheme, matching spec.md §6's
// "pbkdf2-sha512$<iter>$<salt_b64>$<dk_b64>" string form.
const verifierPrefix = "pbkdf2-sha512"

// NewPasswordVerifier generates a fresh 32-byte authSalt, computes
// PBKDF2-HMAC-SHA512(password, authSalt, VerifierIterations, 64), and
// returns both the salt and the serialized verifier string.
func NewPasswordVerifier(password string) (authSalt []byte, verifier string, err error) {
	return NewPasswordVerifierWithIterations(password, VerifierIterations)
}

// NewPasswordVerifierWithIterations is NewPasswordVerifier with an
// operator-configurable round count, so a deployment can raise
// VerifierIterations without a code change; Service.CreateUser calls
// this with its configured iteration count.
func NewPasswordVerifierWithIterations(password string, iterations int) (authSalt []byte, verifier string, err error) {
	authSalt, err = primitives.RandomBytesRetry(authSaltLen, 3)
	if err != nil {
		return nil, "", err
	}
	dk := primitives.PBKDF2HMACSHA512([]byte(password), authSalt, iterations, verifierDKLen)
	defer primitives.SecureWipe(dk)
	return authSalt, formatVerifier(iterations, authSalt, dk), nil
}

func formatVerifier(iter int, salt, dk []byte) string {
	return fmt.Sprintf("%s$%d$%s$%s", verifierPrefix, iter,
		base64.RawURLEncoding.EncodeToString(salt),
		base64.RawURLEncoding.EncodeToString(dk))
}

// VerifyPassword recomputes the verifier for password against the
// salt and iteration count embedded in stored, and compares in
// constant time.
func VerifyPassword(stored, password string) (bool, error) {
	iter, salt, dk, err := parseVerifier(stored)
	if err != nil {
		return false, err
	}
	candidate := primitives.PBKDF2HMACSHA512([]byte(password), salt, iter, len(dk))
	defer primitives.SecureWipe(candidate)
	return primitives.ConstantTimeEquals(candidate, dk), nil
}

func parseVerifier(stored string) (iter int, salt, dk []byte, err error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 4 || parts[0] != verifierPrefix {
		return 0, nil, nil, sccerr.New("identity.parseVerifier", sccerr.BadInput)
	}
	iter, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, nil, nil, sccerr.Wrap("identity.parseVerifier", sccerr.BadInput, err)
	}
	salt, err = base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return 0, nil, nil, sccerr.Wrap("identity.parseVerifier", sccerr.BadInput, err)
	}
	dk, err = base64.RawURLEncoding.DecodeString(parts[3])
	if err != nil {
		return 0, nil, nil, sccerr.Wrap("identity.parseVerifier", sccerr.BadInput, err)
	}
	return iter, salt, dk, nil
}
