package primitives

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2HMACSHA512 derives dkLen bytes from password and salt using
// iter rounds of HMAC-SHA512, per spec.md's PBKDF2 primitive. Used for
// the vault and password-verifier KDFs, each with its own salt and
// iteration count; BIP39 seed derivation goes through go-bip39's
// NewSeed instead.
func PBKDF2HMACSHA512(password, salt []byte, iter, dkLen int) []byte {
	return pbkdf2.Key(password, salt, iter, dkLen, sha512.New)
}
