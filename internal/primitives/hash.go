package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for hash160, same dep the teacher's hdkeychain pulls in
)

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [32]byte { return sha256.Sum256(data) }

// SHA512 returns the SHA-512 digest of data.
func SHA512(data []byte) [64]byte { return sha512.Sum512(data) }

// HMACSHA512 computes HMAC-SHA512(key, data).
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// RIPEMD160 returns the RIPEMD-160 digest of data.
func RIPEMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 computes ripemd160(sha256(data)), the digest Bitcoin-family
// address encodings hash public keys with.
func Hash160(data []byte) []byte {
	sum := SHA256(data)
	return RIPEMD160(sum[:])
}
