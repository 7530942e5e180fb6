package primitives

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// NonceSize is the AES-256-GCM nonce length in bytes (96 bits).
const NonceSize = 12

// TagSize is the AES-256-GCM authentication tag length in bytes.
const TagSize = 16

// AEADEncrypt seals plaintext under key32 (32 bytes) and nonce12 (12
// bytes), authenticating aad. It returns ciphertext with the 16-byte
// tag appended, matching AES-256-GCM's standard sealed-box layout.
func AEADEncrypt(key32, nonce12, plaintext, aad []byte) ([]byte, error) {
	aead, err := newGCM(key32)
	if err != nil {
		return nil, err
	}
	if len(nonce12) != NonceSize {
		return nil, sccerr.New("primitives.AEADEncrypt", sccerr.BadInput)
	}
	return aead.Seal(nil, nonce12, plaintext, aad), nil
}

// AEADDecrypt opens a ciphertext produced by AEADEncrypt. Any
// authentication failure returns AeadFailure with no partial
// plaintext — the caller must not distinguish this from any other
// verification failure.
func AEADDecrypt(key32, nonce12, ciphertext, aad []byte) ([]byte, error) {
	aead, err := newGCM(key32)
	if err != nil {
		return nil, err
	}
	if len(nonce12) != NonceSize {
		return nil, sccerr.New("primitives.AEADDecrypt", sccerr.AeadFailure)
	}
	pt, err := aead.Open(nil, nonce12, ciphertext, aad)
	if err != nil {
		return nil, sccerr.Wrap("primitives.AEADDecrypt", sccerr.AeadFailure, err)
	}
	return pt, nil
}

func newGCM(key32 []byte) (cipher.AEAD, error) {
	if len(key32) != 32 {
		return nil, sccerr.New("primitives.newGCM", sccerr.BadInput)
	}
	block, err := aes.NewCipher(key32)
	if err != nil {
		return nil, sccerr.Wrap("primitives.newGCM", sccerr.BadInput, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, sccerr.Wrap("primitives.newGCM", sccerr.BadInput, err)
	}
	return aead, nil
}
