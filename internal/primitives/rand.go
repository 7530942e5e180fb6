// Package primitives implements C1: the constant-time comparisons,
// hashing, KDF, AEAD, secp256k1, and encoding routines every other
// component in the Secret Custody Core is built from. Every routine
// that handles secret material accepts caller-owned buffers, never
// copies into long-lived storage, and returns only length-bounded
// output.
package primitives

import (
	"crypto/rand"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// RandomBytes draws n bytes from the OS CSPRNG. It fails with
// RngFailure, never with a partially-filled buffer.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, sccerr.Wrap("primitives.RandomBytes", sccerr.RngFailure, err)
	}
	return buf, nil
}

// RandomBytesRetry retries RandomBytes up to attempts times, per the
// core's retry policy: RngFailure is one of the two kinds that may be
// retried within a single call.
func RandomBytesRetry(n, attempts int) ([]byte, error) {
	var err error
	for i := 0; i < attempts; i++ {
		var buf []byte
		buf, err = RandomBytes(n)
		if err == nil {
			return buf, nil
		}
	}
	return nil, err
}
