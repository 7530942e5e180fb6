package hdkey

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcutil/hdkeychain"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// maxChildRetries bounds the BIP32 "advance i by one and retry" rule
// for the vanishingly rare case the derived scalar is invalid.
const maxChildRetries = 16

// DeriveChild derives child index i from parent, hardened if
// i >= HardenedOffset (which requires parent to hold a private key).
// If the derived key would be invalid (IL >= n or the resulting scalar
// is zero), it advances i and retries per BIP32, bounded to
// maxChildRetries attempts before panicking as an impossible-state bug.
func DeriveChild(parent *ExtendedKey, i uint32) (*ExtendedKey, error) {
	if i >= HardenedOffset && !parent.IsPrivate() {
		return nil, sccerr.New("hdkey.DeriveChild", sccerr.BadInput)
	}
	idx := i
	for attempt := 0; attempt < maxChildRetries; attempt++ {
		child, err := parent.key.Child(idx)
		if err == nil {
			return &ExtendedKey{key: child}, nil
		}
		if errors.Is(err, hdkeychain.ErrInvalidChild) {
			idx++
			continue
		}
		return nil, sccerr.Wrap("hdkey.DeriveChild", sccerr.BadInput, err)
	}
	panic("hdkey: exhausted child-derivation retry budget, impossible-state bug")
}

// DerivePath walks master through every index in path in order,
// yielding the key at the end of it. Deterministic for a fixed
// (seed, path) pair.
func DerivePath(master *ExtendedKey, path Path) (*ExtendedKey, error) {
	key := master
	var err error
	for _, idx := range path {
		key, err = DeriveChild(key, idx)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}

// ECPrivKey returns the underlying secp256k1 private key. The caller
// owns the returned key and is responsible for wiping it (via
// primitives.SecureWipe(key.Serialize()) or equivalent) once done.
func (e *ExtendedKey) ECPrivKey() (*btcec.PrivateKey, error) {
	priv, err := e.key.ECPrivKey()
	if err != nil {
		return nil, sccerr.Wrap("hdkey.ECPrivKey", sccerr.BadInput, err)
	}
	return priv, nil
}

// ECPubKey returns the underlying secp256k1 public key. Works whether
// e holds a private or public-only extended key.
func (e *ExtendedKey) ECPubKey() (*btcec.PublicKey, error) {
	pub, err := e.key.ECPubKey()
	if err != nil {
		return nil, sccerr.Wrap("hdkey.ECPubKey", sccerr.BadInput, err)
	}
	return pub, nil
}
