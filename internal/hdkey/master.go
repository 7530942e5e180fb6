package hdkey

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// ExtendedKey wraps btcsuite's BIP32 extended key, the teacher's own
// dependency for HD derivation (see hdwallet.go's use of
// hdkeychain.NewMaster/Child). It carries {keyBytes, chainCode, depth,
// parentFingerprint, childNumber, isPrivate} per spec.md §3.
type ExtendedKey struct {
	key *hdkeychain.ExtendedKey
}

// MasterFromSeed computes I = HMAC-SHA512("Bitcoin seed", seed); the
// left 32 bytes become the master private key, the right 32 the master
// chain code, with depth/parentFingerprint/childNumber all zero.
func MasterFromSeed(seed []byte) (*ExtendedKey, error) {
	k, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, sccerr.Wrap("hdkey.MasterFromSeed", sccerr.BadInput, err)
	}
	return &ExtendedKey{key: k}, nil
}

// IsPrivate reports whether the key carries private material.
func (e *ExtendedKey) IsPrivate() bool { return e.key.IsPrivate() }

// Depth returns the key's position in the derivation hierarchy.
func (e *ExtendedKey) Depth() uint8 { return e.key.Depth() }
