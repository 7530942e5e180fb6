package primitives

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// Base58CheckEncode encodes payload with versionByte under Base58Check
// (version || payload || 4-byte double-SHA256 checksum).
func Base58CheckEncode(versionByte byte, payload []byte) string {
	return base58.CheckEncode(payload, versionByte)
}

// Base58CheckDecode reverses Base58CheckEncode, returning the payload
// and its version byte.
func Base58CheckDecode(s string) (payload []byte, version byte, err error) {
	payload, version, err = base58.CheckDecode(s)
	if err != nil {
		return nil, 0, sccerr.Wrap("primitives.Base58CheckDecode", sccerr.BadInput, err)
	}
	return payload, version, nil
}

// Bech32Encode encodes a segwit-v0 witness program (hash160 of a
// compressed pubkey for P2WPKH) under hrp, per BIP173.
func Bech32Encode(hrp string, witnessVersion byte, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", sccerr.Wrap("primitives.Bech32Encode", sccerr.BadInput, err)
	}
	data := append([]byte{witnessVersion}, converted...)
	out, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", sccerr.Wrap("primitives.Bech32Encode", sccerr.BadInput, err)
	}
	return out, nil
}

// Bech32Decode reverses Bech32Encode.
func Bech32Decode(s string) (hrp string, witnessVersion byte, program []byte, err error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return "", 0, nil, sccerr.Wrap("primitives.Bech32Decode", sccerr.BadInput, err)
	}
	if len(data) == 0 {
		return "", 0, nil, sccerr.New("primitives.Bech32Decode", sccerr.BadInput)
	}
	witnessVersion = data[0]
	program, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return "", 0, nil, sccerr.Wrap("primitives.Bech32Decode", sccerr.BadInput, err)
	}
	return hrp, witnessVersion, program, nil
}
