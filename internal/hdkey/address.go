package hdkey

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// P2PKH version bytes.
const (
	btcMainnetP2PKHVersion = 0x00
	btcTestnetP2PKHVersion = 0x6F
	ltcMainnetP2PKHVersion = 0x30
)

// P2PKHAddress encodes base58check(versionByte || hash160(pubkey)) for
// a compressed secp256k1 public key, per spec.md §4.3.
func P2PKHAddress(compressedPubKey []byte, testnet bool) string {
	version := byte(btcMainnetP2PKHVersion)
	if testnet {
		version = btcTestnetP2PKHVersion
	}
	return P2PKHAddressWithVersion(compressedPubKey, version)
}

// P2PKHAddressWithVersion encodes base58check(version || hash160(pubkey))
// for chains whose mainnet P2PKH version byte differs from Bitcoin's,
// such as Litecoin's 0x30.
func P2PKHAddressWithVersion(compressedPubKey []byte, version byte) string {
	h160 := primitives.Hash160(compressedPubKey)
	return primitives.Base58CheckEncode(version, h160)
}

// P2WPKHAddress encodes bech32_encode(hrp, 0x00, hash160(pubkey)), the
// native segwit v0 pay-to-witness-pubkey-hash form.
func P2WPKHAddress(compressedPubKey []byte, testnet bool) (string, error) {
	hrp := "bc"
	if testnet {
		hrp = "tb"
	}
	h160 := primitives.Hash160(compressedPubKey)
	addr, err := primitives.Bech32Encode(hrp, 0x00, h160)
	if err != nil {
		return "", sccerr.Wrap("hdkey.P2WPKHAddress", sccerr.BadInput, err)
	}
	return addr, nil
}

// EthereumAddress returns "0x" + EIP-55 checksummed hex of
// keccak256(uncompressedPubKey[1:])[12:32], delegating the checksum
// casing to go-ethereum's common.Address.Hex(), the same library the
// teacher's hdwallet.go already signs transactions with.
func EthereumAddress(uncompressedPubKey []byte) (string, error) {
	pub, err := ethcrypto.UnmarshalPubkey(uncompressedPubKey)
	if err != nil {
		return "", sccerr.Wrap("hdkey.EthereumAddress", sccerr.BadInput, err)
	}
	return ethcrypto.PubkeyToAddress(*pub).Hex(), nil
}
