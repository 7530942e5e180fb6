package hdkey

import (
	"github.com/jasony/sccwallet/internal/sccerr"
)

// DerivedAddress is the result of deriving and encoding an address at a
// BIP44 leaf path.
type DerivedAddress struct {
	Path    Path
	Address string
	// PubKeyCompressed is the 33-byte compressed secp256k1 public key.
	PubKeyCompressed []byte
}

// DeriveAddress derives m/44'/coin'/account'/change/index from master
// and encodes the resulting address for chain. Bitcoin addresses use
// P2PKH; Ethereum uses the EIP-55 checksummed hex form.
func DeriveAddress(master *ExtendedKey, chain Chain, account, change, index uint32) (*DerivedAddress, error) {
	path := BIP44Path(chain, account, change, index)
	leaf, err := DerivePath(master, path)
	if err != nil {
		return nil, err
	}
	pub, err := leaf.ECPubKey()
	if err != nil {
		return nil, err
	}
	compressed := pub.SerializeCompressed()

	var address string
	switch chain {
	case ChainBitcoin:
		address = P2PKHAddress(compressed, false)
	case ChainBitcoinTestnet:
		address = P2PKHAddress(compressed, true)
	case ChainLitecoin:
		address = P2PKHAddressWithVersion(compressed, ltcMainnetP2PKHVersion)
	case ChainEthereum:
		address, err = EthereumAddress(pub.SerializeUncompressed())
		if err != nil {
			return nil, err
		}
	default:
		return nil, sccerr.New("hdkey.DeriveAddress", sccerr.BadInput)
	}

	return &DerivedAddress{Path: path, Address: address, PubKeyCompressed: compressed}, nil
}
