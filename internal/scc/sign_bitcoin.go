package scc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"

	"github.com/jasony/sccwallet/internal/hdkey"
	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// BitcoinUTXOInput is one spendable output being consumed, carrying
// the BIP44 path that derives its signing key, per spec.md §4.5.5
// ("derive per-input private keys via BIP44 path recorded alongside
// each UTXO").
type BitcoinUTXOInput struct {
	TxID                        string
	Vout                        uint32
	ValueSats                   int64
	AccountIdx, Change, AddrIdx uint32
}

// BitcoinTxOutput is one P2PKH or P2WPKH payment destination.
type BitcoinTxOutput struct {
	Address   string
	ValueSats int64
}

// BitcoinTxSpec is the chain-specific input to SignBitcoinTx, per
// spec.md §4.5.5's `sign_bitcoin_tx` operation.
type BitcoinTxSpec struct {
	Inputs  []BitcoinUTXOInput
	Outputs []BitcoinTxOutput
	Testnet bool
}

// SignBitcoinTx authorises sessionID, decrypts the seed, derives each
// input's private key at its recorded BIP44 path, computes the legacy
// SigHashAll sighash per input, signs with
// primitives.SignDeterministic (RFC 6979 + low-S), and serialises the
// fully-signed transaction, per spec.md §4.5.5.
func (s *Service) SignBitcoinTx(sessionID, password string, spec BitcoinTxSpec) ([]byte, error) {
	const op = "scc.Service.SignBitcoinTx"
	if len(spec.Inputs) == 0 || len(spec.Outputs) == 0 {
		return nil, sccerr.New(op, sccerr.BadInput)
	}

	master, err := s.loadMasterKey(sessionID, password)
	if err != nil {
		return nil, err
	}

	params := &chaincfg.MainNetParams
	chain := hdkey.ChainBitcoin
	if spec.Testnet {
		params = &chaincfg.TestNet3Params
		chain = hdkey.ChainBitcoinTestnet
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	prevPkScripts := make([][]byte, len(spec.Inputs))
	privKeys := make([]*btcec.PrivateKey, len(spec.Inputs))

	for i, in := range spec.Inputs {
		hash, err := chainhash.NewHashFromStr(in.TxID)
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(hash, in.Vout), nil, nil))

		leaf, err := hdkey.DerivePath(master, hdkey.BIP44Path(chain, in.AccountIdx, in.Change, in.AddrIdx))
		if err != nil {
			return nil, err
		}
		priv, err := leaf.ECPrivKey()
		if err != nil {
			return nil, err
		}
		privKeys[i] = priv

		addr, err := btcutil.NewAddressPubKeyHash(primitives.Hash160(priv.PubKey().SerializeCompressed()), params)
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		pkScript, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		prevPkScripts[i] = pkScript
	}

	for _, out := range spec.Outputs {
		addr, err := btcutil.DecodeAddress(out.Address, params)
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		pkScript, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		tx.AddTxOut(wire.NewTxOut(out.ValueSats, pkScript))
	}

	for i := range spec.Inputs {
		sigHash, err := txscript.CalcSignatureHash(prevPkScripts[i], txscript.SigHashAll, tx, i)
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		sig, err := primitives.SignDeterministic(privKeys[i].Serialize(), sigHash)
		if err != nil {
			return nil, err
		}
		der := primitives.DEREncode(sig)
		sigScript, err := txscript.NewScriptBuilder().
			AddData(append(der, byte(txscript.SigHashAll))).
			AddData(privKeys[i].PubKey().SerializeCompressed()).
			Script()
		if err != nil {
			return nil, sccerr.Wrap(op, sccerr.BadInput, err)
		}
		tx.TxIn[i].SignatureScript = sigScript
	}

	for _, priv := range privKeys {
		scalar := priv.Serialize()
		primitives.SecureWipe(scalar)
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	return buf.Bytes(), nil
}
