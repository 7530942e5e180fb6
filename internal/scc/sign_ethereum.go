package scc

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/jasony/sccwallet/internal/hdkey"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// EthereumTxSpec is the chain-specific input to SignEthereumTx, per
// spec.md §4.5.5's `sign_ethereum_tx` operation.
type EthereumTxSpec struct {
	AccountIdx, Change, AddrIdx uint32
	Nonce                       uint64
	GasPrice                    *big.Int
	GasLimit                    uint64
	To                          common.Address
	Value                       *big.Int
	Data                        []byte
	ChainID                     *big.Int
}

// SignEthereumTx authorises sessionID, decrypts the seed, derives the
// signing key at the Ethereum BIP44 path, and returns an EIP-155
// signed, RLP-encoded transaction, per spec.md §4.5.5: the signature's
// v is set to recovery_id + 35 + 2*chainId by
// go-ethereum's own EIP155Signer — the same library the teacher's
// hdwallet.go already uses for SignTx, generalised from its
// HomesteadSigner to an explicit chain ID.
func (s *Service) SignEthereumTx(sessionID, password string, spec EthereumTxSpec) ([]byte, error) {
	const op = "scc.Service.SignEthereumTx"
	if spec.ChainID == nil || spec.GasPrice == nil || spec.Value == nil {
		return nil, sccerr.New(op, sccerr.BadInput)
	}

	master, err := s.loadMasterKey(sessionID, password)
	if err != nil {
		return nil, err
	}

	leaf, err := hdkey.DerivePath(master, hdkey.BIP44Path(hdkey.ChainEthereum, spec.AccountIdx, spec.Change, spec.AddrIdx))
	if err != nil {
		return nil, err
	}
	privKey, err := leaf.ECPrivKey()
	if err != nil {
		return nil, err
	}
	ecdsaPriv := privKey.ToECDSA()
	defer ecdsaPriv.D.SetInt64(0)

	tx := types.NewTransaction(spec.Nonce, spec.To, spec.Value, spec.GasLimit, spec.GasPrice, spec.Data)
	signer := types.NewEIP155Signer(spec.ChainID)
	signedTx, err := types.SignTx(tx, signer, ecdsaPriv)
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}

	raw, err := rlp.EncodeToBytes(signedTx)
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	return raw, nil
}
