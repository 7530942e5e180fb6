package scc

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"

	"github.com/jasony/sccwallet/internal/hdkey"
)

func registerAndLogin(t *testing.T, svc *Service, username string) string {
	t.Helper()
	if _, err := svc.Register(username, testPassword, 0); err != nil {
		t.Fatalf("Register: %v", err)
	}
	login, err := svc.Login(username, testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return login.SessionID
}

func TestSignEthereumTxProducesValidSignature(t *testing.T) {
	svc := newTestService(t)
	session := registerAndLogin(t, svc, "ethuser")

	spec := EthereumTxSpec{
		Nonce:    0,
		GasPrice: big.NewInt(1_000_000_000),
		GasLimit: 21000,
		To:       common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Value:    big.NewInt(0),
		ChainID:  big.NewInt(1),
	}
	raw, err := svc.SignEthereumTx(session, testPassword, spec)
	if err != nil {
		t.Fatalf("SignEthereumTx: %v", err)
	}

	var signedTx types.Transaction
	if err := rlp.DecodeBytes(raw, &signedTx); err != nil {
		t.Fatalf("rlp.DecodeBytes: %v", err)
	}

	signer := types.NewEIP155Signer(spec.ChainID)
	sender, err := types.Sender(signer, &signedTx)
	if err != nil {
		t.Fatalf("recovering sender from signature: %v", err)
	}

	derived, err := svc.DeriveAddress(session, testPassword, hdkey.ChainEthereum, 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}
	if sender.Hex() != derived.Address {
		t.Errorf("recovered sender = %s, want %s", sender.Hex(), derived.Address)
	}
}

func TestSignEthereumTxRejectsMissingChainID(t *testing.T) {
	svc := newTestService(t)
	session := registerAndLogin(t, svc, "ethuser2")

	spec := EthereumTxSpec{
		GasPrice: big.NewInt(1),
		Value:    big.NewInt(0),
		To:       common.HexToAddress("0x0000000000000000000000000000000000000001"),
	}
	if _, err := svc.SignEthereumTx(session, testPassword, spec); err == nil {
		t.Error("expected an error when ChainID is nil")
	}
}

func TestSignBitcoinTxProducesValidScript(t *testing.T) {
	svc := newTestService(t)
	session := registerAndLogin(t, svc, "btcuser")

	derived, err := svc.DeriveAddress(session, testPassword, hdkey.ChainBitcoin, 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}

	const inputValue = int64(100_000)
	spec := BitcoinTxSpec{
		Inputs: []BitcoinUTXOInput{
			{TxID: "0000000000000000000000000000000000000000000000000000000000000001", Vout: 0, ValueSats: inputValue},
		},
		Outputs: []BitcoinTxOutput{
			{Address: derived.Address, ValueSats: inputValue - 1000},
		},
	}
	raw, err := svc.SignBitcoinTx(session, testPassword, spec)
	if err != nil {
		t.Fatalf("SignBitcoinTx: %v", err)
	}

	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		t.Fatalf("tx.Deserialize: %v", err)
	}
	if len(tx.TxIn) != 1 || len(tx.TxOut) != 1 {
		t.Fatalf("tx has %d inputs and %d outputs, want 1 and 1", len(tx.TxIn), len(tx.TxOut))
	}

	addr, err := btcutil.DecodeAddress(derived.Address, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("btcutil.DecodeAddress: %v", err)
	}
	prevScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		t.Fatalf("txscript.PayToAddrScript: %v", err)
	}

	vm, err := txscript.NewEngine(prevScript, &tx, 0, txscript.StandardVerifyFlags, nil, nil, inputValue)
	if err != nil {
		t.Fatalf("txscript.NewEngine: %v", err)
	}
	if err := vm.Execute(); err != nil {
		t.Errorf("script verification failed: %v", err)
	}
}

func TestSignBitcoinTxRejectsEmptySpec(t *testing.T) {
	svc := newTestService(t)
	session := registerAndLogin(t, svc, "btcuser2")

	if _, err := svc.SignBitcoinTx(session, testPassword, BitcoinTxSpec{}); err == nil {
		t.Error("expected an error for a spec with no inputs or outputs")
	}
}
