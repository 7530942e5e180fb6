package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONRPCBroadcastTxBitcoin(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotMethod = req.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"abc123"}`))
	}))
	defer srv.Close()

	c := NewJSONRPCClient(srv.URL)
	txid, err := c.BroadcastTx(context.Background(), ChainBitcoin, []byte{0xAB})
	if err != nil {
		t.Fatalf("BroadcastTx: %v", err)
	}
	if txid != "abc123" {
		t.Errorf("txid = %s, want abc123", txid)
	}
	if gotMethod != "sendrawtransaction" {
		t.Errorf("method = %s, want sendrawtransaction", gotMethod)
	}
}

func TestJSONRPCBroadcastTxEthereum(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotMethod = req.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0xdeadbeef"}`))
	}))
	defer srv.Close()

	c := NewJSONRPCClient(srv.URL)
	txid, err := c.BroadcastTx(context.Background(), ChainEthereum, []byte{0xAB})
	if err != nil {
		t.Fatalf("BroadcastTx: %v", err)
	}
	if txid != "0xdeadbeef" {
		t.Errorf("txid = %s, want 0xdeadbeef", txid)
	}
	if gotMethod != "eth_sendRawTransaction" {
		t.Errorf("method = %s, want eth_sendRawTransaction", gotMethod)
	}
}

func TestJSONRPCCallPropagatesRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"message":"insufficient fee"}}`))
	}))
	defer srv.Close()

	c := NewJSONRPCClient(srv.URL)
	if _, err := c.BroadcastTx(context.Background(), ChainBitcoin, []byte{0x01}); err == nil {
		t.Error("expected the RPC error to propagate")
	}
}

func TestJSONRPCFeeRateParsesHexGasPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x3b9aca00"}`))
	}))
	defer srv.Close()

	c := NewJSONRPCClient(srv.URL)
	rate, err := c.FeeRate(context.Background(), ChainEthereum)
	if err != nil {
		t.Fatalf("FeeRate: %v", err)
	}
	if rate != 1_000_000_000 {
		t.Errorf("rate = %d, want 1000000000", rate)
	}
}
