package broadcast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestBlockCypherClient(baseURL string) *BlockCypherClient {
	return &BlockCypherClient{baseURL: baseURL, http: http.DefaultClient}
}

func TestBlockCypherBroadcastTx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tx":{"hash":"deadbeef"}}`))
	}))
	defer srv.Close()

	c := newTestBlockCypherClient(srv.URL)
	txid, err := c.BroadcastTx(context.Background(), ChainBitcoin, []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("BroadcastTx: %v", err)
	}
	if txid != "deadbeef" {
		t.Errorf("txid = %s, want deadbeef", txid)
	}
}

func TestBlockCypherFeeRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"medium_fee_per_kb":12345}`))
	}))
	defer srv.Close()

	c := newTestBlockCypherClient(srv.URL)
	rate, err := c.FeeRate(context.Background(), ChainBitcoin)
	if err != nil {
		t.Fatalf("FeeRate: %v", err)
	}
	if rate != 12345 {
		t.Errorf("rate = %d, want 12345", rate)
	}
}

func TestBlockCypherRejectsUnsupportedChain(t *testing.T) {
	c := newTestBlockCypherClient("http://example.invalid")
	if _, err := c.BroadcastTx(context.Background(), ChainEthereum, []byte{0x01}); err == nil {
		t.Error("expected an error for a chain BlockCypherClient does not support")
	}
}
