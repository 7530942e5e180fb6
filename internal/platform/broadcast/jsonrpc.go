package broadcast

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// JSONRPCClient implements Client against any JSON-RPC 2.0 endpoint
// (a local bitcoind via `sendrawtransaction`, or an Ethereum node via
// `eth_sendRawTransaction`/`eth_gasPrice`).
type JSONRPCClient struct {
	endpoint string
	http     *http.Client
}

func NewJSONRPCClient(endpoint string) *JSONRPCClient {
	return &JSONRPCClient{endpoint: endpoint, http: &http.Client{Timeout: 15 * time.Second}}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *JSONRPCClient) call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	const op = "broadcast.JSONRPCClient.call"
	reqBody, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	defer resp.Body.Close()

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	if out.Error != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, fmt.Errorf("%s: %s", method, out.Error.Message))
	}
	return out.Result, nil
}

func (c *JSONRPCClient) BroadcastTx(ctx context.Context, chain Chain, rawTx []byte) (string, error) {
	const op = "broadcast.JSONRPCClient.BroadcastTx"
	method := "sendrawtransaction"
	param := hex.EncodeToString(rawTx)
	if chain == ChainEthereum {
		method = "eth_sendRawTransaction"
		param = "0x" + param
	}
	raw, err := c.call(ctx, method, param)
	if err != nil {
		return "", err
	}
	var txid string
	if err := json.Unmarshal(raw, &txid); err != nil {
		return "", sccerr.Wrap(op, sccerr.BadInput, err)
	}
	return txid, nil
}

func (c *JSONRPCClient) FeeRate(ctx context.Context, chain Chain) (int64, error) {
	const op = "broadcast.JSONRPCClient.FeeRate"
	method := "estimatesmartfee"
	if chain == ChainEthereum {
		method = "eth_gasPrice"
	}
	raw, err := c.call(ctx, method)
	if err != nil {
		return 0, err
	}
	var hexVal string
	if err := json.Unmarshal(raw, &hexVal); err == nil && len(hexVal) > 2 {
		var v int64
		if _, err := fmt.Sscanf(hexVal, "0x%x", &v); err == nil {
			return v, nil
		}
	}
	var numeric float64
	if err := json.Unmarshal(raw, &numeric); err != nil {
		return 0, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	return int64(numeric), nil
}
