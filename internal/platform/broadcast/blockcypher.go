package broadcast

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// BlockCypherClient implements Client against the blockcypher.com REST
// API. It only ever sends raw hex and reads back a txid/fee field — it
// never inspects transaction semantics, keeping the "SCC never parses
// responses" boundary one layer further out than this package.
type BlockCypherClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewBlockCypherClient builds a client against the default
// blockcypher.com host; token may be empty for blockcypher's free tier.
func NewBlockCypherClient(token string) *BlockCypherClient {
	return &BlockCypherClient{
		baseURL: "https://api.blockcypher.com/v1",
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *BlockCypherClient) chainPath(chain Chain) (string, error) {
	switch chain {
	case ChainBitcoin:
		return "btc/main", nil
	default:
		return "", sccerr.New("broadcast.BlockCypherClient.chainPath", sccerr.BadInput)
	}
}

func (c *BlockCypherClient) BroadcastTx(ctx context.Context, chain Chain, rawTx []byte) (string, error) {
	const op = "broadcast.BlockCypherClient.BroadcastTx"
	path, err := c.chainPath(chain)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(struct {
		Tx string `json:"tx"`
	}{Tx: hex.EncodeToString(rawTx)})
	if err != nil {
		return "", sccerr.Wrap(op, sccerr.BadInput, err)
	}

	url := fmt.Sprintf("%s/%s/txs/push", c.baseURL, path)
	if c.token != "" {
		url += "?token=" + c.token
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return "", sccerr.Wrap(op, sccerr.BadInput, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	defer resp.Body.Close()

	var out struct {
		Tx struct {
			Hash string `json:"hash"`
		} `json:"tx"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", sccerr.Wrap(op, sccerr.BadInput, err)
	}
	return out.Tx.Hash, nil
}

func (c *BlockCypherClient) FeeRate(ctx context.Context, chain Chain) (int64, error) {
	const op = "broadcast.BlockCypherClient.FeeRate"
	path, err := c.chainPath(chain)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, path), nil)
	if err != nil {
		return 0, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	defer resp.Body.Close()

	var out struct {
		MediumFeePerKB int64 `json:"medium_fee_per_kb"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	return out.MediumFeePerKB, nil
}
