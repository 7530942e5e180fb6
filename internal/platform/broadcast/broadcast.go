// Package broadcast defines the block-explorer client capability the
// Secret Custody Core hands signed bytes to. The SCC never parses a
// response body; it only needs a narrow Client interface, per spec.md
// §6 ("the SCC never parses responses; it hands up signed bytes and
// lets the caller broadcast").
package broadcast

import "context"

// Chain names the network a Client operates against.
type Chain string

const (
	ChainBitcoin  Chain = "bitcoin"
	ChainEthereum Chain = "ethereum"
)

// Client is the narrow capability the SCC's callers (not the SCC
// itself) use to submit signed transaction bytes and learn the going
// fee rate. Both concrete variants (blockcypher.go, jsonrpc.go) are
// always compiled in; cmd/sccwallet picks one at runtime from config
// rather than at build time, since either is a cheap, dependency-light
// HTTP client and there is no binary-size pressure to split them.
type Client interface {
	// BroadcastTx submits raw signed transaction bytes for chain and
	// returns the resulting transaction ID.
	BroadcastTx(ctx context.Context, chain Chain, rawTx []byte) (txid string, err error)
	// FeeRate reports the network's current suggested fee rate in
	// satoshis (or wei, for Ethereum gas price) per kilobyte-equivalent
	// unit; callers supply it back into sign_tx's fee inputs.
	FeeRate(ctx context.Context, chain Chain) (satPerKB int64, err error)
}
