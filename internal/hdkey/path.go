package hdkey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// HardenedOffset is added to an index to mark hardened derivation
// (BIP32's child number >= 2^31).
const HardenedOffset uint32 = 0x80000000

// Path is a parsed BIP32/BIP44 derivation path, e.g.
// m/44'/60'/0'/0/0.
type Path []uint32

// BIP44Path builds the standard m/44'/coin'/account'/change/index path
// for chain, per spec.md §4.3: Bitcoin mainnet uses coin type 0,
// Bitcoin testnet 1, Ethereum 60.
func BIP44Path(chain Chain, account, change, index uint32) Path {
	return Path{
		44 + HardenedOffset,
		chain.CoinType() + HardenedOffset,
		account + HardenedOffset,
		change,
		index,
	}
}

// ParsePath parses the textual form "m/44'/60'/0'/0/0" (whitespace
// ignored, no prefix required on relative paths) into a Path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) == 0 {
		return nil, sccerr.New("hdkey.ParsePath", sccerr.BadInput)
	}
	if parts[0] == "m" {
		parts = parts[1:]
	}
	path := make(Path, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		hardened := strings.HasSuffix(p, "'") || strings.HasSuffix(p, "h") || strings.HasSuffix(p, "H")
		numStr := p
		if hardened {
			numStr = p[:len(p)-1]
		}
		n, err := strconv.ParseUint(numStr, 10, 32)
		if err != nil {
			return nil, sccerr.Wrap("hdkey.ParsePath", sccerr.BadInput, err)
		}
		idx := uint32(n)
		if hardened {
			idx += HardenedOffset
		}
		path = append(path, idx)
	}
	return path, nil
}

// String renders the path back into "m/44'/60'/0'/0/0" form.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, n := range p {
		if n >= HardenedOffset {
			fmt.Fprintf(&b, "/%d'", n-HardenedOffset)
		} else {
			fmt.Fprintf(&b, "/%d", n)
		}
	}
	return b.String()
}
