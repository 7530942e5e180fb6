// Package mnemonic implements C2: the BIP39 mnemonic/seed codec. It is
// built on the teacher's own github.com/tyler-smith/go-bip39 dependency
// for the 2048-word list and checksum arithmetic, and adds the NFKD
// normalisation step the spec requires over the joined mnemonic and
// passphrase before PBKDF2.
package mnemonic

import (
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// SeedLength is the byte length of a BIP39-derived seed.
const SeedLength = 64

// validStrengths are the entropy bit-lengths BIP39 permits.
var validStrengths = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

// GenerateMnemonic draws strengthBits of CSPRNG entropy, computes the
// checksum = SHA256(entropy)[0:strengthBits/32] and returns the word
// sequence. The entropy buffer is wiped before return.
func GenerateMnemonic(strengthBits int) ([]string, error) {
	if !validStrengths[strengthBits] {
		return nil, sccerr.New("mnemonic.GenerateMnemonic", sccerr.BadInput)
	}
	entropy, err := primitives.RandomBytesRetry(strengthBits/8, 3)
	if err != nil {
		return nil, err
	}
	defer primitives.SecureWipe(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, sccerr.Wrap("mnemonic.GenerateMnemonic", sccerr.BadInput, err)
	}
	return strings.Fields(phrase), nil
}

// ValidateMnemonic lowercases and NFKD-normalises each word, checks
// each resolves to a unique BIP39 wordlist index, and verifies the
// trailing checksum bits against SHA-256 of the entropy half.
func ValidateMnemonic(words []string) error {
	if len(words) == 0 {
		return sccerr.New("mnemonic.ValidateMnemonic", sccerr.BadMnemonic)
	}
	phrase := normalizeWords(words)
	if !bip39.IsMnemonicValid(phrase) {
		return sccerr.New("mnemonic.ValidateMnemonic", sccerr.BadMnemonic)
	}
	return nil
}

// MnemonicToSeed computes
// PBKDF2-HMAC-SHA512(password=NFKD(words joined by single space),
// salt="mnemonic"+passphrase, iter=2048, dkLen=64). The
// salt is the literal ASCII string "mnemonic" concatenated with the
// NFKD-normalised passphrase, per spec.md §4.2.
func MnemonicToSeed(words []string, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(words); err != nil {
		return nil, err
	}
	phrase := normalizeWords(words)
	normPass := norm.NFKD.String(passphrase)
	seed := bip39.NewSeed(phrase, normPass)
	if len(seed) != SeedLength {
		return nil, sccerr.New("mnemonic.MnemonicToSeed", sccerr.BadInput)
	}
	return seed, nil
}

func normalizeWords(words []string) string {
	normed := make([]string, len(words))
	for i, w := range words {
		normed[i] = norm.NFKD.String(strings.ToLower(w))
	}
	return strings.Join(normed, " ")
}
