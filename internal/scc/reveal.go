package scc

import (
	"encoding/hex"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
	"github.com/jasony/sccwallet/internal/vault"
)

// RevealSeedResult is the plaintext seed material shown to the caller
// exactly once per spec.md §6's `reveal_seed` operation. The caller is
// responsible for wiping the field once displayed.
type RevealSeedResult struct {
	SeedHex string
}

// RevealSeed authorises sessionID, decrypts the user's vault with
// password, and returns the 64-byte seed as hex, per spec.md §6's
// `reveal_seed` operation. The vault only ever stores the derived
// seed, never the original mnemonic words — BIP39's PBKDF2 words-to-seed
// step is one-way, so only the seed hex is returned here.
func (s *Service) RevealSeed(sessionID, password string) (*RevealSeedResult, error) {
	const op = "scc.Service.RevealSeed"

	_, user, err := s.identity.Authorize(sessionID)
	if err != nil {
		return nil, err
	}

	sealed, ok, err := s.vault.Get(user.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sccerr.New(op, sccerr.BadInput)
	}

	mf, err := s.machineFactor.MachineFactor()
	if err != nil {
		return nil, err
	}
	seed, err := vault.Decrypt(sealed, []byte(password), mf)
	if err != nil {
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}
	defer primitives.SecureWipe(seed)

	return &RevealSeedResult{SeedHex: hex.EncodeToString(seed)}, nil
}
