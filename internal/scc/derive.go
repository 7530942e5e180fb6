package scc

import (
	"github.com/jasony/sccwallet/internal/hdkey"
	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
	"github.com/jasony/sccwallet/internal/vault"
)

// DeriveAddress authorises sessionID, decrypts the seed with password,
// and derives the address at m/44'/coin'/accountIdx'/change/addrIdx
// for chain, per spec.md §6's `derive_address` operation. Deriving an
// address is a C3 operation reached through C4's vault, so it passes
// through the same Authorize gate and password check as RevealSeed and
// SignTx, per spec.md §4.5.4.
func (s *Service) DeriveAddress(sessionID, password string, chain hdkey.Chain, accountIdx, change, addrIdx uint32) (*hdkey.DerivedAddress, error) {
	master, err := s.loadMasterKey(sessionID, password)
	if err != nil {
		return nil, err
	}
	return hdkey.DeriveAddress(master, chain, accountIdx, change, addrIdx)
}

// loadMasterKey authorises sessionID, decrypts the seed, and derives
// the BIP32 master key. The seed buffer is wiped before returning.
// Every operation needing the master key (DeriveAddress, SignTx) goes
// through this one path.
func (s *Service) loadMasterKey(sessionID, password string) (*hdkey.ExtendedKey, error) {
	const op = "scc.Service.loadMasterKey"

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

	return hdkey.MasterFromSeed(seed)
}
