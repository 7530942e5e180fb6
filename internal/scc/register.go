package scc

import (
	"github.com/jasony/sccwallet/internal/logging"
	"github.com/jasony/sccwallet/internal/mnemonic"
	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/vault"
)

// DefaultMnemonicStrengthBits is the default registration entropy
// (12 words), per spec.md §9's open-question resolution; passing
// LongMnemonicStrengthBits to Register opts into the 24-word form.
const DefaultMnemonicStrengthBits = 128

// LongMnemonicStrengthBits is the 24-word opt-in strength.
const LongMnemonicStrengthBits = 256

// RegisterResult is the output of Register: the new user's ID and the
// freshly generated mnemonic, shown to the caller exactly once.
type RegisterResult struct {
	UserID   string
	Mnemonic []string
}

// Register creates a new user, generates a fresh mnemonic at
// strengthBits, derives its seed, and seals it into the vault, per
// spec.md §6's `register` operation. Pass 0 for strengthBits to use
// DefaultMnemonicStrengthBits.
func (s *Service) Register(username, password string, strengthBits int) (*RegisterResult, error) {
	if strengthBits == 0 {
		strengthBits = DefaultMnemonicStrengthBits
	}

	words, err := mnemonic.GenerateMnemonic(strengthBits)
	if err != nil {
		return nil, err
	}
	return s.finishRegistration(username, password, words, "")
}

// RegisterFromMnemonic creates a new user from a caller-supplied
// mnemonic and passphrase, per spec.md §6's `register_from_mnemonic`
// operation (restoring an existing wallet rather than generating one).
func (s *Service) RegisterFromMnemonic(username, password string, words []string, passphrase string) (*RegisterResult, error) {
	if err := mnemonic.ValidateMnemonic(words); err != nil {
		return nil, err
	}
	return s.finishRegistration(username, password, words, passphrase)
}

func (s *Service) finishRegistration(username, password string, words []string, passphrase string) (*RegisterResult, error) {
	seed, err := mnemonic.MnemonicToSeed(words, passphrase)
	if err != nil {
		return nil, err
	}
	defer primitives.SecureWipe(seed)

	user, err := s.identity.CreateUser(username, password)
	if err != nil {
		return nil, err
	}

	mf, err := s.machineFactor.MachineFactor()
	if err != nil {
		return nil, err
	}
	sealed, err := vault.Encrypt(seed, []byte(password), mf, s.vaultIterations)
	if err != nil {
		return nil, err
	}
	if err := s.vault.Put(user.ID, sealed); err != nil {
		return nil, err
	}

	s.log.Info("user registered with vault", logging.String("user_id", user.ID))
	return &RegisterResult{UserID: user.ID, Mnemonic: words}, nil
}
