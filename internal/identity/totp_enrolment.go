package identity

import (
	"sync"
	"time"

	"github.com/jasony/sccwallet/internal/logging"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// TOTPIssuer names the otpauth:// URI issuer field.
const TOTPIssuer = "SCC Wallet"

// BackupCodeCount is the number of single-use backup codes generated
// on TOTP confirmation, per spec.md §9 (the source uses 10).
const BackupCodeCount = 10

// pendingSecrets holds in-flight enrolment secrets keyed by user ID,
// between BeginTotpEnrolment and ConfirmTotpEnrolment. Per spec.md
// §4.5.3, the secret is not persisted until confirmed, so it only
// ever lives in memory until confirmation or process restart.
type pendingSecrets struct {
	mu      sync.Mutex
	secrets map[string][]byte
}

func newPendingSecrets() *pendingSecrets {
	return &pendingSecrets{secrets: make(map[string][]byte)}
}

func (p *pendingSecrets) put(userID string, secret []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secrets[userID] = secret
}

func (p *pendingSecrets) get(userID string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	secret, ok := p.secrets[userID]
	return secret, ok
}

func (p *pendingSecrets) delete(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.secrets, userID)
}

// BeginTotpEnrolment re-verifies password, generates a fresh 160-bit
// secret, and returns its otpauth URI without persisting anything yet.
func (s *Service) BeginTotpEnrolment(userID, password string) (secret []byte, otpauthURI string, err error) {
	const op = "identity.Service.BeginTotpEnrolment"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", sccerr.New(op, sccerr.InvalidCredentials)
	}
	valid, err := VerifyPassword(user.PasswordVerifier, password)
	if err != nil {
		return nil, "", err
	}
	if !valid {
		return nil, "", sccerr.New(op, sccerr.InvalidCredentials)
	}

	secret, err = GenerateTOTPSecret()
	if err != nil {
		return nil, "", err
	}
	s.pending.put(userID, secret)
	return secret, OTPAuthURI(TOTPIssuer, user.UsernameCanonical, secret), nil
}

// ConfirmTotpEnrolment verifies code against the pending secret with a
// ±1 step window; on success it persists the secret, enables TOTP, and
// generates BackupCodeCount single-use backup codes (returned once,
// stored only as their individual PBKDF2 verifiers).
func (s *Service) ConfirmTotpEnrolment(userID, code string) (backupCodes []string, err error) {
	const op = "identity.Service.ConfirmTotpEnrolment"

	s.mu.Lock()
	defer s.mu.Unlock()

	secret, ok := s.pending.get(userID)
	if !ok {
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}
	if !VerifyTOTP(secret, code, time.Now()) {
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}

	user, ok, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}
	user.TOTPSecret = secret
	user.TOTPEnabled = true
	if err := s.store.PutUser(user); err != nil {
		return nil, err
	}

	plainCodes, err := GenerateBackupCodes(BackupCodeCount)
	if err != nil {
		return nil, err
	}
	stored := make([]*BackupCode, BackupCodeCount)
	for i, pc := range plainCodes {
		verifier, err := NewBackupCodeVerifier(pc)
		if err != nil {
			return nil, err
		}
		stored[i] = &BackupCode{UserID: userID, Index: i, Verifier: verifier}
	}
	if err := s.store.PutBackupCodes(userID, stored); err != nil {
		return nil, err
	}
	s.pending.delete(userID)
	s.log.Info("totp enrolled", logging.String("user_id", userID))
	return plainCodes, nil
}

// VerifyTotpCode checks code against user's persisted, enabled secret.
func (s *Service) VerifyTotpCode(userID, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok, err := s.store.GetUserByID(userID)
	if err != nil {
		return false, err
	}
	if !ok || !user.TOTPEnabled {
		return false, nil
	}
	return VerifyTOTP(user.TOTPSecret, code, time.Now()), nil
}

// UseBackupCode matches code against any unused verifier in constant
// time with respect to which index matched, consumes it on success, and
// disables TOTP per spec.md §4.5.3.
func (s *Service) UseBackupCode(userID, code string) error {
	const op = "identity.Service.UseBackupCode"

	s.mu.Lock()
	defer s.mu.Unlock()

	codes, err := s.store.GetBackupCodes(userID)
	if err != nil {
		return err
	}

	matchedIdx := -1
	for i, bc := range codes {
		if bc.Used {
			continue
		}
		ok, verr := VerifyPassword(bc.Verifier, code)
		if verr != nil {
			continue
		}
		if ok && matchedIdx == -1 {
			matchedIdx = i
		}
	}
	if matchedIdx == -1 {
		return sccerr.New(op, sccerr.InvalidCredentials)
	}

	codes[matchedIdx].Used = true
	if err := s.store.PutBackupCodes(userID, codes); err != nil {
		return err
	}

	user, ok, err := s.store.GetUserByID(userID)
	if err != nil {
		return err
	}
	if ok {
		user.TOTPEnabled = false
		if err := s.store.PutUser(user); err != nil {
			return err
		}
	}
	return nil
}

// DisableTotp requires both password and a current code to succeed,
// per spec.md §4.5.3.
func (s *Service) DisableTotp(userID, password, code string) error {
	const op = "identity.Service.DisableTotp"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok, err := s.store.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !ok {
		return sccerr.New(op, sccerr.InvalidCredentials)
	}
	validPW, err := VerifyPassword(user.PasswordVerifier, password)
	if err != nil {
		return err
	}
	if !validPW || !VerifyTOTP(user.TOTPSecret, code, time.Now()) {
		return sccerr.New(op, sccerr.InvalidCredentials)
	}
	user.TOTPEnabled = false
	user.TOTPSecret = nil
	return s.store.PutUser(user)
}
