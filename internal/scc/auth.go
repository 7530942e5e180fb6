package scc

import "github.com/jasony/sccwallet/internal/identity"

// LoginResult is the output of Login: a session in either PendingTotp
// or Active state, and whether TOTP confirmation is still required.
type LoginResult struct {
	SessionID string
	NeedsTotp bool
}

// Login authenticates username/password and issues a session, per
// spec.md §6's `login` operation.
func (s *Service) Login(username, password string) (*LoginResult, error) {
	user, err := s.identity.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	sess, err := s.identity.IssueSession(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SessionID: sess.ID, NeedsTotp: sess.State == identity.StatePendingTotp}, nil
}

// SubmitTotp confirms a pending session with a TOTP code, per spec.md
// §6's `submit_totp` operation.
func (s *Service) SubmitTotp(sessionID, code string) error {
	_, err := s.identity.SubmitTotp(sessionID, code)
	return err
}

// Logout invalidates sessionID, per spec.md §6's `logout` operation.
func (s *Service) Logout(sessionID string) error {
	return s.identity.Logout(sessionID)
}

// EnableTotp begins TOTP enrolment for the user behind sessionID,
// returning the otpauth:// URI for QR display, per spec.md §6's
// `enable_totp` operation.
func (s *Service) EnableTotp(sessionID, password string) (otpauthURI string, err error) {
	_, user, err := s.identity.Authorize(sessionID)
	if err != nil {
		return "", err
	}
	_, uri, err := s.identity.BeginTotpEnrolment(user.ID, password)
	if err != nil {
		return "", err
	}
	return uri, nil
}

// ConfirmTotp completes TOTP enrolment, returning the one-time display
// of generated backup codes, per spec.md §6's `confirm_totp` operation.
func (s *Service) ConfirmTotp(sessionID, code string) (backupCodes []string, err error) {
	_, user, err := s.identity.Authorize(sessionID)
	if err != nil {
		return nil, err
	}
	return s.identity.ConfirmTotpEnrolment(user.ID, code)
}

// DisableTotp turns off TOTP for the user behind sessionID, requiring
// both password and a current code, per spec.md §6's `disable_totp`
// operation.
func (s *Service) DisableTotp(sessionID, password, code string) error {
	_, user, err := s.identity.Authorize(sessionID)
	if err != nil {
		return err
	}
	return s.identity.DisableTotp(user.ID, password, code)
}

// UseBackupCode consumes a single-use backup code in place of a TOTP
// code, per spec.md §6's `use_backup_code` operation.
func (s *Service) UseBackupCode(sessionID, code string) error {
	_, user, err := s.identity.Authorize(sessionID)
	if err != nil {
		return err
	}
	return s.identity.UseBackupCode(user.ID, code)
}
