// Package identity implements C5: user registration/login, PBKDF2
// password verification, rate limiting, TOTP enrolment/verification,
// and session lifecycle, per spec.md §4.5.
package identity

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jasony/sccwallet/internal/logging"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// Service orchestrates C5's state machines. Per spec.md §5, the
// session table and rate-limit table are guarded by one coarse lock
// held for the duration of any state-mutating operation; read-only
// lookups use a shared lock. Mirroring the teacher's own
// `stateLock sync.RWMutex` field on Wallet.
type Service struct {
	store   *Store
	log     *logging.Logger
	mu      sync.RWMutex
	pending *pendingSecrets

	verifierIterations int
	sessionTTL         time.Duration
	rateLimitWindow    time.Duration
	rateLimitThreshold int
	rateLimitLockout   time.Duration
}

// Options configures a Service's tunables beyond its storage handle.
// A zero value for any field falls back to the matching compiled-in
// spec constant, so callers only need to set what they want to
// override.
type Options struct {
	VerifierIterations int
	SessionTTL         time.Duration
	RateLimitWindow    time.Duration
	RateLimitThreshold int
	RateLimitLockout   time.Duration
}

func NewService(store *Store, log *logging.Logger, opts Options) *Service {
	if log == nil {
		log = logging.NewNop()
	}
	verifierIterations := opts.VerifierIterations
	if verifierIterations <= 0 {
		verifierIterations = VerifierIterations
	}
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = SessionTTL
	}
	rateLimitWindow := opts.RateLimitWindow
	if rateLimitWindow <= 0 {
		rateLimitWindow = RateLimitWindow
	}
	rateLimitThreshold := opts.RateLimitThreshold
	if rateLimitThreshold <= 0 {
		rateLimitThreshold = RateLimitThreshold
	}
	rateLimitLockout := opts.RateLimitLockout
	if rateLimitLockout <= 0 {
		rateLimitLockout = RateLimitLockout
	}
	return &Service{
		store:   store,
		log:     log,
		pending: newPendingSecrets(),

		verifierIterations: verifierIterations,
		sessionTTL:         sessionTTL,
		rateLimitWindow:    rateLimitWindow,
		rateLimitThreshold: rateLimitThreshold,
		rateLimitLockout:   rateLimitLockout,
	}
}

// CreateUser validates username/password, generates the password
// verifier, and persists a new, inactive-TOTP User. It fails UserExists
// if the canonical username is already taken.
func (s *Service) CreateUser(username, password string) (*User, error) {
	const op = "identity.Service.CreateUser"
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	canonical := CanonicalUsername(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok, err := s.store.GetUserByUsername(canonical); err != nil {
		return nil, err
	} else if ok {
		return nil, sccerr.New(op, sccerr.UserExists)
	}

	authSalt, verifier, err := NewPasswordVerifierWithIterations(password, s.verifierIterations)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:                NewUserID(),
		UsernameCanonical: canonical,
		PasswordVerifier:  verifier,
		AuthSalt:          authSalt,
		CreatedAt:         now,
		IsActive:          true,
	}
	if err := s.store.PutUser(u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", logging.String("user_id", u.ID))
	return u, nil
}

// Authenticate verifies username/password against rate-limit state,
// per spec.md §4.5.2. On success it resets the rate-limit entry and
// returns the User; on any failure it returns InvalidCredentials or
// RateLimited without revealing which check failed, and records the
// failure against the rate-limit window.
func (s *Service) Authenticate(username, password string) (*User, error) {
	const op = "identity.Service.Authenticate"
	canonical := CanonicalUsername(username)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok, err := s.store.GetRateLimit(canonical)
	if err != nil {
		return nil, err
	}
	if !ok {
		entry = &RateLimitEntry{Identifier: canonical}
	}
	if entry.Locked(now) {
		return nil, sccerr.New(op, sccerr.RateLimited)
	}

	user, ok, err := s.store.GetUserByUsername(canonical)
	if err != nil {
		return nil, err
	}

	// A missing user is treated identically to a wrong password: the
	// response must not let a caller enumerate valid usernames.
	valid := false
	if ok && user.IsActive {
		valid, err = VerifyPassword(user.PasswordVerifier, password)
		if err != nil {
			return nil, err
		}
	}

	if !valid {
		entry.RecordFailure(now, s.rateLimitWindow, s.rateLimitThreshold, s.rateLimitLockout)
		if putErr := s.store.PutRateLimit(entry); putErr != nil {
			return nil, putErr
		}
		if entry.Locked(now) {
			return nil, sccerr.New(op, sccerr.RateLimited)
		}
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}

	entry.Reset()
	if err := s.store.PutRateLimit(entry); err != nil {
		return nil, err
	}
	user.LastLoginAt = now
	if err := s.store.PutUser(user); err != nil {
		return nil, err
	}
	s.log.Info("login succeeded", logging.String("user_id", user.ID))
	return user, nil
}

// IssueSession creates a fresh Session for user. If TOTP is enabled the
// session starts PendingTotp (totpSatisfied=false); otherwise it starts
// Active, per spec.md §4.5.2 step 4.
func (s *Service) IssueSession(user *User) (*Session, error) {
	id, err := NewSessionID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	state := StateActive
	if user.TOTPEnabled {
		state = StatePendingTotp
	}
	sess := &Session{
		ID: id, UserID: user.ID, CreatedAt: now, LastActivityAt: now,
		ExpiresAt: now.Add(s.sessionTTL), State: state,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.PutSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SubmitTotp transitions a PendingTotp session to Active on a correct
// code, per spec.md §4.5.4. It fails InvalidCredentials and leaves the
// session state unchanged otherwise.
func (s *Service) SubmitTotp(sessionID, code string) (*Session, error) {
	const op = "identity.Service.SubmitTotp"

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sccerr.New(op, sccerr.SessionUnknown)
	}
	now := time.Now()
	if now.After(sess.ExpiresAt) || sess.State == StateInvalidated || sess.State == StateExpired {
		return nil, sccerr.New(op, sccerr.SessionExpired)
	}
	if sess.State != StatePendingTotp {
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}

	user, ok, err := s.store.GetUserByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	if !ok || !VerifyTOTP(user.TOTPSecret, code, now) {
		return nil, sccerr.New(op, sccerr.InvalidCredentials)
	}

	sess.State = StateActive
	sess.Touch(now, s.sessionTTL)
	if err := s.store.PutSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Authorize loads sessionID, checks it is Active and unexpired, slides
// its expiry, and returns the backing User. It is the single gate every
// C3/C4-touching operation passes through, per spec.md §4.5.4/§5.
func (s *Service) Authorize(sessionID string) (*Session, *User, error) {
	const op = "identity.Service.Authorize"

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, sccerr.New(op, sccerr.SessionUnknown)
	}

	now := time.Now()
	if !sess.Authorized(now) {
		if sess.State == StateActive {
			sess.State = StateExpired
			_ = s.store.PutSession(sess)
		}
		return nil, nil, sccerr.New(op, sccerr.SessionExpired)
	}

	sess.Touch(now, s.sessionTTL)
	if err := s.store.PutSession(sess); err != nil {
		return nil, nil, err
	}

	user, ok, err := s.store.GetUserByID(sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, sccerr.New(op, sccerr.SessionUnknown)
	}
	return sess, user, nil
}

// Logout invalidates a session regardless of its current state.
func (s *Service) Logout(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok, err := s.store.GetSession(sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	sess.State = StateInvalidated
	return s.store.PutSession(sess)
}

// SweepExpired scans the sessions table and transitions any session
// whose ExpiresAt has passed to Expired. Per spec.md §5, correctness
// never depends on this running — Authorize re-checks expiry on every
// use regardless. It reads the full set of expired session IDs under
// one transaction, then writes each update in its own transaction:
// goleveldb allows only one outstanding transaction on a DB at a time,
// so the write side must not be nested inside the scan.
func (s *Service) SweepExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired, err := s.scanExpiredSessions(now)
	if err != nil {
		s.log.Warn("sweeper: scan failed", logging.Err(err))
		return
	}
	for _, sess := range expired {
		sess.State = StateExpired
		if err := s.store.PutSession(sess); err != nil {
			s.log.Warn("sweeper: put failed", logging.Err(err), logging.String("session_id", sess.ID))
		}
	}
}

// RunSweeper runs SweepExpired on a ticker until ctx is cancelled.
// Per spec.md §5, correctness never depends on this running — it is
// an optional background convenience the caller starts explicitly for
// long-running processes; one-shot CLI invocations never start it.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.SweepExpired(t)
		}
	}
}

func (s *Service) scanExpiredSessions(now time.Time) ([]*Session, error) {
	tx, err := s.store.kv.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	it, err := tx.Scan(TableSessions, "")
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var expired []*Session
	for it.Next() {
		var sess Session
		if err := json.Unmarshal(it.Value(), &sess); err != nil {
			continue
		}
		if sess.State == StateActive && now.After(sess.ExpiresAt) {
			s := sess
			expired = append(expired, &s)
		}
	}
	return expired, it.Error()
}
