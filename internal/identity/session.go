package identity

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// SessionTTL is the sliding session expiry window, per spec.md §3/§5.
const SessionTTL = 15 * time.Minute

// SessionIDLen is the raw byte length whose base64url encoding yields
// the spec's "32 random chars, URL-safe" session id.
const SessionIDLen = 24

// State is a Session's lifecycle state, per spec.md §4.5.4.
type State string

const (
	StatePendingTotp  State = "pending_totp"
	StateActive       State = "active"
	StateExpired      State = "expired"
	StateInvalidated  State = "invalidated"
)

// Session is the short-lived authorisation handle returned by Login,
// per spec.md §3. It stores UserID, never a pointer to User — a weak
// reference resolved lazily at each use, per spec.md §9.
type Session struct {
	ID             string
	UserID         string
	CreatedAt      time.Time
	LastActivityAt time.Time
	ExpiresAt      time.Time
	State          State
}

// NewSessionID generates a 32-character URL-safe random session id.
func NewSessionID() (string, error) {
	buf := make([]byte, SessionIDLen)
	if _, err := rand.Read(buf); err != nil {
		return "", sccerr.Wrap("identity.NewSessionID", sccerr.RngFailure, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Authorized reports whether s may authorise a signing/derivation
// operation right now: totpSatisfied (State == Active) and
// now < ExpiresAt and the session has not been invalidated.
func (s *Session) Authorized(now time.Time) bool {
	return s.State == StateActive && now.Before(s.ExpiresAt)
}

// Touch slides ExpiresAt to now+ttl on an authorised call. It never
// regresses ExpiresAt: callers must only invoke Touch after confirming
// Authorized(now). ttl is normally Service's configured session TTL,
// defaulting to SessionTTL.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(ttl)
}
