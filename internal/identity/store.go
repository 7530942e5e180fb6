package identity

import (
	"encoding/json"
	"time"

	"github.com/jasony/sccwallet/internal/sccerr"
	"github.com/jasony/sccwallet/internal/storekv"
)

// Tables owned exclusively by this package, per spec.md §3's ownership
// rule: the Identity component exclusively owns User, RateLimitEntry,
// and Session records.
const (
	TableUsers       = "users"
	TableSessions    = "sessions"
	TableRateLimits  = "rate_limits"
	TableBackupCodes = "backup_codes"
)

// usernameIndexPrefix maps a canonical username to a user ID, giving
// Store a second index over TableUsers without a SQL UNIQUE
// constraint — the SCC only requires opaque KV, per spec.md §1.
const usernameIndexPrefix = "by_username:"

type userRecord struct {
	ID                string    `json:"id"`
	UsernameCanonical string    `json:"username_canonical"`
	PasswordVerifier  string    `json:"password_verifier"`
	AuthSalt          []byte    `json:"auth_salt"`
	CreatedAt         time.Time `json:"created_at"`
	LastLoginAt       time.Time `json:"last_login_at"`
	TOTPSecret        []byte    `json:"totp_secret,omitempty"`
	TOTPEnabled       bool      `json:"totp_enabled"`
	IsActive          bool      `json:"is_active"`
}

func toRecord(u *User) *userRecord {
	return &userRecord{
		ID: u.ID, UsernameCanonical: u.UsernameCanonical, PasswordVerifier: u.PasswordVerifier,
		AuthSalt: u.AuthSalt, CreatedAt: u.CreatedAt, LastLoginAt: u.LastLoginAt,
		TOTPSecret: u.TOTPSecret, TOTPEnabled: u.TOTPEnabled, IsActive: u.IsActive,
	}
}

func fromRecord(r *userRecord) *User {
	return &User{
		ID: r.ID, UsernameCanonical: r.UsernameCanonical, PasswordVerifier: r.PasswordVerifier,
		AuthSalt: r.AuthSalt, CreatedAt: r.CreatedAt, LastLoginAt: r.LastLoginAt,
		TOTPSecret: r.TOTPSecret, TOTPEnabled: r.TOTPEnabled, IsActive: r.IsActive,
	}
}

// Store persists User, Session, RateLimitEntry and BackupCode records
// through the external KV surface.
type Store struct {
	kv storekv.KV
}

func NewStore(kv storekv.KV) *Store { return &Store{kv: kv} }

func (s *Store) PutUser(u *User) error {
	const op = "identity.Store.PutUser"
	tx, err := s.kv.Begin()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(toRecord(u))
	if err != nil {
		tx.Rollback()
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	if err := tx.Put(TableUsers, u.ID, payload); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Put(TableUsers, usernameIndexPrefix+u.UsernameCanonical, []byte(u.ID)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return nil
}

func (s *Store) GetUserByID(id string) (*User, bool, error) {
	const op = "identity.Store.GetUserByID"
	tx, err := s.kv.Begin()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()
	raw, ok, err := tx.Get(TableUsers, id)
	if err != nil || !ok {
		return nil, ok, err
	}
	var r userRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return fromRecord(&r), true, nil
}

func (s *Store) GetUserByUsername(canonical string) (*User, bool, error) {
	const op = "identity.Store.GetUserByUsername"
	tx, err := s.kv.Begin()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()
	idBytes, ok, err := tx.Get(TableUsers, usernameIndexPrefix+canonical)
	if err != nil || !ok {
		return nil, ok, err
	}
	raw, ok, err := tx.Get(TableUsers, string(idBytes))
	if err != nil || !ok {
		return nil, ok, err
	}
	var r userRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return fromRecord(&r), true, nil
}

func (s *Store) PutSession(sess *Session) error {
	return s.putJSON(TableSessions, sess.ID, sess)
}

func (s *Store) GetSession(id string) (*Session, bool, error) {
	var sess Session
	ok, err := s.getJSON(TableSessions, id, &sess)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &sess, true, nil
}

func (s *Store) PutRateLimit(e *RateLimitEntry) error {
	return s.putJSON(TableRateLimits, e.Identifier, e)
}

func (s *Store) GetRateLimit(identifier string) (*RateLimitEntry, bool, error) {
	var e RateLimitEntry
	ok, err := s.getJSON(TableRateLimits, identifier, &e)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &e, true, nil
}

func (s *Store) PutBackupCodes(userID string, codes []*BackupCode) error {
	const op = "identity.Store.PutBackupCodes"
	tx, err := s.kv.Begin()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(codes)
	if err != nil {
		tx.Rollback()
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	if err := tx.Put(TableBackupCodes, userID, payload); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return nil
}

func (s *Store) GetBackupCodes(userID string) ([]*BackupCode, error) {
	const op = "identity.Store.GetBackupCodes"
	tx, err := s.kv.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	raw, ok, err := tx.Get(TableBackupCodes, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var codes []*BackupCode
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return codes, nil
}

func (s *Store) putJSON(table, key string, v interface{}) error {
	const op = "identity.Store.putJSON"
	tx, err := s.kv.Begin()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		tx.Rollback()
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	if err := tx.Put(table, key, payload); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return nil
}

func (s *Store) getJSON(table, key string, v interface{}) (bool, error) {
	const op = "identity.Store.getJSON"
	tx, err := s.kv.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	raw, ok, err := tx.Get(table, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return true, nil
}
