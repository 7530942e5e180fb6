package vault

import (
	"github.com/jasony/sccwallet/internal/sccerr"
	"github.com/jasony/sccwallet/internal/storekv"
)

// Table is the storekv table the vault exclusively owns.
const Table = "encrypted_seeds"

const backupConfirmedByte = 1

// Store persists EncryptedSeed rows, one per user, through the
// external KV surface. It owns the "encrypted_seeds" table
// exclusively; Identity never writes to it directly.
type Store struct {
	kv storekv.KV
}

func NewStore(kv storekv.KV) *Store { return &Store{kv: kv} }

// Put atomically replaces the record for userID. The vault's write
// either fully replaces the record within one transaction or leaves
// the prior record intact — there is no partial-commit path.
func (s *Store) Put(userID string, e *EncryptedSeed) error {
	const op = "vault.Store.Put"
	tx, err := s.kv.Begin()
	if err != nil {
		return err
	}
	payload := e.Marshal()
	flag := byte(0)
	if e.BackupConfirmed {
		flag = backupConfirmedByte
	}
	if err := tx.Put(Table, userID, payload); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Put(Table, userID+":backup_confirmed", []byte{flag}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return sccerr.Wrap(op, sccerr.StorageFailure, err)
	}
	return nil
}

// Get loads the record for userID, or (nil, false, nil) if none exists.
func (s *Store) Get(userID string) (*EncryptedSeed, bool, error) {
	const op = "vault.Store.Get"
	tx, err := s.kv.Begin()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	raw, ok, err := tx.Get(Table, userID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	e, err := Unmarshal(raw)
	if err != nil {
		return nil, false, sccerr.Wrap(op, sccerr.StorageFailure, err)
	}

	flagRaw, ok, err := tx.Get(Table, userID+":backup_confirmed")
	if err != nil {
		return nil, false, err
	}
	e.BackupConfirmed = ok && len(flagRaw) == 1 && flagRaw[0] == backupConfirmedByte
	return e, true, nil
}
