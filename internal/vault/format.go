// Package vault implements C4: the password-and-machine-bound AEAD
// seed vault, per spec.md §4.4 and the EncryptedSeed v1 wire format of
// spec.md §6.
package vault

import (
	"encoding/binary"

	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

// Version is the only EncryptedSeed wire format this build knows how
// to decrypt. Readers must refuse any other version byte.
const Version byte = 0x01

// VaultIterations is the default PBKDF2 round count for the vault key,
// per spec.md §4.4 (600000 — deliberately slow to raise the cost of an
// offline guessing attack against an exfiltrated database).
const VaultIterations = 600000

const saltLen = 32

// EncryptedSeed is the persisted, version-tagged ciphertext record for
// one user's seed, per spec.md §3/§6.
type EncryptedSeed struct {
	Version        byte
	KDFIterations  uint32
	SaltPBKDF2     [saltLen]byte
	Nonce          [primitives.NonceSize]byte
	Ciphertext     []byte
	Tag            [primitives.TagSize]byte
	BackupConfirmed bool // never participates in the AEAD
}

// Marshal encodes e as:
// 0x01 || u32_be(iter) || u8(saltLen=32) || salt || u8(12) || nonce ||
// u32_be(ctLen) || ct || tag[16]
// The BackupConfirmed flag is stored by the caller alongside this
// record (e.g. a separate KV key), never inside the AEAD envelope.
func (e *EncryptedSeed) Marshal() []byte {
	buf := make([]byte, 0, 1+4+1+saltLen+1+primitives.NonceSize+4+len(e.Ciphertext)+primitives.TagSize)
	buf = append(buf, e.Version)
	buf = appendU32(buf, e.KDFIterations)
	buf = append(buf, byte(saltLen))
	buf = append(buf, e.SaltPBKDF2[:]...)
	buf = append(buf, byte(primitives.NonceSize))
	buf = append(buf, e.Nonce[:]...)
	buf = appendU32(buf, uint32(len(e.Ciphertext)))
	buf = append(buf, e.Ciphertext...)
	buf = append(buf, e.Tag[:]...)
	return buf
}

// Unmarshal parses the byte layout Marshal produces, refusing any
// version byte other than Version.
func Unmarshal(b []byte) (*EncryptedSeed, error) {
	const op = "vault.Unmarshal"
	if len(b) < 1 {
		return nil, sccerr.New(op, sccerr.BadInput)
	}
	if b[0] != Version {
		return nil, sccerr.New(op, sccerr.BadInput)
	}
	r := &reader{buf: b[1:]}

	iter, err := r.u32()
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	sLen, err := r.u8()
	if err != nil || int(sLen) != saltLen {
		return nil, sccerr.New(op, sccerr.BadInput)
	}
	salt, err := r.bytes(int(sLen))
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	nLen, err := r.u8()
	if err != nil || int(nLen) != primitives.NonceSize {
		return nil, sccerr.New(op, sccerr.BadInput)
	}
	nonce, err := r.bytes(int(nLen))
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	ctLen, err := r.u32()
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	ct, err := r.bytes(int(ctLen))
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}
	tag, err := r.bytes(primitives.TagSize)
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.BadInput, err)
	}

	e := &EncryptedSeed{Version: Version, KDFIterations: iter, Ciphertext: ct}
	copy(e.SaltPBKDF2[:], salt)
	copy(e.Nonce[:], nonce)
	copy(e.Tag[:], tag)
	return e, nil
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) u8() (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, sccerr.New("vault.reader.u8", sccerr.BadInput)
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, sccerr.New("vault.reader.u32", sccerr.BadInput)
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, sccerr.New("vault.reader.bytes", sccerr.BadInput)
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}
