package vault

import (
	"github.com/jasony/sccwallet/internal/primitives"
	"github.com/jasony/sccwallet/internal/sccerr"
)

const vaultAAD = "v1"
const vaultKeyLen = 32

// deriveVaultKey computes
// K_vault = PBKDF2-HMAC-SHA512(password || 0x00 || machineFactor, salt, iter, 32),
// per spec.md §4.4. Binding to machineFactor prevents an attacker who
// exfiltrates only the database from brute-forcing the password on a
// different machine.
func deriveVaultKey(password, machineFactor, salt []byte, iter int) []byte {
	material := make([]byte, 0, len(password)+1+len(machineFactor))
	material = append(material, password...)
	material = append(material, 0x00)
	material = append(material, machineFactor...)
	defer primitives.SecureWipe(material)
	return primitives.PBKDF2HMACSHA512(material, salt, iter, vaultKeyLen)
}

// Encrypt seals seed64 under password and machineFactor with a fresh
// salt and nonce, at the given iteration count. The returned record's
// KDFIterations is stored alongside it so parameters may be upgraded
// later without migrating existing rows.
func Encrypt(seed64, password, machineFactor []byte, iter int) (*EncryptedSeed, error) {
	const op = "vault.Encrypt"
	if len(seed64) != 64 {
		return nil, sccerr.New(op, sccerr.BadInput)
	}
	saltBuf, err := primitives.RandomBytesRetry(saltLen, 3)
	if err != nil {
		return nil, err
	}
	nonceBuf, err := primitives.RandomBytesRetry(primitives.NonceSize, 3)
	if err != nil {
		return nil, err
	}

	key := deriveVaultKey(password, machineFactor, saltBuf, iter)
	defer primitives.SecureWipe(key)

	sealed, err := primitives.AEADEncrypt(key, nonceBuf, seed64, []byte(vaultAAD))
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.AeadFailure, err)
	}
	ct := sealed[:len(sealed)-primitives.TagSize]
	tag := sealed[len(sealed)-primitives.TagSize:]

	e := &EncryptedSeed{Version: Version, KDFIterations: uint32(iter), Ciphertext: ct}
	copy(e.SaltPBKDF2[:], saltBuf)
	copy(e.Nonce[:], nonceBuf)
	copy(e.Tag[:], tag)
	return e, nil
}

// Decrypt recovers the 64-byte seed from e under password and
// machineFactor. Any AEAD verification failure surfaces as
// AeadFailure regardless of whether the true cause was a wrong
// password or a corrupted record — the vault never distinguishes the
// two in error text or timing.
func Decrypt(e *EncryptedSeed, password, machineFactor []byte) ([]byte, error) {
	const op = "vault.Decrypt"
	if e.Version != Version {
		return nil, sccerr.New(op, sccerr.BadInput)
	}
	key := deriveVaultKey(password, machineFactor, e.SaltPBKDF2[:], int(e.KDFIterations))
	defer primitives.SecureWipe(key)

	sealed := make([]byte, 0, len(e.Ciphertext)+primitives.TagSize)
	sealed = append(sealed, e.Ciphertext...)
	sealed = append(sealed, e.Tag[:]...)

	seed, err := primitives.AEADDecrypt(key, e.Nonce[:], sealed, []byte(vaultAAD))
	if err != nil {
		return nil, sccerr.Wrap(op, sccerr.AeadFailure, err)
	}
	return seed, nil
}
