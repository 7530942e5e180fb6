package primitives

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// PointMulGenerator computes scalar*G and returns the 33-byte
// compressed public key, i.e. the public key matching a private scalar.
func PointMulGenerator(scalar []byte) ([]byte, error) {
	priv, _ := btcec.PrivKeyFromBytes(scalar)
	if priv == nil {
		return nil, sccerr.New("primitives.PointMulGenerator", sccerr.BadInput)
	}
	return priv.PubKey().SerializeCompressed(), nil
}

// SignatureRS is a raw (r, s) ECDSA signature pair, low-S normalised.
type SignatureRS struct {
	R []byte
	S []byte
}

// SignDeterministic signs msg32 with priv using RFC 6979 deterministic
// nonce generation; btcec's Sign already enforces canonical low-S per
// BIP 0062, satisfying the spec's "s must be canonical" invariant.
func SignDeterministic(priv []byte, msg32 []byte) (*SignatureRS, error) {
	if len(msg32) != 32 {
		return nil, sccerr.New("primitives.SignDeterministic", sccerr.BadInput)
	}
	key, _ := btcec.PrivKeyFromBytes(priv)
	if key == nil {
		return nil, sccerr.New("primitives.SignDeterministic", sccerr.BadInput)
	}
	sig := ecdsa.Sign(key, msg32)
	r := sig.R()
	s := sig.S()
	return &SignatureRS{R: r.Bytes(), S: s.Bytes()}, nil
}

// DEREncode DER-encodes (r, s) for Bitcoin script signatures.
func DEREncode(sig *SignatureRS) []byte {
	return derEncodeRS(sig.R, sig.S)
}

// Fixed64 returns the fixed 64-byte (r||s) encoding Ethereum signatures
// use, each half left-padded to 32 bytes.
func Fixed64(sig *SignatureRS) []byte {
	out := make([]byte, 64)
	copy(out[32-len(sig.R):32], sig.R)
	copy(out[64-len(sig.S):64], sig.S)
	return out
}

// derEncodeRS builds a minimal DER SEQUENCE{INTEGER r, INTEGER s}.
func derEncodeRS(r, s []byte) []byte {
	encInt := func(b []byte) []byte {
		// strip leading zero bytes, then add one back if the high bit is set
		for len(b) > 1 && b[0] == 0 {
			b = b[1:]
		}
		if len(b) == 0 {
			b = []byte{0}
		}
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return append([]byte{0x02, byte(len(b))}, b...)
	}
	rEnc := encInt(r)
	sEnc := encInt(s)
	body := append(append([]byte{}, rEnc...), sEnc...)
	return append([]byte{0x30, byte(len(body))}, body...)
}
