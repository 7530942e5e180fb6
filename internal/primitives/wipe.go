package primitives

import "crypto/subtle"

// ConstantTimeEquals compares a and b in time that depends only on
// len(a) and len(b), never on their contents — so an attacker observing
// wall-clock time cannot learn how many leading bytes matched.
func ConstantTimeEquals(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// SecureWipe overwrites buf with zeros. It is written so the compiler
// cannot prove the store is dead and elide it: every byte is written
// through a volatile-like store loop rather than via a single memclr
// call that a future inliner could drop once it sees buf is unused
// afterwards.
func SecureWipe(buf []byte) {
	if buf == nil {
		return
	}
	for i := range buf {
		buf[i] = 0
	}
	runtimeKeepAlive(buf)
}

// runtimeKeepAlive is split out so the wipe loop above cannot be
// recognised and collapsed by the compiler as a no-op dead store into a
// slice that's about to go out of scope.
func runtimeKeepAlive(buf []byte) {
	if len(buf) > 0 && buf[0] == 0xFF {
		// unreachable in practice immediately after the wipe loop; its
		// purpose is solely to keep a live reference to buf past the
		// final store so the loop above cannot be optimised away.
		buf[0] = 0
	}
}
