// Package hashes provides the SHA-3 primitives the lattice schemes are built
// on: fixed-width digests (H, G, CRH), keyed streams (PRF, XOF), and an
// arbitrary-length KDF. All functions are thin compositions over
// golang.org/x/crypto/sha3 with the domain conventions used across this
// module, so protocol code never touches hashing directly.
package hashes

import "golang.org/x/crypto/sha3"

// H computes SHA3-256 over the concatenation of parts.
func H(parts ...[]byte) [32]byte {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// G computes SHA3-512 over the concatenation of parts.
func G(parts ...[]byte) [64]byte {
	h := sha3.New512()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	h.Sum(out[:0])
	return out
}

// CRH is the 48-byte collision-resistant hash used by the signature scheme,
// realized as SHAKE256 truncated to 48 bytes.
func CRH(parts ...[]byte) [48]byte {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [48]byte
	h.Read(out[:])
	return out
}

// KDF fills out with SHAKE256 of the concatenation of parts.
func KDF(out []byte, parts ...[]byte) {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	h.Read(out)
}

// NewPRF returns the keyed SHAKE256(seed || nonce) stream used for noise
// sampling. Callers read as many bytes as their sampler needs.
func NewPRF(seed []byte, nonce byte) sha3.ShakeHash {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{nonce})
	return h
}

// NewXOF returns the SHAKE128(seed || b0 || b1) stream used for matrix
// expansion, keyed by a seed and a two-byte position.
func NewXOF(seed []byte, b0, b1 byte) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(seed)
	h.Write([]byte{b0, b1})
	return h
}

// NewShake256 returns a SHAKE256 stream absorbed over parts, for uses that
// need an unbounded keyed stream outside the PRF/XOF conventions (challenge
// expansion, mask expansion, key-generation seed expansion).
func NewShake256(parts ...[]byte) sha3.ShakeHash {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	return h
}
