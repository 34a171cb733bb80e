// Package kyber implements the Kyber key encapsulation mechanism over
// the module lattice ring Z_3329[X]/(X^256+1), as submitted to round 3
// of the NIST post-quantum project, at the three standard security
// levels.
//
// # Usage
//
// Pick a parameter set, generate a key pair, and move 32-byte shared
// secrets with Encapsulate and Decapsulate:
//
//	pk, sk, err := kyber.Kyber768.GenerateKeyPair(nil)
//	ct, ssA, err := pk.Encapsulate(nil)
//	ssB, err := sk.Decapsulate(ct)
//	// ssA and ssB now hold the same 32 bytes.
//
// Keys and ciphertexts convert to and from fixed-size byte strings via
// Bytes and the Parse functions on the parameter set; no other
// serialization format exists.
//
// # Failure behavior
//
// Decapsulate never reports whether a ciphertext was valid. A modified
// or mismatched ciphertext of the right length produces a secret
// derived from the rejection value stored in the secret key, so the
// caller observes a wrong key rather than an error. Only structural
// problems (wrong lengths, wiped keys) return errors.
//
// All operations on secret data avoid secret-dependent branches and
// memory indices.
package kyber
