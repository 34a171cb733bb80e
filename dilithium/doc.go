// Package dilithium implements the Dilithium signature scheme over
// the module lattice ring Z_8380417[X]/(X^256+1), as submitted to
// round 3 of the NIST post-quantum project, at the three standard
// security levels.
//
// # Usage
//
// Pick a parameter set, generate a key pair, and sign:
//
//	pk, sk, err := dilithium.Dilithium3.GenerateKeyPair(nil)
//	sig, err := sk.Sign(nil, msg)
//	ok := pk.Verify(msg, sig)
//
// Sign hedges each signature with fresh randomness; SignDeterministic
// derives everything from the key and message, so repeated calls
// return identical bytes. Verification accepts either kind.
//
// Keys and signatures convert to and from fixed-size byte strings via
// Bytes and the Parse functions on the parameter set.
//
// # Failure behavior
//
// Verify returns false for every defect: wrong length, tampered
// message, foreign key, out-of-range response norms or non-canonical
// hint encodings. It never returns an error. Signing retries
// internally until the rejection-sampling loop accepts; callers see a
// single call that eventually returns.
package dilithium
