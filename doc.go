// Package pqcrypto implements post-quantum lattice cryptography from first
// principles: the Kyber key-encapsulation mechanism and the Dilithium digital
// signature scheme, together with the polynomial arithmetic, sampling, and
// constant-time machinery they are built on.
//
// The algorithm packages are [github.com/vaultsandbox/pqcrypto/kyber] and
// [github.com/vaultsandbox/pqcrypto/dilithium]. This root package carries the
// shared error surface and randomness helpers.
//
// # Algorithm Suite
//
//   - Kyber512, Kyber768, Kyber1024: module-lattice KEMs over Z_3329[X]/(X^256+1)
//     with a Fujisaki-Okamoto transform and implicit rejection. Shared secrets
//     are always 32 bytes.
//
//   - Dilithium2, Dilithium3, Dilithium5: module-lattice signatures over
//     Z_8380417[X]/(X^256+1) using rejection sampling (Fiat-Shamir with
//     aborts) and hint-compressed commitments.
//
// All hashing is SHA-3: SHA3-256/512 digests and SHAKE128/256 streams.
//
// # Security Notes
//
// Comparisons on secret data, message-bit decoding, and the decapsulation
// accept/reject path are constant time. Decapsulation never reports failure:
// a tampered ciphertext yields an unrelated shared secret derived from a
// fallback seed stored in the secret key.
//
// Secret-key and shared-secret types expose Wipe methods, and internal
// buffers holding secret material are wiped after use. Go's runtime may
// still have copied such memory during stack growth or garbage collection;
// see [github.com/vaultsandbox/pqcrypto/secmem] for the exact guarantees.
//
// This implementation favors clarity over interoperability: matrix expansion
// draws one candidate per 3-byte XOF chunk, which is deliberately not the
// FIPS 203 encoding, so keys and ciphertexts are not interchangeable with
// FIPS implementations even though all byte lengths match.
//
// # Randomness
//
// Every operation that needs entropy takes an io.Reader. Passing nil selects
// crypto/rand. [NewDeterministicRandom] builds a reproducible stream for
// tests and vector generation:
//
//	rng := pqcrypto.NewDeterministicRandom([]byte("fixed seed"))
//	pk, sk, err := kyber.Kyber768.GenerateKeyPair(rng)
package pqcrypto
