package kyber

import "github.com/vaultsandbox/pqcrypto"

const (
	n = 256
	q = 3329

	// polyBytes is the size of a full 12-bit encoding of one ring
	// element, the unit both key formats are built from.
	polyBytes = 384

	// SeedSize is the input length DeriveKeyPair expects: a 32-byte
	// CPA seed followed by a 32-byte implicit-rejection seed.
	SeedSize = 64

	// SharedSecretSize is the length of every shared secret this
	// package produces.
	SharedSecretSize = 32
)

// ParameterSet fixes one security level of the KEM. The three defined
// sets differ in the module rank k, the noise widths eta1 and eta2 and
// the ciphertext compression depths du and dv; everything else (ring
// dimension, modulus, hash pipeline) is shared.
type ParameterSet struct {
	name string
	k    int
	eta1 int
	eta2 int
	du   int
	dv   int
}

var (
	// Kyber512 targets NIST security category 1.
	Kyber512 = &ParameterSet{name: "Kyber512", k: 2, eta1: 3, eta2: 2, du: 10, dv: 4}

	// Kyber768 targets NIST security category 3.
	Kyber768 = &ParameterSet{name: "Kyber768", k: 3, eta1: 2, eta2: 2, du: 10, dv: 4}

	// Kyber1024 targets NIST security category 5.
	Kyber1024 = &ParameterSet{name: "Kyber1024", k: 4, eta1: 2, eta2: 2, du: 11, dv: 5}
)

// ForRank returns the parameter set with module rank k, or
// ErrInvalidParameter when k is not 2, 3 or 4.
func ForRank(k int) (*ParameterSet, error) {
	switch k {
	case 2:
		return Kyber512, nil
	case 3:
		return Kyber768, nil
	case 4:
		return Kyber1024, nil
	default:
		return nil, &pqcrypto.ParameterError{Name: "module rank k", Value: k}
	}
}

// Name returns the conventional name of the parameter set, such as
// "Kyber768".
func (p *ParameterSet) Name() string { return p.name }

// Rank returns the module rank k.
func (p *ParameterSet) Rank() int { return p.k }

// PublicKeySize returns the length in bytes of an encoded public key
// for this parameter set.
func (p *ParameterSet) PublicKeySize() int { return p.k*polyBytes + 32 }

// SecretKeySize returns the length in bytes of an encoded secret key
// for this parameter set.
func (p *ParameterSet) SecretKeySize() int {
	return p.k*polyBytes + p.PublicKeySize() + 64
}

// CiphertextSize returns the length in bytes of a ciphertext for this
// parameter set.
func (p *ParameterSet) CiphertextSize() int {
	return p.k*p.compressedUBytes() + p.compressedVBytes()
}

// compressedUBytes is the encoded size of one du-bit compressed ring
// element of the ciphertext vector u.
func (p *ParameterSet) compressedUBytes() int { return n * p.du / 8 }

// compressedVBytes is the encoded size of the dv-bit compressed
// ciphertext element v.
func (p *ParameterSet) compressedVBytes() int { return n * p.dv / 8 }
