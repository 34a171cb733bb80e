package dilithium

import "github.com/vaultsandbox/pqcrypto"

const (
	n = 256
	q = 8380417

	// dDropped is the number of low-order bits split off t during key
	// generation.
	dDropped = 13

	// SeedSize is the input length DeriveKeyPair expects.
	SeedSize = 32

	// polyT1Bytes encodes 256 coefficients of 10 bits each.
	polyT1Bytes = 320

	// polyT0Bytes encodes 256 coefficients of 13 bits each.
	polyT0Bytes = 416
)

// ParameterSet fixes one security level of the signature scheme. The
// defined sets differ in matrix shape (k rows, l columns), the secret
// noise width eta, the challenge weight tau, the masking range gamma1,
// the decomposition divisor gamma2 and the hint budget omega.
type ParameterSet struct {
	name   string
	k      int
	l      int
	eta    int
	tau    int
	beta   int
	gamma1 int32
	gamma2 int32
	omega  int
}

var (
	// Dilithium2 targets NIST security category 2.
	Dilithium2 = &ParameterSet{
		name: "Dilithium2", k: 4, l: 4, eta: 2, tau: 39, beta: 78,
		gamma1: 1 << 17, gamma2: (q - 1) / 88, omega: 80,
	}

	// Dilithium3 targets NIST security category 3.
	Dilithium3 = &ParameterSet{
		name: "Dilithium3", k: 6, l: 5, eta: 4, tau: 49, beta: 196,
		gamma1: 1 << 19, gamma2: (q - 1) / 32, omega: 55,
	}

	// Dilithium5 targets NIST security category 5.
	Dilithium5 = &ParameterSet{
		name: "Dilithium5", k: 8, l: 7, eta: 2, tau: 60, beta: 120,
		gamma1: 1 << 19, gamma2: (q - 1) / 32, omega: 75,
	}
)

// ForLevel returns the parameter set for NIST level 2, 3 or 5, or
// ErrInvalidParameter for any other level.
func ForLevel(level int) (*ParameterSet, error) {
	switch level {
	case 2:
		return Dilithium2, nil
	case 3:
		return Dilithium3, nil
	case 5:
		return Dilithium5, nil
	default:
		return nil, &pqcrypto.ParameterError{Name: "security level", Value: level}
	}
}

// Name returns the conventional name of the parameter set, such as
// "Dilithium3".
func (p *ParameterSet) Name() string { return p.name }

// MatrixShape returns the (rows, columns) shape of the public matrix.
func (p *ParameterSet) MatrixShape() (k, l int) { return p.k, p.l }

// polyEtaBytes is the encoded size of one secret polynomial with
// coefficients in [-eta, eta].
func (p *ParameterSet) polyEtaBytes() int {
	if p.eta == 2 {
		return 96
	}
	return 128
}

// polyZBytes is the encoded size of one response polynomial with
// coefficients in (-gamma1, gamma1].
func (p *ParameterSet) polyZBytes() int {
	if p.gamma1 == 1<<17 {
		return 576
	}
	return 640
}

// polyW1Bytes is the encoded size of one decomposed commitment
// polynomial.
func (p *ParameterSet) polyW1Bytes() int {
	if p.gamma2 == (q-1)/88 {
		return 192
	}
	return 128
}

// PublicKeySize returns the length in bytes of an encoded public key.
func (p *ParameterSet) PublicKeySize() int { return 32 + p.k*polyT1Bytes }

// SecretKeySize returns the length in bytes of an encoded secret key.
func (p *ParameterSet) SecretKeySize() int {
	return 3*32 + (p.k+p.l)*p.polyEtaBytes() + p.k*polyT0Bytes
}

// SignatureSize returns the length in bytes of a signature.
func (p *ParameterSet) SignatureSize() int {
	return 32 + p.l*p.polyZBytes() + p.omega + p.k
}
