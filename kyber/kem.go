package kyber

import (
	"io"

	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/internal/hashes"
	"github.com/vaultsandbox/pqcrypto/internal/subtle"
	"github.com/vaultsandbox/pqcrypto/secmem"
)

// GenerateKeyPair creates a fresh key pair, drawing 64 bytes of seed
// material from rand. A nil rand draws from crypto/rand.
func (p *ParameterSet) GenerateKeyPair(rand io.Reader) (*PublicKey, *SecretKey, error) {
	seed := make([]byte, SeedSize)
	defer secmem.Wipe(seed)
	if err := pqcrypto.ReadRandom(rand, seed); err != nil {
		return nil, nil, err
	}
	return p.DeriveKeyPair(seed)
}

// DeriveKeyPair computes the key pair determined by a 64-byte seed:
// the first half drives the CPA key derivation, the second half
// becomes the implicit-rejection secret stored in the secret key. The
// same seed always yields the same pair.
func (p *ParameterSet) DeriveKeyPair(seed []byte) (*PublicKey, *SecretKey, error) {
	if len(seed) != SeedSize {
		return nil, nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidParameter, "key generation seed", SeedSize, len(seed))
	}
	d, z := seed[:32], seed[32:]

	g := hashes.G(d)
	defer secmem.Wipe(g[:])
	rho, sigma := g[:32], g[32:]

	a, err := p.expandMatrix(rho, false)
	if err != nil {
		return nil, nil, err
	}

	s := newPolyVec(p.k)
	e := newPolyVec(p.k)
	defer s.wipe()
	defer e.wipe()
	nonce := byte(0)
	for i := range s {
		if err := sampleNoise(&s[i], sigma, nonce, p.eta1); err != nil {
			return nil, nil, err
		}
		nonce++
	}
	for i := range e {
		if err := sampleNoise(&e[i], sigma, nonce, p.eta1); err != nil {
			return nil, nil, err
		}
		nonce++
	}

	s.ntt()
	s.reduce()
	e.ntt()

	// t = A∘s + e, computed and published in the NTT domain. The
	// base multiplication leaves an R^-1 behind; toMont cancels it
	// before the noise is added.
	t := newPolyVec(p.k)
	for i := range t {
		mulAcc(&t[i], a[i], s)
		t[i].toMont()
		t[i].add(&e[i])
		t[i].reduce()
	}

	pkBytes := make([]byte, p.PublicKeySize())
	if err := packVec12(pkBytes[:p.k*polyBytes], t); err != nil {
		return nil, nil, err
	}
	copy(pkBytes[p.k*polyBytes:], rho)

	skBytes := make([]byte, p.SecretKeySize())
	if err := packVec12(skBytes[:p.k*polyBytes], s); err != nil {
		return nil, nil, err
	}
	copy(skBytes[p.k*polyBytes:], pkBytes)
	hpk := hashes.H(pkBytes)
	copy(skBytes[p.k*polyBytes+len(pkBytes):], hpk[:])
	copy(skBytes[len(skBytes)-32:], z)

	return &PublicKey{params: p, bytes: pkBytes},
		&SecretKey{params: p, bytes: skBytes}, nil
}

// Encapsulate generates a fresh 32-byte shared secret and the
// ciphertext that transports it to the holder of the matching secret
// key. A nil rand draws from crypto/rand.
func (pk *PublicKey) Encapsulate(rand io.Reader) (*Ciphertext, *SharedSecret, error) {
	if pk.params == nil || len(pk.bytes) != pk.params.PublicKeySize() {
		return nil, nil, pqcrypto.ErrInvalidKeySize
	}
	p := pk.params

	var seed [32]byte
	if err := pqcrypto.ReadRandom(rand, seed[:]); err != nil {
		return nil, nil, err
	}
	defer secmem.Wipe(seed[:])

	// Hashing the raw randomness keeps rng output out of the
	// transcript even if the source is biased.
	m := hashes.H(seed[:])
	defer secmem.Wipe(m[:])

	hpk := hashes.H(pk.bytes)
	kr := hashes.G(m[:], hpk[:])
	defer secmem.Wipe(kr[:])

	ctBytes, err := p.cpaEncrypt(pk.bytes, &m, kr[32:])
	if err != nil {
		return nil, nil, err
	}

	hct := hashes.H(ctBytes)
	ss := make([]byte, SharedSecretSize)
	hashes.KDF(ss, kr[:32], hct[:])

	return &Ciphertext{params: p, bytes: ctBytes},
		&SharedSecret{bytes: ss}, nil
}

// Decapsulate recovers the shared secret carried by ct. A ciphertext
// that does not decrypt consistently yields a secret derived from the
// stored rejection value instead of an error, so tampered ciphertexts
// are indistinguishable from honest ones to anyone who cannot check
// the secret itself.
func (sk *SecretKey) Decapsulate(ct *Ciphertext) (*SharedSecret, error) {
	if sk.params == nil || len(sk.bytes) != sk.params.SecretKeySize() {
		return nil, pqcrypto.ErrInvalidKeySize
	}
	p := sk.params
	if ct == nil || ct.params != p {
		return nil, pqcrypto.ErrInvalidCiphertext
	}
	if len(ct.bytes) != p.CiphertextSize() {
		return nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidCiphertext, "ciphertext", p.CiphertextSize(), len(ct.bytes))
	}

	skPoly := sk.bytes[:p.k*polyBytes]
	pkBytes := sk.bytes[p.k*polyBytes : p.k*polyBytes+p.PublicKeySize()]
	hpk := sk.bytes[len(sk.bytes)-64 : len(sk.bytes)-32]
	z := sk.bytes[len(sk.bytes)-32:]

	sHat := newPolyVec(p.k)
	defer sHat.wipe()
	if err := unpackVec12(sHat, skPoly); err != nil {
		return nil, err
	}

	m, err := p.cpaDecrypt(sHat, ct.bytes)
	if err != nil {
		return nil, err
	}
	defer secmem.Wipe(m[:])

	kr := hashes.G(m[:], hpk)
	defer secmem.Wipe(kr[:])

	// Re-encrypt with the recovered message and compare against the
	// received ciphertext. Both candidate secrets are derived
	// unconditionally; the comparison mask picks one without
	// branching.
	ct2, err := p.cpaEncrypt(pkBytes, &m, kr[32:])
	if err != nil {
		return nil, err
	}

	hct := hashes.H(ct.bytes)
	good := make([]byte, SharedSecretSize)
	bad := make([]byte, SharedSecretSize)
	defer secmem.Wipe(good)
	defer secmem.Wipe(bad)
	hashes.KDF(good, kr[:32], hct[:])
	hashes.KDF(bad, z, hct[:])

	ss := subtle.Select(subtle.EqualMask(ct2, ct.bytes), good, bad)
	return &SharedSecret{bytes: ss}, nil
}

// cpaEncrypt runs the underlying CPA-secure encryption of m against a
// packed public key, with every random value derived from the 32-byte
// coins.
func (p *ParameterSet) cpaEncrypt(pkBytes []byte, m *[32]byte, coins []byte) ([]byte, error) {
	t := newPolyVec(p.k)
	if err := unpackVec12(t, pkBytes[:p.k*polyBytes]); err != nil {
		return nil, err
	}
	rho := pkBytes[p.k*polyBytes:]

	at, err := p.expandMatrix(rho, true)
	if err != nil {
		return nil, err
	}

	r := newPolyVec(p.k)
	e1 := newPolyVec(p.k)
	var e2 poly
	defer r.wipe()
	defer e1.wipe()
	defer e2.wipe()
	nonce := byte(0)
	for i := range r {
		if err := sampleNoise(&r[i], coins, nonce, p.eta1); err != nil {
			return nil, err
		}
		nonce++
	}
	for i := range e1 {
		if err := sampleNoise(&e1[i], coins, nonce, p.eta2); err != nil {
			return nil, err
		}
		nonce++
	}
	if err := sampleNoise(&e2, coins, nonce, p.eta2); err != nil {
		return nil, err
	}

	r.ntt()
	r.reduce()

	// u = InvNTT(A^T∘r) + e1
	u := newPolyVec(p.k)
	for i := range u {
		mulAcc(&u[i], at[i], r)
		u[i].invNTT()
		u[i].add(&e1[i])
		u[i].reduce()
	}

	// v = InvNTT(t∘r) + e2 + Encode(m)
	var v, mp poly
	defer mp.wipe()
	mulAcc(&v, t, r)
	v.invNTT()
	v.add(&e2)
	mp.fromMsg(m)
	v.add(&mp)
	v.reduce()

	ct := make([]byte, p.CiphertextSize())
	du := p.compressedUBytes()
	for i := range u {
		if err := compressPoly(ct[i*du:(i+1)*du], &u[i], p.du); err != nil {
			return nil, err
		}
	}
	if err := compressPoly(ct[p.k*du:], &v, p.dv); err != nil {
		return nil, err
	}
	return ct, nil
}

// cpaDecrypt recovers the 32-byte message from a ciphertext using the
// unpacked NTT-domain secret vector.
func (p *ParameterSet) cpaDecrypt(sHat polyVec, ct []byte) ([32]byte, error) {
	u := newPolyVec(p.k)
	du := p.compressedUBytes()
	for i := range u {
		if err := decompressPoly(&u[i], ct[i*du:(i+1)*du], p.du); err != nil {
			return [32]byte{}, err
		}
	}
	var v poly
	defer v.wipe()
	if err := decompressPoly(&v, ct[p.k*du:], p.dv); err != nil {
		return [32]byte{}, err
	}

	u.ntt()
	var su poly
	defer su.wipe()
	mulAcc(&su, sHat, u)
	su.invNTT()

	v.sub(&su)
	v.reduce()
	return v.toMsg(), nil
}
