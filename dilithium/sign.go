package dilithium

import (
	"io"

	"github.com/vaultsandbox/pqcrypto"
	"github.com/vaultsandbox/pqcrypto/internal/hashes"
	"github.com/vaultsandbox/pqcrypto/internal/subtle"
	"github.com/vaultsandbox/pqcrypto/secmem"
)

// GenerateKeyPair creates a fresh key pair, drawing the 32-byte seed
// from rand. A nil rand draws from crypto/rand.
func (p *ParameterSet) GenerateKeyPair(rand io.Reader) (*PublicKey, *SecretKey, error) {
	seed := make([]byte, SeedSize)
	defer secmem.Wipe(seed)
	if err := pqcrypto.ReadRandom(rand, seed); err != nil {
		return nil, nil, err
	}
	return p.DeriveKeyPair(seed)
}

// DeriveKeyPair computes the key pair determined by a 32-byte seed.
// The same seed always yields the same pair.
func (p *ParameterSet) DeriveKeyPair(seed []byte) (*PublicKey, *SecretKey, error) {
	if len(seed) != SeedSize {
		return nil, nil, pqcrypto.NewSizeError(pqcrypto.ErrInvalidParameter, "key generation seed", SeedSize, len(seed))
	}

	// Stretch the seed into the matrix seed, the noise seed and the
	// signing key.
	expanded := make([]byte, 128)
	defer secmem.Wipe(expanded)
	hashes.KDF(expanded, seed)
	rho := expanded[:32]
	sigma := expanded[32:96]
	key := expanded[96:]

	a, err := p.expandA(rho)
	if err != nil {
		return nil, nil, err
	}

	s1 := newPolyVec(p.l)
	s2 := newPolyVec(p.k)
	defer s1.wipe()
	defer s2.wipe()
	for i := range s1 {
		if err := p.sampleEta(&s1[i], sigma, uint16(i)); err != nil {
			return nil, nil, err
		}
	}
	for i := range s2 {
		if err := p.sampleEta(&s2[i], sigma, uint16(p.l+i)); err != nil {
			return nil, nil, err
		}
	}

	// t = InvNTT(A∘NTT(s1)) + s2
	s1Hat := newPolyVec(p.l)
	copy(s1Hat, s1)
	defer s1Hat.wipe()
	s1Hat.ntt()
	t := newPolyVec(p.k)
	defer t.wipe()
	for i := range t {
		mulAcc(&t[i], a[i], s1Hat)
		t[i].invNTT()
	}
	t.add(s2)
	t.caddq()

	t1 := newPolyVec(p.k)
	t0 := newPolyVec(p.k)
	defer t0.wipe()
	for i := range t {
		for j := range t[i] {
			t1[i][j], t0[i][j] = power2Round(t[i][j])
		}
	}

	pkBytes := make([]byte, p.PublicKeySize())
	copy(pkBytes, rho)
	for i := range t1 {
		if err := packT1(pkBytes[32+i*polyT1Bytes:32+(i+1)*polyT1Bytes], &t1[i]); err != nil {
			return nil, nil, err
		}
	}
	tr := hashes.H(pkBytes)

	skBytes := make([]byte, p.SecretKeySize())
	copy(skBytes, rho)
	copy(skBytes[32:], key)
	copy(skBytes[64:], tr[:])
	off := 96
	etaBytes := p.polyEtaBytes()
	for i := range s1 {
		if err := p.packEta(skBytes[off:off+etaBytes], &s1[i]); err != nil {
			return nil, nil, err
		}
		off += etaBytes
	}
	for i := range s2 {
		if err := p.packEta(skBytes[off:off+etaBytes], &s2[i]); err != nil {
			return nil, nil, err
		}
		off += etaBytes
	}
	for i := range t0 {
		if err := packT0(skBytes[off:off+polyT0Bytes], &t0[i]); err != nil {
			return nil, nil, err
		}
		off += polyT0Bytes
	}

	return &PublicKey{params: p, bytes: pkBytes},
		&SecretKey{params: p, bytes: skBytes}, nil
}

// Sign produces a hedged signature over msg, mixing 32 bytes from rand
// into the per-signature nonce derivation. A nil rand draws from
// crypto/rand.
func (sk *SecretKey) Sign(rand io.Reader, msg []byte) (*Signature, error) {
	var rnd [32]byte
	defer secmem.Wipe(rnd[:])
	if err := pqcrypto.ReadRandom(rand, rnd[:]); err != nil {
		return nil, err
	}
	return sk.sign(msg, rnd[:])
}

// SignDeterministic produces the deterministic signature over msg,
// with the hedging randomness fixed to zero. Equal keys and messages
// yield byte-identical signatures.
func (sk *SecretKey) SignDeterministic(msg []byte) (*Signature, error) {
	var rnd [32]byte
	return sk.sign(msg, rnd[:])
}

func (sk *SecretKey) sign(msg, rnd []byte) (*Signature, error) {
	if sk.params == nil || len(sk.bytes) != sk.params.SecretKeySize() {
		return nil, pqcrypto.ErrInvalidKeySize
	}
	p := sk.params

	rho := sk.bytes[:32]
	key := sk.bytes[32:64]
	tr := sk.bytes[64:96]

	etaBytes := p.polyEtaBytes()
	off := 96
	s1 := newPolyVec(p.l)
	s2 := newPolyVec(p.k)
	t0 := newPolyVec(p.k)
	defer s1.wipe()
	defer s2.wipe()
	defer t0.wipe()
	for i := range s1 {
		if err := p.unpackEta(&s1[i], sk.bytes[off:off+etaBytes]); err != nil {
			return nil, err
		}
		off += etaBytes
	}
	for i := range s2 {
		if err := p.unpackEta(&s2[i], sk.bytes[off:off+etaBytes]); err != nil {
			return nil, err
		}
		off += etaBytes
	}
	for i := range t0 {
		if err := unpackT0(&t0[i], sk.bytes[off:off+polyT0Bytes]); err != nil {
			return nil, err
		}
		off += polyT0Bytes
	}

	mu := hashes.CRH(tr, msg)
	rhoPrime := hashes.CRH(key, rnd, mu[:])
	defer secmem.Wipe(rhoPrime[:])

	a, err := p.expandA(rho)
	if err != nil {
		return nil, err
	}

	s1.ntt()
	s2.ntt()
	t0.ntt()

	zBytes := p.polyZBytes()
	y := newPolyVec(p.l)
	yHat := newPolyVec(p.l)
	defer y.wipe()
	defer yHat.wipe()

	// Each attempt consumes l fresh mask nonces; rejection restarts
	// with the next block. Acceptance is overwhelmingly likely within
	// a handful of attempts, so the loop has no artificial cap.
	for kappa := 0; ; kappa += p.l {
		for i := range y {
			if err := p.expandMask(&y[i], rhoPrime[:], uint16(kappa+i)); err != nil {
				return nil, err
			}
		}

		copy(yHat, y)
		yHat.ntt()
		w := newPolyVec(p.k)
		for i := range w {
			mulAcc(&w[i], a[i], yHat)
			w[i].invNTT()
		}
		w.caddq()

		w1 := newPolyVec(p.k)
		w0 := newPolyVec(p.k)
		p.decomposeVec(w1, w0, w)

		w1Packed := make([]byte, p.k*p.polyW1Bytes())
		for i := range w1 {
			if err := p.packW1(w1Packed[i*p.polyW1Bytes():(i+1)*p.polyW1Bytes()], &w1[i]); err != nil {
				return nil, err
			}
		}
		cTilde := hashes.H(mu[:], w1Packed)

		var c poly
		if err := p.sampleInBall(&c, cTilde[:]); err != nil {
			return nil, err
		}
		c.ntt()

		// z = y + c*s1, rejected when it would leak the secret's
		// geometry.
		z := newPolyVec(p.l)
		scalePointwise(z, &c, s1)
		z.invNTT()
		z.add(y)
		z.reduce()
		if !z.normBounded(p.gamma1 - int32(p.beta)) {
			continue
		}

		// The carry side: subtracting c*s2 must keep the low part
		// clear of the decomposition boundary.
		cs2 := newPolyVec(p.k)
		scalePointwise(cs2, &c, s2)
		cs2.invNTT()
		w0.sub(cs2)
		w0.reduce()
		if !w0.normBounded(p.gamma2 - int32(p.beta)) {
			continue
		}

		ct0 := newPolyVec(p.k)
		scalePointwise(ct0, &c, t0)
		ct0.invNTT()
		ct0.reduce()
		if !ct0.normBounded(p.gamma2) {
			continue
		}

		w0.add(ct0)
		h := newPolyVec(p.k)
		if p.makeHintVec(h, w0, w1) > p.omega {
			continue
		}

		sig := make([]byte, p.SignatureSize())
		copy(sig, cTilde[:])
		pos := 32
		for i := range z {
			if err := p.packZ(sig[pos:pos+zBytes], &z[i]); err != nil {
				return nil, err
			}
			pos += zBytes
		}
		if err := p.packHints(sig[pos:], h); err != nil {
			return nil, err
		}
		return &Signature{params: p, bytes: sig}, nil
	}
}

// Verify reports whether sig is a valid signature over msg under pk.
// It never returns an error; every defect, from wrong lengths to
// non-canonical hint encodings, yields false.
func (pk *PublicKey) Verify(msg []byte, sig *Signature) bool {
	if pk.params == nil || len(pk.bytes) != pk.params.PublicKeySize() {
		return false
	}
	p := pk.params
	if sig == nil || sig.params != p || len(sig.bytes) != p.SignatureSize() {
		return false
	}

	rho := pk.bytes[:32]
	t1 := newPolyVec(p.k)
	for i := range t1 {
		if err := unpackT1(&t1[i], pk.bytes[32+i*polyT1Bytes:32+(i+1)*polyT1Bytes]); err != nil {
			return false
		}
	}

	cTilde := sig.bytes[:32]
	zBytes := p.polyZBytes()
	z := newPolyVec(p.l)
	pos := 32
	for i := range z {
		if err := p.unpackZ(&z[i], sig.bytes[pos:pos+zBytes]); err != nil {
			return false
		}
		pos += zBytes
	}
	h := newPolyVec(p.k)
	if err := p.unpackHints(h, sig.bytes[pos:]); err != nil {
		return false
	}

	if !z.normBounded(p.gamma1 - int32(p.beta)) {
		return false
	}

	tr := hashes.H(pk.bytes)
	mu := hashes.CRH(tr[:], msg)

	var c poly
	if err := p.sampleInBall(&c, cTilde); err != nil {
		return false
	}

	a, err := p.expandA(rho)
	if err != nil {
		return false
	}

	// w' = InvNTT(A∘z - c∘(t1*2^13)), then the hints recover the
	// commitment's high part.
	z.ntt()
	w := newPolyVec(p.k)
	for i := range w {
		mulAcc(&w[i], a[i], z)
	}
	c.ntt()
	t1.shiftl()
	t1.ntt()
	ct1 := newPolyVec(p.k)
	scalePointwise(ct1, &c, t1)
	w.sub(ct1)
	w.reduce()
	w.invNTT()
	w.caddq()

	w1 := newPolyVec(p.k)
	p.useHintVec(w1, w, h)

	w1Packed := make([]byte, p.k*p.polyW1Bytes())
	for i := range w1 {
		if err := p.packW1(w1Packed[i*p.polyW1Bytes():(i+1)*p.polyW1Bytes()], &w1[i]); err != nil {
			return false
		}
	}
	expected := hashes.H(mu[:], w1Packed)
	return subtle.Equal(cTilde, expected[:])
}
